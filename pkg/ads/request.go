package ads

import (
	"maps"
	"slices"
)

// AdRequest carries the targeting information sent with an ad load.
// Zero-value fields are treated as absent and omitted from the wire form.
type AdRequest struct {
	// Keywords are words or phrases describing the current user activity.
	Keywords []string
	// ContentURL is the URL of the content the ad is shown alongside.
	ContentURL string
	// NonPersonalizedAds requests non-personalized ads when set. Nil leaves
	// the choice to the SDK.
	NonPersonalizedAds *bool
}

// Equal reports field-wise equality. Nil and empty keyword slices are
// distinct, matching the wire form.
func (r *AdRequest) Equal(other *AdRequest) bool {
	if r == nil || other == nil {
		return r == other
	}
	return slicesEqual(r.Keywords, other.Keywords) &&
		r.ContentURL == other.ContentURL &&
		boolPtrEqual(r.NonPersonalizedAds, other.NonPersonalizedAds)
}

// AdManagerAdRequest extends AdRequest with Ad Manager custom targeting.
type AdManagerAdRequest struct {
	AdRequest
	// CustomTargeting maps custom targeting keys to a single value.
	CustomTargeting map[string]string
	// CustomTargetingLists maps custom targeting keys to multiple values.
	CustomTargetingLists map[string][]string
}

// Equal reports field-wise equality.
func (r *AdManagerAdRequest) Equal(other *AdManagerAdRequest) bool {
	if r == nil || other == nil {
		return r == other
	}
	if !r.AdRequest.Equal(&other.AdRequest) {
		return false
	}
	if !maps.Equal(r.CustomTargeting, other.CustomTargeting) {
		return false
	}
	return maps.EqualFunc(r.CustomTargetingLists, other.CustomTargetingLists, slicesEqual)
}

// Maximum ad content ratings for RequestConfiguration.
const (
	MaxAdContentRatingG  = "G"
	MaxAdContentRatingPG = "PG"
	MaxAdContentRatingT  = "T"
	MaxAdContentRatingMA = "MA"
)

// Values for the child-directed and under-age-of-consent tags.
const (
	TagUnspecified = -1
	TagFalse       = 0
	TagTrue        = 1
)

// RequestConfiguration holds SDK-wide request options applied to every
// subsequent ad load.
type RequestConfiguration struct {
	// MaxAdContentRating caps the content rating of returned ads. Empty
	// leaves the SDK default.
	MaxAdContentRating string
	// TagForChildDirectedTreatment marks requests as child-directed for
	// COPPA purposes. Nil leaves the tag unspecified.
	TagForChildDirectedTreatment *int
	// TagForUnderAgeOfConsent marks requests as targeting users under the
	// age of consent. Nil leaves the tag unspecified.
	TagForUnderAgeOfConsent *int
	// TestDeviceIDs lists device ids that should receive test ads.
	TestDeviceIDs []string
}

// Equal reports field-wise equality.
func (c *RequestConfiguration) Equal(other *RequestConfiguration) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.MaxAdContentRating == other.MaxAdContentRating &&
		intPtrEqual(c.TagForChildDirectedTreatment, other.TagForChildDirectedTreatment) &&
		intPtrEqual(c.TagForUnderAgeOfConsent, other.TagForUnderAgeOfConsent) &&
		slicesEqual(c.TestDeviceIDs, other.TestDeviceIDs)
}

func slicesEqual(a, b []string) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	return slices.Equal(a, b)
}

func boolPtrEqual(a, b *bool) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func intPtrEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

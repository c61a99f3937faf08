package ads

import "fmt"

// AdError describes a failure reported by the native ads SDK.
type AdError struct {
	// Code is the SDK-specific error code.
	Code int
	// Domain identifies which SDK layer produced the error.
	Domain string
	// Message is the human-readable description.
	Message string
}

func (e *AdError) Error() string {
	return fmt.Sprintf("ad error %d (%s): %s", e.Code, e.Domain, e.Message)
}

// Equal reports field-wise equality.
func (e *AdError) Equal(other *AdError) bool {
	if e == nil || other == nil {
		return e == other
	}
	return e.Code == other.Code && e.Domain == other.Domain && e.Message == other.Message
}

// LoadAdError describes a failed ad load. ResponseInfo is present only when
// the SDK produced response metadata for the failed request.
type LoadAdError struct {
	AdError
	ResponseInfo *ResponseInfo
}

func (e *LoadAdError) Error() string {
	return fmt.Sprintf("load ad error %d (%s): %s", e.Code, e.Domain, e.Message)
}

// Equal reports field-wise equality, including the optional ResponseInfo.
func (e *LoadAdError) Equal(other *LoadAdError) bool {
	if e == nil || other == nil {
		return e == other
	}
	return e.AdError.Equal(&other.AdError) && e.ResponseInfo.Equal(other.ResponseInfo)
}

// ResponseInfo carries metadata about an ad response.
type ResponseInfo struct {
	// ResponseID uniquely identifies the ad response.
	ResponseID string
	// MediationAdapterClassName names the mediation adapter that produced
	// the ad, if any.
	MediationAdapterClassName string
}

// Equal reports field-wise equality.
func (r *ResponseInfo) Equal(other *ResponseInfo) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.ResponseID == other.ResponseID &&
		r.MediationAdapterClassName == other.MediationAdapterClassName
}

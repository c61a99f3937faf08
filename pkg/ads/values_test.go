package ads

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdErrorEqual(t *testing.T) {
	a := &AdError{Code: 1, Domain: "d", Message: "m"}
	assert.True(t, a.Equal(&AdError{Code: 1, Domain: "d", Message: "m"}))
	assert.False(t, a.Equal(&AdError{Code: 2, Domain: "d", Message: "m"}))
	assert.False(t, a.Equal(nil))
	assert.True(t, (*AdError)(nil).Equal(nil))
}

func TestLoadAdErrorEqual(t *testing.T) {
	base := AdError{Code: 1, Domain: "d", Message: "m"}
	withInfo := &LoadAdError{AdError: base, ResponseInfo: &ResponseInfo{ResponseID: "r"}}

	assert.True(t, withInfo.Equal(&LoadAdError{AdError: base, ResponseInfo: &ResponseInfo{ResponseID: "r"}}))
	assert.False(t, withInfo.Equal(&LoadAdError{AdError: base}))
	assert.True(t, (&LoadAdError{AdError: base}).Equal(&LoadAdError{AdError: base}))
}

func TestAdErrorMessages(t *testing.T) {
	e := &AdError{Code: 3, Domain: "com.google.admob", Message: "no fill"}
	assert.Contains(t, e.Error(), "no fill")
	le := &LoadAdError{AdError: *e}
	assert.Contains(t, le.Error(), "load ad error 3")
}

func TestAdRequestEqual(t *testing.T) {
	npa := true
	full := &AdRequest{
		Keywords:           []string{"a", "b"},
		ContentURL:         "https://example.com",
		NonPersonalizedAds: &npa,
	}
	npa2 := true
	assert.True(t, full.Equal(&AdRequest{
		Keywords:           []string{"a", "b"},
		ContentURL:         "https://example.com",
		NonPersonalizedAds: &npa2,
	}))

	assert.False(t, full.Equal(&AdRequest{Keywords: []string{"a"}}))

	// Nil and empty keyword slices are distinct.
	assert.False(t, (&AdRequest{Keywords: []string{}}).Equal(&AdRequest{}))

	// Pointer fields compare by value, and nil differs from set.
	npaFalse := false
	assert.False(t, full.Equal(&AdRequest{
		Keywords:           []string{"a", "b"},
		ContentURL:         "https://example.com",
		NonPersonalizedAds: &npaFalse,
	}))
	assert.False(t, full.Equal(&AdRequest{
		Keywords:   []string{"a", "b"},
		ContentURL: "https://example.com",
	}))
}

func TestAdManagerAdRequestEqual(t *testing.T) {
	a := &AdManagerAdRequest{
		CustomTargeting:      map[string]string{"k": "v"},
		CustomTargetingLists: map[string][]string{"k": {"a", "b"}},
	}
	assert.True(t, a.Equal(&AdManagerAdRequest{
		CustomTargeting:      map[string]string{"k": "v"},
		CustomTargetingLists: map[string][]string{"k": {"a", "b"}},
	}))
	assert.False(t, a.Equal(&AdManagerAdRequest{
		CustomTargeting:      map[string]string{"k": "v"},
		CustomTargetingLists: map[string][]string{"k": {"a"}},
	}))
	assert.False(t, a.Equal(nil))
}

func TestRequestConfigurationEqual(t *testing.T) {
	child := TagTrue
	a := &RequestConfiguration{
		MaxAdContentRating:           MaxAdContentRatingG,
		TagForChildDirectedTreatment: &child,
		TestDeviceIDs:                []string{"d"},
	}
	child2 := TagTrue
	assert.True(t, a.Equal(&RequestConfiguration{
		MaxAdContentRating:           MaxAdContentRatingG,
		TagForChildDirectedTreatment: &child2,
		TestDeviceIDs:                []string{"d"},
	}))
	unspecified := TagUnspecified
	assert.False(t, a.Equal(&RequestConfiguration{
		MaxAdContentRating:           MaxAdContentRatingG,
		TagForChildDirectedTreatment: &unspecified,
		TestDeviceIDs:                []string{"d"},
	}))
}

func TestResponseInfoEqual(t *testing.T) {
	a := &ResponseInfo{ResponseID: "r", MediationAdapterClassName: "A"}
	assert.True(t, a.Equal(&ResponseInfo{ResponseID: "r", MediationAdapterClassName: "A"}))
	assert.False(t, a.Equal(&ResponseInfo{ResponseID: "r"}))
	assert.True(t, (*ResponseInfo)(nil).Equal(nil))
}

func TestServerSideVerificationOptionsEqual(t *testing.T) {
	a := &ServerSideVerificationOptions{UserID: "u", CustomData: "c"}
	assert.True(t, a.Equal(&ServerSideVerificationOptions{UserID: "u", CustomData: "c"}))
	assert.False(t, a.Equal(&ServerSideVerificationOptions{UserID: "u"}))
}

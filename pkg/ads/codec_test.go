package ads

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/mobileads/pkg/platform"
)

func codecRoundTrip(t *testing.T, value any) any {
	t.Helper()
	data, err := Codec.Encode(value)
	require.NoError(t, err)
	got, err := Codec.Decode(data)
	require.NoError(t, err)
	return got
}

func TestCodec_AdSize(t *testing.T) {
	got := codecRoundTrip(t, AdSize{Width: 320, Height: 50})
	assert.Equal(t, AdSize{Width: 320, Height: 50}, got)
}

func TestCodec_AdRequest(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		got := codecRoundTrip(t, &AdRequest{})
		require.IsType(t, &AdRequest{}, got)
		assert.True(t, got.(*AdRequest).Equal(&AdRequest{}))
	})

	t.Run("full", func(t *testing.T) {
		npa := true
		in := &AdRequest{
			Keywords:           []string{"games", "news"},
			ContentURL:         "https://example.com/article",
			NonPersonalizedAds: &npa,
		}
		got := codecRoundTrip(t, in)
		require.IsType(t, &AdRequest{}, got)
		assert.True(t, got.(*AdRequest).Equal(in))
	})
}

func TestCodec_AdManagerAdRequest(t *testing.T) {
	in := &AdManagerAdRequest{
		AdRequest: AdRequest{Keywords: []string{"sports"}},
		CustomTargeting: map[string]string{
			"genre": "news",
		},
		CustomTargetingLists: map[string][]string{
			"interests": {"cycling", "chess"},
		},
	}
	got := codecRoundTrip(t, in)
	require.IsType(t, &AdManagerAdRequest{}, got)
	assert.True(t, got.(*AdManagerAdRequest).Equal(in))
}

func TestCodec_AdError(t *testing.T) {
	in := &AdError{Code: 3, Domain: "com.google.admob", Message: "no fill"}
	got := codecRoundTrip(t, in)
	require.IsType(t, &AdError{}, got)
	assert.True(t, got.(*AdError).Equal(in))
}

func TestCodec_LoadAdError(t *testing.T) {
	t.Run("without response info", func(t *testing.T) {
		in := &LoadAdError{AdError: AdError{Code: 1, Domain: "d", Message: "m"}}
		got := codecRoundTrip(t, in)
		require.IsType(t, &LoadAdError{}, got)
		assert.True(t, got.(*LoadAdError).Equal(in))
		assert.Nil(t, got.(*LoadAdError).ResponseInfo)
	})

	t.Run("with response info", func(t *testing.T) {
		in := &LoadAdError{
			AdError: AdError{Code: 2, Domain: "d", Message: "m"},
			ResponseInfo: &ResponseInfo{
				ResponseID:                "resp-9",
				MediationAdapterClassName: "Adapter",
			},
		}
		got := codecRoundTrip(t, in)
		require.IsType(t, &LoadAdError{}, got)
		assert.True(t, got.(*LoadAdError).Equal(in))
	})
}

func TestCodec_ResponseInfo(t *testing.T) {
	in := &ResponseInfo{ResponseID: "resp", MediationAdapterClassName: "Adapter"}
	got := codecRoundTrip(t, in)
	require.IsType(t, &ResponseInfo{}, got)
	assert.True(t, got.(*ResponseInfo).Equal(in))
}

func TestCodec_RewardItem(t *testing.T) {
	got := codecRoundTrip(t, RewardItem{Amount: 10, Type: "coins"})
	assert.Equal(t, RewardItem{Amount: 10, Type: "coins"}, got)
}

func TestCodec_ServerSideVerificationOptions(t *testing.T) {
	in := &ServerSideVerificationOptions{UserID: "user", CustomData: "data"}
	got := codecRoundTrip(t, in)
	require.IsType(t, &ServerSideVerificationOptions{}, got)
	assert.True(t, got.(*ServerSideVerificationOptions).Equal(in))
}

func TestCodec_RequestConfiguration(t *testing.T) {
	child := TagTrue
	consent := TagFalse
	in := &RequestConfiguration{
		MaxAdContentRating:           MaxAdContentRatingT,
		TagForChildDirectedTreatment: &child,
		TagForUnderAgeOfConsent:      &consent,
		TestDeviceIDs:                []string{"dev-1", "dev-2"},
	}
	got := codecRoundTrip(t, in)
	require.IsType(t, &RequestConfiguration{}, got)
	assert.True(t, got.(*RequestConfiguration).Equal(in))
}

func TestCodec_NilPointersEncodeAsNil(t *testing.T) {
	for _, value := range []any{
		(*AdRequest)(nil),
		(*AdManagerAdRequest)(nil),
		(*LoadAdError)(nil),
		(*ResponseInfo)(nil),
		(*ServerSideVerificationOptions)(nil),
	} {
		got := codecRoundTrip(t, value)
		assert.Nil(t, got)
	}
}

func TestCodec_ValuesNestInsideMaps(t *testing.T) {
	in := map[string]any{
		"adId":        1,
		"eventName":   "onAdFailedToLoad",
		"loadAdError": &LoadAdError{AdError: AdError{Code: 3, Domain: "d", Message: "m"}},
	}
	got := platform.ParseMap(codecRoundTrip(t, in))
	require.NotNil(t, got)
	loadErr, ok := got["loadAdError"].(*LoadAdError)
	require.True(t, ok)
	assert.Equal(t, 3, loadErr.Code)
}

func TestCodec_UnclaimedExtensionTag(t *testing.T) {
	_, err := Codec.Decode([]byte{200})
	assert.ErrorIs(t, err, platform.ErrUnknownTag)
}

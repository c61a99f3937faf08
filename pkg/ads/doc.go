// Package ads binds native mobile advertisement SDKs to Go applications
// through the platform channel layer. It provides typed ad entities (banner,
// native, interstitial, rewarded, and their ad-manager variants), a tagged
// binary codec for ad-domain values, and the ad instance registry that
// assigns every loading ad a stable integer id and routes asynchronous
// native events back to the owning entity's callbacks.
//
// Typical use:
//
//	banner := &ads.BannerAd{
//		AdUnitID: "ca-app-pub-.../...",
//		Size:     ads.AdSizeBanner,
//		Listener: ads.BannerAdListener{
//			OnAdLoaded: func(ad *ads.BannerAd) { /* attach an AdWidget */ },
//			OnAdFailedToLoad: func(ad *ads.BannerAd, err *ads.LoadAdError) {
//				ad.Dispose()
//			},
//		},
//	}
//	if err := banner.Load(); err != nil { ... }
//
// Load returning nil means the native side accepted the request for
// asynchronous processing; the outcome arrives later through the listener.
// A failed load does not release the ad's id automatically: dispose the ad
// from OnAdFailedToLoad (or retry with a fresh Load after disposing) to
// release native resources.
package ads

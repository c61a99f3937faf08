package ads

// Ad is a handle to an advertisement owned by the native SDK. The concrete
// types are BannerAd, AdManagerBannerAd, NativeAd, InterstitialAd,
// AdManagerInterstitialAd, and RewardedAd; the unexported hooks keep the
// set closed so the instance registry can dispatch events exhaustively.
type Ad interface {
	// UnitID returns the ad unit identifier the ad loads from.
	UnitID() string

	onAdLoaded()
	onAdFailedToLoad(err *LoadAdError)
}

// AdWithView is an Ad rendered inline by the host UI through an AdWidget.
// Banner and native ads implement it; full-screen ads do not.
type AdWithView interface {
	Ad
	adWithView()
}

// Event names sent by the native side over the ad event channel.
const (
	eventAdLoaded             = "onAdLoaded"
	eventAdFailedToLoad       = "onAdFailedToLoad"
	eventAdOpened             = "onAdOpened"
	eventAdClosed             = "onAdClosed"
	eventAdImpression         = "onAdImpression"
	eventAdWillDismissScreen  = "onAdWillDismissScreen"
	eventNativeAdClicked      = "onNativeAdClicked"
	eventAppEvent             = "onAppEvent"
	eventAdShowedFullScreen   = "onAdShowedFullScreenContent"
	eventAdFailedToShow       = "onAdFailedToShowFullScreenContent"
	eventAdWillDismissContent = "onAdWillDismissFullScreenContent"
	eventAdDismissedContent   = "onAdDismissedFullScreenContent"
	eventUserEarnedReward     = "onRewardedAdUserEarnedReward"
)

// viewListenerAd receives the view-lifecycle events of inline ads.
type viewListenerAd interface {
	onAdOpened()
	onAdClosed()
	onAdWillDismissScreen()
}

// impressionAd receives impression events. Every ad kind implements it.
type impressionAd interface {
	onAdImpression()
}

// appEventAd receives Ad Manager app events.
type appEventAd interface {
	onAppEvent(name, data string)
}

// fullScreenAd receives the show lifecycle of interstitial and rewarded ads.
type fullScreenAd interface {
	onAdShowedFullScreenContent()
	onAdFailedToShowFullScreenContent(err *AdError)
	onAdWillDismissFullScreenContent()
	onAdDismissedFullScreenContent()
}

// rewardAd receives earned-reward events.
type rewardAd interface {
	onUserEarnedReward(reward RewardItem)
}

// FullScreenContentCallback bundles the optional show-lifecycle callbacks of
// a full-screen ad. Nil fields are skipped.
type FullScreenContentCallback struct {
	OnAdShowedFullScreenContent       func(ad Ad)
	OnAdFailedToShowFullScreenContent func(ad Ad, err *AdError)
	OnAdWillDismissFullScreenContent  func(ad Ad)
	OnAdDismissedFullScreenContent    func(ad Ad)
	OnAdImpression                    func(ad Ad)
}

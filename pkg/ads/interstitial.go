package ads

// InterstitialAd is a full-screen ad shown at natural transition points.
// After OnAdLoaded fires, call Show to present it.
type InterstitialAd struct {
	AdUnitID string
	Request  *AdRequest

	OnAdLoaded       func(ad *InterstitialAd)
	OnAdFailedToLoad func(ad *InterstitialAd, err *LoadAdError)

	FullScreenContentCallback FullScreenContentCallback
}

func (i *InterstitialAd) UnitID() string { return i.AdUnitID }

func (i *InterstitialAd) Load() error    { return Instance().LoadInterstitialAd(i) }
func (i *InterstitialAd) Dispose() error { return Instance().DisposeAd(i) }
func (i *InterstitialAd) IsLoaded() bool { return Instance().OnAdLoadedCalled(i) }

// Show presents the interstitial full screen. The ad must have been loaded
// first; showing an unloaded ad is a programming error and panics.
func (i *InterstitialAd) Show() error { return Instance().ShowAdWithoutView(i) }

func (i *InterstitialAd) onAdLoaded() {
	if i.OnAdLoaded != nil {
		i.OnAdLoaded(i)
	}
}

func (i *InterstitialAd) onAdFailedToLoad(err *LoadAdError) {
	if i.OnAdFailedToLoad != nil {
		i.OnAdFailedToLoad(i, err)
	}
}

func (i *InterstitialAd) onAdShowedFullScreenContent() {
	if cb := i.FullScreenContentCallback.OnAdShowedFullScreenContent; cb != nil {
		cb(i)
	}
}

func (i *InterstitialAd) onAdFailedToShowFullScreenContent(err *AdError) {
	if cb := i.FullScreenContentCallback.OnAdFailedToShowFullScreenContent; cb != nil {
		cb(i, err)
	}
}

func (i *InterstitialAd) onAdWillDismissFullScreenContent() {
	if cb := i.FullScreenContentCallback.OnAdWillDismissFullScreenContent; cb != nil {
		cb(i)
	}
}

func (i *InterstitialAd) onAdDismissedFullScreenContent() {
	if cb := i.FullScreenContentCallback.OnAdDismissedFullScreenContent; cb != nil {
		cb(i)
	}
}

func (i *InterstitialAd) onAdImpression() {
	if cb := i.FullScreenContentCallback.OnAdImpression; cb != nil {
		cb(i)
	}
}

// AdManagerInterstitialAd is an interstitial served through Google Ad
// Manager; it additionally receives app events.
type AdManagerInterstitialAd struct {
	AdUnitID string
	Request  *AdManagerAdRequest

	OnAdLoaded       func(ad *AdManagerInterstitialAd)
	OnAdFailedToLoad func(ad *AdManagerInterstitialAd, err *LoadAdError)
	OnAppEvent       func(ad *AdManagerInterstitialAd, name, data string)

	FullScreenContentCallback FullScreenContentCallback
}

func (i *AdManagerInterstitialAd) UnitID() string { return i.AdUnitID }

func (i *AdManagerInterstitialAd) Load() error    { return Instance().LoadAdManagerInterstitialAd(i) }
func (i *AdManagerInterstitialAd) Dispose() error { return Instance().DisposeAd(i) }
func (i *AdManagerInterstitialAd) IsLoaded() bool { return Instance().OnAdLoadedCalled(i) }

// Show presents the interstitial full screen. The ad must have been loaded
// first; showing an unloaded ad is a programming error and panics.
func (i *AdManagerInterstitialAd) Show() error { return Instance().ShowAdWithoutView(i) }

func (i *AdManagerInterstitialAd) onAdLoaded() {
	if i.OnAdLoaded != nil {
		i.OnAdLoaded(i)
	}
}

func (i *AdManagerInterstitialAd) onAdFailedToLoad(err *LoadAdError) {
	if i.OnAdFailedToLoad != nil {
		i.OnAdFailedToLoad(i, err)
	}
}

func (i *AdManagerInterstitialAd) onAppEvent(name, data string) {
	if i.OnAppEvent != nil {
		i.OnAppEvent(i, name, data)
	}
}

func (i *AdManagerInterstitialAd) onAdShowedFullScreenContent() {
	if cb := i.FullScreenContentCallback.OnAdShowedFullScreenContent; cb != nil {
		cb(i)
	}
}

func (i *AdManagerInterstitialAd) onAdFailedToShowFullScreenContent(err *AdError) {
	if cb := i.FullScreenContentCallback.OnAdFailedToShowFullScreenContent; cb != nil {
		cb(i, err)
	}
}

func (i *AdManagerInterstitialAd) onAdWillDismissFullScreenContent() {
	if cb := i.FullScreenContentCallback.OnAdWillDismissFullScreenContent; cb != nil {
		cb(i)
	}
}

func (i *AdManagerInterstitialAd) onAdDismissedFullScreenContent() {
	if cb := i.FullScreenContentCallback.OnAdDismissedFullScreenContent; cb != nil {
		cb(i)
	}
}

func (i *AdManagerInterstitialAd) onAdImpression() {
	if cb := i.FullScreenContentCallback.OnAdImpression; cb != nil {
		cb(i)
	}
}

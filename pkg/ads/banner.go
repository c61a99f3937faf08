package ads

// BannerAdListener bundles the optional callbacks of a BannerAd. Nil fields
// are skipped.
type BannerAdListener struct {
	OnAdLoaded            func(ad *BannerAd)
	OnAdFailedToLoad      func(ad *BannerAd, err *LoadAdError)
	OnAdOpened            func(ad *BannerAd)
	OnAdClosed            func(ad *BannerAd)
	OnAdImpression        func(ad *BannerAd)
	OnAdWillDismissScreen func(ad *BannerAd)
}

// BannerAd is an inline banner advertisement. Populate the fields, call
// Load, and mount an AdWidget once OnAdLoaded fires.
type BannerAd struct {
	AdUnitID string
	Size     AdSize
	Request  *AdRequest
	Listener BannerAdListener
}

func (b *BannerAd) UnitID() string { return b.AdUnitID }

// Load asks the native SDK to load the banner. A nil return means the
// request was accepted; the outcome arrives through the listener.
func (b *BannerAd) Load() error { return Instance().LoadBannerAd(b) }

// Dispose releases the native ad. Disposing an ad that was never loaded is
// a no-op.
func (b *BannerAd) Dispose() error { return Instance().DisposeAd(b) }

// IsLoaded reports whether the native side has finished loading the ad.
func (b *BannerAd) IsLoaded() bool { return Instance().OnAdLoadedCalled(b) }

func (b *BannerAd) adWithView() {}

func (b *BannerAd) onAdLoaded() {
	if b.Listener.OnAdLoaded != nil {
		b.Listener.OnAdLoaded(b)
	}
}

func (b *BannerAd) onAdFailedToLoad(err *LoadAdError) {
	if b.Listener.OnAdFailedToLoad != nil {
		b.Listener.OnAdFailedToLoad(b, err)
	}
}

func (b *BannerAd) onAdOpened() {
	if b.Listener.OnAdOpened != nil {
		b.Listener.OnAdOpened(b)
	}
}

func (b *BannerAd) onAdClosed() {
	if b.Listener.OnAdClosed != nil {
		b.Listener.OnAdClosed(b)
	}
}

func (b *BannerAd) onAdImpression() {
	if b.Listener.OnAdImpression != nil {
		b.Listener.OnAdImpression(b)
	}
}

func (b *BannerAd) onAdWillDismissScreen() {
	if b.Listener.OnAdWillDismissScreen != nil {
		b.Listener.OnAdWillDismissScreen(b)
	}
}

// AdManagerBannerAdListener extends the banner callbacks with Ad Manager
// app events.
type AdManagerBannerAdListener struct {
	OnAdLoaded            func(ad *AdManagerBannerAd)
	OnAdFailedToLoad      func(ad *AdManagerBannerAd, err *LoadAdError)
	OnAdOpened            func(ad *AdManagerBannerAd)
	OnAdClosed            func(ad *AdManagerBannerAd)
	OnAdImpression        func(ad *AdManagerBannerAd)
	OnAdWillDismissScreen func(ad *AdManagerBannerAd)
	OnAppEvent            func(ad *AdManagerBannerAd, name, data string)
}

// AdManagerBannerAd is a banner served through Google Ad Manager. It may
// declare several acceptable sizes; the native SDK picks one.
type AdManagerBannerAd struct {
	AdUnitID string
	Sizes    []AdSize
	Request  *AdManagerAdRequest
	Listener AdManagerBannerAdListener
}

func (b *AdManagerBannerAd) UnitID() string { return b.AdUnitID }

func (b *AdManagerBannerAd) Load() error    { return Instance().LoadAdManagerBannerAd(b) }
func (b *AdManagerBannerAd) Dispose() error { return Instance().DisposeAd(b) }
func (b *AdManagerBannerAd) IsLoaded() bool { return Instance().OnAdLoadedCalled(b) }

func (b *AdManagerBannerAd) adWithView() {}

func (b *AdManagerBannerAd) onAdLoaded() {
	if b.Listener.OnAdLoaded != nil {
		b.Listener.OnAdLoaded(b)
	}
}

func (b *AdManagerBannerAd) onAdFailedToLoad(err *LoadAdError) {
	if b.Listener.OnAdFailedToLoad != nil {
		b.Listener.OnAdFailedToLoad(b, err)
	}
}

func (b *AdManagerBannerAd) onAdOpened() {
	if b.Listener.OnAdOpened != nil {
		b.Listener.OnAdOpened(b)
	}
}

func (b *AdManagerBannerAd) onAdClosed() {
	if b.Listener.OnAdClosed != nil {
		b.Listener.OnAdClosed(b)
	}
}

func (b *AdManagerBannerAd) onAdImpression() {
	if b.Listener.OnAdImpression != nil {
		b.Listener.OnAdImpression(b)
	}
}

func (b *AdManagerBannerAd) onAdWillDismissScreen() {
	if b.Listener.OnAdWillDismissScreen != nil {
		b.Listener.OnAdWillDismissScreen(b)
	}
}

func (b *AdManagerBannerAd) onAppEvent(name, data string) {
	if b.Listener.OnAppEvent != nil {
		b.Listener.OnAppEvent(b, name, data)
	}
}

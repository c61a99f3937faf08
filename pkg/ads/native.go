package ads

// NativeAdListener bundles the optional callbacks of a NativeAd.
type NativeAdListener struct {
	OnAdLoaded            func(ad *NativeAd)
	OnAdFailedToLoad      func(ad *NativeAd, err *LoadAdError)
	OnAdOpened            func(ad *NativeAd)
	OnAdClosed            func(ad *NativeAd)
	OnAdImpression        func(ad *NativeAd)
	OnAdWillDismissScreen func(ad *NativeAd)
	OnNativeAdClicked     func(ad *NativeAd)
}

// NativeAd is an advertisement rendered by a platform-registered factory.
// FactoryID selects the native view factory; CustomOptions is passed to it
// verbatim. Exactly one of Request and AdManagerRequest should be set; when
// both are nil a default request is sent.
type NativeAd struct {
	AdUnitID         string
	FactoryID        string
	Request          *AdRequest
	AdManagerRequest *AdManagerAdRequest
	CustomOptions    map[string]any
	Listener         NativeAdListener
}

func (n *NativeAd) UnitID() string { return n.AdUnitID }

func (n *NativeAd) Load() error    { return Instance().LoadNativeAd(n) }
func (n *NativeAd) Dispose() error { return Instance().DisposeAd(n) }
func (n *NativeAd) IsLoaded() bool { return Instance().OnAdLoadedCalled(n) }

func (n *NativeAd) adWithView() {}

func (n *NativeAd) onAdLoaded() {
	if n.Listener.OnAdLoaded != nil {
		n.Listener.OnAdLoaded(n)
	}
}

func (n *NativeAd) onAdFailedToLoad(err *LoadAdError) {
	if n.Listener.OnAdFailedToLoad != nil {
		n.Listener.OnAdFailedToLoad(n, err)
	}
}

func (n *NativeAd) onAdOpened() {
	if n.Listener.OnAdOpened != nil {
		n.Listener.OnAdOpened(n)
	}
}

func (n *NativeAd) onAdClosed() {
	if n.Listener.OnAdClosed != nil {
		n.Listener.OnAdClosed(n)
	}
}

func (n *NativeAd) onAdImpression() {
	if n.Listener.OnAdImpression != nil {
		n.Listener.OnAdImpression(n)
	}
}

func (n *NativeAd) onAdWillDismissScreen() {
	if n.Listener.OnAdWillDismissScreen != nil {
		n.Listener.OnAdWillDismissScreen(n)
	}
}

func (n *NativeAd) onNativeAdClicked() {
	if n.Listener.OnNativeAdClicked != nil {
		n.Listener.OnNativeAdClicked(n)
	}
}

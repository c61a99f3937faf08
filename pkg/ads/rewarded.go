package ads

// RewardedAd is a full-screen ad that rewards the user for watching.
// Exactly one of Request and AdManagerRequest should be set; when both are
// nil a default request is sent.
type RewardedAd struct {
	AdUnitID         string
	Request          *AdRequest
	AdManagerRequest *AdManagerAdRequest

	// ServerSideVerificationOptions, when set, are forwarded to the SDK so
	// the publisher's server can verify reward callbacks.
	ServerSideVerificationOptions *ServerSideVerificationOptions

	OnAdLoaded         func(ad *RewardedAd)
	OnAdFailedToLoad   func(ad *RewardedAd, err *LoadAdError)
	OnUserEarnedReward func(ad *RewardedAd, reward RewardItem)

	FullScreenContentCallback FullScreenContentCallback
}

func (r *RewardedAd) UnitID() string { return r.AdUnitID }

func (r *RewardedAd) Load() error    { return Instance().LoadRewardedAd(r) }
func (r *RewardedAd) Dispose() error { return Instance().DisposeAd(r) }
func (r *RewardedAd) IsLoaded() bool { return Instance().OnAdLoadedCalled(r) }

// Show presents the rewarded ad full screen. The ad must have been loaded
// first; showing an unloaded ad is a programming error and panics.
func (r *RewardedAd) Show() error { return Instance().ShowAdWithoutView(r) }

func (r *RewardedAd) onAdLoaded() {
	if r.OnAdLoaded != nil {
		r.OnAdLoaded(r)
	}
}

func (r *RewardedAd) onAdFailedToLoad(err *LoadAdError) {
	if r.OnAdFailedToLoad != nil {
		r.OnAdFailedToLoad(r, err)
	}
}

func (r *RewardedAd) onUserEarnedReward(reward RewardItem) {
	if r.OnUserEarnedReward != nil {
		r.OnUserEarnedReward(r, reward)
	}
}

func (r *RewardedAd) onAdShowedFullScreenContent() {
	if cb := r.FullScreenContentCallback.OnAdShowedFullScreenContent; cb != nil {
		cb(r)
	}
}

func (r *RewardedAd) onAdFailedToShowFullScreenContent(err *AdError) {
	if cb := r.FullScreenContentCallback.OnAdFailedToShowFullScreenContent; cb != nil {
		cb(r, err)
	}
}

func (r *RewardedAd) onAdWillDismissFullScreenContent() {
	if cb := r.FullScreenContentCallback.OnAdWillDismissFullScreenContent; cb != nil {
		cb(r)
	}
}

func (r *RewardedAd) onAdDismissedFullScreenContent() {
	if cb := r.FullScreenContentCallback.OnAdDismissedFullScreenContent; cb != nil {
		cb(r)
	}
}

func (r *RewardedAd) onAdImpression() {
	if cb := r.FullScreenContentCallback.OnAdImpression; cb != nil {
		cb(r)
	}
}

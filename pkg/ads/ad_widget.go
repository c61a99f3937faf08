package ads

import "fmt"

// AdWidget presents a loaded inline ad (banner or native) inside the host
// UI via a platform view. Each live ad may back at most one widget at a
// time; mounting the same ad twice is a programming error and panics.
// Dispose the widget when removing it from the UI, after which the ad may
// be mounted again.
type AdWidget struct {
	ad      AdWithView
	adID    int
	manager *AdInstanceManager
}

// NewAdWidget mounts the ad into the widget tree. The ad must have finished
// loading (OnAdLoaded fired) and must not be mounted elsewhere.
func NewAdWidget(ad AdWithView) *AdWidget {
	return newAdWidget(Instance(), ad)
}

func newAdWidget(m *AdInstanceManager, ad AdWithView) *AdWidget {
	if !m.OnAdLoadedCalled(ad) {
		panic(fmt.Sprintf("ads: AdWidget requires a loaded ad; call Load on %T %q and wait for OnAdLoaded", ad, ad.UnitID()))
	}
	id, _ := m.AdIDFor(ad)
	if m.IsWidgetAdIDMounted(id) {
		panic(fmt.Sprintf("ads: ad %d is already mounted in another AdWidget", id))
	}
	m.MountWidgetAdID(id)
	return &AdWidget{ad: ad, adID: id, manager: m}
}

// Ad returns the mounted ad.
func (w *AdWidget) Ad() AdWithView { return w.ad }

// PlatformViewID returns the identifier the host embeds the native ad view
// under. It equals the ad's instance id.
func (w *AdWidget) PlatformViewID() int64 { return int64(w.adID) }

// Dispose unmounts the widget. It is safe to call more than once; the ad
// itself stays live and can be mounted again.
func (w *AdWidget) Dispose() {
	w.manager.UnmountWidgetAdID(w.adID)
}

package ads

import (
	"fmt"
	"sync"

	"github.com/go-drift/mobileads/pkg/errors"
	"github.com/go-drift/mobileads/pkg/platform"
)

// Channel names shared with the native bridge.
const (
	apiChannelName   = "mobileads/api"
	eventChannelName = "mobileads/events"
)

// adEvent is one decoded message from the ad event channel.
type adEvent struct {
	adID    int
	name    string
	payload map[string]any
}

// AdInstanceManager owns the mapping between ad entities and the integer ids
// the native SDK knows them by. Ids are assigned on first load, stay stable
// for the entity's lifetime, and are released on dispose. All asynchronous
// native events are demultiplexed here and forwarded to the owning entity.
//
// Most applications use the process-wide Instance; NewAdInstanceManager
// exists for composition roots that manage their own lifecycle.
type AdInstanceManager struct {
	mu                 sync.Mutex
	nextAdID           int
	loadedAds          map[int]Ad
	adIDs              map[Ad]int
	adLoadedFlags      map[int]struct{}
	mountedWidgetAdIDs map[int]struct{}

	channel     *platform.MethodChannel
	events      *platform.EventChannel
	unsubscribe func()
}

// NewAdInstanceManager creates a manager bound to the mobileads channels and
// starts listening for native events.
func NewAdInstanceManager() *AdInstanceManager {
	m := &AdInstanceManager{
		loadedAds:          make(map[int]Ad),
		adIDs:              make(map[Ad]int),
		adLoadedFlags:      make(map[int]struct{}),
		mountedWidgetAdIDs: make(map[int]struct{}),
		channel:            platform.NewMethodChannelWithCodec(apiChannelName, Codec),
		events:             platform.NewEventChannelWithCodec(eventChannelName, Codec),
	}
	stream := platform.NewStream(eventChannelName, m.events, parseAdEvent)
	m.unsubscribe = stream.Listen(m.handleAdEvent)
	return m
}

// Close stops listening for native events and drops all tracked ads. Native
// resources held by still-live ads are not released; dispose ads first.
func (m *AdInstanceManager) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
	m.mu.Lock()
	m.loadedAds = make(map[int]Ad)
	m.adIDs = make(map[Ad]int)
	m.adLoadedFlags = make(map[int]struct{})
	m.mountedWidgetAdIDs = make(map[int]struct{})
	m.mu.Unlock()
}

var (
	instanceMu sync.Mutex
	instance   *AdInstanceManager
)

// Instance returns the process-wide ad instance manager, creating it on
// first use.
func Instance() *AdInstanceManager {
	instanceMu.Lock()
	defer instanceMu.Unlock()
	if instance == nil {
		instance = NewAdInstanceManager()
	}
	return instance
}

func init() {
	platform.RegisterResetHook(func() {
		instanceMu.Lock()
		defer instanceMu.Unlock()
		if instance != nil {
			instance.Close()
			instance = nil
		}
	})
}

// registerNewAdID assigns the next id to the ad and records it as live.
func (m *AdInstanceManager) registerNewAdID(ad Ad) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextAdID
	m.nextAdID++
	m.adIDs[ad] = id
	m.loadedAds[id] = ad
	return id
}

// loadAdID returns the id to use for a load request: the existing id when
// the entity is already live (a repeated Load re-issues the request under
// the same id, keeping the live mapping bijective), or a fresh one.
func (m *AdInstanceManager) loadAdID(ad Ad) (id int, fresh bool) {
	m.mu.Lock()
	if id, ok := m.adIDs[ad]; ok {
		m.mu.Unlock()
		return id, false
	}
	m.mu.Unlock()
	return m.registerNewAdID(ad), true
}

// release drops every trace of the ad. The next Load assigns a fresh id.
func (m *AdInstanceManager) release(ad Ad, id int) {
	m.mu.Lock()
	delete(m.loadedAds, id)
	delete(m.adIDs, ad)
	delete(m.adLoadedFlags, id)
	delete(m.mountedWidgetAdIDs, id)
	m.mu.Unlock()
}

// AdIDFor returns the id assigned to a live ad.
func (m *AdInstanceManager) AdIDFor(ad Ad) (int, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.adIDs[ad]
	return id, ok
}

// AdFor returns the live ad registered under id.
func (m *AdInstanceManager) AdFor(id int) (Ad, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ad, ok := m.loadedAds[id]
	return ad, ok
}

// OnAdLoadedCalled reports whether the native side has delivered onAdLoaded
// for the ad.
func (m *AdInstanceManager) OnAdLoadedCalled(ad Ad) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.adIDs[ad]
	if !ok {
		return false
	}
	_, loaded := m.adLoadedFlags[id]
	return loaded
}

// MountWidgetAdID records that a widget is presenting the ad id.
func (m *AdInstanceManager) MountWidgetAdID(id int) {
	m.mu.Lock()
	m.mountedWidgetAdIDs[id] = struct{}{}
	m.mu.Unlock()
}

// UnmountWidgetAdID records that the widget presenting the ad id was removed.
func (m *AdInstanceManager) UnmountWidgetAdID(id int) {
	m.mu.Lock()
	delete(m.mountedWidgetAdIDs, id)
	m.mu.Unlock()
}

// IsWidgetAdIDMounted reports whether a widget currently presents the ad id.
func (m *AdInstanceManager) IsWidgetAdIDMounted(id int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.mountedWidgetAdIDs[id]
	return ok
}

// LoadBannerAd sends a banner load request. Loading an ad that is already
// live re-issues the request under its existing id.
func (m *AdInstanceManager) LoadBannerAd(ad *BannerAd) error {
	id, fresh := m.loadAdID(ad)
	args := map[string]any{
		"adId":     id,
		"adUnitId": ad.AdUnitID,
		"size":     ad.Size,
	}
	if ad.Request != nil {
		args["request"] = ad.Request
	}
	if _, err := m.channel.Invoke("loadBannerAd", args); err != nil {
		if fresh {
			m.release(ad, id)
		}
		return err
	}
	return nil
}

// LoadAdManagerBannerAd sends an Ad Manager banner load request.
func (m *AdInstanceManager) LoadAdManagerBannerAd(ad *AdManagerBannerAd) error {
	id, fresh := m.loadAdID(ad)
	sizes := make([]any, len(ad.Sizes))
	for i, s := range ad.Sizes {
		sizes[i] = s
	}
	args := map[string]any{
		"adId":     id,
		"adUnitId": ad.AdUnitID,
		"sizes":    sizes,
	}
	if ad.Request != nil {
		args["request"] = ad.Request
	}
	if _, err := m.channel.Invoke("loadAdManagerBannerAd", args); err != nil {
		if fresh {
			m.release(ad, id)
		}
		return err
	}
	return nil
}

// LoadNativeAd sends a native ad load request.
func (m *AdInstanceManager) LoadNativeAd(ad *NativeAd) error {
	id, fresh := m.loadAdID(ad)
	args := map[string]any{
		"adId":      id,
		"adUnitId":  ad.AdUnitID,
		"factoryId": ad.FactoryID,
	}
	if ad.AdManagerRequest != nil {
		args["adManagerRequest"] = ad.AdManagerRequest
	} else if ad.Request != nil {
		args["request"] = ad.Request
	}
	if ad.CustomOptions != nil {
		args["customOptions"] = ad.CustomOptions
	}
	if _, err := m.channel.Invoke("loadNativeAd", args); err != nil {
		if fresh {
			m.release(ad, id)
		}
		return err
	}
	return nil
}

// LoadInterstitialAd sends an interstitial load request.
func (m *AdInstanceManager) LoadInterstitialAd(ad *InterstitialAd) error {
	id, fresh := m.loadAdID(ad)
	args := map[string]any{
		"adId":     id,
		"adUnitId": ad.AdUnitID,
	}
	if ad.Request != nil {
		args["request"] = ad.Request
	}
	if _, err := m.channel.Invoke("loadInterstitialAd", args); err != nil {
		if fresh {
			m.release(ad, id)
		}
		return err
	}
	return nil
}

// LoadAdManagerInterstitialAd sends an Ad Manager interstitial load request.
func (m *AdInstanceManager) LoadAdManagerInterstitialAd(ad *AdManagerInterstitialAd) error {
	id, fresh := m.loadAdID(ad)
	args := map[string]any{
		"adId":     id,
		"adUnitId": ad.AdUnitID,
	}
	if ad.Request != nil {
		args["request"] = ad.Request
	}
	if _, err := m.channel.Invoke("loadAdManagerInterstitialAd", args); err != nil {
		if fresh {
			m.release(ad, id)
		}
		return err
	}
	return nil
}

// LoadRewardedAd sends a rewarded ad load request.
func (m *AdInstanceManager) LoadRewardedAd(ad *RewardedAd) error {
	id, fresh := m.loadAdID(ad)
	args := map[string]any{
		"adId":     id,
		"adUnitId": ad.AdUnitID,
	}
	if ad.AdManagerRequest != nil {
		args["adManagerRequest"] = ad.AdManagerRequest
	} else if ad.Request != nil {
		args["request"] = ad.Request
	}
	if ad.ServerSideVerificationOptions != nil {
		args["serverSideVerificationOptions"] = ad.ServerSideVerificationOptions
	}
	if _, err := m.channel.Invoke("loadRewardedAd", args); err != nil {
		if fresh {
			m.release(ad, id)
		}
		return err
	}
	return nil
}

// ShowAdWithoutView presents a full-screen ad. Showing an ad that was never
// loaded is a programming error and panics.
func (m *AdInstanceManager) ShowAdWithoutView(ad Ad) error {
	id, ok := m.AdIDFor(ad)
	if !ok {
		panic(fmt.Sprintf("ads: Show called on %T %q that was never loaded", ad, ad.UnitID()))
	}
	_, err := m.channel.Invoke("showAdWithoutView", map[string]any{"adId": id})
	return err
}

// DisposeAd releases the native ad and removes every trace of the entity.
// Disposing an ad that is not live is a no-op. The entity may be loaded
// again afterwards and receives a fresh id.
func (m *AdInstanceManager) DisposeAd(ad Ad) error {
	id, ok := m.AdIDFor(ad)
	if !ok {
		return nil
	}
	_, err := m.channel.Invoke("disposeAd", map[string]any{"adId": id})
	m.release(ad, id)
	return err
}

// UpdateRequestConfiguration applies SDK-wide request options.
func (m *AdInstanceManager) UpdateRequestConfiguration(config RequestConfiguration) error {
	_, err := m.channel.Invoke("updateRequestConfiguration", map[string]any{
		"requestConfiguration": config,
	})
	return err
}

// SetSameAppKeyEnabled toggles the iOS same-app-key signal.
func (m *AdInstanceManager) SetSameAppKeyEnabled(enabled bool) error {
	_, err := m.channel.Invoke("setSameAppKeyEnabled", map[string]any{
		"isEnabled": enabled,
	})
	return err
}

func parseAdEvent(data any) (adEvent, error) {
	payload := platform.ParseMap(data)
	if payload == nil {
		return adEvent{}, &errors.ParseError{Channel: eventChannelName, DataType: "ad event", Got: data}
	}
	id, ok := platform.ToInt(payload["adId"])
	if !ok {
		return adEvent{}, &errors.ParseError{Channel: eventChannelName, DataType: "adId", Got: payload["adId"]}
	}
	name := platform.ParseString(payload["eventName"])
	if name == "" {
		return adEvent{}, &errors.ParseError{Channel: eventChannelName, DataType: "eventName", Got: payload["eventName"]}
	}
	return adEvent{adID: id, name: name, payload: payload}, nil
}

// handleAdEvent routes one native event to the owning entity. Events for
// unknown ids are dropped: the ad was disposed while the event was in
// flight. An unknown event name means the Go binding and the native bridge
// are out of sync and panics.
func (m *AdInstanceManager) handleAdEvent(ev adEvent) {
	ad, ok := m.AdFor(ev.adID)
	if !ok {
		return
	}

	switch ev.name {
	case eventAdLoaded:
		m.mu.Lock()
		m.adLoadedFlags[ev.adID] = struct{}{}
		m.mu.Unlock()
		m.deliver(ad.onAdLoaded)
	case eventAdFailedToLoad:
		err := loadErrorPayload(ev)
		m.deliver(func() { ad.onAdFailedToLoad(err) })
	case eventAdOpened:
		if a, ok := ad.(viewListenerAd); ok {
			m.deliver(a.onAdOpened)
		}
	case eventAdClosed:
		if a, ok := ad.(viewListenerAd); ok {
			m.deliver(a.onAdClosed)
		}
	case eventAdImpression:
		if a, ok := ad.(impressionAd); ok {
			m.deliver(a.onAdImpression)
		}
	case eventAdWillDismissScreen:
		if a, ok := ad.(viewListenerAd); ok {
			m.deliver(a.onAdWillDismissScreen)
		}
	case eventNativeAdClicked:
		if a, ok := ad.(*NativeAd); ok {
			m.deliver(a.onNativeAdClicked)
		}
	case eventAppEvent:
		if a, ok := ad.(appEventAd); ok {
			name := platform.ParseString(ev.payload["name"])
			data := platform.ParseString(ev.payload["data"])
			m.deliver(func() { a.onAppEvent(name, data) })
		}
	case eventAdShowedFullScreen:
		if a, ok := ad.(fullScreenAd); ok {
			m.deliver(a.onAdShowedFullScreenContent)
		}
	case eventAdFailedToShow:
		if a, ok := ad.(fullScreenAd); ok {
			err := showErrorPayload(ev)
			m.deliver(func() { a.onAdFailedToShowFullScreenContent(err) })
		}
	case eventAdWillDismissContent:
		if a, ok := ad.(fullScreenAd); ok {
			m.deliver(a.onAdWillDismissFullScreenContent)
		}
	case eventAdDismissedContent:
		if a, ok := ad.(fullScreenAd); ok {
			m.deliver(a.onAdDismissedFullScreenContent)
		}
	case eventUserEarnedReward:
		if a, ok := ad.(rewardAd); ok {
			reward := rewardPayload(ev)
			m.deliver(func() { a.onUserEarnedReward(reward) })
		}
	default:
		panic(fmt.Sprintf("ads: unknown ad event %q for ad %d", ev.name, ev.adID))
	}
}

// deliver runs a callback on the UI dispatcher when one is registered and
// inline otherwise.
func (m *AdInstanceManager) deliver(cb func()) {
	if !platform.Dispatch(cb) {
		cb()
	}
}

func loadErrorPayload(ev adEvent) *LoadAdError {
	if e, ok := ev.payload["loadAdError"].(*LoadAdError); ok {
		return e
	}
	panic(fmt.Sprintf("ads: %s event for ad %d carries %T, want load ad error",
		ev.name, ev.adID, ev.payload["loadAdError"]))
}

func showErrorPayload(ev adEvent) *AdError {
	if e, ok := ev.payload["error"].(*AdError); ok {
		return e
	}
	panic(fmt.Sprintf("ads: %s event for ad %d carries %T, want ad error",
		ev.name, ev.adID, ev.payload["error"]))
}

func rewardPayload(ev adEvent) RewardItem {
	if item, ok := ev.payload["rewardItem"].(RewardItem); ok {
		return item
	}
	panic(fmt.Sprintf("ads: %s event for ad %d carries %T, want reward item",
		ev.name, ev.adID, ev.payload["rewardItem"]))
}

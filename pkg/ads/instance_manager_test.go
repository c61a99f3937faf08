package ads

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/go-drift/mobileads/pkg/platform"
)

// adsBridge records native invocations with their arguments decoded through
// the ads codec.
type adsBridge struct {
	mu        sync.Mutex
	calls     []bridgeCall
	invokeErr error
}

type bridgeCall struct {
	channel string
	method  string
	args    map[string]any
}

func (b *adsBridge) InvokeMethod(channel, method string, argsData []byte) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.invokeErr != nil {
		return nil, b.invokeErr
	}
	decoded, err := Codec.Decode(argsData)
	if err != nil {
		return nil, err
	}
	b.calls = append(b.calls, bridgeCall{
		channel: channel,
		method:  method,
		args:    platform.ParseMap(decoded),
	})
	return nil, nil
}

func (b *adsBridge) StartEventStream(string) error { return nil }
func (b *adsBridge) StopEventStream(string) error  { return nil }

func (b *adsBridge) callsFor(method string) []bridgeCall {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []bridgeCall
	for _, c := range b.calls {
		if c.method == method {
			out = append(out, c)
		}
	}
	return out
}

func (b *adsBridge) onlyCall(t *testing.T, method string) bridgeCall {
	t.Helper()
	calls := b.callsFor(method)
	if len(calls) != 1 {
		t.Fatalf("expected exactly one %s call, got %d", method, len(calls))
	}
	return calls[0]
}

func (b *adsBridge) setInvokeErr(err error) {
	b.mu.Lock()
	b.invokeErr = err
	b.mu.Unlock()
}

func setupAdsTest(t *testing.T) (*adsBridge, *AdInstanceManager) {
	t.Helper()
	platform.SetupTestBridge(t.Cleanup)
	bridge := &adsBridge{}
	platform.SetNativeBridge(bridge)
	return bridge, Instance()
}

// sendAdEvent injects a native event as encoded bytes, exercising the full
// decode path.
func sendAdEvent(t *testing.T, adID int, name string, extra map[string]any) {
	t.Helper()
	payload := map[string]any{"adId": adID, "eventName": name}
	for k, v := range extra {
		payload[k] = v
	}
	data, err := Codec.Encode(payload)
	if err != nil {
		t.Fatalf("encode event: %v", err)
	}
	if err := platform.HandleEvent(eventChannelName, data); err != nil {
		t.Fatalf("HandleEvent: %v", err)
	}
}

func argInt(t *testing.T, call bridgeCall, key string) int {
	t.Helper()
	n, ok := platform.ToInt(call.args[key])
	if !ok {
		t.Fatalf("arg %q is %T, want integer", key, call.args[key])
	}
	return n
}

func TestLoadBannerAd_AssignsSequentialIDs(t *testing.T) {
	bridge, m := setupAdsTest(t)

	first := &BannerAd{AdUnitID: "unit-1", Size: AdSizeBanner}
	second := &BannerAd{AdUnitID: "unit-2", Size: AdSizeLeaderboard}
	if err := m.LoadBannerAd(first); err != nil {
		t.Fatalf("load first: %v", err)
	}
	if err := m.LoadBannerAd(second); err != nil {
		t.Fatalf("load second: %v", err)
	}

	calls := bridge.callsFor("loadBannerAd")
	if len(calls) != 2 {
		t.Fatalf("expected 2 load calls, got %d", len(calls))
	}
	if got := argInt(t, calls[0], "adId"); got != 0 {
		t.Errorf("first adId: got %d, want 0", got)
	}
	if got := argInt(t, calls[1], "adId"); got != 1 {
		t.Errorf("second adId: got %d, want 1", got)
	}
	if calls[0].channel != apiChannelName {
		t.Errorf("channel: got %q", calls[0].channel)
	}
	if calls[0].args["adUnitId"] != "unit-1" {
		t.Errorf("adUnitId: got %v", calls[0].args["adUnitId"])
	}
	if size, ok := calls[0].args["size"].(AdSize); !ok || size != AdSizeBanner {
		t.Errorf("size: got %#v", calls[0].args["size"])
	}

	// Id zero is a valid live id.
	if ad, ok := m.AdFor(0); !ok || ad != Ad(first) {
		t.Error("ad 0 should be the first banner")
	}
	if id, ok := m.AdIDFor(second); !ok || id != 1 {
		t.Errorf("second banner id: got %d, %v", id, ok)
	}
}

func TestLoadBannerAd_RepeatedLoadKeepsID(t *testing.T) {
	bridge, m := setupAdsTest(t)

	banner := &BannerAd{AdUnitID: "unit", Size: AdSizeBanner}
	if err := m.LoadBannerAd(banner); err != nil {
		t.Fatal(err)
	}
	if err := m.LoadBannerAd(banner); err != nil {
		t.Fatal(err)
	}

	// The repeated load re-issues the request under the existing id; it
	// never allocates a second one for a live entity.
	calls := bridge.callsFor("loadBannerAd")
	if len(calls) != 2 {
		t.Fatalf("expected 2 load calls, got %d", len(calls))
	}
	if argInt(t, calls[0], "adId") != 0 || argInt(t, calls[1], "adId") != 0 {
		t.Errorf("both loads should use id 0: %v, %v", calls[0].args["adId"], calls[1].args["adId"])
	}
	if id, _ := m.AdIDFor(banner); id != 0 {
		t.Errorf("id changed on repeated load: got %d", id)
	}

	// The counter did not advance for the repeat; the next entity gets 1.
	other := &BannerAd{AdUnitID: "unit-2", Size: AdSizeBanner}
	if err := m.LoadBannerAd(other); err != nil {
		t.Fatal(err)
	}
	if id, _ := m.AdIDFor(other); id != 1 {
		t.Errorf("next entity id: got %d, want 1", id)
	}
}

func TestLoadBannerAd_RepeatedLoadTransportErrorKeepsID(t *testing.T) {
	bridge, m := setupAdsTest(t)

	banner := &BannerAd{AdUnitID: "unit", Size: AdSizeBanner}
	if err := m.LoadBannerAd(banner); err != nil {
		t.Fatal(err)
	}

	// A rejected re-issue must not evict the live entity.
	bridge.setInvokeErr(errors.New("bridge down"))
	if err := m.LoadBannerAd(banner); err == nil {
		t.Fatal("expected load error")
	}
	if id, ok := m.AdIDFor(banner); !ok || id != 0 {
		t.Errorf("live id should survive a failed re-issue: got %d, %v", id, ok)
	}
}

func TestLoadBannerAd_TransportErrorReleasesID(t *testing.T) {
	bridge, m := setupAdsTest(t)

	banner := &BannerAd{AdUnitID: "unit", Size: AdSizeBanner}
	bridge.setInvokeErr(errors.New("bridge down"))
	if err := m.LoadBannerAd(banner); err == nil {
		t.Fatal("expected load error")
	}
	if _, ok := m.AdIDFor(banner); ok {
		t.Error("rejected load should not leave a live id")
	}

	// A later load succeeds with a fresh id; ids are never reused.
	bridge.setInvokeErr(nil)
	if err := m.LoadBannerAd(banner); err != nil {
		t.Fatal(err)
	}
	if id, ok := m.AdIDFor(banner); !ok || id != 1 {
		t.Errorf("retry id: got %d, %v, want 1", id, ok)
	}
}

func TestAdEvents_OnAdLoaded(t *testing.T) {
	_, m := setupAdsTest(t)

	var loaded *BannerAd
	banner := &BannerAd{
		AdUnitID: "unit",
		Size:     AdSizeBanner,
		Listener: BannerAdListener{
			OnAdLoaded: func(ad *BannerAd) { loaded = ad },
		},
	}
	if err := m.LoadBannerAd(banner); err != nil {
		t.Fatal(err)
	}
	if m.OnAdLoadedCalled(banner) {
		t.Error("ad should not be loaded before the event arrives")
	}

	sendAdEvent(t, 0, "onAdLoaded", nil)

	if loaded != banner {
		t.Error("OnAdLoaded should receive the owning entity")
	}
	if !m.OnAdLoadedCalled(banner) {
		t.Error("loaded flag should be set")
	}
	if !banner.IsLoaded() {
		t.Error("IsLoaded should report true")
	}
}

func TestAdEvents_OnAdFailedToLoad(t *testing.T) {
	_, m := setupAdsTest(t)

	var gotErr *LoadAdError
	banner := &BannerAd{
		AdUnitID: "unit",
		Size:     AdSizeBanner,
		Listener: BannerAdListener{
			OnAdFailedToLoad: func(_ *BannerAd, err *LoadAdError) { gotErr = err },
		},
	}
	if err := m.LoadBannerAd(banner); err != nil {
		t.Fatal(err)
	}

	want := &LoadAdError{
		AdError: AdError{Code: 3, Domain: "com.google.admob", Message: "no fill"},
		ResponseInfo: &ResponseInfo{
			ResponseID:                "resp-1",
			MediationAdapterClassName: "AdMobAdapter",
		},
	}
	sendAdEvent(t, 0, "onAdFailedToLoad", map[string]any{"loadAdError": want})

	if gotErr == nil || !gotErr.Equal(want) {
		t.Errorf("listener error: got %+v, want %+v", gotErr, want)
	}
	if m.OnAdLoadedCalled(banner) {
		t.Error("failed load must not set the loaded flag")
	}
	// The id stays live until the caller disposes the ad.
	if _, ok := m.AdIDFor(banner); !ok {
		t.Error("failed ad should keep its id until disposed")
	}
}

func TestAdEvents_StaleIDDropped(t *testing.T) {
	_, m := setupAdsTest(t)

	var fired bool
	banner := &BannerAd{
		AdUnitID: "unit",
		Size:     AdSizeBanner,
		Listener: BannerAdListener{
			OnAdLoaded: func(*BannerAd) { fired = true },
		},
	}
	if err := m.LoadBannerAd(banner); err != nil {
		t.Fatal(err)
	}
	if err := m.DisposeAd(banner); err != nil {
		t.Fatal(err)
	}

	// The event raced the dispose; it must be dropped silently.
	sendAdEvent(t, 0, "onAdLoaded", nil)
	if fired {
		t.Error("event for a disposed id should be dropped")
	}
}

func TestAdEvents_UnknownNamePanics(t *testing.T) {
	_, m := setupAdsTest(t)

	banner := &BannerAd{AdUnitID: "unit", Size: AdSizeBanner}
	if err := m.LoadBannerAd(banner); err != nil {
		t.Fatal(err)
	}

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic for unknown event name")
		}
		if !strings.Contains(r.(string), "onAdTeleported") {
			t.Errorf("panic message: %v", r)
		}
	}()
	sendAdEvent(t, 0, "onAdTeleported", nil)
}

func TestShowAdWithoutView_BeforeLoadPanics(t *testing.T) {
	bridge, _ := setupAdsTest(t)

	inter := &InterstitialAd{AdUnitID: "unit"}
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic when showing an unloaded ad")
		}
		if calls := bridge.callsFor("showAdWithoutView"); len(calls) != 0 {
			t.Error("no native call should be made for an unloaded ad")
		}
	}()
	inter.Show()
}

func TestInterstitialLifecycle(t *testing.T) {
	bridge, m := setupAdsTest(t)

	var showed, dismissed bool
	inter := &InterstitialAd{
		AdUnitID: "unit",
		Request:  &AdRequest{Keywords: []string{"games"}},
		FullScreenContentCallback: FullScreenContentCallback{
			OnAdShowedFullScreenContent:    func(Ad) { showed = true },
			OnAdDismissedFullScreenContent: func(Ad) { dismissed = true },
		},
	}
	if err := m.LoadInterstitialAd(inter); err != nil {
		t.Fatal(err)
	}

	load := bridge.onlyCall(t, "loadInterstitialAd")
	if req, ok := load.args["request"].(*AdRequest); !ok || !req.Equal(inter.Request) {
		t.Errorf("request arg: got %#v", load.args["request"])
	}

	sendAdEvent(t, 0, "onAdLoaded", nil)
	if err := inter.Show(); err != nil {
		t.Fatal(err)
	}
	show := bridge.onlyCall(t, "showAdWithoutView")
	if got := argInt(t, show, "adId"); got != 0 {
		t.Errorf("show adId: got %d", got)
	}

	sendAdEvent(t, 0, "onAdShowedFullScreenContent", nil)
	sendAdEvent(t, 0, "onAdDismissedFullScreenContent", nil)
	if !showed || !dismissed {
		t.Errorf("full-screen callbacks: showed=%v dismissed=%v", showed, dismissed)
	}
}

func TestFullScreen_FailedToShow(t *testing.T) {
	_, m := setupAdsTest(t)

	var gotErr *AdError
	inter := &InterstitialAd{
		AdUnitID: "unit",
		FullScreenContentCallback: FullScreenContentCallback{
			OnAdFailedToShowFullScreenContent: func(_ Ad, err *AdError) { gotErr = err },
		},
	}
	if err := m.LoadInterstitialAd(inter); err != nil {
		t.Fatal(err)
	}
	sendAdEvent(t, 0, "onAdLoaded", nil)

	want := &AdError{Code: 1, Domain: "com.google.admob", Message: "not ready"}
	sendAdEvent(t, 0, "onAdFailedToShowFullScreenContent", map[string]any{"error": want})
	if gotErr == nil || !gotErr.Equal(want) {
		t.Errorf("got %+v, want %+v", gotErr, want)
	}
}

func TestRewardedAd_UserEarnedReward(t *testing.T) {
	bridge, m := setupAdsTest(t)

	var got RewardItem
	rewarded := &RewardedAd{
		AdUnitID: "unit",
		ServerSideVerificationOptions: &ServerSideVerificationOptions{
			UserID:     "user-7",
			CustomData: "level-3",
		},
		OnUserEarnedReward: func(_ *RewardedAd, reward RewardItem) { got = reward },
	}
	if err := m.LoadRewardedAd(rewarded); err != nil {
		t.Fatal(err)
	}

	load := bridge.onlyCall(t, "loadRewardedAd")
	ssv, ok := load.args["serverSideVerificationOptions"].(*ServerSideVerificationOptions)
	if !ok || !ssv.Equal(rewarded.ServerSideVerificationOptions) {
		t.Errorf("ssv arg: got %#v", load.args["serverSideVerificationOptions"])
	}

	sendAdEvent(t, 0, "onAdLoaded", nil)
	sendAdEvent(t, 0, "onRewardedAdUserEarnedReward", map[string]any{
		"rewardItem": RewardItem{Amount: 5, Type: "coins"},
	})
	if got != (RewardItem{Amount: 5, Type: "coins"}) {
		t.Errorf("reward: got %+v", got)
	}
}

func TestAdManagerBanner_SizesAndAppEvents(t *testing.T) {
	bridge, m := setupAdsTest(t)

	var appEventName, appEventData string
	banner := &AdManagerBannerAd{
		AdUnitID: "unit",
		Sizes:    []AdSize{AdSizeBanner, AdSizeMediumRectangle},
		Request: &AdManagerAdRequest{
			CustomTargeting: map[string]string{"genre": "news"},
		},
		Listener: AdManagerBannerAdListener{
			OnAppEvent: func(_ *AdManagerBannerAd, name, data string) {
				appEventName, appEventData = name, data
			},
		},
	}
	if err := m.LoadAdManagerBannerAd(banner); err != nil {
		t.Fatal(err)
	}

	load := bridge.onlyCall(t, "loadAdManagerBannerAd")
	sizes, ok := load.args["sizes"].([]any)
	if !ok || len(sizes) != 2 || sizes[1] != any(AdSizeMediumRectangle) {
		t.Errorf("sizes arg: got %#v", load.args["sizes"])
	}
	if req, ok := load.args["request"].(*AdManagerAdRequest); !ok || !req.Equal(banner.Request) {
		t.Errorf("request arg: got %#v", load.args["request"])
	}

	sendAdEvent(t, 0, "onAdLoaded", nil)
	sendAdEvent(t, 0, "onAppEvent", map[string]any{"name": "color", "data": "green"})
	if appEventName != "color" || appEventData != "green" {
		t.Errorf("app event: got %q %q", appEventName, appEventData)
	}
}

func TestNativeAd_ClickAndViewEvents(t *testing.T) {
	bridge, m := setupAdsTest(t)

	var clicked, opened bool
	native := &NativeAd{
		AdUnitID:      "unit",
		FactoryID:     "listTile",
		CustomOptions: map[string]any{"dark": true},
		Listener: NativeAdListener{
			OnNativeAdClicked: func(*NativeAd) { clicked = true },
			OnAdOpened:        func(*NativeAd) { opened = true },
		},
	}
	if err := m.LoadNativeAd(native); err != nil {
		t.Fatal(err)
	}

	load := bridge.onlyCall(t, "loadNativeAd")
	if load.args["factoryId"] != "listTile" {
		t.Errorf("factoryId: got %v", load.args["factoryId"])
	}
	opts := platform.ParseMap(load.args["customOptions"])
	if opts["dark"] != true {
		t.Errorf("customOptions: got %#v", load.args["customOptions"])
	}

	sendAdEvent(t, 0, "onAdLoaded", nil)
	sendAdEvent(t, 0, "onNativeAdClicked", nil)
	sendAdEvent(t, 0, "onAdOpened", nil)
	if !clicked || !opened {
		t.Errorf("callbacks: clicked=%v opened=%v", clicked, opened)
	}
}

func TestDisposeAd(t *testing.T) {
	bridge, m := setupAdsTest(t)

	banner := &BannerAd{AdUnitID: "unit", Size: AdSizeBanner}
	if err := m.LoadBannerAd(banner); err != nil {
		t.Fatal(err)
	}
	sendAdEvent(t, 0, "onAdLoaded", nil)

	if err := m.DisposeAd(banner); err != nil {
		t.Fatal(err)
	}
	dispose := bridge.onlyCall(t, "disposeAd")
	if got := argInt(t, dispose, "adId"); got != 0 {
		t.Errorf("dispose adId: got %d", got)
	}

	if _, ok := m.AdIDFor(banner); ok {
		t.Error("disposed ad should have no id")
	}
	if _, ok := m.AdFor(0); ok {
		t.Error("disposed id should not resolve")
	}
	if m.OnAdLoadedCalled(banner) {
		t.Error("disposed ad should not report loaded")
	}

	// Disposing again is a no-op with no native call.
	if err := m.DisposeAd(banner); err != nil {
		t.Fatal(err)
	}
	if calls := bridge.callsFor("disposeAd"); len(calls) != 1 {
		t.Errorf("expected a single dispose call, got %d", len(calls))
	}

	// Reloading after dispose allocates a fresh id.
	if err := m.LoadBannerAd(banner); err != nil {
		t.Fatal(err)
	}
	if id, _ := m.AdIDFor(banner); id != 1 {
		t.Errorf("reload id: got %d, want 1", id)
	}
	if banner.IsLoaded() {
		t.Error("reloaded ad must wait for a fresh onAdLoaded")
	}
}

func TestUpdateRequestConfiguration(t *testing.T) {
	bridge, m := setupAdsTest(t)

	child := TagTrue
	cfg := RequestConfiguration{
		MaxAdContentRating:           MaxAdContentRatingPG,
		TagForChildDirectedTreatment: &child,
		TestDeviceIDs:                []string{"device-1"},
	}
	if err := m.UpdateRequestConfiguration(cfg); err != nil {
		t.Fatal(err)
	}

	call := bridge.onlyCall(t, "updateRequestConfiguration")
	got, ok := call.args["requestConfiguration"].(*RequestConfiguration)
	if !ok || !got.Equal(&cfg) {
		t.Errorf("got %#v", call.args["requestConfiguration"])
	}
}

func TestSetSameAppKeyEnabled(t *testing.T) {
	bridge, m := setupAdsTest(t)

	if err := m.SetSameAppKeyEnabled(true); err != nil {
		t.Fatal(err)
	}
	call := bridge.onlyCall(t, "setSameAppKeyEnabled")
	if call.args["isEnabled"] != true {
		t.Errorf("isEnabled: got %v", call.args["isEnabled"])
	}
}

func TestInstance_ResetBetweenTests(t *testing.T) {
	_, m := setupAdsTest(t)

	banner := &BannerAd{AdUnitID: "unit", Size: AdSizeBanner}
	if err := m.LoadBannerAd(banner); err != nil {
		t.Fatal(err)
	}

	platform.ResetForTest()

	// A fresh manager starts counting ids from zero again.
	platform.SetupTestBridge(t.Cleanup)
	platform.SetNativeBridge(&adsBridge{})
	m2 := Instance()
	if m2 == m {
		t.Fatal("reset should discard the old manager")
	}
	other := &BannerAd{AdUnitID: "unit-2", Size: AdSizeBanner}
	if err := m2.LoadBannerAd(other); err != nil {
		t.Fatal(err)
	}
	if id, _ := m2.AdIDFor(other); id != 0 {
		t.Errorf("fresh manager first id: got %d, want 0", id)
	}
}

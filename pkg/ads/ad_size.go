package ads

// AdSize is the width and height of a banner ad in density-independent
// pixels.
type AdSize struct {
	Width  int
	Height int
}

// Standard banner sizes supported by the native SDKs.
var (
	// AdSizeBanner is the standard 320x50 banner.
	AdSizeBanner = AdSize{Width: 320, Height: 50}
	// AdSizeLargeBanner is the 320x100 large banner.
	AdSizeLargeBanner = AdSize{Width: 320, Height: 100}
	// AdSizeMediumRectangle is the 300x250 IAB medium rectangle.
	AdSizeMediumRectangle = AdSize{Width: 300, Height: 250}
	// AdSizeFullBanner is the 468x60 IAB full-size banner.
	AdSizeFullBanner = AdSize{Width: 468, Height: 60}
	// AdSizeLeaderboard is the 728x90 IAB leaderboard.
	AdSizeLeaderboard = AdSize{Width: 728, Height: 90}
)

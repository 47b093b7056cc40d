package constants

import "time"

var APIConfig = struct {
	BaseURL        string
	WebBaseURL     string
	VideoViewPath  string
	UserInfoPath   string
	UserStatPath   string
	UserVideosPath string
	Timeout        time.Duration
	RequestDelay   time.Duration
	UserAgent      string
}{
	BaseURL:        "https://api.bilibili.com",
	WebBaseURL:     "https://www.bilibili.com",
	VideoViewPath:  "/x/web-interface/view",
	UserInfoPath:   "/x/space/acc/info",
	UserStatPath:   "/x/relation/stat",
	UserVideosPath: "/x/space/arc/search",
	Timeout:        30 * time.Second,
	RequestDelay:   500 * time.Millisecond, // pacing between paged detail fetches
	UserAgent:      "Mozilla/5.0 (compatible; BiliAnalyzer/1.0)",
}

var AnalyzeConfig = struct {
	StabilityVideoCount     int
	InteractionVideoCount   int
	ComprehensiveVideoCount int
	UploadsPageSize         int
	FetchConcurrency        int
}{
	StabilityVideoCount:     20,
	InteractionVideoCount:   15,
	ComprehensiveVideoCount: 20,
	UploadsPageSize:         30,
	FetchConcurrency:        2,
}

var StabilityConfig = struct {
	TimeWeight     float64
	QualityWeight  float64
	BaselineCycle  time.Duration
	NeutralScore   float64
	GaugeWidth     int
	ExcellentScore float64
	GoodScore      float64
	FairScore      float64
}{
	TimeWeight:     0.6,
	QualityWeight:  0.4,
	BaselineCycle:  24 * time.Hour,
	NeutralScore:   0.5,
	GaugeWidth:     20,
	ExcellentScore: 0.8,
	GoodScore:      0.6,
	FairScore:      0.4,
}

// Engagement baselines collected from published creator-growth reference
// data. Overridable through a benchmark file, see analyzer.LoadBenchmarks.
var BenchmarkDefaults = struct {
	StartupLikeRate      float64
	StartupCoinRate      float64
	StartupGoodThreshold float64
	CurrentLikeRate      float64
	CurrentCoinRate      float64
	CurrentGoodThreshold float64
	DanmakuDensity       float64
}{
	StartupLikeRate:      0.0436,
	StartupCoinRate:      0.0101,
	StartupGoodThreshold: 0.0499,
	CurrentLikeRate:      0.0439,
	CurrentCoinRate:      0.0075,
	CurrentGoodThreshold: 0.0552,
	DanmakuDensity:       5.0,
}

var GrowthStageConfig = struct {
	ExplorerMaxViews float64
	RisingMaxViews   float64
}{
	ExplorerMaxViews: 100_000,
	RisingMaxViews:   500_000,
}

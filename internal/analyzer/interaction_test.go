package analyzer

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/kapu/bilibili-analyzer-go/internal/domain"
)

func TestAnalyzeAveragesRates(t *testing.T) {
	a := NewInteractionAnalyzer(DefaultBenchmarks())

	videos := []domain.VideoStats{
		{Views: 1000, Likes: 40, Coins: 10, Favorites: 20, Comments: 5, Danmaku: 50},
		{Views: 2000, Likes: 120, Coins: 40, Favorites: 80, Comments: 30, Danmaku: 200},
	}

	m := a.Analyze(videos)
	if m == nil {
		t.Fatal("expected metrics, got nil")
	}

	// mean of 0.04 and 0.06
	if !almostEqual(m.LikeRate, 0.05) {
		t.Errorf("like rate = %v, want 0.05", m.LikeRate)
	}
	// mean of 0.01 and 0.02
	if !almostEqual(m.CoinRate, 0.015) {
		t.Errorf("coin rate = %v, want 0.015", m.CoinRate)
	}
	// mean of 50/1000*60 and 200/2000*60
	if !almostEqual(m.DanmakuDensity, 4.5) {
		t.Errorf("danmaku density = %v, want 4.5", m.DanmakuDensity)
	}
	if m.AvgViews != 1500 {
		t.Errorf("avg views = %v, want 1500", m.AvgViews)
	}
	if m.VideoCount != 2 {
		t.Errorf("video count = %d, want 2", m.VideoCount)
	}
	if m.Stage != domain.StageExplorer {
		t.Errorf("stage = %q, want %q", m.Stage, domain.StageExplorer)
	}
}

func TestAnalyzeSkipsZeroViewVideos(t *testing.T) {
	a := NewInteractionAnalyzer(DefaultBenchmarks())

	videos := []domain.VideoStats{
		{Views: 1000, Likes: 50},
		{Views: 0, Likes: 999},
	}

	m := a.Analyze(videos)
	if m == nil {
		t.Fatal("expected metrics, got nil")
	}
	if !almostEqual(m.LikeRate, 0.05) {
		t.Errorf("like rate = %v, want 0.05 (zero-view upload excluded)", m.LikeRate)
	}
	if m.VideoCount != 2 {
		t.Errorf("video count = %d, want 2 (zero-view upload still counted)", m.VideoCount)
	}
}

func TestAnalyzeEmpty(t *testing.T) {
	a := NewInteractionAnalyzer(DefaultBenchmarks())
	if m := a.Analyze(nil); m != nil {
		t.Fatalf("expected nil for empty input, got %+v", m)
	}
}

func TestMetricScore(t *testing.T) {
	a := NewInteractionAnalyzer(DefaultBenchmarks())

	cases := []struct {
		name           string
		value, startup float64
		current, want  float64
	}{
		{"above mature tier", 0.06, 0.04, 0.05, 1.0},
		{"between tiers", 0.045, 0.04, 0.05, 0.5},
		{"below startup tier", 0.02, 0.04, 0.05, 0.5},
		{"zero", 0, 0.04, 0.05, 0},
	}
	for _, c := range cases {
		if got := a.MetricScore(c.value, c.startup, c.current); !almostEqual(got, c.want) {
			t.Errorf("%s: MetricScore(%v) = %v, want %v", c.name, c.value, got, c.want)
		}
	}
}

func TestDanmakuScore(t *testing.T) {
	a := NewInteractionAnalyzer(DefaultBenchmarks())

	if got := a.DanmakuScore(12); got != 1.0 {
		t.Errorf("density 12 (>= 2x bench): got %v, want 1.0", got)
	}
	if got := a.DanmakuScore(5); !almostEqual(got, 0.5) {
		t.Errorf("density at bench: got %v, want 0.5", got)
	}
	if got := a.DanmakuScore(2.5); !almostEqual(got, 0.5) {
		t.Errorf("density at half bench: got %v, want 0.5", got)
	}
}

func TestSuggestionsCapAtThree(t *testing.T) {
	a := NewInteractionAnalyzer(DefaultBenchmarks())

	weak := &domain.InteractionMetrics{LikeRate: 0.001, CoinRate: 0.0001, DanmakuDensity: 0.5}
	if got := a.Suggestions(weak); len(got) != 3 {
		t.Fatalf("expected 3 suggestions, got %d", len(got))
	}

	strong := &domain.InteractionMetrics{LikeRate: 0.1, CoinRate: 0.05, DanmakuDensity: 10}
	if got := a.Suggestions(strong); len(got) != 3 {
		t.Fatalf("strong creators still get 3 general suggestions, got %d", len(got))
	}

	if got := a.Suggestions(nil); len(got) != 0 {
		t.Fatalf("nil metrics should yield no suggestions, got %d", len(got))
	}
}

func TestLoadBenchmarks(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "reference.json")
	payload := map[string]any{
		"startup_benchmarks": map[string]any{
			"engagement_standards": map[string]any{
				"like_rate_benchmark":        0.03,
				"coin_rate_benchmark":        0.008,
				"good_performance_threshold": 0.04,
			},
		},
		"current_benchmarks": map[string]any{
			"engagement_standards": map[string]any{
				"like_rate_benchmark":        0.05,
				"coin_rate_benchmark":        0.009,
				"good_performance_threshold": 0.06,
			},
		},
	}
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	bench := LoadBenchmarks(path)
	if bench.Startup.LikeRate != 0.03 || bench.Current.LikeRate != 0.05 {
		t.Errorf("unexpected benchmarks loaded: %+v", bench)
	}

	missing := LoadBenchmarks(filepath.Join(dir, "nope.json"))
	if missing != DefaultBenchmarks() {
		t.Error("missing file must fall back to defaults")
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if LoadBenchmarks(bad) != DefaultBenchmarks() {
		t.Error("malformed file must fall back to defaults")
	}
}

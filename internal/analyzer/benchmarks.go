package analyzer

import (
	"encoding/json"
	"os"

	"github.com/kapu/bilibili-analyzer-go/internal/constants"
	"github.com/kapu/bilibili-analyzer-go/internal/domain"
)

// benchmarkFile mirrors the layout of the growth reference JSON file.
type benchmarkFile struct {
	Startup struct {
		Engagement domain.EngagementStandards `json:"engagement_standards"`
	} `json:"startup_benchmarks"`
	Current struct {
		Engagement domain.EngagementStandards `json:"engagement_standards"`
	} `json:"current_benchmarks"`
}

// DefaultBenchmarks returns the built-in engagement reference tiers.
func DefaultBenchmarks() domain.Benchmarks {
	return domain.Benchmarks{
		Startup: domain.EngagementStandards{
			LikeRate:      constants.BenchmarkDefaults.StartupLikeRate,
			CoinRate:      constants.BenchmarkDefaults.StartupCoinRate,
			GoodThreshold: constants.BenchmarkDefaults.StartupGoodThreshold,
		},
		Current: domain.EngagementStandards{
			LikeRate:      constants.BenchmarkDefaults.CurrentLikeRate,
			CoinRate:      constants.BenchmarkDefaults.CurrentCoinRate,
			GoodThreshold: constants.BenchmarkDefaults.CurrentGoodThreshold,
		},
		DanmakuDensity: constants.BenchmarkDefaults.DanmakuDensity,
	}
}

// LoadBenchmarks reads reference tiers from path, falling back to the
// defaults when the file is missing or malformed.
func LoadBenchmarks(path string) domain.Benchmarks {
	if path == "" {
		return DefaultBenchmarks()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultBenchmarks()
	}

	var file benchmarkFile
	if err := json.Unmarshal(data, &file); err != nil {
		return DefaultBenchmarks()
	}

	bench := domain.Benchmarks{
		Startup:        file.Startup.Engagement,
		Current:        file.Current.Engagement,
		DanmakuDensity: constants.BenchmarkDefaults.DanmakuDensity,
	}
	if bench.Startup.LikeRate == 0 || bench.Current.LikeRate == 0 {
		return DefaultBenchmarks()
	}
	return bench
}

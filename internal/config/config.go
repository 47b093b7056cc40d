package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kapu/bilibili-analyzer-go/internal/constants"
)

type Config struct {
	Bilibili BilibiliConfig
	Analyze  AnalyzeConfig
	Output   OutputConfig
	Logging  LoggingConfig
}

type BilibiliConfig struct {
	BaseURL      string
	WebBaseURL   string
	Timeout      time.Duration
	RequestDelay time.Duration
	UserAgent    string
}

type AnalyzeConfig struct {
	StabilityVideoCount   int
	InteractionVideoCount int
	FetchConcurrency      int
}

type OutputConfig struct {
	ChartDir      string
	ExportDir     string
	BenchmarkFile string
}

type LoggingConfig struct {
	Level string
	File  string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Bilibili: BilibiliConfig{
			BaseURL:      getEnv("BILIBILI_API_BASE_URL", constants.APIConfig.BaseURL),
			WebBaseURL:   getEnv("BILIBILI_WEB_BASE_URL", constants.APIConfig.WebBaseURL),
			Timeout:      getEnvDuration("BILIBILI_API_TIMEOUT", constants.APIConfig.Timeout),
			RequestDelay: getEnvDuration("BILIBILI_REQUEST_DELAY", constants.APIConfig.RequestDelay),
			UserAgent:    getEnv("BILIBILI_USER_AGENT", constants.APIConfig.UserAgent),
		},
		Analyze: AnalyzeConfig{
			StabilityVideoCount:   getEnvInt("ANALYZE_STABILITY_VIDEOS", constants.AnalyzeConfig.StabilityVideoCount),
			InteractionVideoCount: getEnvInt("ANALYZE_INTERACTION_VIDEOS", constants.AnalyzeConfig.InteractionVideoCount),
			FetchConcurrency:      getEnvInt("ANALYZE_FETCH_CONCURRENCY", constants.AnalyzeConfig.FetchConcurrency),
		},
		Output: OutputConfig{
			ChartDir:      getEnv("OUTPUT_CHART_DIR", "charts"),
			ExportDir:     getEnv("OUTPUT_EXPORT_DIR", "data/ups"),
			BenchmarkFile: getEnv("BENCHMARK_FILE", "bilibili_growth_reference.json"),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			File:  getEnv("LOG_FILE", ""),
		},
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		// bare numbers are read as seconds
		if secs, err := strconv.Atoi(value); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultValue
}

// Package perf collects wall-clock timings of named operations and
// renders a per-category breakdown on demand.
package perf

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

type Category string

const (
	CategoryNetwork Category = "network"
	CategoryFile    Category = "file"
	CategoryCompute Category = "compute"
	CategoryRender  Category = "render"
)

type Sample struct {
	Operation string
	Category  Category
	Duration  time.Duration
	At        time.Time
	Success   bool
}

type Stats struct {
	TotalOperations int
	TotalTime       time.Duration
	AverageTime     time.Duration
	SuccessRate     float64
}

type Monitor struct {
	mu      sync.Mutex
	samples []Sample
}

func NewMonitor() *Monitor {
	return &Monitor{}
}

// Track starts timing an operation and returns the closer that records
// it. Usage:
//
//	done := monitor.Track("get_video_info", perf.CategoryNetwork)
//	...
//	done(err == nil)
func (m *Monitor) Track(operation string, category Category) func(success bool) {
	start := time.Now()
	return func(success bool) {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.samples = append(m.samples, Sample{
			Operation: operation,
			Category:  category,
			Duration:  time.Since(start),
			At:        time.Now(),
			Success:   success,
		})
	}
}

func (m *Monitor) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.samples = nil
}

func (m *Monitor) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()

	stats := Stats{TotalOperations: len(m.samples)}
	if stats.TotalOperations == 0 {
		return stats
	}

	successes := 0
	for _, s := range m.samples {
		stats.TotalTime += s.Duration
		if s.Success {
			successes++
		}
	}
	stats.AverageTime = stats.TotalTime / time.Duration(stats.TotalOperations)
	stats.SuccessRate = float64(successes) / float64(stats.TotalOperations)
	return stats
}

// Report renders the collected samples grouped by category, with a
// network-share summary line.
func (m *Monitor) Report() string {
	m.mu.Lock()
	samples := make([]Sample, len(m.samples))
	copy(samples, m.samples)
	m.mu.Unlock()

	if len(samples) == 0 {
		return "No performance data collected yet."
	}

	sections := []struct {
		category Category
		icon     string
		label    string
	}{
		{CategoryNetwork, "📡", "Network requests"},
		{CategoryFile, "💾", "File operations"},
		{CategoryCompute, "⚡", "Data processing"},
		{CategoryRender, "📊", "Rendering"},
	}

	var sb strings.Builder
	sb.WriteString("🔍 Performance report\n")
	sb.WriteString("══════════════════════════════════════\n")

	var total, network time.Duration
	for _, s := range samples {
		total += s.Duration
		if s.Category == CategoryNetwork {
			network += s.Duration
		}
	}

	for _, section := range sections {
		var sectionTotal time.Duration
		var lines []string
		for _, s := range samples {
			if s.Category != section.category {
				continue
			}
			sectionTotal += s.Duration
			lines = append(lines, fmt.Sprintf("  ├─ %s: %.3fs", s.Operation, s.Duration.Seconds()))
		}
		if len(lines) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("%s %s (total %.1fs)\n", section.icon, section.label, sectionTotal.Seconds()))
		sb.WriteString(strings.Join(lines, "\n"))
		sb.WriteString("\n")
	}

	networkShare := 0.0
	if total > 0 {
		networkShare = float64(network) / float64(total) * 100
	}
	sb.WriteString(fmt.Sprintf("📈 Total %.1fs across %d operations, network %.1f%%",
		total.Seconds(), len(samples), networkShare))

	return sb.String()
}

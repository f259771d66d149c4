package helpers

import (
	"sort"

	"github.com/dlwhyte/agentfoundry/internal/domain"
)

// CountStat pairs a name with its occurrence count
type CountStat struct {
	Name  string
	Count int
}

// SessionStatistics summarizes a batch of attack session records
type SessionStatistics struct {
	Total         int
	Stopped       int
	Breaches      int
	OutcomeCounts map[string]int
	ModelCounts   map[string]int
}

// StopRate returns the percentage of sessions a guardrail stopped
func (s SessionStatistics) StopRate() float64 {
	if s.Total == 0 {
		return 0.0
	}
	return float64(s.Stopped) / float64(s.Total) * 100.0
}

// AnalyzeSessions computes outcome and model distributions
func AnalyzeSessions(records []domain.SessionRecord) SessionStatistics {
	stats := SessionStatistics{
		Total:         len(records),
		OutcomeCounts: make(map[string]int),
		ModelCounts:   make(map[string]int),
	}

	for _, rec := range records {
		stats.OutcomeCounts[string(rec.Outcome)]++
		stats.ModelCounts[rec.Model]++

		switch rec.Outcome {
		case domain.OutcomeBlocked, domain.OutcomeIntercepted, domain.OutcomeFlagged:
			stats.Stopped++
		case domain.OutcomeBreach, domain.OutcomeSimulated:
			stats.Breaches++
		}
	}

	return stats
}

// TopCounts returns the top N entries by count
// If limit is 0 or negative, returns all entries
func TopCounts(frequency map[string]int, limit int) []CountStat {
	stats := make([]CountStat, 0, len(frequency))
	for name, count := range frequency {
		stats = append(stats, CountStat{Name: name, Count: count})
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count == stats[j].Count {
			return stats[i].Name < stats[j].Name
		}
		return stats[i].Count > stats[j].Count
	})

	if limit > 0 && len(stats) > limit {
		return stats[:limit]
	}
	return stats
}

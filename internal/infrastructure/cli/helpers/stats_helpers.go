package helpers

import (
	"sort"

	"github.com/doeshing/qrgen/internal/domain"
)

// KindStatistic is the number of history records of one payload kind.
type KindStatistic struct {
	Kind  domain.PayloadKind
	Count int
}

// SortKindCounts orders counts by frequency (descending) then by kind name.
func SortKindCounts(byKind map[domain.PayloadKind]int) []KindStatistic {
	stats := make([]KindStatistic, 0, len(byKind))
	for kind, count := range byKind {
		stats = append(stats, KindStatistic{Kind: kind, Count: count})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count == stats[j].Count {
			return stats[i].Kind < stats[j].Kind
		}
		return stats[i].Count > stats[j].Count
	})
	return stats
}

// Percentage returns part as a share of total, 0 when total is 0.
func Percentage(part, total int) float64 {
	if total == 0 {
		return 0.0
	}
	return float64(part) / float64(total) * 100.0
}

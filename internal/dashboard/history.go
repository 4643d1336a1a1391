package dashboard

import "rolereader/resume-matcher/internal/models"

type Trend string

const (
	TrendNone Trend = ""
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
	TrendFlat Trend = "flat"
)

type HistoryEntry struct {
	models.ComparisonHistoryResponse
	Bucket ScoreBucket
	// HasDelta is false for the first entry, which has nothing to compare to.
	HasDelta bool
	Delta    float64
	Trend    Trend
}

type HistoryView struct {
	Entries      []HistoryEntry
	AverageScore float64
	BestScore    float64
}

// BuildHistory keeps items in the order the service returned them. Each
// entry after the first is compared with the one listed before it.
func BuildHistory(items []models.ComparisonHistoryResponse) HistoryView {
	view := HistoryView{Entries: make([]HistoryEntry, 0, len(items))}
	if len(items) == 0 {
		return view
	}

	var total float64
	view.BestScore = items[0].MatchScore
	for i, item := range items {
		entry := HistoryEntry{
			ComparisonHistoryResponse: item,
			Bucket:                    BucketFor(item.MatchScore),
		}
		if i > 0 {
			prev := items[i-1].MatchScore
			entry.HasDelta = true
			entry.Delta = item.MatchScore - prev
			entry.Trend = trendOf(item.MatchScore, prev)
		}
		view.Entries = append(view.Entries, entry)

		total += item.MatchScore
		if item.MatchScore > view.BestScore {
			view.BestScore = item.MatchScore
		}
	}
	view.AverageScore = total / float64(len(items))
	return view
}

func trendOf(current, previous float64) Trend {
	switch {
	case current > previous:
		return TrendUp
	case current < previous:
		return TrendDown
	default:
		return TrendFlat
	}
}

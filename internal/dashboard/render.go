package dashboard

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"rolereader/resume-matcher/internal/models"
)

const historyTimeLayout = "Jan 2, 2006 15:04"

func RenderResult(w io.Writer, resp *models.ComparisonResponse) error {
	bucket := BucketFor(resp.MatchScore)

	var b strings.Builder
	fmt.Fprintf(&b, "Comparison #%d\n", resp.ID)
	fmt.Fprintf(&b, "Match score: %.1f%% (%s)\n\n", resp.MatchScore, bucket.Label)

	found, total := 0, len(resp.RequiredSkills)
	for _, s := range resp.RequiredSkills {
		if s.Found {
			found++
		}
	}
	fmt.Fprintf(&b, "Skills matched: %d/%d\n", found, total)
	for _, s := range resp.RequiredSkills {
		mark := "✗"
		if s.Found {
			mark = "✓"
		}
		fmt.Fprintf(&b, "  %s %s\n", mark, s.Skill)
	}

	if len(resp.FoundKeywords) > 0 {
		fmt.Fprintf(&b, "\nMatching keywords: %s\n", strings.Join(resp.FoundKeywords, ", "))
	}
	if len(resp.MissingKeywords) > 0 {
		fmt.Fprintf(&b, "Missing keywords: %s\n", strings.Join(resp.MissingKeywords, ", "))
	}

	if len(resp.Suggestions) > 0 {
		b.WriteString("\nSuggestions:\n")
		for i, s := range resp.Suggestions {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, s)
		}
	}

	if len(resp.SimilarityDetails) > 0 {
		b.WriteString("\nDetails:\n")
		keys := make([]string, 0, len(resp.SimilarityDetails))
		for k := range resp.SimilarityDetails {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "  %s: %v\n", k, resp.SimilarityDetails[k])
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func RenderHistory(w io.Writer, view HistoryView) error {
	if len(view.Entries) == 0 {
		_, err := io.WriteString(w, "No comparisons yet.\n")
		return err
	}

	fmt.Fprintf(w, "Comparisons: %d  Average: %.1f%%  Best: %.1f%%\n\n",
		len(view.Entries), view.AverageScore, view.BestScore)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tSCORE\tCHANGE\tFOUND\tMISSING")
	for _, e := range view.Entries {
		fmt.Fprintf(tw, "%d\t%s\t%.1f%%\t%s\t%d\t%d\n",
			e.ID,
			e.CreatedAt.In(time.Local).Format(historyTimeLayout),
			e.MatchScore,
			formatDelta(e),
			e.FoundKeywordsCount,
			e.MissingKeywordsCount,
		)
	}
	return tw.Flush()
}

// RenderSimilar lists comparisons in the order the index ranked them.
func RenderSimilar(w io.Writer, similar []models.SimilarComparison) error {
	if len(similar) == 0 {
		_, err := io.WriteString(w, "No similar comparisons found.\n")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSIMILARITY\tDATE\tSCORE\tMATCH\tFOUND\tMISSING")
	for _, s := range similar {
		fmt.Fprintf(tw, "%d\t%.1f%%\t%s\t%.1f%%\t%s\t%d\t%d\n",
			s.ID,
			float64(s.Similarity)*100,
			s.CreatedAt.In(time.Local).Format(historyTimeLayout),
			s.MatchScore,
			BucketFor(s.MatchScore).Label,
			s.FoundKeywordsCount,
			s.MissingKeywordsCount,
		)
	}
	return tw.Flush()
}

func formatDelta(e HistoryEntry) string {
	if !e.HasDelta {
		return "-"
	}
	switch e.Trend {
	case TrendUp:
		return fmt.Sprintf("↑ %+.1f", e.Delta)
	case TrendDown:
		return fmt.Sprintf("↓ %+.1f", e.Delta)
	default:
		return "= 0.0"
	}
}

func RenderHealth(w io.Writer, status HealthStatus, health *models.HealthResponse, errText string) error {
	fmt.Fprintf(w, "System status: %s\n", status)
	switch {
	case status == StatusOffline && errText != "":
		fmt.Fprintf(w, "  error: %s\n", errText)
	case health != nil && status != StatusChecking:
		fmt.Fprintf(w, "  api: %s  nlp ready: %t  version: %s\n", health.Status, health.NLPReady, health.Version)
	}
	return nil
}

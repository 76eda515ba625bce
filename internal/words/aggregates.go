package words

import "math"

// CategorySummary is the per-category card shown on the dashboard.
type CategorySummary struct {
	CategoryName  string  `json:"categoryName"`
	TagID         string  `json:"tagId"`
	TotalCount    int     `json:"totalCount"`
	MasteredCount int     `json:"masteredCount"`
	ProgressPct   float64 `json:"progressPct"`
}

// DashboardSummary is the top-level progress view.
type DashboardSummary struct {
	TotalWords        int `json:"totalWords"`
	MasteredTotal     int `json:"masteredTotal"`
	GlobalProgressPct int `json:"globalProgressPct"`
}

// Summarize computes the dashboard aggregates over the full word list.
// The global percentage is rounded to a whole number for display.
func Summarize(ws []Record) DashboardSummary {
	mastered := 0
	for _, w := range ws {
		if w.Status == StatusMastered {
			mastered++
		}
	}

	pct := 0
	if len(ws) > 0 {
		pct = int(math.Round(float64(mastered) / float64(len(ws)) * 100))
	}

	return DashboardSummary{
		TotalWords:        len(ws),
		MasteredTotal:     mastered,
		GlobalProgressPct: pct,
	}
}

// Categories rolls the word list up into per-category summaries, in
// first-appearance order. The tag id of the first word seen in a category
// labels the whole category, matching the sheet's layout.
func Categories(ws []Record) []CategorySummary {
	order := make([]string, 0)
	byName := make(map[string]*CategorySummary)

	for _, w := range ws {
		cat, ok := byName[w.CategoryName]
		if !ok {
			cat = &CategorySummary{CategoryName: w.CategoryName, TagID: w.TagID}
			byName[w.CategoryName] = cat
			order = append(order, w.CategoryName)
		}
		cat.TotalCount++
		if w.Status == StatusMastered {
			cat.MasteredCount++
		}
	}

	out := make([]CategorySummary, 0, len(order))
	for _, name := range order {
		cat := byName[name]
		if cat.TotalCount > 0 {
			cat.ProgressPct = float64(cat.MasteredCount) / float64(cat.TotalCount) * 100
		}
		out = append(out, *cat)
	}
	return out
}

// Mastered returns the archive view: every word with StatusMastered,
// preserving list order.
func Mastered(ws []Record) []Record {
	out := make([]Record, 0)
	for _, w := range ws {
		if w.Status == StatusMastered {
			out = append(out, w)
		}
	}
	return out
}

package words

import (
	"strings"

	"github.com/linguakit/linguapp/internal/csv"
)

// minFields is the number of columns a data row must carry:
// term, translation, example sentence, tag id, category name.
const minFields = 5

// MergeRemote parses raw spreadsheet CSV text and reconciles it against the
// existing local records.
//
// The remote payload is the source of truth for set membership: records
// absent from it are dropped. Local records are the source of truth for
// progress: Status and LastReviewed carry over for every id present on both
// sides. New ids start at StatusNew.
//
// Rows with fewer than five fields are discarded silently; a partially bad
// sheet degrades rather than failing the sync. When the payload has no data
// rows at all (fewer than two lines), the existing slice is returned
// unchanged.
func MergeRemote(raw string, existing []Record) []Record {
	lines := strings.Split(raw, "\n")
	if len(lines) < 2 {
		return existing
	}

	// Candidate records keyed by id, in first-seen order. A later row with
	// the same id overwrites the earlier candidate in place, so the last
	// remote occurrence wins without disturbing ordering.
	order := make([]string, 0, len(lines)-1)
	candidates := make(map[string]Record, len(lines)-1)

	for _, line := range lines[1:] {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		row := csv.ParseLine(line)
		if len(row) < minFields {
			continue
		}

		term := csv.CleanCell(row[0])
		id := MakeID(term)
		if _, seen := candidates[id]; !seen {
			order = append(order, id)
		}
		candidates[id] = Record{
			ID:              id,
			Term:            term,
			Translation:     csv.CleanCell(row[1]),
			ExampleSentence: csv.CleanCell(row[2]),
			TagID:           csv.CleanCell(row[3]),
			CategoryName:    csv.CleanCell(row[4]),
		}
	}

	byID := make(map[string]Record, len(existing))
	for _, w := range existing {
		byID[w.ID] = w
	}

	merged := make([]Record, 0, len(order))
	for _, id := range order {
		cand := candidates[id]
		if prev, ok := byID[id]; ok {
			cand.Status = prev.Status
			cand.LastReviewed = prev.LastReviewed
		} else {
			cand.Status = StatusNew
			cand.LastReviewed = nil
		}
		merged = append(merged, cand)
	}

	return merged
}

// Package csv tokenizes lines of the loosely escaped CSV dialect produced by
// published spreadsheet exports.
//
// The dialect differs from encoding/csv in one important way: it never fails.
// Sheet exports routinely contain unterminated quotes or stray quote
// characters mid-field, and a single bad row must not abort an entire sync.
// ParseLine degrades to best-effort field splitting instead.
package csv

import "strings"

// ParseLine splits one line of CSV text into its fields.
//
// Rules:
//   - ',' separates fields unless inside an open quote region
//   - '"' toggles the quote region, except that a doubled '"' inside a
//     quote region decodes to a single literal '"'
//   - an unterminated quote region is tolerated; parsing ends in whatever
//     state it reached
//
// The result always contains at least one field: an empty input yields
// one empty string.
func ParseLine(text string) []string {
	fields := []string{""}
	inQuotes := false

	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case c == '"':
			if inQuotes && i+1 < len(text) && text[i+1] == '"' {
				// Escaped quote: emit one '"' and skip the pair.
				fields[len(fields)-1] += `"`
				i++
			} else {
				inQuotes = !inQuotes
			}
		case c == ',' && !inQuotes:
			fields = append(fields, "")
		default:
			fields[len(fields)-1] += string(c)
		}
	}

	return fields
}

// CleanCell normalizes a single parsed field for domain use.
// Trims surrounding whitespace, including the stray spaces sheet
// editors leave after commas.
func CleanCell(s string) string {
	return strings.TrimSpace(s)
}

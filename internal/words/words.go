// Package words holds the vocabulary domain model and the remote merge
// pipeline that reconciles spreadsheet content with local learning progress.
package words

import (
	"strings"
	"time"
)

// Status is the learning progress of a single word.
type Status int

const (
	StatusNew      Status = 0
	StatusLearning Status = 1
	StatusMastered Status = 2
)

// String returns a lowercase label for display and logging.
func (s Status) String() string {
	switch s {
	case StatusNew:
		return "new"
	case StatusLearning:
		return "learning"
	case StatusMastered:
		return "mastered"
	default:
		return "unknown"
	}
}

// Record is one vocabulary entry. Content fields come from the remote
// spreadsheet; Status and LastReviewed are local-only and survive syncs.
type Record struct {
	ID              string     `json:"id"`
	Term            string     `json:"term"`
	Translation     string     `json:"translation"`
	ExampleSentence string     `json:"exampleSentence"`
	TagID           string     `json:"tagId"`
	CategoryName    string     `json:"categoryName"`
	Status          Status     `json:"status"`
	LastReviewed    *time.Time `json:"lastReviewed"`
}

// MakeID derives the stable identity key for a term: lowercased, with
// runs of whitespace collapsed to single hyphens. The same term always
// produces the same id, which is what lets a re-sync find the local
// record to carry progress from.
func MakeID(term string) string {
	return strings.Join(strings.Fields(strings.ToLower(term)), "-")
}

// Package session implements the study-session state machine.
//
// A Session walks the learner through a pool of words one card at a time.
// It is a pure state machine: it never touches persistence or the canonical
// word list. Answer reports what should change (the word's new status, the
// running exam score) and the owning service applies it. That keeps the
// machine trivially testable and the mutation path in one place.
package session

import (
	"errors"
	"math/rand"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/linguakit/linguapp/internal/words"
)

// Kind distinguishes the two session flows.
type Kind string

const (
	// KindPractice is the category-scoped study flow. It mutates mastery
	// status and counts toward the daily streak.
	KindPractice Kind = "practice"

	// KindExam is the unscoped scored quiz. It never mutates word records.
	KindExam Kind = "exam"
)

// SpeechLang is the language tag handed to the pronunciation collaborator.
const SpeechLang = "en-US"

var (
	// ErrEmptyPool means the requested session has no eligible words.
	ErrEmptyPool = errors.New("no words available for this session")

	// ErrNotActive means a session operation was called out of sequence,
	// on a finished session. Caller defect, not a user-facing condition.
	ErrNotActive = errors.New("session is not active")
)

// Speaker is the pronunciation collaborator. Speak is fire-and-forget;
// implementations cancel any in-flight utterance before starting a new one.
type Speaker interface {
	Speak(text, lang string)
}

// Limits bounds the session pool sizes.
type Limits struct {
	Practice int // max cards in a practice session
	Exam     int // max cards in an exam session
}

// DefaultLimits matches the product's session sizing.
var DefaultLimits = Limits{Practice: 15, Exam: 30}

// Session is one active or finished study session.
type Session struct {
	ID   uuid.UUID
	Kind Kind

	pool     []words.Record
	cursor   int
	score    int
	flipped  bool
	finished bool
}

// Outcome summarizes a finished session.
type Outcome struct {
	Kind  Kind `json:"kind"`
	Score int  `json:"score"`
	Total int  `json:"total"`
}

// AnswerResult reports the effect of one answered card.
//
// NewStatus is set only for practice sessions; the owner applies it to the
// canonical word record. Exactly one of Next and Outcome is set, depending
// on whether the session continues.
type AnswerResult struct {
	WordID    string
	NewStatus *words.Status
	Score     int
	Done      bool
	Next      *CardView
	Outcome   *Outcome
}

// New builds a session over the given word list.
//
// Practice pools contain only not-yet-mastered words from the requested
// category. Exam pools take every word and ignore the category. Either way
// the pool is uniformly shuffled with the injected randomness source, then
// truncated to the kind's limit. An empty pool is ErrEmptyPool and no
// session is created.
func New(all []words.Record, category string, kind Kind, limits Limits, rng *rand.Rand) (*Session, error) {
	var pool []words.Record
	switch kind {
	case KindPractice:
		for _, w := range all {
			if w.CategoryName == category && w.Status < words.StatusMastered {
				pool = append(pool, w)
			}
		}
	case KindExam:
		pool = make([]words.Record, len(all))
		copy(pool, all)
	default:
		return nil, errors.New("unknown session kind: " + string(kind))
	}

	rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	limit := limits.Practice
	if kind == KindExam {
		limit = limits.Exam
	}
	if limit > 0 && len(pool) > limit {
		pool = pool[:limit]
	}

	if len(pool) == 0 {
		return nil, ErrEmptyPool
	}

	return &Session{
		ID:   uuid.New(),
		Kind: kind,
		pool: pool,
	}, nil
}

// Active reports whether the session still accepts answers.
func (s *Session) Active() bool {
	return !s.finished
}

// Total returns the pool size.
func (s *Session) Total() int {
	return len(s.pool)
}

// Score returns the running exam score.
func (s *Session) Score() int {
	return s.score
}

// Reveal flips the current card to its answer face and pronounces the term.
// Revealing an already-flipped card is a no-op, so a double tap does not
// restart the utterance.
func (s *Session) Reveal(speaker Speaker) error {
	if s.finished {
		return ErrNotActive
	}
	if s.flipped {
		return nil
	}
	s.flipped = true
	if speaker != nil {
		speaker.Speak(s.pool[s.cursor].Term, SpeechLang)
	}
	return nil
}

// Answer records the learner's self-assessment for the current card and
// advances the cursor. See AnswerResult for what the caller must apply.
func (s *Session) Answer(correct bool) (AnswerResult, error) {
	if s.finished {
		return AnswerResult{}, ErrNotActive
	}

	current := s.pool[s.cursor]
	res := AnswerResult{WordID: current.ID}

	switch s.Kind {
	case KindPractice:
		// A wrong answer demotes even a mastered word back to learning.
		st := words.StatusLearning
		if correct {
			st = words.StatusMastered
		}
		res.NewStatus = &st
	case KindExam:
		if correct {
			s.score++
		}
	}
	res.Score = s.score

	s.cursor++
	s.flipped = false

	if s.cursor >= len(s.pool) {
		s.finished = true
		res.Done = true
		res.Outcome = &Outcome{Kind: s.Kind, Score: s.score, Total: len(s.pool)}
		return res, nil
	}

	next := s.CurrentCard()
	res.Next = &next
	return res, nil
}

// CardView is the render-ready projection of the current card.
type CardView struct {
	Front    CardFront `json:"front"`
	Back     *CardBack `json:"back,omitempty"`
	Position int       `json:"position"`
	Total    int       `json:"total"`
}

// CardFront is the question face: the translation plus the example
// sentence with the term blanked out (cloze).
type CardFront struct {
	Translation   string `json:"translation"`
	ClozeSentence string `json:"clozeSentence"`
}

// CardBack is the answer face. The example sentence is split into segments
// so the UI can highlight term occurrences without the core embedding
// markup.
type CardBack struct {
	Term              string    `json:"term"`
	Sentence          []Segment `json:"sentence"`
	QuotedTranslation string    `json:"quotedTranslation"`
}

// Segment is a run of sentence text; Term marks runs that matched the
// card's term.
type Segment struct {
	Text string `json:"text"`
	Term bool   `json:"term,omitempty"`
}

// CurrentCard projects the card at the cursor. It does not mutate session
// state; the back face is present only once the card has been revealed.
func (s *Session) CurrentCard() CardView {
	w := s.pool[s.cursor]
	view := CardView{
		Front: CardFront{
			Translation:   w.Translation,
			ClozeSentence: cloze(w.ExampleSentence, w.Term),
		},
		Position: s.cursor + 1,
		Total:    len(s.pool),
	}
	if s.flipped {
		view.Back = &CardBack{
			Term:              w.Term,
			Sentence:          segments(w.ExampleSentence, w.Term),
			QuotedTranslation: `"` + w.Translation + `"`,
		}
	}
	return view
}

// termPattern matches the term case-insensitively as a literal.
func termPattern(term string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + regexp.QuoteMeta(term))
}

// cloze blanks every case-insensitive occurrence of term in sentence.
func cloze(sentence, term string) string {
	if strings.TrimSpace(term) == "" {
		return sentence
	}
	return termPattern(term).ReplaceAllString(sentence, "____")
}

// segments splits sentence into plain and term-matching runs, preserving
// the original text of each match.
func segments(sentence, term string) []Segment {
	if strings.TrimSpace(term) == "" {
		return []Segment{{Text: sentence}}
	}

	var out []Segment
	rest := sentence
	re := termPattern(term)
	for {
		loc := re.FindStringIndex(rest)
		if loc == nil {
			break
		}
		if loc[0] > 0 {
			out = append(out, Segment{Text: rest[:loc[0]]})
		}
		out = append(out, Segment{Text: rest[loc[0]:loc[1]], Term: true})
		rest = rest[loc[1]:]
	}
	if rest != "" || len(out) == 0 {
		out = append(out, Segment{Text: rest})
	}
	return out
}

// Package progress owns the persistent learning state: the canonical word
// list plus the daily-streak bookkeeping.
//
// Persistence goes through the KV interface, a deliberately tiny key-value
// contract. The state is hydrated once at startup and written through after
// every mutation; there is no caching layer between State and the store.
package progress

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/linguakit/linguapp/internal/words"
)

// Store keys. The names predate this codebase and must stay stable so
// existing installs keep their progress across upgrades.
const (
	KeyWords    = "linguapp_words"
	KeyStreak   = "linguapp_streak"
	KeyLastDate = "linguapp_lastDate"
)

// DateLayout is the ISO calendar date format used for streak tracking.
const DateLayout = "2006-01-02"

// KV is the abstract key-value store the trainer persists into.
// Get reports ok=false for absent keys.
type KV interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// State is the process-wide learning state. It is owned by a single
// core.Service instance; callers must not retain the Words slice across
// mutations.
type State struct {
	Words           []words.Record
	StreakCount     int
	LastSessionDate string // ISO date, empty when never practiced
}

// Load hydrates State from the store and applies the streak-reset check:
// a gap of more than one calendar day since the last completed practice
// session breaks the streak. This is the only place the streak resets to
// zero. Missing keys yield zero values, not errors.
func Load(kv KV, today time.Time) (*State, error) {
	st := &State{}

	if raw, ok, err := kv.Get(KeyWords); err != nil {
		return nil, fmt.Errorf("load words: %w", err)
	} else if ok {
		if err := json.Unmarshal([]byte(raw), &st.Words); err != nil {
			return nil, fmt.Errorf("decode words: %w", err)
		}
	}

	if raw, ok, err := kv.Get(KeyStreak); err != nil {
		return nil, fmt.Errorf("load streak: %w", err)
	} else if ok {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("decode streak %q: %w", raw, err)
		}
		st.StreakCount = n
	}

	if raw, ok, err := kv.Get(KeyLastDate); err != nil {
		return nil, fmt.Errorf("load last session date: %w", err)
	} else if ok {
		st.LastSessionDate = raw
	}

	if st.LastSessionDate != "" {
		gap, err := daysBetween(st.LastSessionDate, today)
		if err != nil {
			return nil, fmt.Errorf("last session date: %w", err)
		}
		if gap > 1 {
			st.StreakCount = 0
			if err := st.SaveStreak(kv); err != nil {
				return nil, err
			}
		}
	}

	return st, nil
}

// SaveWords writes the current word list through to the store.
func (s *State) SaveWords(kv KV) error {
	data, err := json.Marshal(s.Words)
	if err != nil {
		return fmt.Errorf("encode words: %w", err)
	}
	if err := kv.Set(KeyWords, string(data)); err != nil {
		return fmt.Errorf("save words: %w", err)
	}
	return nil
}

// SaveStreak writes the streak counter and last-session date through to
// the store.
func (s *State) SaveStreak(kv KV) error {
	if err := kv.Set(KeyStreak, strconv.Itoa(s.StreakCount)); err != nil {
		return fmt.Errorf("save streak: %w", err)
	}
	if s.LastSessionDate != "" {
		if err := kv.Set(KeyLastDate, s.LastSessionDate); err != nil {
			return fmt.Errorf("save last session date: %w", err)
		}
	}
	return nil
}

// RecordPracticeCompletion counts today's completed practice session toward
// the streak. At most one increment per calendar day: completing a second
// session on the same date is a no-op. Exam sessions never call this.
func (s *State) RecordPracticeCompletion(kv KV, today time.Time) error {
	date := today.Format(DateLayout)
	if s.LastSessionDate == date {
		return nil
	}
	s.StreakCount++
	s.LastSessionDate = date
	return s.SaveStreak(kv)
}

// FindByID returns a pointer into Words for the record with the given id,
// or nil when absent.
func (s *State) FindByID(id string) *words.Record {
	for i := range s.Words {
		if s.Words[i].ID == id {
			return &s.Words[i]
		}
	}
	return nil
}

// daysBetween returns the whole-day distance from an ISO date string to
// today's calendar date.
func daysBetween(isoDate string, today time.Time) (int, error) {
	last, err := time.Parse(DateLayout, isoDate)
	if err != nil {
		return 0, err
	}
	cur, err := time.Parse(DateLayout, today.Format(DateLayout))
	if err != nil {
		return 0, err
	}
	gap := int(cur.Sub(last).Hours() / 24)
	if gap < 0 {
		gap = -gap
	}
	return gap, nil
}

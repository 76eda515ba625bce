// Package core provides the trainer's business logic, independent of any
// transport. It owns the single ProgressState instance, drives the sync
// pipeline, and manages study-session lifecycles.
package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/linguakit/linguapp/internal/progress"
	"github.com/linguakit/linguapp/internal/session"
	"github.com/linguakit/linguapp/internal/words"
)

var (
	// ErrSessionNotFound means the session id does not correspond to a
	// live session; it may have finished or expired.
	ErrSessionNotFound = errors.New("session not found")

	// ErrWordNotFound means the word id is not in the current word list.
	ErrWordNotFound = errors.New("word not found")
)

// sessionTTL is how long an abandoned session is kept before pruning.
const sessionTTL = 24 * time.Hour

// Fetcher retrieves the raw remote CSV payload.
type Fetcher interface {
	Fetch(ctx context.Context) (string, error)
}

// Options configures a Service. Zero values get sensible defaults.
type Options struct {
	// Limits bounds session pool sizes (default session.DefaultLimits).
	Limits session.Limits

	// Rand is the randomness source for pool shuffling. Inject a seeded
	// source in tests; defaults to a time-seeded one.
	Rand *rand.Rand

	// Now supplies the current time for streak bookkeeping. Defaults to
	// time.Now; inject a fixed clock in tests.
	Now func() time.Time

	// Speaker, when set, receives pronunciation requests in addition to
	// the utterance surfaced in reveal responses.
	Speaker session.Speaker
}

// liveSession pairs a session with its creation time for pruning.
type liveSession struct {
	sess    *session.Session
	started time.Time
}

// Service is the single owner of ProgressState. All word-list and session
// mutations funnel through it, serialized by its mutex; only the remote
// fetch in Sync runs outside the lock.
type Service struct {
	mu       sync.Mutex
	kv       progress.KV
	state    *progress.State
	fetcher  Fetcher
	limits   session.Limits
	rng      *rand.Rand
	now      func() time.Time
	speaker  session.Speaker
	sessions map[uuid.UUID]*liveSession
}

// NewService creates a Service over a hydrated ProgressState.
func NewService(kv progress.KV, state *progress.State, fetcher Fetcher, opts Options) *Service {
	if opts.Limits == (session.Limits{}) {
		opts.Limits = session.DefaultLimits
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Service{
		kv:       kv,
		state:    state,
		fetcher:  fetcher,
		limits:   opts.Limits,
		rng:      opts.Rand,
		now:      opts.Now,
		speaker:  opts.Speaker,
		sessions: make(map[uuid.UUID]*liveSession),
	}
}

// Sync fetches the remote sheet and merges it into the word list.
//
// The fetch runs outside the state lock, so a slow remote never blocks card
// flow. Overlapping syncs are not prevented: each computes a full
// replacement list from the state it read, so the last merge to complete
// wins without corrupting anything. On fetch failure the state is left
// untouched and remote.ErrFetchFailed is returned wrapped.
func (s *Service) Sync(ctx context.Context) error {
	raw, err := s.fetcher.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("sync: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	before := len(s.state.Words)
	s.state.Words = words.MergeRemote(raw, s.state.Words)
	if err := s.state.SaveWords(s.kv); err != nil {
		return fmt.Errorf("sync: %w", err)
	}

	slog.Info("sync completed", "words_before", before, "words_after", len(s.state.Words))
	return nil
}

// DashboardView is the top-of-page aggregate the UI renders.
type DashboardView struct {
	StreakCount int `json:"streakCount"`
	words.DashboardSummary
}

// Dashboard returns the streak and global progress aggregates.
func (s *Service) Dashboard() DashboardView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return DashboardView{
		StreakCount:      s.state.StreakCount,
		DashboardSummary: words.Summarize(s.state.Words),
	}
}

// Categories returns the per-category aggregates in sheet order.
func (s *Service) Categories() []words.CategorySummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return words.Categories(s.state.Words)
}

// Archive returns all mastered words.
func (s *Service) Archive() []words.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return words.Mastered(s.state.Words)
}

// ResetToLearning moves a mastered word back into the practice rotation.
func (s *Service) ResetToLearning(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	w := s.state.FindByID(id)
	if w == nil {
		return fmt.Errorf("reset %q: %w", id, ErrWordNotFound)
	}
	w.Status = words.StatusLearning
	if err := s.state.SaveWords(s.kv); err != nil {
		return fmt.Errorf("reset %q: %w", id, err)
	}
	return nil
}

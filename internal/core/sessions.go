package core

// sessions.go manages study-session lifecycles on top of the session state
// machine. Sessions live in service memory, keyed by uuid, and are removed
// when they finish; abandoned ones are pruned lazily on the next start.

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/linguakit/linguapp/internal/session"
)

// Utterance is a pronunciation request surfaced to the UI layer, which
// forwards it to the browser's speech synthesis.
type Utterance struct {
	Text string `json:"text"`
	Lang string `json:"lang"`
}

// SessionView is the response to starting a session.
type SessionView struct {
	SessionID uuid.UUID        `json:"sessionId"`
	Kind      session.Kind     `json:"kind"`
	Card      session.CardView `json:"card"`
}

// AnswerView is the response to answering a card. Card is set while the
// session continues; Outcome when it finished. Score is the running exam
// score (always zero for practice).
type AnswerView struct {
	Card    *session.CardView `json:"card,omitempty"`
	Outcome *session.Outcome  `json:"outcome,omitempty"`
	Score   int               `json:"score"`
}

// StartSession builds a new session pool from the current word list.
// The category is only meaningful for practice sessions; exams ignore it.
func (s *Service) StartSession(category string, kind session.Kind) (SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneStaleSessions()

	// The session works on a snapshot; a sync completing mid-session must
	// not mutate cards already dealt.
	sess, err := session.New(s.state.Words, category, kind, s.limits, s.rng)
	if err != nil {
		return SessionView{}, fmt.Errorf("start session: %w", err)
	}

	s.sessions[sess.ID] = &liveSession{sess: sess, started: s.now()}
	slog.Info("session started", "session_id", sess.ID, "kind", kind, "pool", sess.Total())

	return SessionView{SessionID: sess.ID, Kind: kind, Card: sess.CurrentCard()}, nil
}

// Card returns the current card projection for a live session.
func (s *Service) Card(id uuid.UUID) (session.CardView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	live, ok := s.sessions[id]
	if !ok {
		return session.CardView{}, ErrSessionNotFound
	}
	return live.sess.CurrentCard(), nil
}

// Reveal flips the current card and returns its full view plus the
// pronunciation request for the UI to play.
func (s *Service) Reveal(id uuid.UUID) (session.CardView, Utterance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	live, ok := s.sessions[id]
	if !ok {
		return session.CardView{}, Utterance{}, ErrSessionNotFound
	}

	var rec utteranceRecorder
	speaker := session.Speaker(&rec)
	if s.speaker != nil {
		speaker = multiSpeaker{&rec, s.speaker}
	}
	if err := live.sess.Reveal(speaker); err != nil {
		return session.CardView{}, Utterance{}, err
	}
	return live.sess.CurrentCard(), rec.last, nil
}

// Answer records the learner's self-assessment. For practice sessions the
// word's new status is applied to the canonical list immediately; when the
// session finishes, the word list is persisted and the streak updated.
func (s *Service) Answer(id uuid.UUID, correct bool) (AnswerView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	live, ok := s.sessions[id]
	if !ok {
		return AnswerView{}, ErrSessionNotFound
	}

	res, err := live.sess.Answer(correct)
	if err != nil {
		return AnswerView{}, err
	}

	if res.NewStatus != nil {
		// The word can be gone if a sync dropped it mid-session; the
		// answer is then simply not recorded.
		if w := s.state.FindByID(res.WordID); w != nil {
			w.Status = *res.NewStatus
		}
	}

	view := AnswerView{Card: res.Next, Outcome: res.Outcome, Score: res.Score}
	if !res.Done {
		return view, nil
	}

	delete(s.sessions, id)

	if live.sess.Kind == session.KindPractice {
		if err := s.state.SaveWords(s.kv); err != nil {
			return AnswerView{}, fmt.Errorf("finish session: %w", err)
		}
		if err := s.state.RecordPracticeCompletion(s.kv, s.now()); err != nil {
			return AnswerView{}, fmt.Errorf("finish session: %w", err)
		}
	}

	slog.Info("session finished",
		"session_id", id,
		"kind", live.sess.Kind,
		"score", res.Outcome.Score,
		"total", res.Outcome.Total,
	)
	return view, nil
}

// pruneStaleSessions drops sessions abandoned longer than sessionTTL.
// Caller must hold s.mu.
func (s *Service) pruneStaleSessions() {
	cutoff := s.now().Add(-sessionTTL)
	for id, live := range s.sessions {
		if live.started.Before(cutoff) {
			delete(s.sessions, id)
		}
	}
}

// utteranceRecorder captures the spoken term so the HTTP layer can hand it
// to the browser.
type utteranceRecorder struct {
	last Utterance
}

func (r *utteranceRecorder) Speak(text, lang string) {
	r.last = Utterance{Text: text, Lang: lang}
}

// multiSpeaker fans one pronunciation request out to several collaborators.
type multiSpeaker []session.Speaker

func (m multiSpeaker) Speak(text, lang string) {
	for _, sp := range m {
		sp.Speak(text, lang)
	}
}

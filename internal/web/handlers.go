package web

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/linguakit/linguapp/internal/logging"
	"github.com/linguakit/linguapp/internal/session"
)

// maxBodySize caps request bodies; every API body here is a few bytes.
const maxBodySize = 4 << 10

// handleSync runs the sheet sync pipeline.
func (s *Server) handleSync(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context())
	logger.Info("sync requested")

	if err := s.service.Sync(r.Context()); err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, s.service.Dashboard())
}

// handleDashboard returns streak and global progress aggregates.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.service.Dashboard())
}

// handleCategories returns per-category aggregates.
func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.service.Categories())
}

// handleArchive returns all mastered words.
func (s *Server) handleArchive(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.service.Archive())
}

// handleResetWord moves a mastered word back to learning.
func (s *Server) handleResetWord(w http.ResponseWriter, r *http.Request) {
	wordID := chi.URLParam(r, "wordID")
	if wordID == "" {
		respondErrorMessage(w, http.StatusBadRequest, "missing word id", "REQ001")
		return
	}

	if err := s.service.ResetToLearning(wordID); err != nil {
		s.respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// startSessionRequest is the body for POST /api/sessions.
type startSessionRequest struct {
	Category string `json:"category"`
	Kind     string `json:"kind"`
}

// handleStartSession creates a practice or exam session.
func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	var req startSessionRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondErrorMessage(w, http.StatusBadRequest, "invalid request body", "REQ002")
		return
	}

	kind := session.Kind(req.Kind)
	if kind != session.KindPractice && kind != session.KindExam {
		respondErrorMessage(w, http.StatusBadRequest, "kind must be practice or exam", "REQ003")
		return
	}

	view, err := s.service.StartSession(req.Category, kind)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, view)
}

// handleCard returns the current card of a live session.
func (s *Server) handleCard(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	card, err := s.service.Card(id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, card)
}

// revealResponse carries the flipped card plus the utterance the browser
// should hand to speech synthesis.
type revealResponse struct {
	Card  session.CardView `json:"card"`
	Speak Utterance        `json:"speak"`
}

// Utterance mirrors core.Utterance for the wire.
type Utterance struct {
	Text string `json:"text"`
	Lang string `json:"lang"`
}

// handleReveal flips the current card.
func (s *Server) handleReveal(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	card, utter, err := s.service.Reveal(id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, revealResponse{
		Card:  card,
		Speak: Utterance{Text: utter.Text, Lang: utter.Lang},
	})
}

// answerRequest is the body for POST /api/sessions/{sessionID}/answer.
type answerRequest struct {
	Correct bool `json:"correct"`
}

// handleAnswer records a self-assessment and advances the session.
func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	var req answerRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondErrorMessage(w, http.StatusBadRequest, "invalid request body", "REQ002")
		return
	}

	view, err := s.service.Answer(id, req.Correct)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, view)
}

// sessionID parses the session id URL parameter, responding with 400 on
// malformed input.
func sessionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := chi.URLParam(r, "sessionID")
	id, err := uuid.Parse(raw)
	if err != nil {
		respondErrorMessage(w, http.StatusBadRequest, "invalid session id", "REQ004")
		return uuid.UUID{}, false
	}
	return id, true
}

// decodeBody decodes a size-limited JSON request body into v.
func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	return json.NewDecoder(r.Body).Decode(v)
}

package core

// errors.go maps domain errors to user-facing messages with stable codes.
// Users quote the code when reporting a problem; the technical error stays
// in the server log.
//
//	SYNC001 - remote fetch failed (retryable)
//	SES001  - empty session pool
//	SES002  - session operation out of sequence
//	SES003  - session not found / expired
//	WRD001  - word not found
//	ERR000  - fallback

import (
	"errors"

	"github.com/linguakit/linguapp/internal/remote"
	"github.com/linguakit/linguapp/internal/session"
)

// UserMessage is a user-friendly rendering of an error.
type UserMessage struct {
	Code    string
	Message string
	Action  string
}

// MapError converts a domain error into its user-facing message.
func MapError(err error) UserMessage {
	switch {
	case errors.Is(err, remote.ErrFetchFailed):
		return UserMessage{
			Code:    "SYNC001",
			Message: "Could not reach the word sheet",
			Action:  "Check your connection and try syncing again",
		}
	case errors.Is(err, session.ErrEmptyPool):
		return UserMessage{
			Code:    "SES001",
			Message: "No words to study in this selection",
			Action:  "Sync the sheet or reset words from the archive",
		}
	case errors.Is(err, session.ErrNotActive):
		return UserMessage{
			Code:    "SES002",
			Message: "This session has already finished",
			Action:  "Start a new session",
		}
	case errors.Is(err, ErrSessionNotFound):
		return UserMessage{
			Code:    "SES003",
			Message: "Session not found",
			Action:  "It may have expired; start a new session",
		}
	case errors.Is(err, ErrWordNotFound):
		return UserMessage{
			Code:    "WRD001",
			Message: "Word not found",
			Action:  "Sync the sheet and try again",
		}
	default:
		return UserMessage{
			Code:    "ERR000",
			Message: "An unexpected error occurred",
			Action:  "Please try again",
		}
	}
}

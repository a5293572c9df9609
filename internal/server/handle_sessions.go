package server

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/satprep/practice/internal/practice"
	"github.com/satprep/practice/internal/timer"
)

// CreateSessionRequest is the request body for POST /api/sessions.
type CreateSessionRequest struct {
	Section        string `json:"section"`
	SectionSeconds *int   `json:"sectionSeconds,omitempty" description:"Section countdown length; defaults to the server setting."`
	AutoStart      bool   `json:"autoStart"`
}

// TimerActionRequest is the optional body for start, pause and reset.
type TimerActionRequest struct {
	SessionID string `path:"sessionID" json:"-"`
	Timer     string `json:"timer" description:"Timer to act on; empty acts on both."`
}

// VisibilityRequest is the request body for POST /api/sessions/{id}/visibility.
type VisibilityRequest struct {
	SessionID string `path:"sessionID" json:"-"`
	Hidden    bool   `json:"hidden"`
}

type sessionParams struct {
	SessionID string `path:"sessionID"`
}

func writeSessionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, practice.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, "session not found")
	case errors.Is(err, practice.ErrUnknownTimer), errors.Is(err, practice.ErrInvalidVisibility),
		errors.Is(err, timer.ErrInvalidDuration):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func handleListSessions(sessions *practice.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, sessions.List())
	}
}

func handleCreateSession(sessions *practice.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateSessionRequest
		if err := readJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		snap, err := sessions.Create(r.Context(), practice.CreateRequest{
			Section:        req.Section,
			SectionSeconds: req.SectionSeconds,
			AutoStart:      req.AutoStart,
		})
		if err != nil {
			writeSessionError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, snap)
	}
}

func handleGetSession(sessions *practice.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, err := sessions.Get(chi.URLParam(r, "sessionID"))
		if err != nil {
			writeSessionError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, snap)
	}
}

func handleTimerAction(action func(id, timer string) (practice.Snapshot, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req TimerActionRequest
		if err := readJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		snap, err := action(chi.URLParam(r, "sessionID"), req.Timer)
		if err != nil {
			writeSessionError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, snap)
	}
}

func handleVisibility(sessions *practice.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req VisibilityRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		v := timer.Visible
		if req.Hidden {
			v = timer.Hidden
		}
		snap, err := sessions.SetVisibility(chi.URLParam(r, "sessionID"), v)
		if err != nil {
			writeSessionError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, snap)
	}
}

func handleFinishSession(logger *slog.Logger, sessions *practice.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "sessionID")
		res, err := sessions.Finish(r.Context(), id)
		if errors.Is(err, practice.ErrSessionNotFound) {
			writeSessionError(w, err)
			return
		}
		if err != nil {
			// The session is gone either way; report the result we have.
			logger.Error("recording session result failed", "session_id", id, "error", err)
		}
		writeJSON(w, http.StatusOK, res)
	}
}

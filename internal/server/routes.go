package server

import (
	"context"
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"

	"github.com/satprep/practice/internal/handler/health"
	"github.com/satprep/practice/internal/practice"
	"github.com/satprep/practice/internal/views"
)

// HistoryReader serves finished session results.
type HistoryReader interface {
	ListResults(ctx context.Context, limit int) ([]practice.Result, error)
	GetResult(ctx context.Context, id string) (practice.Result, error)
}

// Deps are the services the HTTP layer is wired to.
type Deps struct {
	Sessions     *practice.Manager
	Views        *views.Registry
	History      HistoryReader
	Broker       *Broker
	Checks       map[string]health.Checker
	AdminKeyHash string
	SPADir       string
}

func addRoutes(r chi.Router, logger *slog.Logger, deps Deps) {
	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("SAT Practice API", "/openapi.json", "/docs"))
	r.Mount("/healthz", health.NewHandler(logger, deps.Checks).Routes())

	r.Route("/api/views", func(r chi.Router) {
		r.Get("/", handleListCategories(deps.Views))
		r.With(adminKeyMiddleware(deps.AdminKeyHash)).Post("/", handleRegisterView(logger, deps.Views))
		r.Get("/{category}", handleListViews(deps.Views))
		r.Get("/{category}/{id}", handleGetView(deps.Views))
	})

	r.Route("/api/sessions", func(r chi.Router) {
		r.Get("/", handleListSessions(deps.Sessions))
		r.Post("/", handleCreateSession(deps.Sessions))
		r.Get("/{sessionID}", handleGetSession(deps.Sessions))
		r.Delete("/{sessionID}", handleFinishSession(logger, deps.Sessions))
		r.Post("/{sessionID}/start", handleTimerAction(deps.Sessions.Start))
		r.Post("/{sessionID}/pause", handleTimerAction(deps.Sessions.Pause))
		r.Post("/{sessionID}/reset", handleTimerAction(deps.Sessions.Reset))
		r.Post("/{sessionID}/visibility", handleVisibility(deps.Sessions))
		r.Get("/{sessionID}/events", handleEvents(deps.Sessions, deps.Broker))
	})

	r.Get("/api/history", handleListHistory(logger, deps.History))
	r.Get("/api/history/{sessionID}", handleGetHistory(logger, deps.History))

	if deps.SPADir != "" {
		if info, err := os.Stat(deps.SPADir); err == nil && info.IsDir() {
			logger.Info("serving SPA", "dir", deps.SPADir)
			r.NotFound(handleSPA(deps.SPADir))
		}
	}
}

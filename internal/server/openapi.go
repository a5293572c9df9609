package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"

	"github.com/satprep/practice/internal/practice"
	"github.com/satprep/practice/internal/views"
)

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse maps each dependency to its status.
type HealthResponse map[string]struct {
	Status string `json:"status"`
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "SAT Practice API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Practice-session timers and the view-variant catalog.")

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.SetDescription("Returns the health status of backend dependencies.")
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getHealthz)

	// GET /api/views
	listCategories, _ := r.NewOperationContext(http.MethodGet, "/api/views")
	listCategories.SetSummary("List view categories")
	listCategories.SetDescription("Returns every view category with the number of registered variants.")
	listCategories.AddRespStructure([]CategorySummary{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(listCategories)

	// POST /api/views
	registerView, _ := r.NewOperationContext(http.MethodPost, "/api/views")
	registerView.SetSummary("Register view variant")
	registerView.SetDescription("Adds a variant, or replaces the variant with the same id in its category. Requires Bearer admin key.")
	registerView.AddReqStructure(ViewRequest{})
	registerView.AddRespStructure(views.Metadata{}, openapi.WithHTTPStatus(http.StatusOK))
	registerView.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	registerView.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	registerView.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusForbidden))
	_ = r.AddOperation(registerView)

	// GET /api/views/{category}
	listViews, _ := r.NewOperationContext(http.MethodGet, "/api/views/{category}")
	listViews.SetSummary("List view variants")
	listViews.SetDescription("Returns the category's variants ordered by ascending id.")
	listViews.AddReqStructure(viewListParams{})
	listViews.AddRespStructure([]views.Metadata{}, openapi.WithHTTPStatus(http.StatusOK))
	listViews.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(listViews)

	// GET /api/views/{category}/{id}
	getView, _ := r.NewOperationContext(http.MethodGet, "/api/views/{category}/{id}")
	getView.SetSummary("Get view variant")
	getView.AddReqStructure(viewParams{})
	getView.AddRespStructure(views.Metadata{}, openapi.WithHTTPStatus(http.StatusOK))
	getView.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	getView.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getView)

	// GET /api/sessions
	listSessions, _ := r.NewOperationContext(http.MethodGet, "/api/sessions")
	listSessions.SetSummary("List live sessions")
	listSessions.AddRespStructure([]practice.Snapshot{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(listSessions)

	// POST /api/sessions
	createSession, _ := r.NewOperationContext(http.MethodPost, "/api/sessions")
	createSession.SetSummary("Create session")
	createSession.SetDescription("Creates a session with an elapsed-time stopwatch and a section countdown.")
	createSession.AddReqStructure(CreateSessionRequest{})
	createSession.AddRespStructure(practice.Snapshot{}, openapi.WithHTTPStatus(http.StatusCreated))
	createSession.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(createSession)

	// GET /api/sessions/{sessionID}
	getSession, _ := r.NewOperationContext(http.MethodGet, "/api/sessions/{sessionID}")
	getSession.SetSummary("Get session")
	getSession.AddReqStructure(sessionParams{})
	getSession.AddRespStructure(practice.Snapshot{}, openapi.WithHTTPStatus(http.StatusOK))
	getSession.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getSession)

	// DELETE /api/sessions/{sessionID}
	finishSession, _ := r.NewOperationContext(http.MethodDelete, "/api/sessions/{sessionID}")
	finishSession.SetSummary("Finish session")
	finishSession.SetDescription("Stops both timers and records the result in the history.")
	finishSession.AddReqStructure(sessionParams{})
	finishSession.AddRespStructure(practice.Result{}, openapi.WithHTTPStatus(http.StatusOK))
	finishSession.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(finishSession)

	for _, action := range []struct{ path, summary string }{
		{"/api/sessions/{sessionID}/start", "Start timers"},
		{"/api/sessions/{sessionID}/pause", "Pause timers"},
		{"/api/sessions/{sessionID}/reset", "Reset timers"},
	} {
		op, _ := r.NewOperationContext(http.MethodPost, action.path)
		op.SetSummary(action.summary)
		op.AddReqStructure(TimerActionRequest{})
		op.AddRespStructure(practice.Snapshot{}, openapi.WithHTTPStatus(http.StatusOK))
		op.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
		op.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
		_ = r.AddOperation(op)
	}

	// POST /api/sessions/{sessionID}/visibility
	visibility, _ := r.NewOperationContext(http.MethodPost, "/api/sessions/{sessionID}/visibility")
	visibility.SetSummary("Report page visibility")
	visibility.SetDescription("Hidden pauses both timers; visible resumes the ones that were running before.")
	visibility.AddReqStructure(VisibilityRequest{})
	visibility.AddRespStructure(practice.Snapshot{}, openapi.WithHTTPStatus(http.StatusOK))
	visibility.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(visibility)

	// GET /api/sessions/{sessionID}/events
	getEvents, _ := r.NewOperationContext(http.MethodGet, "/api/sessions/{sessionID}/events")
	getEvents.SetSummary("SSE event stream")
	getEvents.SetDescription("Server-Sent Events stream of timer transitions for one session.")
	getEvents.AddReqStructure(sessionParams{})
	getEvents.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK),
		openapi.WithContentType("text/event-stream"))
	_ = r.AddOperation(getEvents)

	// GET /api/history
	listHistory, _ := r.NewOperationContext(http.MethodGet, "/api/history")
	listHistory.SetSummary("List finished sessions")
	listHistory.AddReqStructure(historyParams{})
	listHistory.AddRespStructure([]practice.Result{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(listHistory)

	// GET /api/history/{sessionID}
	getHistory, _ := r.NewOperationContext(http.MethodGet, "/api/history/{sessionID}")
	getHistory.SetSummary("Get finished session")
	getHistory.AddReqStructure(sessionParams{})
	getHistory.AddRespStructure(practice.Result{}, openapi.WithHTTPStatus(http.StatusOK))
	getHistory.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getHistory)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}

package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/satprep/practice/internal/views"
)

// CategorySummary is one entry of GET /api/views.
type CategorySummary struct {
	Category views.Category `json:"category"`
	Count    int            `json:"count"`
}

// ViewRequest is the request body for POST /api/views.
type ViewRequest struct {
	ID             int      `json:"id"`
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Category       string   `json:"category"`
	Tags           []string `json:"tags,omitempty"`
	IsExperimental bool     `json:"isExperimental"`
}

type viewListParams struct {
	Category     string `path:"category"`
	Tag          string `query:"tag" description:"Only views carrying this tag."`
	Experimental string `query:"experimental" description:"Set to false to hide experimental views."`
}

type viewParams struct {
	Category string `path:"category"`
	ID       int    `path:"id"`
}

func handleListCategories(reg *views.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cats := views.Categories()
		resp := make([]CategorySummary, 0, len(cats))
		for _, c := range cats {
			resp = append(resp, CategorySummary{Category: c, Count: reg.Count(c)})
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func handleListViews(reg *views.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := views.ParseCategory(chi.URLParam(r, "category"))
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		filter := views.Filter{Tag: strings.TrimSpace(r.URL.Query().Get("tag"))}
		if raw := r.URL.Query().Get("experimental"); raw != "" {
			include, err := strconv.ParseBool(raw)
			if err != nil {
				writeError(w, http.StatusBadRequest, "experimental must be a boolean")
				return
			}
			filter.HideExperimental = !include
		}

		writeJSON(w, http.StatusOK, reg.Query(c, filter))
	}
}

func handleGetView(reg *views.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := views.ParseCategory(chi.URLParam(r, "category"))
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "id must be an integer")
			return
		}

		m, ok := reg.ByID(c, id)
		if !ok {
			writeError(w, http.StatusNotFound, "view not found")
			return
		}
		writeJSON(w, http.StatusOK, m)
	}
}

func handleRegisterView(logger *slog.Logger, reg *views.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ViewRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		req.Name = strings.TrimSpace(req.Name)
		if req.Name == "" {
			writeError(w, http.StatusBadRequest, "name is required")
			return
		}

		m := views.Metadata{
			ID:           req.ID,
			Name:         req.Name,
			Description:  req.Description,
			Category:     views.Category(req.Category),
			Tags:         req.Tags,
			Experimental: req.IsExperimental,
		}
		if err := reg.Register(m); err != nil {
			if errors.Is(err, views.ErrUnknownCategory) {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		logger.Info("view registered", "category", m.Category, "id", m.ID, "name", m.Name)
		stored, _ := reg.ByID(m.Category, m.ID)
		writeJSON(w, http.StatusOK, stored)
	}
}

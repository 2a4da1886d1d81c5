// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/quickly-judge/cliparse"
	"github.com/danielhkuo/quickly-judge/judging"
	"github.com/danielhkuo/quickly-judge/middleware"
	"github.com/danielhkuo/quickly-judge/models"
	"github.com/danielhkuo/quickly-judge/phase"
)

// RankingsHandler serves the organizer dashboard
type RankingsHandler struct {
	svc    *judging.Service
	phases *phase.Manager
	cfg    cliparse.Config
}

func NewRankingsHandler(svc *judging.Service, phases *phase.Manager, cfg cliparse.Config) *RankingsHandler {
	return &RankingsHandler{svc: svc, phases: phases, cfg: cfg}
}

// GetRankings handles GET /admin/rankings
// Expo phase ranks every project by win rate; panel phase ranks finalists
// by rubric average.
func (h *RankingsHandler) GetRankings(w http.ResponseWriter, r *http.Request) {
	current := h.phases.Current()
	resp := models.RankingsResponse{Phase: current}

	switch current {
	case models.PhasePanel:
		rubric, err := h.svc.RankByRubric(r.Context())
		if err != nil {
			writeError(w, err, "rank finalists")
			return
		}
		resp.Rubric = rubric
	default:
		rankings, err := h.svc.RankByWinRate(r.Context())
		if err != nil {
			writeError(w, err, "rank projects")
			return
		}
		resp.Rankings = rankings
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// GetProjectRubric handles GET /admin/projects/{id}/rubric
func (h *RankingsHandler) GetProjectRubric(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("id")
	if projectID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "project ID is required")
		return
	}

	avg, err := h.svc.AverageRubric(r.Context(), projectID)
	if err != nil {
		writeError(w, err, "average rubric scores")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, avg)
}

// SelectFinalists handles POST /admin/finalists
// An empty body or missing count uses the configured default.
func (h *RankingsHandler) SelectFinalists(w http.ResponseWriter, r *http.Request) {
	var req models.SelectFinalistsRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil && err != io.EOF {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, &judging.ValidationError{Entity: "finalist selection", Err: err}, "validate finalist selection")
		return
	}

	count := h.cfg.DefaultFinalists
	if req.Count != nil {
		count = *req.Count
	}

	finalists, err := h.svc.SelectFinalists(r.Context(), count)
	if err != nil {
		writeError(w, err, "select finalists")
		return
	}

	slog.Info("finalists selected", "requested", count, "selected", len(finalists))

	middleware.JSONResponse(w, http.StatusOK, models.FinalistsResponse{Finalists: finalists})
}

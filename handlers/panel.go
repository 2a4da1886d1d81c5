// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/quickly-judge/judging"
	"github.com/danielhkuo/quickly-judge/middleware"
	"github.com/danielhkuo/quickly-judge/models"
	"github.com/danielhkuo/quickly-judge/phase"
	"github.com/danielhkuo/quickly-judge/store"
)

// PanelHandler serves rubric judging of finalists
type PanelHandler struct {
	svc    *judging.Service
	store  *store.Store
	phases *phase.Manager
}

func NewPanelHandler(svc *judging.Service, st *store.Store, phases *phase.Manager) *PanelHandler {
	return &PanelHandler{svc: svc, store: st, phases: phases}
}

// ListFinalists handles GET /judge/finalists
func (h *PanelHandler) ListFinalists(w http.ResponseWriter, r *http.Request) {
	projects, err := h.store.ListProjects(r.Context())
	if err != nil {
		writeError(w, err, "list finalists")
		return
	}

	finalists := []models.Project{}
	for _, p := range projects {
		if p.IsFinalist {
			finalists = append(finalists, p)
		}
	}

	middleware.JSONResponse(w, http.StatusOK, models.FinalistsResponse{Finalists: finalists})
}

// SubmitRubric handles POST /judge/rubric-scores
// A second submission for the same project replaces the first (200 instead of 201).
func (h *PanelHandler) SubmitRubric(w http.ResponseWriter, r *http.Request) {
	judgeID, ok := judgeID(w, r)
	if !ok {
		return
	}
	if h.phases.Current() != models.PhasePanel {
		writeError(w, errWrongPhase, "submit rubric score")
		return
	}

	var req models.SubmitRubricRequest
	if !decodeRequest(w, r, "rubric score", &req) {
		return
	}

	saved, updated, err := h.svc.SubmitRubric(r.Context(), models.RubricScore{
		JudgeID:               judgeID,
		ProjectID:             req.ProjectID,
		Originality:           req.Originality,
		TechnicalComplexity:   req.TechnicalComplexity,
		Impact:                req.Impact,
		LearningCollaboration: req.LearningCollaboration,
		Comments:              req.Comments,
	})
	if err != nil {
		writeError(w, err, "submit rubric score")
		return
	}

	slog.Info("rubric score saved",
		"judge_id", judgeID,
		"project_id", saved.ProjectID,
		"updated", updated,
	)

	status := http.StatusCreated
	if updated {
		status = http.StatusOK
	}
	middleware.JSONResponse(w, status, saved)
}

// ListRubricScores handles GET /judge/rubric-scores
func (h *PanelHandler) ListRubricScores(w http.ResponseWriter, r *http.Request) {
	judgeID, ok := judgeID(w, r)
	if !ok {
		return
	}

	scores, err := h.store.ListRubricScores(r.Context(), judging.RubricFilter{JudgeID: judgeID})
	if err != nil {
		writeError(w, err, "list rubric scores")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, scores)
}

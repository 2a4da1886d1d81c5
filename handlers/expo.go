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

// ExpoHandler serves pairwise judging
type ExpoHandler struct {
	svc    *judging.Service
	store  *store.Store
	phases *phase.Manager
}

func NewExpoHandler(svc *judging.Service, st *store.Store, phases *phase.Manager) *ExpoHandler {
	return &ExpoHandler{svc: svc, store: st, phases: phases}
}

// NextPair handles GET /judge/next-pair
// Returns {"pair": null} when fewer than two projects exist.
func (h *ExpoHandler) NextPair(w http.ResponseWriter, r *http.Request) {
	judgeID, ok := judgeID(w, r)
	if !ok {
		return
	}
	if h.phases.Current() != models.PhaseExpo {
		writeError(w, errWrongPhase, "serve pair")
		return
	}

	pair, err := h.svc.NextPair(r.Context(), judgeID)
	if err != nil {
		writeError(w, err, "select next pair")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.NextPairResponse{Pair: pair})
}

// SubmitComparison handles POST /judge/comparisons
func (h *ExpoHandler) SubmitComparison(w http.ResponseWriter, r *http.Request) {
	judgeID, ok := judgeID(w, r)
	if !ok {
		return
	}
	if h.phases.Current() != models.PhaseExpo {
		writeError(w, errWrongPhase, "record comparison")
		return
	}

	var req models.SubmitComparisonRequest
	if !decodeRequest(w, r, "comparison", &req) {
		return
	}

	saved, err := h.svc.RecordComparison(r.Context(), models.Comparison{
		JudgeID:    judgeID,
		ProjectAID: req.ProjectAID,
		ProjectBID: req.ProjectBID,
		WinnerID:   req.WinnerID,
	})
	if err != nil {
		writeError(w, err, "record comparison")
		return
	}

	slog.Info("comparison recorded",
		"judge_id", judgeID,
		"comparison_id", saved.ID,
		"skipped", saved.WinnerID == nil,
	)

	middleware.JSONResponse(w, http.StatusCreated, saved)
}

// ListComparisons handles GET /judge/comparisons
func (h *ExpoHandler) ListComparisons(w http.ResponseWriter, r *http.Request) {
	judgeID, ok := judgeID(w, r)
	if !ok {
		return
	}

	comparisons, err := h.store.ListComparisons(r.Context(), judgeID)
	if err != nil {
		writeError(w, err, "list comparisons")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, comparisons)
}

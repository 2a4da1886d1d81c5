// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/quickly-judge/auth"
	"github.com/danielhkuo/quickly-judge/cliparse"
	"github.com/danielhkuo/quickly-judge/middleware"
	"github.com/danielhkuo/quickly-judge/models"
	"github.com/danielhkuo/quickly-judge/phase"
	"github.com/danielhkuo/quickly-judge/store"
)

type JudgeHandler struct {
	store  *store.Store
	phases *phase.Manager
	cfg    cliparse.Config
}

func NewJudgeHandler(st *store.Store, phases *phase.Manager, cfg cliparse.Config) *JudgeHandler {
	return &JudgeHandler{store: st, phases: phases, cfg: cfg}
}

// ListJudges handles GET /admin/judges
func (h *JudgeHandler) ListJudges(w http.ResponseWriter, r *http.Request) {
	judges, err := h.store.ListJudges(r.Context())
	if err != nil {
		writeError(w, err, "list judges")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, judges)
}

// CreateJudge handles POST /admin/judges
func (h *JudgeHandler) CreateJudge(w http.ResponseWriter, r *http.Request) {
	var req models.CreateJudgeRequest
	if !decodeRequest(w, r, "judge", &req) {
		return
	}

	judge, err := h.store.CreateJudge(r.Context(), models.Judge{Name: req.Name, Email: req.Email})
	if err != nil {
		writeError(w, err, "create judge")
		return
	}

	slog.Info("judge created", "judge_id", judge.ID)

	middleware.JSONResponse(w, http.StatusCreated, judge)
}

// DeleteJudge handles DELETE /admin/judges/{id}
func (h *JudgeHandler) DeleteJudge(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "judge ID is required")
		return
	}

	if err := h.store.DeleteJudge(r.Context(), id); err != nil {
		writeError(w, err, "delete judge")
		return
	}

	slog.Info("judge deleted", "judge_id", id)

	w.WriteHeader(http.StatusNoContent)
}

// SignIn handles POST /judges/sign-in
// Judges sign in with the email an organizer registered. The response tells
// the client which phase UI to open.
func (h *JudgeHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req models.SignInRequest
	if !decodeRequest(w, r, "sign-in", &req) {
		return
	}

	judge, err := h.store.GetJudgeByEmail(r.Context(), req.Email)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "No judge registered with that email")
		return
	}
	if err != nil {
		writeError(w, err, "sign in")
		return
	}

	token, err := auth.IssueJudgeToken(judge.ID, judge.Name, h.cfg.SessionSecret, h.cfg.SessionTTL, time.Now())
	if err != nil {
		writeError(w, err, "issue session")
		return
	}

	slog.Info("judge signed in", "judge_id", judge.ID, "remote", middleware.GetClientIP(r))

	middleware.JSONResponse(w, http.StatusOK, models.SignInResponse{
		Token: token,
		Judge: judge,
		Phase: h.phases.Current(),
	})
}

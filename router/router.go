// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/quickly-judge/cliparse"
	"github.com/danielhkuo/quickly-judge/handlers"
	"github.com/danielhkuo/quickly-judge/judging"
	"github.com/danielhkuo/quickly-judge/metrics"
	"github.com/danielhkuo/quickly-judge/middleware"
	"github.com/danielhkuo/quickly-judge/phase"
	"github.com/danielhkuo/quickly-judge/store"
)

// Deps are the long-lived components shared by every handler
type Deps struct {
	Store   *store.Store
	Phases  *phase.Manager
	Metrics *metrics.Collector
	Config  cliparse.Config
}

func NewRouter(deps Deps) *http.ServeMux {
	mux := http.NewServeMux()
	cfg := deps.Config
	if deps.Metrics == nil {
		deps.Metrics = metrics.New()
	}

	svc := judging.NewService(deps.Store, judging.WithRecorder(deps.Metrics))

	// Initialize handlers
	projectHandler := handlers.NewProjectHandler(deps.Store)
	judgeHandler := handlers.NewJudgeHandler(deps.Store, deps.Phases, cfg)
	expoHandler := handlers.NewExpoHandler(svc, deps.Store, deps.Phases)
	panelHandler := handlers.NewPanelHandler(svc, deps.Store, deps.Phases)
	rankingsHandler := handlers.NewRankingsHandler(svc, deps.Phases, cfg)
	phaseHandler := handlers.NewPhaseHandler(deps.Phases, deps.Metrics)

	signInLimiter := middleware.NewRateLimiter(cfg.SignInRPS, cfg.SignInBurst())

	handle := func(pattern string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, middleware.WithMetrics(deps.Metrics, pattern, middleware.WithLogging(h)))
	}
	admin := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.RequireAdmin(cfg.AdminKey, h)
	}
	judge := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.RequireJudge(cfg.SessionSecret, deps.Store, h)
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	mux.Handle("GET /metrics", deps.Metrics.Handler())

	// Project and judge management (organizer)
	handle("GET /admin/projects", admin(projectHandler.ListProjects))
	handle("POST /admin/projects", admin(projectHandler.CreateProject))
	handle("PUT /admin/projects/{id}", admin(projectHandler.UpdateProject))
	handle("DELETE /admin/projects/{id}", admin(projectHandler.DeleteProject))
	handle("GET /admin/judges", admin(judgeHandler.ListJudges))
	handle("POST /admin/judges", admin(judgeHandler.CreateJudge))
	handle("DELETE /admin/judges/{id}", admin(judgeHandler.DeleteJudge))

	// Dashboard (organizer)
	handle("GET /admin/rankings", admin(rankingsHandler.GetRankings))
	handle("GET /admin/projects/{id}/rubric", admin(rankingsHandler.GetProjectRubric))
	handle("POST /admin/finalists", admin(rankingsHandler.SelectFinalists))
	handle("PUT /admin/phase", admin(phaseHandler.SetPhase))

	// Judge session
	handle("POST /judges/sign-in", signInLimiter.Wrap(judgeHandler.SignIn))

	// Expo judging
	handle("GET /judge/next-pair", judge(expoHandler.NextPair))
	handle("POST /judge/comparisons", judge(expoHandler.SubmitComparison))
	handle("GET /judge/comparisons", judge(expoHandler.ListComparisons))

	// Panel judging
	handle("GET /judge/finalists", judge(panelHandler.ListFinalists))
	handle("POST /judge/rubric-scores", judge(panelHandler.SubmitRubric))
	handle("GET /judge/rubric-scores", judge(panelHandler.ListRubricScores))

	// Phase (public)
	handle("GET /phase", phaseHandler.GetPhase)
	mux.HandleFunc("GET /phase/events", phaseHandler.PhaseEvents)

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("quickly-judge API v1"))
	})

	return mux
}

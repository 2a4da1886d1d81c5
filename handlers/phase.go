// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/quickly-judge/middleware"
	"github.com/danielhkuo/quickly-judge/models"
	"github.com/danielhkuo/quickly-judge/phase"
)

// PhaseGauge is told about every phase change (metrics)
type PhaseGauge interface {
	SetPhase(p models.Phase)
}

type PhaseHandler struct {
	phases    *phase.Manager
	gauge     PhaseGauge
	keepalive time.Duration
}

func NewPhaseHandler(phases *phase.Manager, gauge PhaseGauge) *PhaseHandler {
	if gauge != nil {
		gauge.SetPhase(phases.Current())
	}
	return &PhaseHandler{phases: phases, gauge: gauge, keepalive: 25 * time.Second}
}

// GetPhase handles GET /phase
func (h *PhaseHandler) GetPhase(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, models.PhaseResponse{Phase: h.phases.Current()})
}

// SetPhase handles PUT /admin/phase
func (h *PhaseHandler) SetPhase(w http.ResponseWriter, r *http.Request) {
	var req models.SetPhaseRequest
	if !decodeRequest(w, r, "phase", &req) {
		return
	}

	if err := h.phases.Set(r.Context(), req.Phase); err != nil {
		writeError(w, err, "set phase")
		return
	}
	if h.gauge != nil {
		h.gauge.SetPhase(req.Phase)
	}

	middleware.JSONResponse(w, http.StatusOK, models.PhaseResponse{Phase: h.phases.Current()})
}

// PhaseEvents handles GET /phase/events
// Streams the current phase, then every change, as server-sent events until
// the client disconnects.
func (h *PhaseHandler) PhaseEvents(w http.ResponseWriter, r *http.Request) {
	rc := http.NewResponseController(w)
	// Long-lived stream; the server's write timeout does not apply.
	_ = rc.SetWriteDeadline(time.Time{})

	updates, cancel := h.phases.Subscribe()
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	send := func(p models.Phase) bool {
		if _, err := fmt.Fprintf(w, "event: phase\ndata: {\"phase\":%q}\n\n", p); err != nil {
			return false
		}
		return rc.Flush() == nil
	}

	if !send(h.phases.Current()) {
		return
	}

	ticker := time.NewTicker(h.keepalive)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case p, ok := <-updates:
			if !ok || !send(p) {
				return
			}
		case <-ticker.C:
			if _, err := fmt.Fprint(w, ": keepalive\n\n"); err != nil {
				return
			}
			if err := rc.Flush(); err != nil {
				slog.Debug("phase stream closed", "error", err)
				return
			}
		}
	}
}

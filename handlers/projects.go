// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/quickly-judge/middleware"
	"github.com/danielhkuo/quickly-judge/models"
	"github.com/danielhkuo/quickly-judge/store"
)

type ProjectHandler struct {
	store *store.Store
}

func NewProjectHandler(st *store.Store) *ProjectHandler {
	return &ProjectHandler{store: st}
}

// ListProjects handles GET /admin/projects
func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.store.ListProjects(r.Context())
	if err != nil {
		writeError(w, err, "list projects")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, projects)
}

// CreateProject handles POST /admin/projects
func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req models.CreateProjectRequest
	if !decodeRequest(w, r, "project", &req) {
		return
	}

	project, err := h.store.CreateProject(r.Context(), models.Project{
		Name:        req.Name,
		Description: req.Description,
		TeamMembers: req.TeamMembers,
		TableNumber: req.TableNumber,
	})
	if err != nil {
		writeError(w, err, "create project")
		return
	}

	slog.Info("project created", "project_id", project.ID, "table_number", project.TableNumber)

	middleware.JSONResponse(w, http.StatusCreated, project)
}

// UpdateProject handles PUT /admin/projects/{id}
func (h *ProjectHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("id")
	if projectID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "project ID is required")
		return
	}

	var req models.UpdateProjectRequest
	if !decodeRequest(w, r, "project", &req) {
		return
	}

	project, err := h.store.UpdateProject(r.Context(), projectID, req)
	if err != nil {
		writeError(w, err, "update project")
		return
	}

	slog.Info("project updated", "project_id", projectID)

	middleware.JSONResponse(w, http.StatusOK, project)
}

// DeleteProject handles DELETE /admin/projects/{id}
// Comparisons and rubric scores for the project are deleted with it.
func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("id")
	if projectID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "project ID is required")
		return
	}

	if err := h.store.DeleteProject(r.Context(), projectID); err != nil {
		writeError(w, err, "delete project")
		return
	}

	slog.Info("project deleted", "project_id", projectID)

	w.WriteHeader(http.StatusNoContent)
}

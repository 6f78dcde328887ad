package projects

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"Frostline/internal/auth"
	coolingload "Frostline/internal/calc/coolingload"
	"Frostline/internal/logging"
	"Frostline/internal/project"
	repo "Frostline/internal/repo"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

const maxNameLen = 200

type Handler struct {
	Repo repo.ProjectRepository
}

type saveRequest struct {
	Name   string             `json:"name"`
	Fields coolingload.Fields `json:"fields"`
}

type ProjectResult struct {
	repo.Project
	Result coolingload.Result `json:"result"`
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	list, err := h.Repo.ListProjects(r.Context(), userID)
	if err != nil {
		h.storageError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, list)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	req, ok := decodeSave(w, r)
	if !ok {
		return
	}
	p, err := h.Repo.CreateProject(r.Context(), userID, req.Name, project.Apply(coolingload.Fields{}, req.Fields))
	if err != nil {
		h.storageError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, p)
}

// Get returns the saved fields together with a fresh breakdown.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := target(w, r)
	if !ok {
		return
	}
	p, err := h.Repo.GetProject(r.Context(), userID, id)
	if err != nil {
		h.storageError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, ProjectResult{Project: p, Result: coolingload.Evaluate(p.Fields)})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := target(w, r)
	if !ok {
		return
	}
	req, ok := decodeSave(w, r)
	if !ok {
		return
	}
	p, err := h.Repo.UpdateProject(r.Context(), userID, id, req.Name, project.Apply(coolingload.Fields{}, req.Fields))
	if err != nil {
		h.storageError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, p)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := target(w, r)
	if !ok {
		return
	}
	if err := h.Repo.DeleteProject(r.Context(), userID, id); err != nil {
		h.storageError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func target(w http.ResponseWriter, r *http.Request) (int, uuid.UUID, bool) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return 0, uuid.Nil, false
	}
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid project id", http.StatusBadRequest)
		return 0, uuid.Nil, false
	}
	return userID, id, true
}

func decodeSave(w http.ResponseWriter, r *http.Request) (saveRequest, bool) {
	var req saveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return req, false
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || len(req.Name) > maxNameLen {
		http.Error(w, "Project name required", http.StatusBadRequest)
		return req, false
	}
	if req.Fields == nil {
		req.Fields = coolingload.Fields{}
	}
	return req, true
}

func (h *Handler) storageError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, repo.ErrNotFound) {
		http.Error(w, "Project not found", http.StatusNotFound)
		return
	}
	logging.Ctx(r.Context()).ErrorContext(r.Context(), "project storage failed", slog.Any("error", err))
	http.Error(w, "DB error", http.StatusInternalServerError)
}

// writeJSON marshals v before the status is written.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		logging.Ctx(r.Context()).ErrorContext(r.Context(), "encoding response failed", slog.Any("error", err))
		http.Error(w, "Response encoding error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(b, '\n'))
}

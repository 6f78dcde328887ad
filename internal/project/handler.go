package project

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	coolingload "Frostline/internal/calc/coolingload"
	"Frostline/internal/logging"
)

const maxUploadSize = 1 << 20

type Handler struct{}

type LoadResult struct {
	Fields coolingload.Fields `json:"fields"`
	coolingload.Result
}

// Save returns the posted fields as a project file download.
func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	var fields coolingload.Fields
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	b, err := Encode(fields)
	if err != nil {
		http.Error(w, "Project encoding error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", "attachment; filename=\""+FileName+"\"")
	w.Write(b)
}

// Load merges an uploaded project file over the optional "current" form
// value and recomputes the breakdown. No file selected is a silent no-op.
func (h *Handler) Load(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "Invalid upload", http.StatusBadRequest)
		return
	}

	current := coolingload.Fields{}
	if raw := r.FormValue("current"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &current); err != nil {
			http.Error(w, "Invalid current fields", http.StatusBadRequest)
			return
		}
	}

	data, err := readUpload(r)
	if errors.Is(err, ErrEmptyFileSelection) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err != nil {
		http.Error(w, "Upload read error", http.StatusBadRequest)
		return
	}

	fields, err := Load(current, data)
	if err != nil {
		logging.Ctx(ctx).InfoContext(ctx, "rejected project file", slog.Any("error", err))
		http.Error(w, "Error loading project file.", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(LoadResult{Fields: fields, Result: coolingload.Evaluate(fields)}); err != nil {
		logging.Ctx(ctx).ErrorContext(ctx, "encoding result failed", slog.Any("error", err))
		http.Error(w, "Result encoding error", http.StatusInternalServerError)
	}
}

func readUpload(r *http.Request) ([]byte, error) {
	file, header, err := r.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, ErrEmptyFileSelection
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()
	if header.Filename == "" && header.Size == 0 {
		return nil, ErrEmptyFileSelection
	}
	return io.ReadAll(file)
}

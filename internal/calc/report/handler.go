package report

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	coolingload "Frostline/internal/calc/coolingload"
	"Frostline/internal/logging"
)

type Handler struct {
	// Now defaults to time.Now.
	Now func() time.Time
}

func (h *Handler) XLSX(w http.ResponseWriter, r *http.Request) {
	var fields coolingload.Fields
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, fields); err != nil {
		logging.Ctx(r.Context()).ErrorContext(r.Context(), "xlsx report failed", slog.Any("error", err))
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename=\""+XLSXFileName+"\"")
	w.Write(buf.Bytes())
}

func (h *Handler) PDF(w http.ResponseWriter, r *http.Request) {
	var fields coolingload.Fields
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	now := time.Now
	if h.Now != nil {
		now = h.Now
	}
	var buf bytes.Buffer
	if err := WritePDF(&buf, fields, now()); err != nil {
		logging.Ctx(r.Context()).ErrorContext(r.Context(), "pdf report failed", slog.Any("error", err))
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\""+PDFFileName+"\"")
	w.Write(buf.Bytes())
}

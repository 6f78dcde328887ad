package batch

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"Frostline/internal/logging"
)

type Handler struct{}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Calculate(input)
	if err != nil {
		http.Error(w, "Calculation error: "+err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(res); err != nil {
		logging.Ctx(r.Context()).ErrorContext(r.Context(), "encoding batch failed", slog.Any("error", err))
		http.Error(w, "Result encoding error", http.StatusInternalServerError)
	}
}

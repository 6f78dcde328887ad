package coolingload

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"Frostline/internal/logging"
)

type Result struct {
	Inputs    LoadInputs    `json:"inputs"`
	Breakdown LoadBreakdown `json:"breakdown"`
	Display   Display       `json:"display"`
}

// Evaluate resolves f and computes its breakdown.
func Evaluate(f Fields) Result {
	in := Resolve(f)
	b := Calculate(in)
	return Result{
		Inputs:    in,
		Breakdown: b,
		Display:   Format(b, in.Envelope.Enabled),
	}
}

type Handler struct{}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var fields Fields
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res := Evaluate(fields)
	logging.Ctx(r.Context()).DebugContext(r.Context(), "cooling load calculated",
		slog.Float64("total_kw", res.Breakdown.TotalLoad),
		slog.Float64("required_capacity_kw", res.Breakdown.RequiredCapacity),
	)
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(res); err != nil {
		logging.Ctx(r.Context()).ErrorContext(r.Context(), "encoding result failed", slog.Any("error", err))
		http.Error(w, "Result encoding error", http.StatusInternalServerError)
	}
}

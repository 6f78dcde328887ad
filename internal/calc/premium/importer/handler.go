package importer

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	coolingload "Frostline/internal/calc/coolingload"
	"Frostline/internal/logging"
	"github.com/xuri/excelize/v2"
)

const maxUploadSize = 10 << 20

type Handler struct{}

type Row struct {
	Row    int                `json:"row"`
	Fields coolingload.Fields `json:"fields"`
	coolingload.Result
}

type ImportResult struct {
	Count   int   `json:"count"`
	Results []Row `json:"results"`
}

var errEmptySheet = errors.New("empty sheet")

func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "File required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	res, err := Read(file)
	if errors.Is(err, errEmptySheet) {
		http.Error(w, "Empty sheet", http.StatusBadRequest)
		return
	}
	if err != nil {
		http.Error(w, "Invalid file", http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(res); err != nil {
		logging.Ctx(r.Context()).ErrorContext(r.Context(), "encoding import failed", slog.Any("error", err))
		http.Error(w, "Result encoding error", http.StatusInternalServerError)
	}
}

// Read evaluates every data row of the first sheet. The header row holds
// field ids; columns with unknown ids are ignored.
func Read(r io.Reader) (ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return ImportResult{}, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return ImportResult{}, fmt.Errorf("reading rows: %w", err)
	}
	if len(rows) < 2 {
		return ImportResult{}, errEmptySheet
	}

	header := rows[0]
	out := ImportResult{Results: []Row{}}
	for i := 1; i < len(rows); i++ {
		fields := parseRow(header, rows[i])
		if len(fields) == 0 {
			continue
		}
		out.Results = append(out.Results, Row{Row: i + 1, Fields: fields, Result: coolingload.Evaluate(fields)})
	}
	out.Count = len(out.Results)
	return out, nil
}

func parseRow(header, row []string) coolingload.Fields {
	fields := coolingload.Fields{}
	for c, cell := range row {
		if c >= len(header) {
			break
		}
		id := strings.TrimSpace(header[c])
		sp, ok := coolingload.Lookup(id)
		if !ok {
			continue
		}
		cell = strings.TrimSpace(cell)
		if cell == "" {
			continue
		}
		if sp.Kind == coolingload.KindCheckbox {
			fields[id] = isTrue(cell)
			continue
		}
		fields[id] = cell
	}
	return fields
}

func isTrue(s string) bool {
	switch strings.ToLower(s) {
	case "1", "true", "yes", "y", "x":
		return true
	}
	return false
}

package batch

import (
	"fmt"

	coolingload "Frostline/internal/calc/coolingload"
)

const maxItems = 200

type Input struct {
	Items []coolingload.Fields `json:"items"`
}

type Output struct {
	Results []coolingload.Result `json:"results"`
}

// Calculate evaluates every snapshot independently.
func Calculate(in Input) (Output, error) {
	if len(in.Items) == 0 {
		return Output{}, fmt.Errorf("no items")
	}
	if len(in.Items) > maxItems {
		return Output{}, fmt.Errorf("too many items: %d > %d", len(in.Items), maxItems)
	}
	out := Output{Results: make([]coolingload.Result, 0, len(in.Items))}
	for _, item := range in.Items {
		out.Results = append(out.Results, coolingload.Evaluate(item))
	}
	return out, nil
}

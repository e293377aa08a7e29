package batch

import (
	"errors"
	"fmt"

	"GlassFrame/internal/calc/frame"
)

var ErrNoItems = errors.New("no items")

type Item struct {
	Mode   string           `json:"mode"`
	Inputs frame.FormValues `json:"inputs"`
}

type Input struct {
	Items []Item `json:"items"`
}

type Result struct {
	Count   int            `json:"count"`
	Skipped int            `json:"skipped,omitempty"`
	Results []frame.Result `json:"results"`
}

// Calculate evaluates every item. An unknown mode fails the whole batch.
func Calculate(in Input, decimals int) (Result, error) {
	if len(in.Items) == 0 {
		return Result{}, ErrNoItems
	}
	out := Result{Results: make([]frame.Result, 0, len(in.Items))}
	for i, item := range in.Items {
		res, err := frame.Calculate(frame.Request{Mode: item.Mode, Inputs: item.Inputs}, decimals)
		if err != nil {
			return Result{}, fmt.Errorf("item %d: %w", i, err)
		}
		out.Results = append(out.Results, res)
	}
	out.Count = len(out.Results)
	return out, nil
}

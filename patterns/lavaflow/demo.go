package lavaflow

import (
	"context"
	"fmt"
	"io"
)

// Demo shows the processor's dormant modes next to the one path that matters.
func Demo(_ context.Context, w io.Writer) error {
	data := []int{10, 70, 100}

	fmt.Fprintln(w, "-- smell: DataProcessor with three eras of modes")
	dp := NewDataProcessor()
	fmt.Fprintf(w, "  current: %v\n", dp.ProcessData(data))
	dp.legacyMode = true
	fmt.Fprintf(w, "  legacy (never enabled): %v\n", dp.ProcessData(data))
	dp.legacyMode, dp.useOldAlgorithm = false, true
	fmt.Fprintf(w, "  old algorithm (never enabled): %v\n", dp.ProcessData(data))

	fmt.Fprintln(w, "-- remedy: pinned by tests, then removed")
	fmt.Fprintf(w, "  Double: %v\n", Double(data))
	fmt.Fprintf(w, "  Redact: %v\n", Redact(map[string]any{"name": "ada", "password": "x"}))
	return nil
}

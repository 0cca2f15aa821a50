package strata

import (
	"fmt"
	"log/slog"
)

// Counts summarizes one worker's completed run. Total is the number of input
// files the worker attempted after incremental and partition filtering;
// Succeeded and Failed split it by extraction outcome.
type Counts struct {
	Total     int64
	Succeeded int64
	Failed    int64
}

// LogValue implements slog.LogValuer for structured logging.
func (c Counts) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("total", c.Total),
		slog.Int64("succeeded", c.Succeeded),
		slog.Int64("failed", c.Failed),
	)
}

func (c Counts) String() string {
	return fmt.Sprintf("total=%d succeeded=%d failed=%d", c.Total, c.Succeeded, c.Failed)
}

// Package report holds the ambient collaborators of cmd/cdclsat: a running
// conflicts/sec average and a structured per-instance logger. Neither is
// imported by internal/sat, which reports outcomes through return values
// only.
package report

import (
	"io"
	"log/slog"
	"time"

	"github.com/halvorsen-dev/cdclsat/internal/sat"
)

// Logger emits one structured line per instance solved, the structured
// counterpart to the teacher's own fixed-width "c conflicts: ... c status:
// ..." report lines (main.go).
type Logger struct {
	slog *slog.Logger
}

// NewLogger returns a Logger writing JSON lines to w.
func NewLogger(w io.Writer) *Logger {
	return &Logger{slog: slog.New(slog.NewJSONHandler(w, nil))}
}

// InstanceSolved logs the outcome of one Solve call.
func (l *Logger) InstanceSolved(instance string, status sat.Status, conflicts, decisions int64, elapsed time.Duration) {
	l.slog.Info("instance solved",
		"instance", instance,
		"status", status.String(),
		"conflicts", conflicts,
		"decisions", decisions,
		"elapsed", elapsed.String(),
	)
}

// Separator logs a summary line closing out a batch of instances, the
// structured analog of the teacher's blank-line report separator.
func (l *Logger) Separator(total int, elapsed time.Duration, conflictsPerSec float64) {
	l.slog.Info("bench complete",
		"instances", total,
		"elapsed", elapsed.String(),
		"conflicts_per_sec", conflictsPerSec,
	)
}

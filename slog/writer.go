package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/gridiron"
)

// Ensure LoggingArtifactWriter implements gridiron.ArtifactWriter.
var _ gridiron.ArtifactWriter = (*LoggingArtifactWriter)(nil)

// LoggingArtifactWriter wraps an ArtifactWriter with logging.
type LoggingArtifactWriter struct {
	next   gridiron.ArtifactWriter
	name   string
	logger *slog.Logger
}

// NewLoggingArtifactWriter creates a new LoggingArtifactWriter. name
// identifies the destination in log output.
func NewLoggingArtifactWriter(next gridiron.ArtifactWriter, name string, logger *slog.Logger) *LoggingArtifactWriter {
	return &LoggingArtifactWriter{next: next, name: name, logger: logger}
}

// WriteArtifact delegates to the wrapped writer and logs the outcome.
func (w *LoggingArtifactWriter) WriteArtifact(ctx context.Context, a *gridiron.Artifact) (err error) {
	defer func(begin time.Time) {
		w.logger.Info("write artifact",
			"dest", w.name,
			"teams", len(a.ByTeam),
			"records", a.ByTeam.Len(),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return w.next.WriteArtifact(ctx, a)
}

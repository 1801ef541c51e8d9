package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/gridiron"
)

// Ensure LoggingParser implements gridiron.Parser.
var _ gridiron.Parser = (*LoggingParser)(nil)

// LoggingParser wraps a Parser with logging. A document that yields no
// teams is logged at warn level since an unrecognized page shape and an
// empty classification look the same downstream.
type LoggingParser struct {
	next   gridiron.Parser
	logger *slog.Logger
}

// NewLoggingParser creates a new LoggingParser.
func NewLoggingParser(next gridiron.Parser, logger *slog.Logger) *LoggingParser {
	return &LoggingParser{next: next, logger: logger}
}

// Parse delegates to the wrapped parser and logs team and record counts.
func (p *LoggingParser) Parse(doc *gridiron.RawDocument) (index gridiron.TeamIndex, err error) {
	defer func(begin time.Time) {
		level := slog.LevelInfo
		if err == nil && len(index) == 0 {
			level = slog.LevelWarn
		}
		var class string
		if doc != nil {
			class = doc.Class
		}
		p.logger.Log(context.Background(), level, "parse",
			"class", class,
			"teams", len(index),
			"records", index.Len(),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return p.next.Parse(doc)
}

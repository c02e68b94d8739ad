package reporter

import (
	"context"
	"log/slog"

	"github.com/benbjohnson/cssparse"
	"github.com/benbjohnson/cssparse/parser"
	"github.com/benbjohnson/cssparse/token"
)

// Slog writes reported errors to an slog.Logger at Warn level.
// Lines and columns are logged one-based.
type Slog struct {
	logger *slog.Logger
}

// NewSlog returns a reporter writing to logger. A nil logger uses slog.Default.
func NewSlog(logger *slog.Logger) *Slog {
	if logger == nil {
		logger = slog.Default()
	}
	return &Slog{logger: logger}
}

// ReportError logs the error.
func (r *Slog) ReportError(urlData *css.URLData, pos token.Pos, err parser.ContextualError) {
	attrs := []slog.Attr{
		slog.String("url", urlData.String()),
		slog.Int("line", pos.Line+1),
		slog.Int("column", pos.Char+1),
		slog.String("kind", err.Kind.String()),
	}
	if err.Source != "" {
		attrs = append(attrs, slog.String("source", err.Source))
	}
	if err.Err != nil {
		attrs = append(attrs, slog.String("error", err.Err.Error()))
	}

	r.logger.LogAttrs(context.Background(), slog.LevelWarn, "css error", attrs...)
}

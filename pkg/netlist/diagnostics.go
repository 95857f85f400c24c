package netlist

import (
	"context"
	"log/slog"
)

// Warning is a non-fatal finding of the validator.
type Warning struct {
	Pos Position
	Msg string
}

func (w Warning) String() string {
	return (&Error{Pos: w.Pos, Msg: w.Msg}).Error()
}

// Sink receives warnings while a netlist is validated.
type Sink interface {
	Warn(w Warning)
}

// CollectSink keeps every warning in memory.
type CollectSink struct {
	Warnings []Warning
}

func (s *CollectSink) Warn(w Warning) { s.Warnings = append(s.Warnings, w) }

// DiscardSink drops all warnings.
type DiscardSink struct{}

func (DiscardSink) Warn(Warning) {}

// SlogSink logs warnings through a structured logger.
type SlogSink struct {
	logger *slog.Logger
}

// NewSlogSink returns a sink that logs to logger, or to the default logger
// when logger is nil.
func NewSlogSink(logger *slog.Logger) *SlogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogSink{logger: logger}
}

func (s *SlogSink) Warn(w Warning) {
	attrs := []slog.Attr{}
	if w.Pos.Filename != "" {
		attrs = append(attrs, slog.String("file", w.Pos.Filename))
	}
	if w.Pos.Line != 0 {
		attrs = append(attrs, slog.Int("line", w.Pos.Line), slog.Int("col", w.Pos.Column))
	}
	s.logger.LogAttrs(context.Background(), slog.LevelWarn, w.Msg, attrs...)
}

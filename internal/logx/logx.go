// Package logx defines the severity-tagged log sink used across the engine.
// The sink is injected at construction so tests can capture output and
// multiple engine instances can log independently.
package logx

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/charmbracelet/log"
)

// Sink receives severity-tagged messages from the engine and backend.
// Key/value pairs follow the message in alternating order.
type Sink interface {
	// Info reports informational and debug messages.
	Info(msg string, keyvals ...any)
	// Warn reports warnings and performance problems.
	Warn(msg string, keyvals ...any)
	// Error reports failures. This is the default severity for
	// anything that aborts an operation.
	Error(msg string, keyvals ...any)
}

// Default returns the standard sink: a charmbracelet logger writing to
// stdout with caller reporting enabled.
func Default() Sink {
	return NewCharmSink(os.Stdout)
}

// charmSink adapts a charmbracelet logger to the Sink interface.
type charmSink struct {
	l *log.Logger
}

// NewCharmSink creates a sink backed by charmbracelet/log writing to w.
func NewCharmSink(w io.Writer) Sink {
	l := log.NewWithOptions(w, log.Options{
		ReportCaller:    true,
		CallerOffset:    1,
		ReportTimestamp: false,
		Prefix:          "physkit",
	})
	return &charmSink{l: l}
}

func (s *charmSink) Info(msg string, keyvals ...any)  { s.l.Info(msg, keyvals...) }
func (s *charmSink) Warn(msg string, keyvals ...any)  { s.l.Warn(msg, keyvals...) }
func (s *charmSink) Error(msg string, keyvals ...any) { s.l.Error(msg, keyvals...) }

// plainSink writes the classic bracketed format:
//
//	[Level] : message key=value
//	    file @ line
type plainSink struct {
	w io.Writer
}

// NewPlainSink creates a sink emitting "[Level] : msg" lines followed by the
// call site, matching the legacy console format.
func NewPlainSink(w io.Writer) Sink {
	return &plainSink{w: w}
}

func (s *plainSink) Info(msg string, keyvals ...any)  { s.emit("Info", msg, keyvals) }
func (s *plainSink) Warn(msg string, keyvals ...any)  { s.emit("Warning", msg, keyvals) }
func (s *plainSink) Error(msg string, keyvals ...any) { s.emit("Error", msg, keyvals) }

func (s *plainSink) emit(level, msg string, keyvals []any) {
	fmt.Fprintf(s.w, "[%s] : %s", level, msg)
	for i := 0; i+1 < len(keyvals); i += 2 {
		fmt.Fprintf(s.w, " %v=%v", keyvals[i], keyvals[i+1])
	}
	fmt.Fprintln(s.w)
	if _, file, line, ok := runtime.Caller(2); ok {
		fmt.Fprintf(s.w, "    %s @ %d\n", file, line)
	}
}

// Nop returns a sink that discards everything. Useful in tests that only
// care about return values.
func Nop() Sink {
	return nopSink{}
}

type nopSink struct{}

func (nopSink) Info(string, ...any)  {}
func (nopSink) Warn(string, ...any)  {}
func (nopSink) Error(string, ...any) {}

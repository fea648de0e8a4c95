package report

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// Logger is the narrow logging capability the resolver and the ledgers
// depend on. Anything that can record an info, warning or error line works.
type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

type slogLogger struct {
	l *slog.Logger
}

// NewLogger wraps a slog.Logger in the Logger interface.
func NewLogger(l *slog.Logger) Logger {
	return slogLogger{l: l}
}

func (s slogLogger) Infof(format string, args ...any) {
	s.l.Info(fmt.Sprintf(format, args...))
}

func (s slogLogger) Warnf(format string, args ...any) {
	s.l.Warn(fmt.Sprintf(format, args...))
}

func (s slogLogger) Errorf(format string, args ...any) {
	s.l.Error(fmt.Sprintf(format, args...))
}

type nopLogger struct{}

// NopLogger discards everything. Default for library use and tests.
func NopLogger() Logger { return nopLogger{} }

func (nopLogger) Infof(string, ...any)  {}
func (nopLogger) Warnf(string, ...any)  {}
func (nopLogger) Errorf(string, ...any) {}

// NewRunLogger opens a timestamped log file under dir and returns a Logger
// that writes to both the file and stderr. The caller closes the file when
// the run is done.
func NewRunLogger(dir string) (Logger, *os.File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}

	path := filepath.Join(dir, time.Now().Format("20060102_150405")+".log")
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create log file: %w", err)
	}

	h := slog.NewTextHandler(io.MultiWriter(os.Stderr, f), nil)
	return NewLogger(slog.New(h)), f, nil
}

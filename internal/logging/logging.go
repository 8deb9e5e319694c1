package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Logger prints progress lines to the console and, when a log file is
// configured, mirrors them as timestamped lines appended to that file.
type Logger struct {
	out   io.Writer
	file  *os.File
	debug bool
}

// New creates a console logger writing to out.
func New(out io.Writer, debug bool) *Logger {
	if out == nil {
		out = io.Discard
	}
	return &Logger{out: out, debug: debug}
}

// Discard returns a logger that drops everything.
func Discard() *Logger { return New(io.Discard, false) }

// OpenFile starts mirroring log lines into path, creating parent dirs.
func (l *Logger) OpenFile(path string) error {
	if path == "" {
		return nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("logging: ensure log dir: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("logging: open log file: %w", err)
	}
	l.file = f
	return nil
}

// Close releases the file handle.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// Infof prints a plain progress line.
func (l *Logger) Infof(format string, args ...any) {
	l.emit("", format, args...)
}

// Successf prints a line prefixed with a check mark.
func (l *Logger) Successf(format string, args ...any) {
	l.emit("✓ ", format, args...)
}

// Warnf prints a warning line.
func (l *Logger) Warnf(format string, args ...any) {
	l.emit("⚠ Warning: ", format, args...)
}

// Debugf prints only when debug output is enabled.
func (l *Logger) Debugf(format string, args ...any) {
	if l == nil || !l.debug {
		return
	}
	l.emit("· ", format, args...)
}

func (l *Logger) emit(prefix, format string, args ...any) {
	if l == nil {
		return
	}
	line := prefix + strings.TrimRight(fmt.Sprintf(format, args...), "\n")
	fmt.Fprintln(l.out, line)
	if l.file != nil {
		timestamp := time.Now().Format(time.RFC3339)
		fmt.Fprintf(l.file, "[%s] %s\n", timestamp, line)
	}
}

package utils

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// Logger writes levelled lines ("INFO: ...", "WARN: ...", "ERROR: ...").
type Logger struct {
	mu     sync.Mutex
	file   *os.File
	logger *log.Logger
}

// NewLogger opens (or creates) filePath in append mode.
func NewLogger(filePath string) (*Logger, error) {
	if err := os.MkdirAll(filepath.Dir(filePath), 0700); err != nil {
		return nil, fmt.Errorf("failed to create log dir: %w", err)
	}
	file, err := os.OpenFile(filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return &Logger{file: file, logger: log.New(file, "", log.LstdFlags)}, nil
}

// NewWriterLogger logs to w; Close is a no-op.
func NewWriterLogger(w io.Writer) *Logger {
	return &Logger{logger: log.New(w, "", log.LstdFlags)}
}

// Discard returns a logger that drops everything.
func Discard() *Logger { return NewWriterLogger(io.Discard) }

func (l *Logger) print(prefix, msg string) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logger.SetPrefix(prefix)
	l.logger.Println(msg)
}

func (l *Logger) Info(msg string)  { l.print("INFO: ", msg) }
func (l *Logger) Warn(msg string)  { l.print("WARN: ", msg) }
func (l *Logger) Error(msg string) { l.print("ERROR: ", msg) }

func (l *Logger) Infof(format string, args ...any)  { l.Info(fmt.Sprintf(format, args...)) }
func (l *Logger) Warnf(format string, args ...any)  { l.Warn(fmt.Sprintf(format, args...)) }
func (l *Logger) Errorf(format string, args ...any) { l.Error(fmt.Sprintf(format, args...)) }

// Close closes the log file
func (l *Logger) Close() {
	if l == nil || l.file == nil {
		return
	}
	_ = l.file.Close()
}

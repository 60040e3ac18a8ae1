// Package logging provides a session-scoped file logger. All log lines for
// one invocation go to .amygdala/logs/<session-id>.log; if the log file
// cannot be opened the logger falls back to stderr.
package logging

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sinanata/amygdala/constants"
)

// Logger writes timestamped, leveled log lines for one session.
type Logger struct {
	sessionID string
	file      *os.File
	logger    *log.Logger
	mu        sync.Mutex
}

var (
	sessionID     string
	sessionIDOnce sync.Once
)

func getSessionID() string {
	sessionIDOnce.Do(func() {
		sessionID = uuid.New().String()
	})
	return sessionID
}

// New creates a logger writing to the project's log directory. On failure it
// returns a stderr logger together with the error so callers can warn once.
func New(projectRoot string) (*Logger, error) {
	logDir := constants.LogsDir(projectRoot)
	if err := os.MkdirAll(logDir, 0o750); err != nil {
		return newFallback(), fmt.Errorf("failed to create log directory: %w", err)
	}

	sessID := getSessionID()
	logPath := filepath.Join(logDir, sessID+".log")
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return newFallback(), fmt.Errorf("failed to open log file: %w", err)
	}

	return &Logger{
		sessionID: sessID,
		file:      file,
		logger:    log.New(file, "", 0),
	}, nil
}

func newFallback() *Logger {
	return &Logger{
		sessionID: getSessionID(),
		logger:    log.New(os.Stderr, "", 0),
	}
}

func (l *Logger) write(level, format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logger.Printf("%s [%s] %s",
		time.Now().UTC().Format(time.RFC3339), level, fmt.Sprintf(format, args...))
}

// Debugf logs a debug-level line.
func (l *Logger) Debugf(format string, args ...any) { l.write("DEBUG", format, args...) }

// Infof logs an info-level line.
func (l *Logger) Infof(format string, args ...any) { l.write("INFO", format, args...) }

// Warnf logs a warning-level line.
func (l *Logger) Warnf(format string, args ...any) { l.write("WARN", format, args...) }

// Errorf logs an error-level line.
func (l *Logger) Errorf(format string, args ...any) { l.write("ERROR", format, args...) }

// Close releases the underlying log file, if any.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

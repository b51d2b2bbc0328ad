// Package logging provides file-based logging for git-chain.
// It outputs logs to both a global log file (.git/chain/logs/chain.log)
// and project-specific log files (.git/chain/logs/project-<name>.log).
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/runoshun/git-chain/internal/domain"
)

// Ensure Logger implements domain.Logger interface.
var _ domain.Logger = (*Logger)(nil)

// Logger writes leveled entries to the global log and per-project logs.
// Fields are ordered to minimize memory padding.
type Logger struct {
	globalFile   *os.File
	projectFiles map[string]*os.File
	chainDir     string
	mu           sync.Mutex
	level        slog.Level
}

// New creates a new Logger that writes to the chain log directory.
// If chainDir is empty, logging is disabled.
func New(chainDir string, level slog.Level) *Logger {
	return &Logger{
		chainDir:     chainDir,
		level:        level,
		projectFiles: make(map[string]*os.File),
	}
}

// ParseLevel parses a log level string into slog.Level.
func ParseLevel(levelStr string) slog.Level {
	switch levelStr {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ensureLogsDir creates the logs directory if it doesn't exist.
func (l *Logger) ensureLogsDir() error {
	return os.MkdirAll(filepath.Join(l.chainDir, "logs"), 0o750)
}

// openLocked opens a log file for appending. Caller holds l.mu.
func (l *Logger) openLocked(path string) (*os.File, error) {
	if err := l.ensureLogsDir(); err != nil {
		return nil, fmt.Errorf("create logs directory: %w", err)
	}
	// G302: Log files are append-only and need read access by repository users
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640) //nolint:gosec // Log file readable by owner and group
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

// ensureGlobalFile opens or returns the global log file.
func (l *Logger) ensureGlobalFile() (*os.File, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.globalFile != nil {
		return l.globalFile, nil
	}
	f, err := l.openLocked(domain.GlobalLogPath(l.chainDir))
	if err != nil {
		return nil, err
	}
	l.globalFile = f
	return f, nil
}

// ensureProjectFile opens or returns the project log file.
func (l *Logger) ensureProjectFile(project string) (*os.File, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if f, ok := l.projectFiles[project]; ok {
		return f, nil
	}
	f, err := l.openLocked(domain.ProjectLogPath(l.chainDir, project))
	if err != nil {
		return nil, err
	}
	l.projectFiles[project] = f
	return f, nil
}

// Close closes all open log files.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var lastErr error
	if l.globalFile != nil {
		if err := l.globalFile.Close(); err != nil {
			lastErr = err
		}
		l.globalFile = nil
	}
	for name, f := range l.projectFiles {
		if err := f.Close(); err != nil {
			lastErr = err
		}
		delete(l.projectFiles, name)
	}
	return lastErr
}

// formatLog formats a log entry.
// Format: [2025-12-30 09:32:51] [INFO] [project:widgets] [category] message
func formatLog(t time.Time, level slog.Level, project, category, msg string) string {
	scope := "global"
	if project != "" {
		scope = "project:" + project
	}
	return fmt.Sprintf("[%s] [%s] [%s] [%s] %s\n",
		t.Format("2006-01-02 15:04:05"),
		levelToString(level),
		scope,
		category,
		msg,
	)
}

func levelToString(level slog.Level) string {
	switch level {
	case slog.LevelDebug:
		return "DEBUG"
	case slog.LevelInfo:
		return "INFO"
	case slog.LevelWarn:
		return "WARN"
	case slog.LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// log writes an entry to the global log, and to the project log when
// project is a valid project name.
func (l *Logger) log(level slog.Level, project, category, msg string) {
	if l.chainDir == "" {
		return // Logging disabled
	}

	if level < l.level {
		return
	}

	entry := formatLog(time.Now(), level, project, category, msg)

	if gf, err := l.ensureGlobalFile(); err == nil {
		_, _ = io.WriteString(gf, entry)
	}

	if project != "" && domain.ValidateProjectName(project) == nil {
		if pf, err := l.ensureProjectFile(project); err == nil {
			_, _ = io.WriteString(pf, entry)
		}
	}
}

// Info logs an info message.
func (l *Logger) Info(project, category, msg string) {
	l.log(slog.LevelInfo, project, category, msg)
}

// Debug logs a debug message.
func (l *Logger) Debug(project, category, msg string) {
	l.log(slog.LevelDebug, project, category, msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(project, category, msg string) {
	l.log(slog.LevelWarn, project, category, msg)
}

// Error logs an error message.
func (l *Logger) Error(project, category, msg string) {
	l.log(slog.LevelError, project, category, msg)
}

// Nop is a domain.Logger that discards everything.
type Nop struct{}

// Ensure Nop implements domain.Logger interface.
var _ domain.Logger = Nop{}

func (Nop) Info(_, _, _ string)  {}
func (Nop) Debug(_, _, _ string) {}
func (Nop) Warn(_, _, _ string)  {}
func (Nop) Error(_, _, _ string) {}

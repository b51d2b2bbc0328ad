package usecase

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/runoshun/git-chain/internal/domain"
)

// ShowLogsInput contains the parameters for showing logs.
type ShowLogsInput struct {
	Project string // Project to show logs for (empty = global log)
	Lines   int    // Number of lines to display from the end (0 = all)
}

// ShowLogsOutput contains the result of showing logs.
type ShowLogsOutput struct {
	LogPath string // Path to the log file
	Content string // Log file content
}

// ShowLogs is the use case for viewing the global or a project log.
type ShowLogs struct {
	chainDir string
}

// NewShowLogs creates a new ShowLogs use case.
func NewShowLogs(chainDir string) *ShowLogs {
	return &ShowLogs{chainDir: chainDir}
}

// Execute reads and returns the log content.
func (uc *ShowLogs) Execute(_ context.Context, in ShowLogsInput) (*ShowLogsOutput, error) {
	logPath := domain.GlobalLogPath(uc.chainDir)
	if in.Project != "" {
		if err := domain.ValidateProjectName(in.Project); err != nil {
			return nil, err
		}
		logPath = domain.ProjectLogPath(uc.chainDir, in.Project)
	}

	content, err := os.ReadFile(logPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: no log file at %s", domain.ErrNotFound, logPath)
		}
		return nil, fmt.Errorf("read log file: %w", err)
	}

	// Keep the last N lines, ignoring the trailing newline
	result := string(content)
	if in.Lines > 0 {
		lines := strings.Split(strings.TrimSuffix(result, "\n"), "\n")
		if len(lines) > in.Lines {
			lines = lines[len(lines)-in.Lines:]
		}
		result = strings.Join(lines, "\n") + "\n"
	}

	return &ShowLogsOutput{
		LogPath: logPath,
		Content: result,
	}, nil
}

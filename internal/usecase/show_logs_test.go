package usecase

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/runoshun/git-chain/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeLog(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestShowLogs_Execute_Global(t *testing.T) {
	chainDir := t.TempDir()
	logContent := "line1\nline2\n"
	logPath := domain.GlobalLogPath(chainDir)
	writeLog(t, logPath, logContent)

	out, err := NewShowLogs(chainDir).Execute(context.Background(), ShowLogsInput{})

	require.NoError(t, err)
	assert.Equal(t, logPath, out.LogPath)
	assert.Equal(t, logContent, out.Content)
}

func TestShowLogs_Execute_ProjectLastLines(t *testing.T) {
	chainDir := t.TempDir()
	logPath := domain.ProjectLogPath(chainDir, "widgets")
	writeLog(t, logPath, "line1\nline2\nline3\nline4\nline5\n")

	out, err := NewShowLogs(chainDir).Execute(context.Background(), ShowLogsInput{
		Project: "widgets",
		Lines:   2,
	})

	require.NoError(t, err)
	assert.Equal(t, logPath, out.LogPath)
	assert.Equal(t, "line4\nline5\n", out.Content)
}

func TestShowLogs_Execute_NoLogFile(t *testing.T) {
	_, err := NewShowLogs(t.TempDir()).Execute(context.Background(), ShowLogsInput{Project: "widgets"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestShowLogs_Execute_InvalidProject(t *testing.T) {
	_, err := NewShowLogs(t.TempDir()).Execute(context.Background(), ShowLogsInput{Project: "../etc"})
	assert.ErrorIs(t, err, domain.ErrInvalidProjectName)
}

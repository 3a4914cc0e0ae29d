//go:build unix

package pkginstall

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/montgomerylab/tinyrna-setup/internal/condatool"
	"github.com/montgomerylab/tinyrna-setup/internal/logfile"
	"github.com/montgomerylab/tinyrna-setup/internal/subproc"
)

func fakeTool(t *testing.T, exitCode string) (condatool.Tool, string) {
	t.Helper()
	dir := t.TempDir()
	calls := filepath.Join(dir, "calls.txt")
	script := filepath.Join(dir, "conda")
	body := "#!/bin/sh\necho \"$@\" >> " + calls + "\necho resolving packages\nexit " + exitCode + "\n"
	require.NoError(t, os.WriteFile(script, []byte(body), 0o755))
	tool := condatool.Conda
	tool.Path = script
	return tool, calls
}

func TestRunInstallsThroughEnvironment(t *testing.T) {
	tool, calls := fakeTool(t, "0")
	logDir := t.TempDir()
	opts := Options{
		Tool:      tool,
		Runner:    subproc.New(),
		Logs:      logfile.NewFactory(logDir),
		Out:       &bytes.Buffer{},
		SourceDir: "./",
	}

	require.NoError(t, Run(context.Background(), "tinyrna", opts))

	data, err := os.ReadFile(calls)
	require.NoError(t, err)
	require.Equal(t, "run -n tinyrna python -m pip install ./", strings.TrimSpace(string(data)))

	logs, err := filepath.Glob(filepath.Join(logDir, "pip_install_*.log"))
	require.NoError(t, err)
	require.Len(t, logs, 1)
	captured, err := os.ReadFile(logs[0])
	require.NoError(t, err)
	require.Contains(t, string(captured), "resolving packages")
}

func TestRunFailureSurfacesLogPath(t *testing.T) {
	tool, _ := fakeTool(t, "1")
	opts := Options{
		Tool:      tool,
		Runner:    subproc.New(),
		Logs:      logfile.NewFactory(t.TempDir()),
		Out:       &bytes.Buffer{},
		SourceDir: ".",
	}

	err := Run(context.Background(), "tinyrna", opts)
	var installErr *Error
	require.ErrorAs(t, err, &installErr)
	require.FileExists(t, installErr.LogPath)
}

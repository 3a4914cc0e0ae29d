// Package pkginstall installs the tinyRNA package into a provisioned
// environment. The installer is an opaque collaborator: it succeeds or fails,
// with all output captured to a log artifact.
package pkginstall

import (
	"context"
	"fmt"
	"io"

	"github.com/montgomerylab/tinyrna-setup/internal/condatool"
	"github.com/montgomerylab/tinyrna-setup/internal/logfile"
	"github.com/montgomerylab/tinyrna-setup/internal/messages"
	"github.com/montgomerylab/tinyrna-setup/internal/subproc"
)

// Error reports a failed package install; LogPath holds the captured output.
type Error struct {
	LogPath string
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf(messages.PkgInstallFailedFmt, e.Err, e.LogPath)
}

func (e *Error) Unwrap() error { return e.Err }

// Options carries the collaborators of a package install.
type Options struct {
	Tool      condatool.Tool
	Runner    *subproc.Runner
	Logs      *logfile.Factory
	Out       io.Writer
	SourceDir string
}

// Run installs the source tree into the named environment via pip, run
// through the tool so the environment's own interpreter is used.
func Run(ctx context.Context, envName string, opts Options) error {
	_, _ = fmt.Fprintf(opts.Out, messages.PkgInstallingFmt, envName)

	log, logPath, err := opts.Logs.Create("pip_install")
	if err != nil {
		return err
	}
	defer func() { _ = log.Close() }()

	args := opts.Tool.RunArgs(envName, "python", "-m", "pip", "install", opts.SourceDir)
	if err := opts.Runner.RunLogged(ctx, log, opts.Tool.Path, args...); err != nil {
		return &Error{LogPath: logPath, Err: err}
	}
	return nil
}

// Package provision creates the named conda environment from a lockfile,
// idempotently: an existing environment of the same name is removed (with
// operator consent) and rebuilt, never patched. After a run at most one
// environment bears the target name.
package provision

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/montgomerylab/tinyrna-setup/internal/condatool"
	"github.com/montgomerylab/tinyrna-setup/internal/envlist"
	"github.com/montgomerylab/tinyrna-setup/internal/logfile"
	"github.com/montgomerylab/tinyrna-setup/internal/messages"
	"github.com/montgomerylab/tinyrna-setup/internal/subproc"
)

// Request is the unit of idempotent provisioning.
type Request struct {
	Name     string
	Lockfile string
}

// RemovalError reports a failed environment removal; the captured subprocess
// output lives at LogPath.
type RemovalError struct {
	Name    string
	LogPath string
	Err     error
}

func (e *RemovalError) Error() string {
	return fmt.Sprintf(messages.ProvisionRemoveFailedFmt, e.Name, e.Err, e.LogPath)
}

func (e *RemovalError) Unwrap() error { return e.Err }

// VerifyError reports that the environment is not listed after creation.
type VerifyError struct {
	Name    string
	LogPath string
}

func (e *VerifyError) Error() string {
	return fmt.Sprintf(messages.ProvisionVerifyFailedFmt, e.Name, e.LogPath)
}

var listFunc = envlist.List

// Provisioner orchestrates environment creation for one selected tool.
type Provisioner struct {
	Tool     condatool.Tool
	Runner   *subproc.Runner
	Prompter Prompter
	Logs     *logfile.Factory
	Out      io.Writer
	Log      zerolog.Logger
}

// Provision creates the requested environment, removing a pre-existing one of
// the same name after operator confirmation. Success is defined operationally:
// the creation subcommand's exit status is not a reliable signal across tool
// variants, so the environment must be observably listed afterwards.
func (p *Provisioner) Provision(ctx context.Context, req Request) error {
	records, err := listFunc(ctx, p.Runner, p.Tool)
	if err != nil {
		return err
	}

	if envlist.Contains(records, req.Name) {
		if err := p.Prompter.ConfirmRecreate(req.Name); err != nil {
			return err
		}
		if err := p.remove(ctx, req.Name); err != nil {
			return err
		}
	}

	logPath, err := p.create(ctx, req)
	if err != nil {
		return err
	}

	records, err = listFunc(ctx, p.Runner, p.Tool)
	if err != nil {
		return err
	}
	if !envlist.Contains(records, req.Name) {
		return &VerifyError{Name: req.Name, LogPath: logPath}
	}
	_, _ = fmt.Fprintf(p.Out, messages.ProvisionCreatedFmt, req.Name)
	return nil
}

// TearDown removes the named environment, capturing output to a log artifact.
func (p *Provisioner) TearDown(ctx context.Context, name string) error {
	return p.remove(ctx, name)
}

func (p *Provisioner) remove(ctx context.Context, name string) error {
	_, _ = fmt.Fprintf(p.Out, messages.ProvisionRemovingFmt, name)
	log, logPath, err := p.Logs.Create("env_remove")
	if err != nil {
		return err
	}
	defer func() { _ = log.Close() }()

	if err := p.Runner.RunLogged(ctx, log, p.Tool.Path, p.Tool.EnvRemoveArgs(name)...); err != nil {
		return &RemovalError{Name: name, LogPath: logPath, Err: err}
	}
	return nil
}

// create runs the creation subcommand with the lockfile as the exact package
// manifest. A non-zero exit is logged but not treated as fatal here; the
// listing re-query in Provision is the authoritative success signal.
func (p *Provisioner) create(ctx context.Context, req Request) (string, error) {
	_, _ = fmt.Fprintf(p.Out, messages.ProvisionCreatingFmt, req.Name, req.Lockfile)
	log, logPath, err := p.Logs.Create("env_create")
	if err != nil {
		return "", err
	}
	defer func() { _ = log.Close() }()

	if err := p.Runner.RunLogged(ctx, log, p.Tool.Path, p.Tool.CreateArgs(req.Name, req.Lockfile)...); err != nil {
		p.Log.Debug().Err(err).Str("log", logPath).Msg("create subcommand exited non-zero; trusting the listing re-query")
	}
	return logPath, nil
}

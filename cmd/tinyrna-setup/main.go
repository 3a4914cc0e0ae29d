package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/fatih/color"

	"github.com/montgomerylab/tinyrna-setup/internal/messages"
	"github.com/montgomerylab/tinyrna-setup/internal/subproc"
)

var executeFunc = execute

// Version is overridden at build time.
var Version = "dev"

func main() {
	runner := subproc.New()
	installSignalHandler(runner, os.Exit)
	runMain(os.Args, os.Stdin, os.Stdout, os.Stderr, runner, os.Exit)
}

// SilentExitError reports an exit code without emitting error output.
type SilentExitError struct {
	Code int
}

func (e *SilentExitError) Error() string {
	return fmt.Sprintf("exit %d", e.Code)
}

// execute runs the CLI command with the provided args and streams.
func execute(args []string, stdin io.Reader, stdout io.Writer, stderr io.Writer, runner *subproc.Runner) error {
	cmd := newRootCmd(runner)
	cmd.Version = Version
	cmd.SetVersionTemplate(messages.VersionTemplate)
	if len(args) > 1 {
		cmd.SetArgs(args[1:])
	}
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	return cmd.Execute()
}

// runMain executes the CLI and maps every terminal failure onto an exit code,
// shutting down any spawned process groups first so no installer or prompt is
// left dangling in the background.
func runMain(args []string, stdin io.Reader, stdout io.Writer, stderr io.Writer, runner *subproc.Runner, exit func(int)) {
	err := executeFunc(args, stdin, stdout, stderr, runner)
	if err == nil {
		return
	}
	runner.Shutdown()

	var silent *SilentExitError
	if errors.As(err, &silent) {
		exit(silent.Code)
		return
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		_, _ = color.New(color.FgRed).Fprintf(stderr, "%s %v\n", messages.FatalPrefix, err)
		code := exitErr.ExitCode()
		if code <= 0 {
			code = 1
		}
		exit(code)
		return
	}
	_, _ = color.New(color.FgRed).Fprintf(stderr, "%s %v\n", messages.FatalPrefix, err)
	exit(1)
}

// installSignalHandler terminates every live child process group on an
// operator interrupt before exiting, instead of relying on signal propagation
// reaching grandchildren.
func installSignalHandler(runner *subproc.Runner, exit func(int)) {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-signals
		runner.Shutdown()
		exit(130)
	}()
}

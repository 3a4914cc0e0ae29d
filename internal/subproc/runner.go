// Package subproc runs external tools on behalf of the bootstrap. Every child
// is started in its own process group and tracked, so that a fatal error or an
// operator interrupt can terminate everything that was spawned before the
// process exits.
package subproc

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"

	"github.com/montgomerylab/tinyrna-setup/internal/messages"
)

// Runner executes external commands. The zero value is not usable; call New.
type Runner struct {
	mu     sync.Mutex
	groups map[int]struct{}
}

// New returns a Runner with an empty process-group registry.
func New() *Runner {
	return &Runner{groups: make(map[int]struct{})}
}

// Output runs the command and returns its standard output. Standard error is
// discarded; callers that care about diagnostics use RunLogged instead.
func (r *Runner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	setProcessGroup(cmd)

	var out safeBuffer
	cmd.Stdout = &out
	if err := r.start(cmd, name); err != nil {
		return nil, err
	}
	if err := r.wait(cmd); err != nil {
		return nil, fmt.Errorf(messages.SubprocRunFmt, name, err)
	}
	return out.Bytes(), nil
}

// RunLogged runs the command with both output streams captured to log.
func (r *Runner) RunLogged(ctx context.Context, log io.Writer, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	setProcessGroup(cmd)
	cmd.Stdout = log
	cmd.Stderr = log
	if err := r.start(cmd, name); err != nil {
		return err
	}
	return r.wait(cmd)
}

// RunInteractive runs the command attached to the operator's terminal and
// blocks until it exits. Used for the Miniconda installer, which prompts.
func (r *Runner) RunInteractive(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	setProcessGroup(cmd)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := r.start(cmd, name); err != nil {
		return err
	}
	return r.wait(cmd)
}

// Shutdown signals every live child process group. Called on fatal errors and
// operator interrupts so no installer or prompt is left dangling.
func (r *Runner) Shutdown() {
	r.mu.Lock()
	groups := make([]int, 0, len(r.groups))
	for pgid := range r.groups {
		groups = append(groups, pgid)
	}
	r.groups = make(map[int]struct{})
	r.mu.Unlock()
	for _, pgid := range groups {
		killGroup(pgid)
	}
}

func (r *Runner) start(cmd *exec.Cmd, name string) error {
	if err := cmd.Start(); err != nil {
		return fmt.Errorf(messages.SubprocStartFmt, name, err)
	}
	r.mu.Lock()
	r.groups[cmd.Process.Pid] = struct{}{}
	r.mu.Unlock()
	return nil
}

// wait reaps the command. The group is deregistered only on success: a failed
// child may have left background processes in its group, and those must stay
// signalable until Shutdown runs on the fatal path.
func (r *Runner) wait(cmd *exec.Cmd) error {
	err := cmd.Wait()
	if err == nil {
		r.mu.Lock()
		delete(r.groups, cmd.Process.Pid)
		r.mu.Unlock()
	}
	return err
}

// safeBuffer serializes writes; CommandContext may write from its own goroutine.
type safeBuffer struct {
	mu  sync.Mutex
	buf []byte
}

func (b *safeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf = append(b.buf, p...)
	return len(p), nil
}

func (b *safeBuffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf
}

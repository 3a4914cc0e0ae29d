// Package acquire downloads the platform's Miniconda installer, verifies it
// against the published checksum index, and runs it on the operator's
// terminal. Every failure path cleans the artifact up; a checksum mismatch is
// a security control, not a soft warning.
package acquire

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/rs/zerolog"

	"github.com/montgomerylab/tinyrna-setup/internal/checksum"
	"github.com/montgomerylab/tinyrna-setup/internal/messages"
	"github.com/montgomerylab/tinyrna-setup/internal/subproc"
	"github.com/montgomerylab/tinyrna-setup/internal/terminal"
)

// ErrDeclined is returned when the operator declines the installer download.
var ErrDeclined = errors.New(messages.AcquireDeclined)

// Downloads have no timeout: installers are large and the workflow never
// proceeds past a step whose external transfer has not finished.
var downloadClient = &http.Client{}

// Acquirer drives the download-verify-install sequence.
type Acquirer struct {
	// BaseURL is the directory URL serving installer binaries.
	BaseURL string
	// Verifier validates the downloaded artifact before it is executed.
	Verifier *checksum.Verifier
	// Runner executes the interactive installer.
	Runner *subproc.Runner
	// UI asks for download consent; nil skips the prompt.
	UI UI
	// Out receives progress output.
	Out io.Writer
	Log zerolog.Logger

	isTerminal func() bool
}

// Acquire downloads installerName into dir, verifies it, and runs it
// interactively. The artifact is deleted after a successful install and on
// checksum failure; it survives only an installer failure, for inspection.
func (a *Acquirer) Acquire(ctx context.Context, dir string, installerName string) error {
	if a.interactive() && a.UI != nil {
		accepted, err := a.UI.ConfirmDownload(installerName)
		if err != nil {
			return err
		}
		if !accepted {
			return ErrDeclined
		}
	}

	path := filepath.Join(dir, installerName)
	if err := a.download(ctx, installerName, path); err != nil {
		return err
	}
	a.Log.Debug().Str("installer", path).Msg("download complete")

	if err := a.Verifier.Verify(ctx, path); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(a.Out, messages.ChecksumVerifiedFmt, installerName)

	_, _ = fmt.Fprint(a.Out, messages.AcquireRunInstaller)
	if err := a.Runner.RunInteractive(ctx, "bash", path); err != nil {
		return fmt.Errorf(messages.AcquireInstallerFmt, err)
	}

	return os.Remove(path)
}

func (a *Acquirer) interactive() bool {
	if a.isTerminal != nil {
		return a.isTerminal()
	}
	return terminal.IsInteractive()
}

// download fetches the installer with progress reporting and fails when the
// transfer produces no file.
func (a *Acquirer) download(ctx context.Context, installerName string, path string) error {
	url := a.BaseURL + installerName
	_, _ = color.New(color.Bold).Fprintf(a.Out, messages.AcquireDownloadingFmt, url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf(messages.AcquireRequestFmt, err)
	}
	resp, err := downloadClient.Do(req)
	if err != nil {
		return fmt.Errorf(messages.AcquireDownloadFmt, installerName, err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf(messages.AcquireStatusFmt, installerName, resp.Status)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf(messages.AcquireWriteFmt, path, err)
	}
	progress := &progressWriter{out: a.Out, total: resp.ContentLength}
	written, err := io.Copy(io.MultiWriter(file, progress), resp.Body)
	closeErr := file.Close()
	_, _ = fmt.Fprintln(a.Out)
	if err != nil {
		_ = os.Remove(path)
		return fmt.Errorf(messages.AcquireDownloadFmt, installerName, err)
	}
	if closeErr != nil {
		_ = os.Remove(path)
		return fmt.Errorf(messages.AcquireWriteFmt, path, closeErr)
	}
	if written == 0 {
		_ = os.Remove(path)
		return fmt.Errorf(messages.AcquireNoFileFmt, installerName)
	}
	return nil
}

// progressWriter prints transfer progress on a single rewritten line.
type progressWriter struct {
	out     io.Writer
	total   int64
	written int64
}

func (w *progressWriter) Write(p []byte) (int, error) {
	w.written += int64(len(p))
	total := "?"
	if w.total > 0 {
		total = humanize.Bytes(uint64(w.total))
	}
	_, _ = fmt.Fprintf(w.out, messages.AcquireProgressFmt, humanize.Bytes(uint64(w.written)), total)
	return len(p), nil
}

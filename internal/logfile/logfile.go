// Package logfile creates the per-operation log artifacts. Each external
// operation (environment removal, creation, package install) gets its own
// file named with an operation tag and the run timestamp, so historical runs
// never collide.
package logfile

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/montgomerylab/tinyrna-setup/internal/messages"
)

const stampLayout = "2006-01-02_15-04-05"

// Factory creates log files sharing one run timestamp.
type Factory struct {
	Dir   string
	Stamp string
}

// NewFactory returns a Factory stamping files with the current time.
func NewFactory(dir string) *Factory {
	return &Factory{Dir: dir, Stamp: time.Now().Format(stampLayout)}
}

// Create opens a new log file for the given operation tag and returns it
// along with its path. The caller owns closing the file.
func (f *Factory) Create(tag string) (*os.File, string, error) {
	path := filepath.Join(f.Dir, fmt.Sprintf("%s_%s.log", tag, f.Stamp))
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, "", fmt.Errorf(messages.LogCreateFmt, path, err)
	}
	return file, path, nil
}

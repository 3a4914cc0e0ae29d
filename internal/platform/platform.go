// Package platform detects the host operating system, architecture, and login
// shell, and maps them to the Miniconda installer and conda-lock lockfile that
// fit this machine.
package platform

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/montgomerylab/tinyrna-setup/internal/messages"
)

// ActiveEnvVar names the environment variable conda sets for the active environment.
const ActiveEnvVar = "CONDA_DEFAULT_ENV"

// Host describes the detected platform and shell. Construct via Detect; only
// Detect-built hosts carry a resolved installer name.
type Host struct {
	OS    string
	Arch  string
	Shell string

	installer string
}

// Detect resolves the host platform and login shell, failing on any
// combination the bootstrap cannot provision.
func Detect(sys System) (Host, error) {
	host := Host{OS: sys.GOOS(), Arch: sys.GOARCH()}
	name, err := installerName(host.OS, host.Arch)
	if err != nil {
		return Host{}, err
	}
	host.installer = name

	shellPath := strings.TrimSpace(sys.Getenv("SHELL"))
	if shellPath == "" {
		return Host{}, fmt.Errorf(messages.ShellUndetected)
	}
	shell := filepath.Base(shellPath)
	switch shell {
	case "bash", "zsh":
		host.Shell = shell
	default:
		return Host{}, fmt.Errorf(messages.ShellUnsupportedFmt, shell)
	}
	return host, nil
}

// InstallerName returns the Miniconda installer filename for the host.
func (h Host) InstallerName() string {
	return h.installer
}

// LockfileName returns the conda-lock lockfile filename for the host.
func (h Host) LockfileName() string {
	switch {
	case h.OS == "linux":
		return "conda-linux-64.lock"
	case h.OS == "darwin" && h.Arch == "arm64":
		return "conda-osx-arm64.lock"
	default:
		return "conda-osx-64.lock"
	}
}

func installerName(goos, goarch string) (string, error) {
	switch {
	case goos == "linux" && goarch == "amd64":
		return "Miniconda3-latest-Linux-x86_64.sh", nil
	case goos == "darwin" && goarch == "amd64":
		return "Miniconda3-latest-MacOSX-x86_64.sh", nil
	case goos == "darwin" && goarch == "arm64":
		return "Miniconda3-latest-MacOSX-arm64.sh", nil
	}
	return "", fmt.Errorf(messages.PlatformUnsupportedFmt, goos, goarch)
}

// CheckEnvNotActive refuses to run while the target environment is active:
// removal of an active environment leaves the shell in a broken state.
func CheckEnvNotActive(sys System, name string) error {
	if strings.TrimSpace(sys.Getenv(ActiveEnvVar)) == name {
		return fmt.Errorf(messages.EnvAlreadyActiveFmt, name)
	}
	return nil
}

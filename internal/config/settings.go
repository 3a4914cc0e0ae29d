// Package config loads optional operator settings. Everything has a compiled
// default; the settings file only exists to point at mirrors or rename the
// default environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/montgomerylab/tinyrna-setup/internal/messages"
)

// Settings holds the tunable endpoints and defaults of the bootstrap.
type Settings struct {
	// IndexURL is the page listing installer filenames and SHA-256 hashes.
	IndexURL string `toml:"index_url"`
	// InstallerBaseURL is where installer binaries are downloaded from.
	InstallerBaseURL string `toml:"installer_base_url"`
	// DefaultEnvName is used when no environment name argument is given.
	DefaultEnvName string `toml:"default_env_name"`
	// LockfileDir is where the platform lockfiles live; empty means the
	// current working directory.
	LockfileDir string `toml:"lockfile_dir"`
}

// Default returns the compiled-in settings.
func Default() Settings {
	return Settings{
		IndexURL:         "https://repo.anaconda.com/miniconda/",
		InstallerBaseURL: "https://repo.anaconda.com/miniconda/",
		DefaultEnvName:   "tinyrna",
	}
}

// Load reads the operator settings file when present and overlays it on the
// defaults. A missing file is not an error.
func Load() (Settings, error) {
	path, err := settingsPath()
	if err != nil {
		return Settings{}, err
	}
	return LoadFrom(path)
}

// LoadFrom reads settings from an explicit path, overlaying defaults.
func LoadFrom(path string) (Settings, error) {
	settings := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return settings, nil
		}
		return Settings{}, fmt.Errorf(messages.SettingsReadFmt, path, err)
	}
	var overlay Settings
	if err := toml.Unmarshal(data, &overlay); err != nil {
		return Settings{}, fmt.Errorf(messages.SettingsParseFmt, path, err)
	}
	if overlay.IndexURL != "" {
		settings.IndexURL = overlay.IndexURL
	}
	if overlay.InstallerBaseURL != "" {
		settings.InstallerBaseURL = overlay.InstallerBaseURL
	}
	if overlay.DefaultEnvName != "" {
		settings.DefaultEnvName = overlay.DefaultEnvName
	}
	if overlay.LockfileDir != "" {
		settings.LockfileDir = overlay.LockfileDir
	}
	return settings, nil
}

// settingsPath returns ~/.config/tinyrna-setup/settings.toml.
func settingsPath() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf(messages.SettingsResolveHomeFmt, err)
	}
	return filepath.Join(home, ".config", "tinyrna-setup", "settings.toml"), nil
}

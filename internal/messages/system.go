package messages

// Platform and shell detection messages.
const (
	PlatformUnsupportedFmt = "unsupported platform %s/%s (supported: linux/amd64, darwin/amd64, darwin/arm64)"
	ShellUndetected        = "could not determine the login shell ($SHELL is empty)"
	ShellUnsupportedFmt    = "unsupported shell %q (supported: bash, zsh)"
	EnvAlreadyActiveFmt    = "environment %q is currently active; run 'conda deactivate' and re-run tinyrna-setup"
)

// Subprocess messages.
const (
	SubprocStartFmt = "start %s: %w"
	SubprocRunFmt   = "run %s: %w"
)

// Settings messages.
const (
	SettingsResolveHomeFmt = "resolve home dir: %w"
	SettingsReadFmt        = "read settings %s: %w"
	SettingsParseFmt       = "parse settings %s: %w"
)

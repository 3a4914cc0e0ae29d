package messages

// CLI messages for the root command and its prompts.
const (
	// RootUse is the CLI usage line.
	RootUse = "tinyrna-setup [environment-name]"
	// RootShort is the short description for the root command.
	RootShort = "Bootstrap the tinyRNA conda environment"
	RootLong  = "tinyrna-setup installs Miniconda when no conda-family runtime is present,\n" +
		"creates the named environment from the platform lockfile, and installs the\n" +
		"tinyRNA package into it."

	RootFlagVerbose = "Enable debug logging"
	RootFlagSource  = "Path to the tinyRNA source tree to install into the environment"

	// VersionTemplate renders --version output.
	VersionTemplate = "{{.Version}}\n"

	// FatalPrefix marks terminal failures on stderr.
	FatalPrefix = "Setup failed:"

	DoneFmt            = "\nSetup complete. Environment %q is ready.\n"
	ActivateHintFmt    = "Activate it with:\n\n  %s activate %s\n"
	LocatedRuntimeFmt  = "Found %s on this system.\n"
	LockfileMissingFmt = "lockfile %s not found; run tinyrna-setup from the tinyRNA source tree"
)

package messages

// Environment provisioning and package install messages.
const (
	ProvisionRecreatePromptFmt = "Environment %q already exists. Remove and recreate it from the lockfile? [y/n]: "
	ProvisionInvalidChoiceFmt  = "invalid option %q (expected y or n)"
	ProvisionDeclinedFmt       = "Keeping existing environment %q.\n"
	ProvisionRemovingFmt       = "Removing environment %q...\n"
	ProvisionCreatingFmt       = "Creating environment %q from %s...\n"
	ProvisionCreatedFmt        = "Environment %q created.\n"

	ProvisionRemoveFailedFmt = "failed to remove environment %q: %v (see %s)"
	ProvisionVerifyFailedFmt = "environment %q is not listed after creation (see %s)"
	ProvisionReadPromptFmt   = "read prompt response: %w"

	PkgInstallingFmt    = "Installing tinyRNA into %q...\n"
	PkgInstallFailedFmt = "tinyRNA package install failed: %v (see %s)"

	LogCreateFmt = "create log file %s: %w"
)

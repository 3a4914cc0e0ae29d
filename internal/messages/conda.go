package messages

// Installer acquisition and checksum verification messages.
const (
	AcquireConfirmTitleFmt = "Miniconda is required but was not found. Download and install %s now?"
	AcquireDeclined        = "Miniconda is required to continue; rerun tinyrna-setup when ready to install it."
	AcquireDownloadingFmt  = "Downloading %s...\n"
	AcquireProgressFmt     = "\r  %s / %s"
	AcquireRunInstaller    = "\nRunning the Miniconda installer. Follow its prompts to finish.\n"

	AcquireRequestFmt       = "create download request: %w"
	AcquireDownloadFmt      = "download %s: %w"
	AcquireStatusFmt        = "download %s: server returned %s"
	AcquireWriteFmt         = "write installer %s: %w"
	AcquireNoFileFmt        = "download of %s produced no file"
	AcquireInstallerFmt     = "miniconda installer failed: %w"
	AcquireToolStillMissing = "no conda runtime found after installation; open a new shell and re-run tinyrna-setup"

	ChecksumIndexRequestFmt = "create checksum index request: %w"
	ChecksumIndexFetchFmt   = "fetch checksum index: %w"
	ChecksumIndexStatusFmt  = "checksum index request returned %s"
	ChecksumIndexReadFmt    = "read checksum index: %w"
	ChecksumOpenFmt         = "open installer %s: %w"
	ChecksumHashFmt         = "hash installer %s: %w"
	ChecksumVerifiedFmt     = "Checksum verified for %s.\n"
	ChecksumMismatchFmt     = "checksum mismatch for %s: expected %q, computed %s (installer deleted)"
)

package domain

const (
	// OverrideFileName is the name of the project override file.
	OverrideFileName = ".twin.yaml"

	// GitignoreFileName is the name of the ignore file consulted by inference.
	GitignoreFileName = ".gitignore"

	// PrimaryBranch is the conventional default branch name.
	PrimaryBranch = "main"

	// LegacyPrimaryBranch is the older conventional default branch name.
	LegacyPrimaryBranch = "master"

	// StagingPrefix prefixes the hidden sibling a directory is assembled in before being renamed into place.
	StagingPrefix = ".twin-staging-"

	// ProbePrefix prefixes the scratch files used to probe reflink support.
	ProbePrefix = ".twin-probe-"

	// DefaultJobs is the default number of items copied concurrently.
	DefaultJobs = 4

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

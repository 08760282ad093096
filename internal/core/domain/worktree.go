package domain

// WorkingCopy is a checked-out directory of the repository.
type WorkingCopy struct {
	Path    string
	Branch  string
	Primary bool
}

// CreateOptions configures the creation of a working copy.
type CreateOptions struct {
	// Base is the ref a new branch starts from.
	Base string
	// NewBranch creates the branch instead of checking out an existing one.
	NewBranch bool
}

// SourceSelection is the outcome of choosing a working copy to copy artifacts from.
type SourceSelection struct {
	Chosen WorkingCopy
	// Warning is set when the choice was a guess.
	Warning string
}

// WorkingCopyStatus summarizes the cache state of a working copy.
type WorkingCopyStatus struct {
	WorkingCopy
	Current   bool
	Populated bool
	// Fingerprint hashes the dependency manifests of the detected recipes.
	Fingerprint string
	// Drift is set when Fingerprint differs from the current working copy's.
	Drift bool
}

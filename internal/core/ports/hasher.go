package ports

// Hasher defines the interface for fingerprinting dependency manifests.
//
//go:generate mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// Fingerprint hashes the contents of the named files under root, skipping
	// missing ones. It returns an empty string when none exist.
	Fingerprint(root string, files []string) (string, error)
}

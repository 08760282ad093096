package ports

// CacheVerifier defines the interface for checking whether caches are populated.
//
//go:generate mockgen -source=verifier.go -destination=mocks/mock_verifier.go -package=mocks
type CacheVerifier interface {
	// Populated reports whether any pattern matches non-empty content under root.
	Populated(root string, patterns []string) (bool, error)
}

package ports

// PatternResolver expands cache patterns against a directory tree.
//
//go:generate mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks
type PatternResolver interface {
	// Expand returns the paths under root matching pattern, relative to root
	// and sorted. A pattern without matches yields an empty list.
	Expand(root, pattern string) ([]string, error)
}

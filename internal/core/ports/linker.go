package ports

// Linker materializes a source path at a destination without copying data.
//
//go:generate mockgen -source=linker.go -destination=mocks/mock_linker.go -package=mocks
type Linker interface {
	// Hardlink recreates the tree at src under dst, hard linking every file.
	Hardlink(src, dst string) error
	// Reflink recreates the tree at src under dst using copy-on-write clones.
	Reflink(src, dst string) error
	// ProbeReflink reports whether the filesystem holding dir supports clones.
	ProbeReflink(dir string) bool
}

package config

// OverrideFile is the on-disk schema of the override file.
type OverrideFile struct {
	// Extends names a built-in recipe to start from.
	Extends string `yaml:"extends,omitempty"`
	// Cache lists additional cache patterns.
	Cache []string `yaml:"cache,omitempty"`
	// PostRestore replaces the reconciliation command. An explicit empty
	// string disables the one inherited from Extends.
	PostRestore *string `yaml:"post_restore,omitempty"`
}

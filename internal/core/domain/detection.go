package domain

// DetectionMethod records which tier produced a DetectionResult.
type DetectionMethod string

// Detection tiers, strongest first.
const (
	MethodExplicit  DetectionMethod = "explicit"
	MethodSingle    DetectionMethod = "single-signature"
	MethodMerged    DetectionMethod = "merged-multi-signature"
	MethodGitignore DetectionMethod = "gitignore-inferred"
	MethodNone      DetectionMethod = "none"
)

// DetectionResult is the authoritative cache configuration of a project root.
type DetectionResult struct {
	Method DetectionMethod
	// Config is nil when Method is MethodNone.
	Config *CacheConfig
	// Recipes lists every matched recipe in registry order.
	Recipes []string
	// Markers lists the marker files observed at the root.
	Markers []string
}

// Found reports whether a configuration was detected.
func (r DetectionResult) Found() bool {
	return r.Config != nil
}

// Patterns returns the detected cache patterns, or nil.
func (r DetectionResult) Patterns() []string {
	if r.Config == nil {
		return nil
	}
	return r.Config.Patterns
}

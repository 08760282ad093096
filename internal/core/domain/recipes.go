package domain

import "slices"

// StackSignature is a built-in recipe: the presence of any marker file at a
// project root selects its cache configuration.
type StackSignature struct {
	Name    string
	Markers []string
	Config  CacheConfig
}

// recipes is ordered by priority. Monorepo orchestrators come before the
// package managers they build on.
var recipes = []StackSignature{
	{
		Name:    "turborepo",
		Markers: []string{"turbo.json"},
		Config:  NewCacheConfig("turborepo", "", "node_modules", "**/node_modules", ".turbo"),
	},
	{
		Name:    "nx",
		Markers: []string{"nx.json"},
		Config:  NewCacheConfig("nx", "", "node_modules", "**/node_modules", ".nx/cache"),
	},
	{
		Name:    "pnpm",
		Markers: []string{"pnpm-lock.yaml"},
		Config:  NewCacheConfig("pnpm", "pnpm install --prefer-offline", "node_modules"),
	},
	{
		Name:    "bun",
		Markers: []string{"bun.lock", "bun.lockb"},
		Config:  NewCacheConfig("bun", "bun install", "node_modules"),
	},
	{
		Name:    "yarn",
		Markers: []string{"yarn.lock"},
		Config:  NewCacheConfig("yarn", "yarn install", "node_modules"),
	},
	{
		Name:    "npm",
		Markers: []string{"package-lock.json"},
		Config:  NewCacheConfig("npm", "npm install --prefer-offline", "node_modules"),
	},
	{
		Name:    "rust",
		Markers: []string{"Cargo.lock"},
		Config:  NewCacheConfig("rust", "", "target"),
	},
	{
		Name:    "uv",
		Markers: []string{"uv.lock"},
		Config:  NewCacheConfig("uv", "uv sync", ".venv"),
	},
	{
		Name:    "poetry",
		Markers: []string{"poetry.lock"},
		Config:  NewCacheConfig("poetry", "poetry install", ".venv"),
	},
	{
		Name:    "bundler",
		Markers: []string{"Gemfile.lock"},
		Config:  NewCacheConfig("bundler", "bundle install", "vendor/bundle"),
	},
	{
		Name:    "composer",
		Markers: []string{"composer.lock"},
		Config:  NewCacheConfig("composer", "composer install", "vendor"),
	},
	{
		Name:    "mix",
		Markers: []string{"mix.lock"},
		Config:  NewCacheConfig("mix", "mix deps.get", "deps", "_build"),
	},
	{
		Name:    "maven",
		Markers: []string{"pom.xml"},
		Config:  NewCacheConfig("maven", "", "target"),
	},
	{
		Name:    "gradle",
		Markers: []string{"gradlew", "build.gradle", "build.gradle.kts"},
		Config:  NewCacheConfig("gradle", "", ".gradle", "build"),
	},
	{
		Name:    "swiftpm",
		Markers: []string{"Package.resolved"},
		Config:  NewCacheConfig("swiftpm", "", ".build"),
	},
}

// Recipes returns the registry in priority order.
func Recipes() []StackSignature {
	out := make([]StackSignature, len(recipes))
	for i, r := range recipes {
		out[i] = r.clone()
	}
	return out
}

// LookupRecipe returns the recipe with the given name.
func LookupRecipe(name string) (StackSignature, bool) {
	for _, r := range recipes {
		if r.Name == name {
			return r.clone(), true
		}
	}
	return StackSignature{}, false
}

// LookupAll returns every recipe with at least one marker among entries,
// in registry order.
func LookupAll(entries map[string]struct{}) []StackSignature {
	var out []StackSignature
	for _, r := range recipes {
		if slices.ContainsFunc(r.Markers, func(m string) bool {
			_, ok := entries[m]
			return ok
		}) {
			out = append(out, r.clone())
		}
	}
	return out
}

// MatchedMarkers returns the markers of s that are present in entries.
func (s StackSignature) MatchedMarkers(entries map[string]struct{}) []string {
	var out []string
	for _, m := range s.Markers {
		if _, ok := entries[m]; ok {
			out = append(out, m)
		}
	}
	return out
}

func (s StackSignature) clone() StackSignature {
	s.Markers = slices.Clone(s.Markers)
	s.Config = s.Config.Clone()
	return s
}

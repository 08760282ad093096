// Package config provides the override file loader for twin.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"go.trai.ch/twin/internal/core/domain"
	"go.trai.ch/twin/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load reads the override file at path and merges it over the recipe it extends.
func (l *Loader) Load(path string) (domain.CacheConfig, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is the project's override file
	if err != nil {
		return domain.CacheConfig{}, domain.Fail(domain.ErrConfigSyntax,
			zerr.With(zerr.Wrap(err, "failed to read config file"), "path", path))
	}

	file, err := Decode(data)
	if err != nil {
		return domain.CacheConfig{}, domain.Fail(domain.ErrConfigSyntax, zerr.With(err, "path", path))
	}

	return l.resolve(file)
}

// Decode parses override file contents strictly: unknown keys and blank
// cache entries are rejected. Empty input is a valid, empty file.
func Decode(data []byte) (OverrideFile, error) {
	var file OverrideFile

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return OverrideFile{}, zerr.Wrap(err, "failed to parse config file")
	}

	for i, p := range file.Cache {
		if strings.TrimSpace(p) == "" {
			return OverrideFile{}, zerr.With(zerr.New("cache entry is empty"), "index", i)
		}
	}

	return file, nil
}

// Encode renders an override file.
func Encode(file OverrideFile) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(file); err != nil {
		return nil, zerr.Wrap(err, "failed to encode config file")
	}
	if err := enc.Close(); err != nil {
		return nil, zerr.Wrap(err, "failed to encode config file")
	}
	return buf.Bytes(), nil
}

func (l *Loader) resolve(file OverrideFile) (domain.CacheConfig, error) {
	var base domain.CacheConfig
	if file.Extends != "" {
		recipe, ok := domain.LookupRecipe(file.Extends)
		if !ok {
			return domain.CacheConfig{}, domain.Fail(domain.ErrUnknownSignature,
				zerr.With(zerr.New(fmt.Sprintf("no built-in recipe named %q", file.Extends)), "recipe", file.Extends))
		}
		base = recipe.Config

		for _, p := range file.Cache {
			if slices.Contains(base.Patterns, p) && l.Logger != nil {
				l.Logger.Warn(fmt.Sprintf("cache pattern %q is already provided by recipe %s", p, recipe.Name))
			}
		}
	}

	command := base.Command
	if file.PostRestore != nil {
		command = strings.TrimSpace(*file.PostRestore)
	}

	return domain.NewCacheConfig(file.Extends, command, domain.UnionPatterns(base.Patterns, file.Cache)...), nil
}

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownFormat      = errors.New("unknown source file format")
	ErrUnsupportedVersion = errors.New("unsupported source version")
)

// Source is the optional project file that overrides the built-ins.
type Source struct {
	Version  int           `yaml:"version" toml:"version"`
	Requires string        `yaml:"requires" toml:"requires"` // semver constraint on twconf itself
	Content  ContentSource `yaml:"content" toml:"content"`
	Theme    ThemeConfig   `yaml:"theme" toml:"theme"`
	Plugins  []string      `yaml:"plugins" toml:"plugins"`
}

// ContentSource holds per-mode content overrides. An empty list keeps the
// built-in list for that mode.
type ContentSource struct {
	Production  []string `yaml:"production" toml:"production"`
	Development []string `yaml:"development" toml:"development"`
}

// ReadSource parses a source file, picking the decoder by extension.
func ReadSource(path string) (*Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseSource(data, filepath.Ext(path))
}

// ParseSource decodes data as YAML (".yml", ".yaml") or TOML (".toml").
func ParseSource(data []byte, ext string) (*Source, error) {
	src := &Source{Version: 1}

	switch strings.ToLower(ext) {
	case ".yml", ".yaml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(src); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parsing yaml: %w", err)
		}
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(src); err != nil {
			return nil, fmt.Errorf("parsing toml: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q (supported: .yml, .yaml, .toml)", ErrUnknownFormat, ext)
	}

	if src.Version != 1 {
		return nil, fmt.Errorf("%w: must be 1, got %d", ErrUnsupportedVersion, src.Version)
	}
	return src, nil
}

// Apply layers the source over base for mode. A nil source returns base
// unchanged.
func (s *Source) Apply(base BuildConfig, m Mode) BuildConfig {
	out := base.Clone()
	if s == nil {
		return out
	}

	override := s.Content.Development
	if m == ModeProduction {
		override = s.Content.Production
	}
	if len(override) > 0 {
		out.Content = cloneStrings(override)
	}
	for k, v := range s.Theme.Extend {
		out.Theme.Extend[k] = cloneValue(v)
	}
	if len(s.Plugins) > 0 {
		out.Plugins = append(out.Plugins, s.Plugins...)
	}
	return out
}

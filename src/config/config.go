package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/sofmeright/twconf/src/version"
)

const (
	DefaultSourceFile = ".twconf.yml"
	DefaultEnvFile    = ".env"
)

var (
	productionContent = []string{
		"./resources/public/js/compiled/app.js",
	}
	developmentContent = []string{
		"./src/**/*.cljs",
		"./resources/public/js/compiled/cljs-runtime/*.js",
	}
)

// BuildConfig is the object handed to the CSS build tool.
type BuildConfig struct {
	Content []string    `json:"content" yaml:"content" toml:"content"`
	Theme   ThemeConfig `json:"theme" yaml:"theme" toml:"theme"`
	Plugins []string    `json:"plugins" yaml:"plugins" toml:"plugins"`
}

// ThemeConfig holds style-token overrides merged over the tool's defaults.
type ThemeConfig struct {
	Extend map[string]any `json:"extend" yaml:"extend" toml:"extend"`
}

// ContentFor returns a copy of the built-in content list for mode.
func ContentFor(m Mode) []string {
	if m == ModeProduction {
		return cloneStrings(productionContent)
	}
	return cloneStrings(developmentContent)
}

// New returns the built-in configuration for mode.
func New(m Mode) BuildConfig {
	return BuildConfig{
		Content: ContentFor(m),
		Theme:   ThemeConfig{Extend: map[string]any{}},
		Plugins: []string{},
	}
}

// Clone returns a deep copy of c.
func (c BuildConfig) Clone() BuildConfig {
	return BuildConfig{
		Content: cloneStrings(c.Content),
		Theme:   ThemeConfig{Extend: cloneMap(c.Theme.Extend)},
		Plugins: cloneStrings(c.Plugins),
	}
}

// Options controls how Load locates its inputs.
type Options struct {
	Root       string     // project root; relative paths below resolve against it
	SourcePath string     // source file (default: .twconf.yml)
	EnvFile    string     // env file (default: .env); "-" disables it
	Mode       Mode       // explicit mode; empty resolves from the environment
	Lookup     LookupFunc // process environment (default: os.LookupEnv)
}

// Resolved is the outcome of Load.
type Resolved struct {
	Config     BuildConfig
	Mode       Mode
	Source     *Source // nil when no source file exists
	SourcePath string  // path that was read, empty when none
	EnvPath    string  // env file that was read, empty when none
}

// Load builds the configuration once: it reads the optional env file and
// source file, resolves the mode and applies source overrides on top of
// the built-in lists.
func Load(opts Options) (*Resolved, error) {
	root := opts.Root
	if root == "" {
		root = "."
	}

	res := &Resolved{}

	lookup := opts.Lookup
	envPath := opts.EnvFile
	if envPath == "" {
		envPath = DefaultEnvFile
	}
	if envPath != "-" {
		envPath = resolvePath(root, envPath)
		layered, found, err := EnvLookup(envPath, lookup)
		if err != nil {
			return nil, err
		}
		lookup = layered
		if found {
			res.EnvPath = envPath
		}
	}

	mode := opts.Mode
	if mode == "" {
		mode = ResolveMode(lookup)
	}
	res.Mode = mode

	explicit := opts.SourcePath != ""
	srcPath := opts.SourcePath
	if srcPath == "" {
		srcPath = DefaultSourceFile
	}
	srcPath = resolvePath(root, srcPath)

	src, err := ReadSource(srcPath)
	switch {
	case err == nil:
		if src.Requires != "" {
			if err := version.Check(src.Requires); err != nil {
				return nil, fmt.Errorf("%s: %w", srcPath, err)
			}
		}
		res.Source = src
		res.SourcePath = srcPath
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		// no source file: built-ins only
	default:
		return nil, fmt.Errorf("loading %s: %w", srcPath, err)
	}

	res.Config = res.Source.Apply(New(mode), mode)
	return res, nil
}

func resolvePath(root, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}

func cloneStrings(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}

func cloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return cloneMap(t)
	case map[any]any:
		// yaml.v3 decodes mappings with non-string keys (spacing: {128: 32rem})
		// this way; encoders for every output format need string keys.
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[fmt.Sprint(k)] = cloneValue(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}

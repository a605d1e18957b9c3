package config

import (
	"fmt"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Validate checks structural invariants of a resolved BuildConfig.
// Returns warnings (soft issues) and a hard error if the config is unusable.
func Validate(cfg BuildConfig) (warnings []string, err error) {
	var errs []string

	// ── Content ───────────────────────────────────────────────────────────

	if len(cfg.Content) == 0 {
		errs = append(errs, "content: at least one pattern is required")
	}

	seen := make(map[string]bool, len(cfg.Content))
	for i, p := range cfg.Content {
		cpath := fmt.Sprintf("content[%d]", i)

		if perr := checkPattern(p); perr != "" {
			errs = append(errs, fmt.Sprintf("%s: %s", cpath, perr))
			continue
		}

		norm := NormalizePattern(p)
		if seen[norm] {
			warnings = append(warnings, fmt.Sprintf("%s: duplicate pattern %q", cpath, p))
		}
		seen[norm] = true
	}

	// ── Plugins ───────────────────────────────────────────────────────────

	plugins := make(map[string]bool, len(cfg.Plugins))
	for i, name := range cfg.Plugins {
		ppath := fmt.Sprintf("plugins[%d]", i)
		if strings.TrimSpace(name) == "" {
			errs = append(errs, fmt.Sprintf("%s: plugin reference is empty", ppath))
			continue
		}
		if plugins[name] {
			warnings = append(warnings, fmt.Sprintf("%s: duplicate plugin %q", ppath, name))
		}
		plugins[name] = true
	}

	if len(errs) > 0 {
		return warnings, fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return warnings, nil
}

// NormalizePattern strips leading "./" so the pattern is root-relative
// the way doublestar expects ("./src/**" → "src/**"). Backslashes are glob
// escapes and are left alone.
func NormalizePattern(p string) string {
	for strings.HasPrefix(p, "./") {
		p = strings.TrimPrefix(p, "./")
	}
	return p
}

func checkPattern(p string) string {
	if strings.TrimSpace(p) == "" {
		return "pattern is empty"
	}
	norm := NormalizePattern(p)
	if strings.HasPrefix(norm, "/") || (len(norm) > 1 && norm[1] == ':') {
		return fmt.Sprintf("pattern %q must be relative to the project root", p)
	}
	clean := path.Clean(norm)
	if clean == ".." || strings.HasPrefix(clean, "../") {
		return fmt.Sprintf("pattern %q escapes the project root", p)
	}
	if !doublestar.ValidatePattern(norm) {
		return fmt.Sprintf("pattern %q is not a valid glob", p)
	}
	return ""
}

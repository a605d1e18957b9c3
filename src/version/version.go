package version

import (
	"fmt"
	"strings"

	masterminds "github.com/Masterminds/semver/v3"
)

// These variables are injected at build time via -ldflags.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// String returns a human-readable version string.
func String() string {
	return fmt.Sprintf("twconf %s (%s, %s)", Version, Commit, BuildDate)
}

// Satisfies reports whether the running build meets constraint.
// Development builds satisfy every constraint.
func Satisfies(constraint string) (bool, error) {
	return satisfies(Version, constraint)
}

// Check is Satisfies as an error.
func Check(constraint string) error {
	ok, err := Satisfies(constraint)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("requires twconf %s, running %s", constraint, Version)
	}
	return nil
}

func satisfies(current, constraint string) (bool, error) {
	c, err := masterminds.NewConstraint(constraint)
	if err != nil {
		return false, fmt.Errorf("invalid version constraint %q: %w", constraint, err)
	}
	if current == "" || current == "dev" {
		return true, nil
	}
	v, err := masterminds.NewVersion(strings.TrimPrefix(current, "v"))
	if err != nil {
		return false, fmt.Errorf("invalid build version %q: %w", current, err)
	}
	return c.Check(v), nil
}

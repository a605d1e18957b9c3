package config

import (
	"fmt"
	"os"
)

// ModeEnvVar is the environment variable the build tool reads to pick a mode.
const ModeEnvVar = "NODE_ENV"

// Mode selects which content list is active.
type Mode string

const (
	ModeDevelopment Mode = "development"
	ModeProduction  Mode = "production"
)

// LookupFunc matches the signature of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// ResolveMode reads the mode flag through lookup. Only the exact value
// "production" selects production; anything else, including an unset
// variable, falls back to development.
func ResolveMode(lookup LookupFunc) Mode {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if v, ok := lookup(ModeEnvVar); ok && v == string(ModeProduction) {
		return ModeProduction
	}
	return ModeDevelopment
}

// ParseMode parses a --mode flag value.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeProduction, ModeDevelopment:
		return Mode(s), nil
	case "dev":
		return ModeDevelopment, nil
	case "prod":
		return ModeProduction, nil
	}
	return "", fmt.Errorf("unknown mode %q (supported: production, development)", s)
}

func (m Mode) String() string { return string(m) }

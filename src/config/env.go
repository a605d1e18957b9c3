package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// EnvLookup layers the variables from an env file under lookup. Values
// already present in the process environment always win. A missing file
// returns lookup unchanged and found=false.
func EnvLookup(path string, lookup LookupFunc) (LookupFunc, bool, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	vars, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return lookup, false, nil
		}
		return nil, false, fmt.Errorf("reading env file %s: %w", path, err)
	}

	return func(key string) (string, bool) {
		if v, ok := lookup(key); ok {
			return v, true
		}
		v, ok := vars[key]
		return v, ok
	}, true, nil
}

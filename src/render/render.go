// Package render serializes a resolved build configuration into the file
// formats the CSS build tool (or a human) reads.
package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/sofmeright/twconf/src/config"
	"gopkg.in/yaml.v3"
)

// Format names an output encoding.
type Format string

const (
	FormatJS   Format = "js"   // CommonJS module
	FormatESM  Format = "esm"  // ES module
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

var ErrUnknownFormat = errors.New("unknown output format")

const typeAnnotation = "/** @type {import('tailwindcss').Config} */\n"

// Formats lists the supported formats in display order.
func Formats() []Format {
	return []Format{FormatJS, FormatESM, FormatJSON, FormatYAML, FormatTOML}
}

// ParseFormat parses a --format value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatJS, FormatESM, FormatJSON, FormatYAML, FormatTOML:
		return f, nil
	case "cjs":
		return FormatJS, nil
	case "mjs":
		return FormatESM, nil
	case "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// FormatForPath infers the format from a file extension.
func FormatForPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("%w: %s has no extension", ErrUnknownFormat, path)
	}
	return ParseFormat(ext)
}

// Render writes cfg to w in format f. Output is deterministic for equal
// configs: map keys are sorted and content order is preserved.
func Render(w io.Writer, cfg config.BuildConfig, f Format) error {
	data, err := Bytes(cfg, f)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Bytes renders cfg in format f.
func Bytes(cfg config.BuildConfig, f Format) ([]byte, error) {
	// Clone guarantees non-nil slices and maps so empty fields encode as
	// [] and {} instead of null.
	cfg = cfg.Clone()

	switch f {
	case FormatJS, FormatESM:
		body, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encoding js: %w", err)
		}
		var buf bytes.Buffer
		buf.WriteString(typeAnnotation)
		if f == FormatESM {
			buf.WriteString("export default ")
		} else {
			buf.WriteString("module.exports = ")
		}
		buf.Write(body)
		buf.WriteString("\n")
		return buf.Bytes(), nil

	case FormatJSON:
		body, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encoding json: %w", err)
		}
		return append(body, '\n'), nil

	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return nil, fmt.Errorf("encoding yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encoding yaml: %w", err)
		}
		return buf.Bytes(), nil

	case FormatTOML:
		var buf bytes.Buffer
		enc := toml.NewEncoder(&buf)
		enc.SetIndentTables(true)
		if err := enc.Encode(cfg); err != nil {
			return nil, fmt.Errorf("encoding toml: %w", err)
		}
		return buf.Bytes(), nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

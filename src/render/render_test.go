package render

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/sofmeright/twconf/src/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestRenderJSDevelopment(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, config.New(config.ModeDevelopment), FormatJS))

	want := `/** @type {import('tailwindcss').Config} */
module.exports = {
  "content": [
    "./src/**/*.cljs",
    "./resources/public/js/compiled/cljs-runtime/*.js"
  ],
  "theme": {
    "extend": {}
  },
  "plugins": []
}
`
	assert.Equal(t, want, buf.String())
}

func TestRenderESM(t *testing.T) {
	out, err := Bytes(config.New(config.ModeProduction), FormatESM)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), typeAnnotation+"export default {"))
	assert.Contains(t, string(out), `"./resources/public/js/compiled/app.js"`)
}

func TestRenderZeroValueHasNoNulls(t *testing.T) {
	out, err := Bytes(config.BuildConfig{}, FormatJSON)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "null")
}

func TestRenderRoundTrip(t *testing.T) {
	cfg := config.New(config.ModeDevelopment)
	cfg.Theme.Extend["colors"] = map[string]any{"brand": "#0ea5e9"}
	cfg.Plugins = []string{"forms"}

	decoders := map[Format]func([]byte, any) error{
		FormatJSON: json.Unmarshal,
		FormatYAML: yaml.Unmarshal,
		FormatTOML: toml.Unmarshal,
	}
	for f, decode := range decoders {
		t.Run(string(f), func(t *testing.T) {
			out, err := Bytes(cfg, f)
			require.NoError(t, err)

			var got config.BuildConfig
			require.NoError(t, decode(out, &got), string(out))
			assert.Equal(t, cfg.Content, got.Content)
			assert.Equal(t, cfg.Plugins, got.Plugins)
			assert.Equal(t, "#0ea5e9", got.Theme.Extend["colors"].(map[string]any)["brand"])
		})
	}
}

func TestRenderDeterministic(t *testing.T) {
	cfg := config.New(config.ModeDevelopment)
	cfg.Theme.Extend["z"] = 1
	cfg.Theme.Extend["a"] = 2
	cfg.Theme.Extend["m"] = 3

	for _, f := range Formats() {
		first, err := Bytes(cfg, f)
		require.NoError(t, err)
		for i := 0; i < 5; i++ {
			again, err := Bytes(cfg, f)
			require.NoError(t, err)
			assert.Equal(t, string(first), string(again), "format %s", f)
		}
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{
		"js": FormatJS, "cjs": FormatJS, "mjs": FormatESM, "ESM": FormatESM,
		"json": FormatJSON, "yml": FormatYAML, "yaml": FormatYAML, "toml": FormatTOML,
	} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseFormat("xml")
	assert.ErrorIs(t, err, ErrUnknownFormat)

	f, err := FormatForPath("tailwind.config.js")
	require.NoError(t, err)
	assert.Equal(t, FormatJS, f)

	_, err = FormatForPath("Makefile")
	assert.ErrorIs(t, err, ErrUnknownFormat)

	_, err = Bytes(config.New(""), Format("xml"))
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestWriteFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "out", "tailwind.config.js")
	cfg := config.New(config.ModeProduction)

	changed, err := WriteFile(ctx, path, cfg, FormatJS)
	require.NoError(t, err)
	assert.True(t, changed)

	want, err := Bytes(cfg, FormatJS)
	require.NoError(t, err)
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, string(want), string(got))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())

	// Identical content: no rewrite.
	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(path, past, past))
	changed, err = WriteFile(ctx, path, cfg, FormatJS)
	require.NoError(t, err)
	assert.False(t, changed)
	info, err = os.Stat(path)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Before(time.Now().Add(-time.Minute)), "unchanged output must not be rewritten")

	// Different content: replaced.
	changed, err = WriteFile(ctx, path, config.New(config.ModeDevelopment), FormatJS)
	require.NoError(t, err)
	assert.True(t, changed)
	got, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(got), "cljs-runtime")

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "pending temp files must not be left behind")
}

func TestRenderNonStringThemeKeys(t *testing.T) {
	cfg := config.New(config.ModeDevelopment)
	cfg.Theme.Extend["spacing"] = map[any]any{128: "32rem", "px": map[any]any{1: "1px"}}

	for _, f := range Formats() {
		out, err := Bytes(cfg, f)
		require.NoError(t, err, "format %s", f)
		assert.Contains(t, string(out), "32rem", "format %s", f)
	}

	out, err := Bytes(cfg, FormatJSON)
	require.NoError(t, err)
	var got config.BuildConfig
	require.NoError(t, json.Unmarshal(out, &got))
	assert.Equal(t, map[string]any{"128": "32rem", "px": map[string]any{"1": "1px"}}, got.Theme.Extend["spacing"])
}

package log

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigureJSON(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Level: "debug", Output: &buf, Service: "test"})
	t.Cleanup(func() { Configure(Config{Output: &bytes.Buffer{}}) })

	l := WithComponent("scan")
	l.Debug().Str("pattern", "src/**").Msg("expanding")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry), buf.String())
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "test", entry["service"])
	assert.Equal(t, "scan", entry["component"])
	assert.Equal(t, "src/**", entry["pattern"])
	assert.Equal(t, "expanding", entry["message"])
}

func TestConfigureLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Level: "warn", Output: &buf})
	t.Cleanup(func() { Configure(Config{Output: &bytes.Buffer{}}) })

	l := Base()
	l.Info().Msg("hidden")
	assert.Zero(t, buf.Len())

	l.Warn().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Output: &buf})
	t.Cleanup(func() { Configure(Config{Output: &bytes.Buffer{}}) })

	var ctxBuf bytes.Buffer
	Configure(Config{Output: &ctxBuf})
	ctx := IntoContext(context.Background(), WithComponent("watch"))
	Configure(Config{Output: &buf})

	FromContext(ctx).Info().Msg("from ctx")
	assert.Contains(t, ctxBuf.String(), `"component":"watch"`)

	FromContext(context.Background()).Info().Msg("from base")
	assert.Contains(t, buf.String(), "from base")
}

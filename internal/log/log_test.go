package log_test

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handiism/happeytunes/internal/log"
)

func TestNewPacked(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := log.NewPacked(&buf)
	logger.Info().Str("artist", "Daft_Punk").Msg("Fetched artist")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "happeytunes", line["app"])
	assert.Equal(t, "Daft_Punk", line["artist"])
	assert.Equal(t, "info", line["level"])
}

func TestNewPretty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := log.NewPretty(&buf)
	logger.Warn().Msg("pretty")

	assert.Contains(t, buf.String(), "pretty")
	assert.Contains(t, buf.String(), "\n  ", "pretty output is indented")
}

func TestFlaw_PlainError(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := log.NewPacked(&buf)
	logger.Error().Func(log.Flaw(errors.New("boom"))).Msg("failed")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "boom", line["error"])
}

func TestNewFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "logs", "app.log")
	logger, closer, err := log.NewFile(path)
	require.NoError(t, err)
	logger.Info().Msg("to file")
	require.NoError(t, closer.Close())

	assert.FileExists(t, path)
}

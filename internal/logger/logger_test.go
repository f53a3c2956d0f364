package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Enabled: true, Level: "warn", Format: "json", Output: &buf})

	log.Info().Msg("dropped")
	log.Warn().Str("k", "v").Msg("kept")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "kept", line["message"])
	assert.Equal(t, "warn", line["level"])
	assert.Equal(t, "v", line["k"])
	assert.Contains(t, line, "time")
}

func TestNew_Disabled(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Enabled: false, Level: "debug", Format: "json", Output: &buf})
	log.Error().Msg("nothing")
	assert.Zero(t, buf.Len())
}

func TestNew_UnknownLevelFallsBackToInfo(t *testing.T) {
	log := New(Config{Enabled: true, Level: "chatty", Format: "json", Output: &bytes.Buffer{}})
	assert.Equal(t, zerolog.InfoLevel, log.GetLevel())
}

func TestContextLogger(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Enabled: true, Level: "info", Format: "json", Output: &buf}).
		With().Str("request_id", "abc").Logger()

	ctx := WithContext(context.Background(), log)
	InfoLog(ctx, "hello")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "hello", line["message"])
	assert.Equal(t, "abc", line["request_id"])

	// Without a logger attached nothing is written and nothing panics.
	ErrorLog(context.Background(), "lost")
	assert.NotNil(t, FromContext(context.Background()))
}

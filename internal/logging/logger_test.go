package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.TraceLevel, ParseLevel("trace"))
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("info"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel("warn"))
	assert.Equal(t, zerolog.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, zerolog.FatalLevel, ParseLevel("fatal"))
	assert.Equal(t, zerolog.Disabled, ParseLevel("silent"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("bogus"))
}

func TestSubsystemField(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "debug").Sub("gateway")

	log.Info().Msg("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "gateway", entry["subsystem"])
	assert.Equal(t, "hello", entry["message"])
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "warn")

	log.Debug().Msg("dropped")
	log.Info().Msg("dropped")
	assert.Zero(t, buf.Len())

	log.Warn().Msg("kept")
	assert.NotZero(t, buf.Len())
}

func TestNop(t *testing.T) {
	// Must not panic and must not write anywhere.
	Nop().Error().Msg("nothing")
}

package logger

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hr-assistant-api/internal/config"
)

func TestNew(t *testing.T) {
	log, err := New("debug", "json")
	require.NoError(t, err)
	assert.Equal(t, zerolog.DebugLevel, log.GetLevel())
	assert.Equal(t, zerolog.DebugLevel, GetLogger().GetLevel())

	_, err = New("debug", "xml")
	assert.Error(t, err)

	_, err = New("loud", "json")
	assert.Error(t, err)
}

func TestProvideLogger(t *testing.T) {
	log, err := ProvideLogger(&config.Config{LogLevel: "warn", LogFormat: "console", ServiceName: "test"})
	require.NoError(t, err)
	assert.Equal(t, zerolog.WarnLevel, log.GetLevel())
}

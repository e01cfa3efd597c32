package observability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/classforge-auth/internal/config"
)

func TestRedactingCoreMasksCredentialFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := zap.New(NewRedactingCore(core)).With(zap.String("Authorization", "Bearer abc"))

	logger.Info("login",
		zap.String("account_id", "acc-1"),
		zap.String("password", "secret1"),
		zap.String("token", "eyJ..."))

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "acc-1", fields["account_id"])
	assert.Equal(t, redacted, fields["password"])
	assert.Equal(t, redacted, fields["token"])
	assert.Equal(t, redacted, fields["Authorization"])
}

func TestRedactingCoreRespectsLevel(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	logger := zap.New(NewRedactingCore(core))

	logger.Info("dropped")
	logger.Warn("kept")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "kept", logs.All()[0].Message)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("DEBUG"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("warn"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("loud"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel(""))
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(
		config.LoggerConfig{Level: "debug", Format: "json"},
		config.AppConfig{Name: "classforge-auth", Env: "production", Version: "1.2.3"},
	)
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
}

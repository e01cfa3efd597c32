package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/classforge-auth/internal/domain"
	"github.com/spec-kit/classforge-auth/internal/events"
)

func TestAuditServiceLogsLifecycleEvents(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	dispatcher := events.NewInMemoryDispatcher()
	NewAuditService(dispatcher, zap.New(core)).RegisterHandlers()

	ctx := context.Background()
	at := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, dispatcher.Publish(ctx, events.Event{
		ID: "e1", Type: events.EventAccountRegistered, AccountID: "acc-1", Timestamp: at,
		Payload: events.AccountRegisteredPayload{Role: domain.RoleFaculty},
	}))
	require.NoError(t, dispatcher.Publish(ctx, events.Event{
		ID: "e2", Type: events.EventLoginFailed, Timestamp: at,
		Payload: events.LoginFailedPayload{Code: "INVALID_CREDENTIALS"},
	}))

	entries := logs.All()
	require.Len(t, entries, 2)

	assert.Equal(t, "AccountRegistered", entries[0].Message)
	assert.Equal(t, "faculty", entries[0].ContextMap()["role"])
	assert.Equal(t, "acc-1", entries[0].ContextMap()["account_id"])

	assert.Equal(t, "LoginFailed", entries[1].Message)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, "INVALID_CREDENTIALS", entries[1].ContextMap()["code"])
	assert.NotContains(t, entries[1].ContextMap(), "account_id")
}

package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nosqlite-go/nosqlite/internal/config"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := New(config.Default(), zap.NewNop())
	require.NoError(t, err)
	return e
}

func TestSendCreateDatabase(t *testing.T) {
	e := newTestEngine(t)
	res, err := e.Send(context.Background(), "CREATE DATABASE test;")
	require.NoError(t, err)
	assert.Equal(t, "Database `test` created", res.Message)
}

func TestSendPropagatesParseError(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.Send(context.Background(), "CREATE DATABASE;")
	require.Error(t, err)
}

func TestSendPropagatesCatalogError(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.Send(context.Background(), "DROP DATABASE ghost;")
	require.Error(t, err)
}

func TestNewRejectsUnknownStrategy(t *testing.T) {
	cfg := config.Default()
	cfg.AllocatorStrategy = "bogus"
	_, err := New(cfg, zap.NewNop())
	require.Error(t, err)
}

package treasury

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
)

func TestContextBlockTime(t *testing.T) {
	ctx := context.Background()

	_, ok := BlockTime(ctx)
	assert.False(t, ok)
	assert.Panics(t, func() { Now(ctx) })

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	ctx = WithBlockTime(ctx, now)

	got, ok := BlockTime(ctx)
	require.True(t, ok)
	assert.True(t, now.Equal(got))
	assert.Equal(t, AsUnixTime(now), Now(ctx))

	assert.True(t, IsExpired(ctx, AsUnixTime(now)))
	assert.True(t, IsExpired(ctx, AsUnixTime(now.Add(-time.Second))))
	assert.False(t, IsExpired(ctx, AsUnixTime(now.Add(time.Second))))

	// Time cannot be overwritten by a lower-level module.
	assert.Panics(t, func() { WithBlockTime(ctx, now) })
}

func TestContextLogger(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, DefaultLogger, GetLogger(ctx))

	logger := log.NewNopLogger()
	ctx = WithLogger(ctx, logger)
	assert.Equal(t, logger, GetLogger(ctx))

	ctx = WithLogInfo(ctx, "vault", "payroll")
	assert.NotNil(t, GetLogger(ctx))
}

func TestContextOperationID(t *testing.T) {
	ctx := context.Background()
	_, ok := GetOperationID(ctx)
	assert.False(t, ok)

	ctx = WithOperationID(ctx, "op-1")
	id, ok := GetOperationID(ctx)
	assert.True(t, ok)
	assert.Equal(t, "op-1", id)
	assert.Panics(t, func() { WithOperationID(ctx, "op-2") })
}

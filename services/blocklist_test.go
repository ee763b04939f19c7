package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medtrustid-lab/medtrust_api/services/repositories"
)

func newTestBlocklistService(t *testing.T) (*BlocklistService, *fakeClock) {
	t.Helper()

	sqlSvc := newTestSqlService(t)
	clock := newFakeClock()

	svc := &BlocklistService{
		sqlSvc: sqlSvc,
		repo:   repositories.NewSecurityRepository(sqlSvc.Db()),
		now:    clock.Now,
	}
	return svc, clock
}

func TestBlockAndIsBlocked(t *testing.T) {
	svc, _ := newTestBlocklistService(t)

	require.NoError(t, svc.Block("203.0.113.1", "Rate limit exceeded"))

	assert.True(t, svc.IsBlocked("203.0.113.1"))
	assert.False(t, svc.IsBlocked("203.0.113.2"))
}

func TestBlockExpiresLazily(t *testing.T) {
	svc, clock := newTestBlocklistService(t)

	require.NoError(t, svc.Block("203.0.113.1", "Brute force detected"))

	clock.Advance(BlockDuration - time.Millisecond)
	assert.True(t, svc.IsBlocked("203.0.113.1"), "block holds right up to expiry")

	clock.Advance(time.Millisecond)
	assert.False(t, svc.IsBlocked("203.0.113.1"), "block lapses at exactly +30min")

	// the expired row was removed on read
	block, err := svc.repo.GetBlock(context.Background(), "203.0.113.1")
	require.NoError(t, err)
	assert.Nil(t, block)
}

func TestReblockRestartsClock(t *testing.T) {
	svc, clock := newTestBlocklistService(t)

	require.NoError(t, svc.Block("203.0.113.1", "Rate limit exceeded"))

	clock.Advance(BlockDuration - time.Minute)
	require.NoError(t, svc.Block("203.0.113.1", "Brute force detected"))

	clock.Advance(BlockDuration - time.Minute)
	assert.True(t, svc.IsBlocked("203.0.113.1"), "second block restarted the expiry clock")

	block, err := svc.repo.GetBlock(context.Background(), "203.0.113.1")
	require.NoError(t, err)
	require.NotNil(t, block)
	assert.Equal(t, "Brute force detected", block.Reason, "last block wins")

	clock.Advance(2 * time.Minute)
	assert.False(t, svc.IsBlocked("203.0.113.1"))
}

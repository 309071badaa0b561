package statistics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuelReschke/GritGym/internal/pkg/cache"
)

type countingStore struct {
	count int64
	err   error
	calls int
}

func (s *countingStore) CountByStatus(_ context.Context, status string) (int64, error) {
	s.calls++
	if status != "approved" {
		return 0, nil
	}
	return s.count, s.err
}

func useMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	cache.SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	return mr
}

func TestGetApprovedMembersCaches(t *testing.T) {
	mr := useMiniredis(t)
	store := &countingStore{count: 12}
	ctx := context.Background()

	assert.Equal(t, 12, GetApprovedMembers(ctx, store))
	store.count = 13
	assert.Equal(t, 12, GetApprovedMembers(ctx, store))
	assert.Equal(t, 1, store.calls)

	mr.FastForward(CacheExpiration + time.Second)
	assert.Equal(t, 13, GetStatisticsData(ctx, store).ApprovedMembers)
	assert.Equal(t, 2, store.calls)
}

func TestInvalidate(t *testing.T) {
	useMiniredis(t)
	store := &countingStore{count: 3}
	ctx := context.Background()

	require.Equal(t, 3, GetApprovedMembers(ctx, store))
	store.count = 4
	Invalidate(ctx)
	assert.Equal(t, 4, GetApprovedMembers(ctx, store))
}

func TestGetApprovedMembersStoreError(t *testing.T) {
	useMiniredis(t)
	store := &countingStore{err: errors.New("db down")}

	assert.Zero(t, GetApprovedMembers(context.Background(), store))
	_, err := cache.Get(context.Background(), CacheKeyApprovedMembers)
	assert.ErrorIs(t, err, redis.Nil)
}

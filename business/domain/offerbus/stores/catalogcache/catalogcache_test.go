package catalogcache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/jcpaschoal/partner-portal/business/domain/offerbus"
	"github.com/jcpaschoal/partner-portal/foundation/logger"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingCatalog struct {
	calls  int
	offers []offerbus.MicrosoftOffer
	err    error
}

func (c *countingCatalog) QueryMicrosoftOffers(ctx context.Context) ([]offerbus.MicrosoftOffer, error) {
	c.calls++
	return c.offers, c.err
}

func setup(t *testing.T, catalog offerbus.Catalog) (*Store, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	return NewStore(logger.NewDiscard(), catalog, rdb, time.Hour), mr
}

func Test_SnapshotServedFromRedis(t *testing.T) {
	catalog := &countingCatalog{offers: []offerbus.MicrosoftOffer{{ID: "CFQ7TTC0LH18", Name: "Basic"}}}
	s, mr := setup(t, catalog)
	ctx := context.Background()

	first, err := s.QueryMicrosoftOffers(ctx)
	require.NoError(t, err)

	second, err := s.QueryMicrosoftOffers(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, catalog.calls)
	assert.True(t, mr.Exists(snapshotKey))
	assert.Equal(t, time.Hour, mr.TTL(snapshotKey))
}

func Test_SnapshotExpires(t *testing.T) {
	catalog := &countingCatalog{offers: []offerbus.MicrosoftOffer{{ID: "A"}}}
	s, mr := setup(t, catalog)
	ctx := context.Background()

	_, err := s.QueryMicrosoftOffers(ctx)
	require.NoError(t, err)

	mr.FastForward(2 * time.Hour)

	_, err = s.QueryMicrosoftOffers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, catalog.calls)
}

func Test_RedisDownFallsBack(t *testing.T) {
	catalog := &countingCatalog{offers: []offerbus.MicrosoftOffer{{ID: "A"}}}
	s, mr := setup(t, catalog)

	mr.Close()

	got, err := s.QueryMicrosoftOffers(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func Test_UpstreamErrorNotCached(t *testing.T) {
	catalog := &countingCatalog{err: errors.New("upstream down")}
	s, mr := setup(t, catalog)

	_, err := s.QueryMicrosoftOffers(context.Background())
	require.ErrorIs(t, err, catalog.err)
	assert.False(t, mr.Exists(snapshotKey))
}

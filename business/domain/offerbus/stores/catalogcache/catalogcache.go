// Package catalogcache keeps a shared snapshot of the Microsoft catalog in
// redis so every instance does not hit the upstream catalog.
package catalogcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jcpaschoal/partner-portal/business/domain/offerbus"
	"github.com/jcpaschoal/partner-portal/foundation/logger"
	"github.com/redis/go-redis/v9"
)

const snapshotKey = "partner-portal:microsoft-offers"

// Store serves the catalog from redis and falls back to the wrapped catalog.
type Store struct {
	log     *logger.Logger
	catalog offerbus.Catalog
	rdb     redis.UniversalClient
	ttl     time.Duration
}

// NewStore constructs the api for cached catalog access.
func NewStore(log *logger.Logger, catalog offerbus.Catalog, rdb redis.UniversalClient, ttl time.Duration) *Store {
	return &Store{
		log:     log,
		catalog: catalog,
		rdb:     rdb,
		ttl:     ttl,
	}
}

// QueryMicrosoftOffers returns the cached snapshot or refreshes it. A redis
// failure is logged and the upstream catalog is used directly.
func (s *Store) QueryMicrosoftOffers(ctx context.Context) ([]offerbus.MicrosoftOffer, error) {
	data, err := s.rdb.Get(ctx, snapshotKey).Bytes()
	switch {
	case err == nil:
		var offers []offerbus.MicrosoftOffer
		if err := json.Unmarshal(data, &offers); err == nil {
			return offers, nil
		}
		s.log.Warn(ctx, "catalogcache: corrupt snapshot dropped")

	case !errors.Is(err, redis.Nil):
		s.log.Warn(ctx, "catalogcache: get", "ERROR", err)
	}

	offers, err := s.catalog.QueryMicrosoftOffers(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.store(ctx, offers); err != nil {
		s.log.Warn(ctx, "catalogcache: set", "ERROR", err)
	}

	return offers, nil
}

func (s *Store) store(ctx context.Context, offers []offerbus.MicrosoftOffer) error {
	data, err := json.Marshal(offers)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	return s.rdb.Set(ctx, snapshotKey, data, s.ttl).Err()
}

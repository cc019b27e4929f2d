// Package offercache contains offer related CRUD functionality with caching.
package offercache

import (
	"context"
	"time"

	"github.com/jcpaschoal/partner-portal/business/domain/offerbus"
	"github.com/jcpaschoal/partner-portal/foundation/logger"
	"github.com/viccon/sturdyc"
)

const catalogKey = "partner-offers"

// Store manages the set of APIs for offer data and caching. The whole
// catalog is cached under one key and dropped on every write.
type Store struct {
	log    *logger.Logger
	storer offerbus.Storer
	cache  *sturdyc.Client[[]offerbus.PartnerOffer]
}

// NewStore constructs the api for data and caching access.
func NewStore(log *logger.Logger, storer offerbus.Storer, ttl time.Duration) *Store {
	return &Store{
		log:    log,
		storer: storer,
		cache:  sturdyc.New[[]offerbus.PartnerOffer](16, 1, ttl, 10),
	}
}

// IsConfigured reports whether at least one active offer exists.
func (s *Store) IsConfigured(ctx context.Context) (bool, error) {
	return s.storer.IsConfigured(ctx)
}

// QueryAll returns the catalog from the cache, loading it on a miss.
func (s *Store) QueryAll(ctx context.Context) ([]offerbus.PartnerOffer, error) {
	if cached, ok := s.cache.Get(catalogKey); ok {
		return clone(cached), nil
	}

	offers, err := s.storer.QueryAll(ctx)
	if err != nil {
		return nil, err
	}

	s.cache.Set(catalogKey, clone(offers))

	return offers, nil
}

// Create inserts a new offer and drops the cached catalog.
func (s *Store) Create(ctx context.Context, o offerbus.PartnerOffer) (offerbus.PartnerOffer, error) {
	defer s.invalidate(ctx)

	return s.storer.Create(ctx, o)
}

// Update replaces an offer and drops the cached catalog.
func (s *Store) Update(ctx context.Context, o offerbus.PartnerOffer) (offerbus.PartnerOffer, error) {
	defer s.invalidate(ctx)

	return s.storer.Update(ctx, o)
}

// MarkDeleted soft deletes the offers and primes the cache with the result.
func (s *Store) MarkDeleted(ctx context.Context, offers []offerbus.PartnerOffer) ([]offerbus.PartnerOffer, error) {
	remaining, err := s.storer.MarkDeleted(ctx, offers)
	if err != nil {
		s.invalidate(ctx)
		return nil, err
	}

	s.cache.Set(catalogKey, clone(remaining))

	return remaining, nil
}

func (s *Store) invalidate(ctx context.Context) {
	s.cache.Delete(catalogKey)
	s.log.Debug(ctx, "offercache: catalog invalidated")
}

// clone keeps callers from mutating the cached slice.
func clone(offers []offerbus.PartnerOffer) []offerbus.PartnerOffer {
	if offers == nil {
		return nil
	}

	out := make([]offerbus.PartnerOffer, len(offers))
	copy(out, offers)

	return out
}

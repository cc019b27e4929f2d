// Package offerbus provides business access to the partner offer catalog.
package offerbus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/partner-portal/business/types/offerstatus"
	"github.com/jcpaschoal/partner-portal/foundation/logger"
	"github.com/jcpaschoal/partner-portal/foundation/otel"
)

// Set of error variables for offer operations.
var (
	ErrNotFound = errors.New("offer not found")
)

// Storer interface declares the behavior this package needs to persist and
// retrieve data.
type Storer interface {
	IsConfigured(ctx context.Context) (bool, error)
	QueryAll(ctx context.Context) ([]PartnerOffer, error)
	Create(ctx context.Context, o PartnerOffer) (PartnerOffer, error)
	Update(ctx context.Context, o PartnerOffer) (PartnerOffer, error)
	MarkDeleted(ctx context.Context, offers []PartnerOffer) ([]PartnerOffer, error)
}

// Catalog provides the Microsoft offers a partner can resell.
type Catalog interface {
	QueryMicrosoftOffers(ctx context.Context) ([]MicrosoftOffer, error)
}

// Core manages the set of APIs for offer access.
type Core struct {
	log     *logger.Logger
	storer  Storer
	catalog Catalog
}

// NewCore constructs a core for offer api access.
func NewCore(log *logger.Logger, storer Storer, catalog Catalog) *Core {
	return &Core{
		log:     log,
		storer:  storer,
		catalog: catalog,
	}
}

// IsConfigured reports whether the partner has set up its catalog.
func (c *Core) IsConfigured(ctx context.Context) (bool, error) {
	ctx, span := otel.AddSpan(ctx, "business.offerbus.isConfigured")
	defer span.End()

	ok, err := c.storer.IsConfigured(ctx)
	if err != nil {
		return false, fmt.Errorf("isConfigured: %w", err)
	}

	return ok, nil
}

// QueryActive returns the offers that have not been deleted.
func (c *Core) QueryActive(ctx context.Context) ([]PartnerOffer, error) {
	ctx, span := otel.AddSpan(ctx, "business.offerbus.queryActive")
	defer span.End()

	offers, err := c.storer.QueryAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	return activeOnly(offers), nil
}

// Create adds a new offer to the catalog.
func (c *Core) Create(ctx context.Context, no NewPartnerOffer) (PartnerOffer, error) {
	ctx, span := otel.AddSpan(ctx, "business.offerbus.create")
	defer span.End()

	now := time.Now()

	o := PartnerOffer{
		ID:               uuid.New(),
		MicrosoftOfferID: no.MicrosoftOfferID,
		Title:            no.Title,
		Subtitle:         no.Subtitle,
		Features:         no.Features,
		Summary:          no.Summary,
		Price:            no.Price,
		Thumbnail:        no.Thumbnail,
		Status:           offerstatus.Active,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	created, err := c.storer.Create(ctx, o)
	if err != nil {
		return PartnerOffer{}, fmt.Errorf("create: %w", err)
	}

	return created, nil
}

// Update replaces an offer by its identity. An offer submitted without a
// status keeps the status already stored, so an update never restores a
// deleted offer unless asked to.
func (c *Core) Update(ctx context.Context, o PartnerOffer) (PartnerOffer, error) {
	ctx, span := otel.AddSpan(ctx, "business.offerbus.update")
	defer span.End()

	if o.Status.IsZero() {
		status, err := c.storedStatus(ctx, o.ID)
		if err != nil {
			return PartnerOffer{}, fmt.Errorf("update: %w", err)
		}
		o.Status = status
	}

	o.UpdatedAt = time.Now()

	updated, err := c.storer.Update(ctx, o)
	if err != nil {
		return PartnerOffer{}, fmt.Errorf("update: %w", err)
	}

	return updated, nil
}

// Delete soft deletes the offers and returns the offers still active.
// Deleting an already inactive offer has no further effect.
func (c *Core) Delete(ctx context.Context, offers []PartnerOffer) ([]PartnerOffer, error) {
	ctx, span := otel.AddSpan(ctx, "business.offerbus.delete")
	defer span.End()

	remaining, err := c.storer.MarkDeleted(ctx, offers)
	if err != nil {
		return nil, fmt.Errorf("markDeleted: %w", err)
	}

	c.log.Info(ctx, "offers deleted", "requested", len(offers))

	return activeOnly(remaining), nil
}

// QueryMicrosoftOffers returns the Microsoft catalog as provided.
func (c *Core) QueryMicrosoftOffers(ctx context.Context) ([]MicrosoftOffer, error) {
	ctx, span := otel.AddSpan(ctx, "business.offerbus.queryMicrosoftOffers")
	defer span.End()

	offers, err := c.catalog.QueryMicrosoftOffers(ctx)
	if err != nil {
		return nil, fmt.Errorf("queryMicrosoftOffers: %w", err)
	}

	return offers, nil
}

func (c *Core) storedStatus(ctx context.Context, id uuid.UUID) (offerstatus.Status, error) {
	offers, err := c.storer.QueryAll(ctx)
	if err != nil {
		return offerstatus.Status{}, fmt.Errorf("query: %w", err)
	}

	for _, o := range offers {
		if o.ID == id {
			return o.Status, nil
		}
	}

	return offerstatus.Status{}, ErrNotFound
}

func activeOnly(offers []PartnerOffer) []PartnerOffer {
	active := make([]PartnerOffer, 0, len(offers))
	for _, o := range offers {
		if o.Status.IsActive() {
			active = append(active, o)
		}
	}

	return active
}

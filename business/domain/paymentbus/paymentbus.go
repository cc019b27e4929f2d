// Package paymentbus provides business access to the payment configuration.
package paymentbus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jcpaschoal/partner-portal/foundation/logger"
	"github.com/jcpaschoal/partner-portal/foundation/otel"
)

// Set of error variables for payment configuration operations.
var (
	ErrNotFound = errors.New("payment configuration not found")
)

// Storer interface declares the behavior this package needs to persist and
// retrieve data.
type Storer interface {
	IsConfigured(ctx context.Context) (bool, error)
	Retrieve(ctx context.Context) (Configuration, error)
	Update(ctx context.Context, cfg Configuration) (Configuration, error)
}

// Core manages the set of APIs for payment configuration access.
type Core struct {
	log    *logger.Logger
	storer Storer
}

// NewCore constructs a core for payment configuration api access.
func NewCore(log *logger.Logger, storer Storer) *Core {
	return &Core{
		log:    log,
		storer: storer,
	}
}

// IsConfigured reports whether a payment gateway has been set up.
func (c *Core) IsConfigured(ctx context.Context) (bool, error) {
	ctx, span := otel.AddSpan(ctx, "business.paymentbus.isConfigured")
	defer span.End()

	ok, err := c.storer.IsConfigured(ctx)
	if err != nil {
		return false, fmt.Errorf("isConfigured: %w", err)
	}

	return ok, nil
}

// Retrieve returns the current payment configuration.
func (c *Core) Retrieve(ctx context.Context) (Configuration, error) {
	ctx, span := otel.AddSpan(ctx, "business.paymentbus.retrieve")
	defer span.End()

	cfg, err := c.storer.Retrieve(ctx)
	if err != nil {
		return Configuration{}, fmt.Errorf("retrieve: %w", err)
	}

	return cfg, nil
}

// Update validates the configuration and replaces the stored one. Nothing
// is persisted when validation fails.
func (c *Core) Update(ctx context.Context, cfg Configuration) (Configuration, error) {
	ctx, span := otel.AddSpan(ctx, "business.paymentbus.update")
	defer span.End()

	if err := Validate(cfg); err != nil {
		return Configuration{}, err
	}

	cfg.UpdatedAt = time.Now()

	updated, err := c.storer.Update(ctx, cfg)
	if err != nil {
		return Configuration{}, fmt.Errorf("update: %w", err)
	}

	c.log.Info(ctx, "payment configuration updated", "gateway", updated.Gateway.String(), "account_type", updated.PayPal.AccountType)

	return updated, nil
}

// Package brandingbus provides business access to the portal branding.
package brandingbus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jcpaschoal/partner-portal/foundation/logger"
	"github.com/jcpaschoal/partner-portal/foundation/otel"
)

// Set of error variables for branding operations.
var (
	ErrNotFound = errors.New("branding not configured")
)

// Storer interface declares the behavior this package needs to persist and
// retrieve data. Update receives unchanged slots untouched and is expected
// to keep the stored value for them.
type Storer interface {
	IsConfigured(ctx context.Context) (bool, error)
	Retrieve(ctx context.Context) (Branding, error)
	Update(ctx context.Context, b Branding) (Branding, error)
}

// Core manages the set of APIs for branding access.
type Core struct {
	log    *logger.Logger
	storer Storer
}

// NewCore constructs a core for branding api access.
func NewCore(log *logger.Logger, storer Storer) *Core {
	return &Core{
		log:    log,
		storer: storer,
	}
}

// IsConfigured reports whether the branding has been saved at least once.
func (c *Core) IsConfigured(ctx context.Context) (bool, error) {
	ctx, span := otel.AddSpan(ctx, "business.brandingbus.isConfigured")
	defer span.End()

	ok, err := c.storer.IsConfigured(ctx)
	if err != nil {
		return false, fmt.Errorf("isConfigured: %w", err)
	}

	return ok, nil
}

// Retrieve returns the current branding.
func (c *Core) Retrieve(ctx context.Context) (Branding, error) {
	ctx, span := otel.AddSpan(ctx, "business.brandingbus.retrieve")
	defer span.End()

	b, err := c.storer.Retrieve(ctx)
	if err != nil {
		return Branding{}, fmt.Errorf("retrieve: %w", err)
	}

	return b, nil
}

// Update resolves the submitted asset slots and replaces the branding. No
// store call is made unless every slot resolves.
func (c *Core) Update(ctx context.Context, sub Submission) (Branding, error) {
	ctx, span := otel.AddSpan(ctx, "business.brandingbus.update")
	defer span.End()

	logo, err := ResolveAsset(OrganizationLogoSlot, sub.OrganizationLogo)
	if err != nil {
		return Branding{}, err
	}

	header, err := ResolveAsset(HeaderImageSlot, sub.HeaderImage)
	if err != nil {
		return Branding{}, err
	}

	privacy, err := ResolveURI(PrivacyAgreementSlot, sub.PrivacyAgreement)
	if err != nil {
		return Branding{}, err
	}

	b := Branding{
		OrganizationName: sub.OrganizationName,
		ContactUs:        sub.ContactUs,
		ContactSales:     sub.ContactSales,
		OrganizationLogo: logo,
		HeaderImage:      header,
		PrivacyAgreement: privacy,
		UpdatedAt:        time.Now(),
	}

	updated, err := c.storer.Update(ctx, b)
	if err != nil {
		return Branding{}, fmt.Errorf("update: %w", err)
	}

	c.log.Info(ctx, "branding updated", "logo", updated.OrganizationLogo.String(), "header", updated.HeaderImage.String())

	return updated, nil
}

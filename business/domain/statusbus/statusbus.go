// Package statusbus reports how far the portal setup has progressed.
package statusbus

import (
	"context"
	"fmt"

	"github.com/jcpaschoal/partner-portal/foundation/logger"
	"github.com/jcpaschoal/partner-portal/foundation/otel"
	"golang.org/x/sync/errgroup"
)

// Prober reports whether a subsystem has completed its initial setup.
type Prober interface {
	IsConfigured(ctx context.Context) (bool, error)
}

// Status represents the setup state of each subsystem.
type Status struct {
	Offers   bool
	Branding bool
	Payment  bool
}

// Core manages the set of APIs for status access.
type Core struct {
	log      *logger.Logger
	offers   Prober
	branding Prober
	payment  Prober
}

// NewCore constructs a core for status api access.
func NewCore(log *logger.Logger, offers Prober, branding Prober, payment Prober) *Core {
	return &Core{
		log:      log,
		offers:   offers,
		branding: branding,
		payment:  payment,
	}
}

// Query runs the three probes concurrently. Every probe runs to completion
// and a failure of any of them fails the whole query.
func (c *Core) Query(ctx context.Context) (Status, error) {
	ctx, span := otel.AddSpan(ctx, "business.statusbus.query")
	defer span.End()

	var (
		st Status
		g  errgroup.Group
	)

	g.Go(probe(ctx, "offers", c.offers, &st.Offers))
	g.Go(probe(ctx, "branding", c.branding, &st.Branding))
	g.Go(probe(ctx, "payment", c.payment, &st.Payment))

	if err := g.Wait(); err != nil {
		return Status{}, err
	}

	return st, nil
}

func probe(ctx context.Context, name string, p Prober, dest *bool) func() error {
	return func() error {
		ok, err := p.IsConfigured(ctx)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}

		*dest = ok
		return nil
	}
}

// Package offerdb contains partner offer related CRUD functionality.
package offerdb

import (
	"context"
	"errors"
	"fmt"

	"github.com/jcpaschoal/partner-portal/business/domain/offerbus"
	"github.com/jcpaschoal/partner-portal/business/sdk/sqldb"
	"github.com/jcpaschoal/partner-portal/business/types/offerstatus"
	"github.com/jcpaschoal/partner-portal/foundation/logger"
	"github.com/jmoiron/sqlx"
)

// Store manages the set of APIs for offer database access.
type Store struct {
	log *logger.Logger
	db  sqlx.ExtContext
}

// NewStore constructs the api for data access.
func NewStore(log *logger.Logger, db *sqlx.DB) *Store {
	return &Store{
		log: log,
		db:  db,
	}
}

// IsConfigured reports whether at least one active offer exists.
func (s *Store) IsConfigured(ctx context.Context) (bool, error) {
	data := struct {
		Status string `db:"status"`
	}{
		Status: offerstatus.Active.String(),
	}

	const q = `
	SELECT
		EXISTS (SELECT 1 FROM "public"."partner_offer" WHERE status = :status) AS configured`

	var result struct {
		Configured bool `db:"configured"`
	}

	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &result); err != nil {
		return false, fmt.Errorf("namedquerystruct: %w", err)
	}

	return result.Configured, nil
}

// QueryAll retrieves every offer, deleted ones included, oldest first.
func (s *Store) QueryAll(ctx context.Context) ([]offerbus.PartnerOffer, error) {
	const q = `
	SELECT
		offer_id, microsoft_offer_id, title, subtitle, features, summary, price, thumbnail,
		status, created_at, updated_at
	FROM
		"public"."partner_offer"
	ORDER BY
		created_at, offer_id`

	var dbOffers []offerDB
	if err := sqldb.QuerySlice(ctx, s.log, s.db, q, &dbOffers); err != nil {
		return nil, fmt.Errorf("queryslice: %w", err)
	}

	return toBusOffers(dbOffers)
}

// Create inserts a new offer into the database.
func (s *Store) Create(ctx context.Context, o offerbus.PartnerOffer) (offerbus.PartnerOffer, error) {
	const q = `
	INSERT INTO "public"."partner_offer"
		(offer_id, microsoft_offer_id, title, subtitle, features, summary, price, thumbnail,
		status, created_at, updated_at)
	VALUES
		(:offer_id, :microsoft_offer_id, :title, :subtitle, :features, :summary, :price, :thumbnail,
		:status, :created_at, :updated_at)`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBOffer(o)); err != nil {
		return offerbus.PartnerOffer{}, fmt.Errorf("namedexeccontext: %w", err)
	}

	return o, nil
}

// Update replaces an offer in the database. The creation time is kept.
func (s *Store) Update(ctx context.Context, o offerbus.PartnerOffer) (offerbus.PartnerOffer, error) {
	const q = `
	UPDATE
		"public"."partner_offer"
	SET
		microsoft_offer_id = :microsoft_offer_id,
		title = :title,
		subtitle = :subtitle,
		features = :features,
		summary = :summary,
		price = :price,
		thumbnail = :thumbnail,
		status = :status,
		updated_at = :updated_at
	WHERE
		offer_id = :offer_id
	RETURNING
		offer_id, microsoft_offer_id, title, subtitle, features, summary, price, thumbnail,
		status, created_at, updated_at`

	var dbOffer offerDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, toDBOffer(o), &dbOffer); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return offerbus.PartnerOffer{}, fmt.Errorf("db: %w", offerbus.ErrNotFound)
		}
		return offerbus.PartnerOffer{}, fmt.Errorf("db: %w", err)
	}

	return toBusOffer(dbOffer)
}

// MarkDeleted moves the offers to inactive in one statement and returns the
// resulting catalog.
func (s *Store) MarkDeleted(ctx context.Context, offers []offerbus.PartnerOffer) ([]offerbus.PartnerOffer, error) {
	if len(offers) > 0 {
		ids := make([]string, len(offers))
		for i, o := range offers {
			ids[i] = o.ID.String()
		}

		data := struct {
			Status string   `db:"status"`
			IDs    []string `db:"offer_ids"`
		}{
			Status: offerstatus.Inactive.String(),
			IDs:    ids,
		}

		const q = `
		UPDATE
			"public"."partner_offer"
		SET
			status = :status,
			updated_at = now()
		WHERE
			offer_id IN (:offer_ids) AND status <> :status`

		if err := sqldb.NamedExecContextUsingIn(ctx, s.log, s.db, q, data); err != nil {
			return nil, fmt.Errorf("namedexeccontextusingin: %w", err)
		}
	}

	return s.QueryAll(ctx)
}

// Package paymentdb contains payment configuration related CRUD functionality.
package paymentdb

import (
	"context"
	"errors"
	"fmt"

	"github.com/jcpaschoal/partner-portal/business/domain/paymentbus"
	"github.com/jcpaschoal/partner-portal/business/sdk/sqldb"
	"github.com/jcpaschoal/partner-portal/foundation/logger"
	"github.com/jmoiron/sqlx"
)

// Store manages the set of APIs for payment configuration database access.
type Store struct {
	log    *logger.Logger
	db     sqlx.ExtContext
	sealer Sealer
}

// NewStore constructs the api for data access.
func NewStore(log *logger.Logger, db *sqlx.DB, sealer Sealer) *Store {
	return &Store{
		log:    log,
		db:     db,
		sealer: sealer,
	}
}

// IsConfigured reports whether the payment row exists.
func (s *Store) IsConfigured(ctx context.Context) (bool, error) {
	data := struct {
		ID string `db:"payment_id"`
	}{
		ID: portalID,
	}

	const q = `
	SELECT
		EXISTS (SELECT 1 FROM "public"."payment_configuration" WHERE payment_id = :payment_id) AS configured`

	var result struct {
		Configured bool `db:"configured"`
	}

	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &result); err != nil {
		return false, fmt.Errorf("namedquerystruct: %w", err)
	}

	return result.Configured, nil
}

// Retrieve gets the payment configuration from the database.
func (s *Store) Retrieve(ctx context.Context) (paymentbus.Configuration, error) {
	data := struct {
		ID string `db:"payment_id"`
	}{
		ID: portalID,
	}

	const q = `
	SELECT
		payment_id, gateway, client_id, client_secret, account_type, web_experience_profile_id, updated_at
	FROM
		"public"."payment_configuration"
	WHERE
		payment_id = :payment_id`

	var dbPay paymentDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbPay); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return paymentbus.Configuration{}, fmt.Errorf("db: %w", paymentbus.ErrNotFound)
		}
		return paymentbus.Configuration{}, fmt.Errorf("db: %w", err)
	}

	return toBusPayment(s.sealer, dbPay)
}

// Update upserts the payment configuration.
func (s *Store) Update(ctx context.Context, cfg paymentbus.Configuration) (paymentbus.Configuration, error) {
	dbPay, err := toDBPayment(s.sealer, cfg)
	if err != nil {
		return paymentbus.Configuration{}, err
	}

	const q = `
	INSERT INTO "public"."payment_configuration"
		(payment_id, gateway, client_id, client_secret, account_type, web_experience_profile_id, updated_at)
	VALUES
		(:payment_id, :gateway, :client_id, :client_secret, :account_type, :web_experience_profile_id, :updated_at)
	ON CONFLICT (payment_id) DO UPDATE SET
		gateway = EXCLUDED.gateway,
		client_id = EXCLUDED.client_id,
		client_secret = EXCLUDED.client_secret,
		account_type = EXCLUDED.account_type,
		web_experience_profile_id = EXCLUDED.web_experience_profile_id,
		updated_at = EXCLUDED.updated_at`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, dbPay); err != nil {
		return paymentbus.Configuration{}, fmt.Errorf("namedexeccontext: %w", err)
	}

	return cfg, nil
}

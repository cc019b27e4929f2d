// Package brandingdb contains branding related CRUD functionality.
package brandingdb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"

	"github.com/google/uuid"
	"github.com/jcpaschoal/partner-portal/business/domain/brandingbus"
	"github.com/jcpaschoal/partner-portal/business/sdk/sqldb"
	"github.com/jcpaschoal/partner-portal/foundation/logger"
	"github.com/jmoiron/sqlx"
)

// Uploader stores owned asset content and returns the address it is served
// from. Remove discards an object that was uploaded but never referenced.
type Uploader interface {
	Upload(ctx context.Context, key string, contentType string, r io.Reader) (*url.URL, error)
	Remove(ctx context.Context, key string) error
}

// Store manages the set of APIs for branding database access.
type Store struct {
	log      *logger.Logger
	db       sqlx.ExtContext
	uploader Uploader
}

// NewStore constructs the api for data access.
func NewStore(log *logger.Logger, db *sqlx.DB, uploader Uploader) *Store {
	return &Store{
		log:      log,
		db:       db,
		uploader: uploader,
	}
}

// IsConfigured reports whether the branding row exists.
func (s *Store) IsConfigured(ctx context.Context) (bool, error) {
	data := struct {
		ID string `db:"branding_id"`
	}{
		ID: portalID,
	}

	const q = `
	SELECT
		EXISTS (SELECT 1 FROM "public"."portal_branding" WHERE branding_id = :branding_id) AS configured`

	var result struct {
		Configured bool `db:"configured"`
	}

	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &result); err != nil {
		return false, fmt.Errorf("namedquerystruct: %w", err)
	}

	return result.Configured, nil
}

// Retrieve gets the branding from the database.
func (s *Store) Retrieve(ctx context.Context) (brandingbus.Branding, error) {
	data := struct {
		ID string `db:"branding_id"`
	}{
		ID: portalID,
	}

	const q = `
	SELECT
		branding_id, organization_name, contact_us_email, contact_us_phone, contact_sales_email,
		contact_sales_phone, organization_logo, header_image, privacy_agreement, updated_at
	FROM
		"public"."portal_branding"
	WHERE
		branding_id = :branding_id`

	var dbBrd brandingDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbBrd); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return brandingbus.Branding{}, fmt.Errorf("db: %w", brandingbus.ErrNotFound)
		}
		return brandingbus.Branding{}, fmt.Errorf("db: %w", err)
	}

	return toBusBranding(dbBrd)
}

// Update uploads any owned content and then upserts the branding row. Slots
// left unchanged keep the value already stored. Objects uploaded by a failed
// update are removed.
func (s *Store) Update(ctx context.Context, b brandingbus.Branding) (brandingbus.Branding, error) {
	var uploaded []string
	var err error

	if b.OrganizationLogo, err = s.upload(ctx, b.OrganizationLogo, &uploaded); err != nil {
		return brandingbus.Branding{}, fmt.Errorf("upload organization logo: %w", err)
	}

	if b.HeaderImage, err = s.upload(ctx, b.HeaderImage, &uploaded); err != nil {
		s.discard(ctx, uploaded)
		return brandingbus.Branding{}, fmt.Errorf("upload header image: %w", err)
	}

	const q = `
	INSERT INTO "public"."portal_branding"
		(branding_id, organization_name, contact_us_email, contact_us_phone, contact_sales_email,
		contact_sales_phone, organization_logo, header_image, privacy_agreement, updated_at)
	VALUES
		(:branding_id, :organization_name, :contact_us_email, :contact_us_phone, :contact_sales_email,
		:contact_sales_phone, :organization_logo, :header_image, :privacy_agreement, :updated_at)
	ON CONFLICT (branding_id) DO UPDATE SET
		organization_name = EXCLUDED.organization_name,
		contact_us_email = EXCLUDED.contact_us_email,
		contact_us_phone = EXCLUDED.contact_us_phone,
		contact_sales_email = EXCLUDED.contact_sales_email,
		contact_sales_phone = EXCLUDED.contact_sales_phone,
		organization_logo = COALESCE(EXCLUDED.organization_logo, portal_branding.organization_logo),
		header_image = COALESCE(EXCLUDED.header_image, portal_branding.header_image),
		privacy_agreement = COALESCE(EXCLUDED.privacy_agreement, portal_branding.privacy_agreement),
		updated_at = EXCLUDED.updated_at
	RETURNING
		branding_id, organization_name, contact_us_email, contact_us_phone, contact_sales_email,
		contact_sales_phone, organization_logo, header_image, privacy_agreement, updated_at`

	var dbBrd brandingDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, toDBBranding(b), &dbBrd); err != nil {
		s.discard(ctx, uploaded)
		return brandingbus.Branding{}, fmt.Errorf("namedquerystruct: %w", err)
	}

	return toBusBranding(dbBrd)
}

// upload replaces owned content with the address it was stored under and
// records the key in uploaded.
func (s *Store) upload(ctx context.Context, a brandingbus.Asset, uploaded *[]string) (brandingbus.Asset, error) {
	content, ok := a.Content()
	if !ok {
		return a, nil
	}

	key := fmt.Sprintf("branding/%s/%s", uuid.NewString(), content.Name)

	u, err := s.uploader.Upload(ctx, key, content.ContentType, content.Data)
	if err != nil {
		return brandingbus.Asset{}, err
	}

	*uploaded = append(*uploaded, key)

	return brandingbus.URIReference(u), nil
}

// discard removes objects left behind by a failed update. Failures are only
// logged; the update error is what the caller sees.
func (s *Store) discard(ctx context.Context, keys []string) {
	for _, key := range keys {
		if err := s.uploader.Remove(ctx, key); err != nil {
			s.log.Warn(ctx, "brandingdb: orphaned asset", "key", key, "ERROR", err)
		}
	}
}

package brandingdb

import (
	"database/sql"
	"fmt"
	"net/url"
	"time"

	"github.com/jcpaschoal/partner-portal/business/domain/brandingbus"
)

// portalID keys the single branding row of the portal.
const portalID = "portal"

type brandingDB struct {
	ID                string         `db:"branding_id"`
	OrganizationName  string         `db:"organization_name"`
	ContactUsEmail    string         `db:"contact_us_email"`
	ContactUsPhone    string         `db:"contact_us_phone"`
	ContactSalesEmail string         `db:"contact_sales_email"`
	ContactSalesPhone string         `db:"contact_sales_phone"`
	OrganizationLogo  sql.NullString `db:"organization_logo"`
	HeaderImage       sql.NullString `db:"header_image"`
	PrivacyAgreement  sql.NullString `db:"privacy_agreement"`
	UpdatedAt         time.Time      `db:"updated_at"`
}

// toDBBranding expects owned content to have been uploaded already. Unchanged
// slots become NULL so the upsert keeps the stored value.
func toDBBranding(bus brandingbus.Branding) brandingDB {
	return brandingDB{
		ID:                portalID,
		OrganizationName:  bus.OrganizationName,
		ContactUsEmail:    bus.ContactUs.Email,
		ContactUsPhone:    bus.ContactUs.Phone,
		ContactSalesEmail: bus.ContactSales.Email,
		ContactSalesPhone: bus.ContactSales.Phone,
		OrganizationLogo:  toDBAsset(bus.OrganizationLogo),
		HeaderImage:       toDBAsset(bus.HeaderImage),
		PrivacyAgreement:  toDBAsset(bus.PrivacyAgreement),
		UpdatedAt:         bus.UpdatedAt.UTC(),
	}
}

func toDBAsset(a brandingbus.Asset) sql.NullString {
	u, ok := a.URI()
	if !ok {
		return sql.NullString{}
	}

	return sql.NullString{String: u.String(), Valid: true}
}

func toBusBranding(db brandingDB) (brandingbus.Branding, error) {
	logo, err := toBusAsset(db.OrganizationLogo)
	if err != nil {
		return brandingbus.Branding{}, fmt.Errorf("parse organization logo: %w", err)
	}

	header, err := toBusAsset(db.HeaderImage)
	if err != nil {
		return brandingbus.Branding{}, fmt.Errorf("parse header image: %w", err)
	}

	privacy, err := toBusAsset(db.PrivacyAgreement)
	if err != nil {
		return brandingbus.Branding{}, fmt.Errorf("parse privacy agreement: %w", err)
	}

	bus := brandingbus.Branding{
		OrganizationName: db.OrganizationName,
		ContactUs: brandingbus.Contact{
			Email: db.ContactUsEmail,
			Phone: db.ContactUsPhone,
		},
		ContactSales: brandingbus.Contact{
			Email: db.ContactSalesEmail,
			Phone: db.ContactSalesPhone,
		},
		OrganizationLogo: logo,
		HeaderImage:      header,
		PrivacyAgreement: privacy,
		UpdatedAt:        db.UpdatedAt.In(time.Local),
	}

	return bus, nil
}

func toBusAsset(ns sql.NullString) (brandingbus.Asset, error) {
	if !ns.Valid || ns.String == "" {
		return brandingbus.Unchanged(), nil
	}

	u, err := url.Parse(ns.String)
	if err != nil {
		return brandingbus.Asset{}, err
	}

	return brandingbus.URIReference(u), nil
}

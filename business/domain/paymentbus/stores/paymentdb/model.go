package paymentdb

import (
	"fmt"
	"time"

	"github.com/jcpaschoal/partner-portal/business/domain/paymentbus"
	"github.com/jcpaschoal/partner-portal/business/types/gateway"
)

// portalID keys the single payment row of the portal.
const portalID = "portal"

// Sealer protects the client secret at rest.
type Sealer interface {
	Seal(plain []byte) ([]byte, error)
	Open(sealed []byte) ([]byte, error)
}

type paymentDB struct {
	ID                     string    `db:"payment_id"`
	Gateway                string    `db:"gateway"`
	ClientID               string    `db:"client_id"`
	ClientSecret           []byte    `db:"client_secret"`
	AccountType            string    `db:"account_type"`
	WebExperienceProfileID string    `db:"web_experience_profile_id"`
	UpdatedAt              time.Time `db:"updated_at"`
}

func toDBPayment(sealer Sealer, bus paymentbus.Configuration) (paymentDB, error) {
	secret, err := sealer.Seal([]byte(bus.PayPal.ClientSecret))
	if err != nil {
		return paymentDB{}, fmt.Errorf("seal client secret: %w", err)
	}

	db := paymentDB{
		ID:                     portalID,
		Gateway:                bus.Gateway.String(),
		ClientID:               bus.PayPal.ClientID,
		ClientSecret:           secret,
		AccountType:            bus.PayPal.AccountType,
		WebExperienceProfileID: bus.PayPal.WebExperienceProfileID,
		UpdatedAt:              bus.UpdatedAt.UTC(),
	}

	return db, nil
}

func toBusPayment(sealer Sealer, db paymentDB) (paymentbus.Configuration, error) {
	gw, err := gateway.Parse(db.Gateway)
	if err != nil {
		return paymentbus.Configuration{}, fmt.Errorf("parse gateway: %w", err)
	}

	secret, err := sealer.Open(db.ClientSecret)
	if err != nil {
		return paymentbus.Configuration{}, fmt.Errorf("open client secret: %w", err)
	}

	bus := paymentbus.Configuration{
		Gateway: gw,
		PayPal: paymentbus.PayPalSettings{
			ClientID:               db.ClientID,
			ClientSecret:           string(secret),
			AccountType:            db.AccountType,
			WebExperienceProfileID: db.WebExperienceProfileID,
		},
		UpdatedAt: db.UpdatedAt.In(time.Local),
	}

	return bus, nil
}

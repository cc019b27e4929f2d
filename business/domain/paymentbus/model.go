package paymentbus

import (
	"time"

	"github.com/jcpaschoal/partner-portal/business/types/gateway"
)

// The PayPal environments a configuration can target.
const (
	AccountSandbox = "sandbox"
	AccountLive    = "live"
)

// Configuration represents the payment gateway settings of the portal.
type Configuration struct {
	Gateway   gateway.Gateway
	PayPal    PayPalSettings
	UpdatedAt time.Time
}

// PayPalSettings are the credentials used with the PayPal REST API.
type PayPalSettings struct {
	ClientID               string
	ClientSecret           string
	AccountType            string
	WebExperienceProfileID string
}

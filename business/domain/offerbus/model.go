package offerbus

import (
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/partner-portal/business/types/offerstatus"
)

// PartnerOffer represents an offer the partner resells on the portal.
type PartnerOffer struct {
	ID               uuid.UUID
	MicrosoftOfferID string
	Title            string
	Subtitle         string
	Features         []string
	Summary          []string
	Price            int64
	Thumbnail        string
	Status           offerstatus.Status
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewPartnerOffer contains information needed to create a new offer.
type NewPartnerOffer struct {
	MicrosoftOfferID string
	Title            string
	Subtitle         string
	Features         []string
	Summary          []string
	Price            int64
	Thumbnail        string
}

// MicrosoftOffer is an entry of the Microsoft catalog. It is read only.
type MicrosoftOffer struct {
	ID              string
	Name            string
	Description     string
	Category        string
	MinimumQuantity int
	MaximumQuantity int
	Thumbnail       string
}

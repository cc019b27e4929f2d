package offerdb

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/partner-portal/business/domain/offerbus"
	"github.com/jcpaschoal/partner-portal/business/types/offerstatus"
	"github.com/lib/pq"
)

type offerDB struct {
	ID               uuid.UUID      `db:"offer_id"`
	MicrosoftOfferID string         `db:"microsoft_offer_id"`
	Title            string         `db:"title"`
	Subtitle         string         `db:"subtitle"`
	Features         pq.StringArray `db:"features"`
	Summary          pq.StringArray `db:"summary"`
	Price            int64          `db:"price"`
	Thumbnail        string         `db:"thumbnail"`
	Status           string         `db:"status"`
	CreatedAt        time.Time      `db:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at"`
}

func toDBOffer(bus offerbus.PartnerOffer) offerDB {
	return offerDB{
		ID:               bus.ID,
		MicrosoftOfferID: bus.MicrosoftOfferID,
		Title:            bus.Title,
		Subtitle:         bus.Subtitle,
		Features:         nonNil(bus.Features),
		Summary:          nonNil(bus.Summary),
		Price:            bus.Price,
		Thumbnail:        bus.Thumbnail,
		Status:           bus.Status.String(),
		CreatedAt:        bus.CreatedAt.UTC(),
		UpdatedAt:        bus.UpdatedAt.UTC(),
	}
}

// nonNil keeps the NOT NULL array columns from receiving a NULL.
func nonNil(s []string) pq.StringArray {
	if s == nil {
		return pq.StringArray{}
	}

	return pq.StringArray(s)
}

func toBusOffer(db offerDB) (offerbus.PartnerOffer, error) {
	status, err := offerstatus.Parse(db.Status)
	if err != nil {
		return offerbus.PartnerOffer{}, fmt.Errorf("parse status: %w", err)
	}

	bus := offerbus.PartnerOffer{
		ID:               db.ID,
		MicrosoftOfferID: db.MicrosoftOfferID,
		Title:            db.Title,
		Subtitle:         db.Subtitle,
		Features:         []string(db.Features),
		Summary:          []string(db.Summary),
		Price:            db.Price,
		Thumbnail:        db.Thumbnail,
		Status:           status,
		CreatedAt:        db.CreatedAt.In(time.Local),
		UpdatedAt:        db.UpdatedAt.In(time.Local),
	}

	return bus, nil
}

func toBusOffers(dbs []offerDB) ([]offerbus.PartnerOffer, error) {
	bus := make([]offerbus.PartnerOffer, len(dbs))

	for i, db := range dbs {
		var err error
		bus[i], err = toBusOffer(db)
		if err != nil {
			return nil, err
		}
	}

	return bus, nil
}

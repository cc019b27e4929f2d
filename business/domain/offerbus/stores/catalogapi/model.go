package catalogapi

import "github.com/jcpaschoal/partner-portal/business/domain/offerbus"

type offerAPI struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	Category        string `json:"category"`
	MinimumQuantity int    `json:"minimumQuantity"`
	MaximumQuantity int    `json:"maximumQuantity"`
	Thumbnail       string `json:"thumbnail"`
}

type offersResponse struct {
	Items []offerAPI `json:"items"`
}

func toBusOffers(api []offerAPI) []offerbus.MicrosoftOffer {
	bus := make([]offerbus.MicrosoftOffer, len(api))
	for i, o := range api {
		bus[i] = offerbus.MicrosoftOffer{
			ID:              o.ID,
			Name:            o.Name,
			Description:     o.Description,
			Category:        o.Category,
			MinimumQuantity: o.MinimumQuantity,
			MaximumQuantity: o.MaximumQuantity,
			Thumbnail:       o.Thumbnail,
		}
	}

	return bus
}

package adminapp

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/partner-portal/app/sdk/errs"
	"github.com/jcpaschoal/partner-portal/business/domain/brandingbus"
	"github.com/jcpaschoal/partner-portal/business/domain/offerbus"
	"github.com/jcpaschoal/partner-portal/business/domain/paymentbus"
	"github.com/jcpaschoal/partner-portal/business/domain/statusbus"
	"github.com/jcpaschoal/partner-portal/business/types/gateway"
	"github.com/jcpaschoal/partner-portal/business/types/offerstatus"
)

// Status represents the setup state of the portal.
type Status struct {
	OffersConfigured   bool `json:"offersConfigured"`
	BrandingConfigured bool `json:"brandingConfigured"`
	PaymentConfigured  bool `json:"paymentConfigured"`
}

// Encode implements the web.Encoder interface.
func (s Status) Encode() ([]byte, string, error) {
	data, err := json.Marshal(s)
	return data, "application/json", err
}

func toAppStatus(bus statusbus.Status) Status {
	return Status{
		OffersConfigured:   bus.Offers,
		BrandingConfigured: bus.Branding,
		PaymentConfigured:  bus.Payment,
	}
}

// =============================================================================

// Branding represents the branding shown on the portal.
type Branding struct {
	OrganizationName  string `json:"organizationName"`
	ContactUsEmail    string `json:"contactUsEmail"`
	ContactUsPhone    string `json:"contactUsPhone"`
	ContactSalesEmail string `json:"contactSalesEmail"`
	ContactSalesPhone string `json:"contactSalesPhone"`
	OrganizationLogo  string `json:"organizationLogo,omitempty"`
	HeaderImage       string `json:"headerImage,omitempty"`
	PrivacyAgreement  string `json:"privacyAgreement,omitempty"`
	UpdatedAt         string `json:"updatedAt"`
}

// Encode implements the web.Encoder interface.
func (b Branding) Encode() ([]byte, string, error) {
	data, err := json.Marshal(b)
	return data, "application/json", err
}

func toAppBranding(bus brandingbus.Branding) Branding {
	return Branding{
		OrganizationName:  bus.OrganizationName,
		ContactUsEmail:    bus.ContactUs.Email,
		ContactUsPhone:    bus.ContactUs.Phone,
		ContactSalesEmail: bus.ContactSales.Email,
		ContactSalesPhone: bus.ContactSales.Phone,
		OrganizationLogo:  bus.OrganizationLogo.String(),
		HeaderImage:       bus.HeaderImage.String(),
		PrivacyAgreement:  bus.PrivacyAgreement.String(),
		UpdatedAt:         bus.UpdatedAt.Format(time.RFC3339),
	}
}

// =============================================================================

// Offer represents a partner offer.
type Offer struct {
	ID               string   `json:"id" validate:"required,uuid"`
	MicrosoftOfferID string   `json:"microsoftOfferId"`
	Title            string   `json:"title"`
	Subtitle         string   `json:"subtitle"`
	Features         []string `json:"features"`
	Summary          []string `json:"summary"`
	Price            int64    `json:"price"`
	Thumbnail        string   `json:"thumbnail"`
	Status           string   `json:"status"`
	CreatedAt        string   `json:"createdAt,omitempty"`
	UpdatedAt        string   `json:"updatedAt,omitempty"`
}

// Encode implements the web.Encoder interface.
func (o Offer) Encode() ([]byte, string, error) {
	data, err := json.Marshal(o)
	return data, "application/json", err
}

// Decode implements the web.Decoder interface.
func (o *Offer) Decode(data []byte) error {
	return json.Unmarshal(data, o)
}

// Validate checks the data in the model is considered clean.
func (o Offer) Validate() error {
	return errs.Check(o)
}

func toAppOffer(bus offerbus.PartnerOffer) Offer {
	return Offer{
		ID:               bus.ID.String(),
		MicrosoftOfferID: bus.MicrosoftOfferID,
		Title:            bus.Title,
		Subtitle:         bus.Subtitle,
		Features:         bus.Features,
		Summary:          bus.Summary,
		Price:            bus.Price,
		Thumbnail:        bus.Thumbnail,
		Status:           bus.Status.String(),
		CreatedAt:        bus.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        bus.UpdatedAt.Format(time.RFC3339),
	}
}

func toBusOffer(app Offer) (offerbus.PartnerOffer, error) {
	id, err := uuid.Parse(app.ID)
	if err != nil {
		return offerbus.PartnerOffer{}, fmt.Errorf("parse id: %w", err)
	}

	var status offerstatus.Status
	if app.Status != "" {
		status, err = offerstatus.Parse(strings.ToUpper(app.Status))
		if err != nil {
			return offerbus.PartnerOffer{}, err
		}
	}

	bus := offerbus.PartnerOffer{
		ID:               id,
		MicrosoftOfferID: app.MicrosoftOfferID,
		Title:            app.Title,
		Subtitle:         app.Subtitle,
		Features:         app.Features,
		Summary:          app.Summary,
		Price:            app.Price,
		Thumbnail:        app.Thumbnail,
		Status:           status,
	}

	if app.CreatedAt != "" {
		bus.CreatedAt, err = time.Parse(time.RFC3339, app.CreatedAt)
		if err != nil {
			return offerbus.PartnerOffer{}, fmt.Errorf("parse createdAt: %w", err)
		}
	}

	return bus, nil
}

// Offers is a collection of offers.
type Offers []Offer

// Encode implements the web.Encoder interface.
func (o Offers) Encode() ([]byte, string, error) {
	data, err := json.Marshal(o)
	return data, "application/json", err
}

// Decode implements the web.Decoder interface.
func (o *Offers) Decode(data []byte) error {
	return json.Unmarshal(data, o)
}

// Validate checks every offer in the batch.
func (o Offers) Validate() error {
	for _, offer := range o {
		if err := offer.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func toAppOffers(bus []offerbus.PartnerOffer) Offers {
	app := make(Offers, len(bus))
	for i, o := range bus {
		app[i] = toAppOffer(o)
	}
	return app
}

func toBusOffers(app Offers) ([]offerbus.PartnerOffer, error) {
	bus := make([]offerbus.PartnerOffer, len(app))
	for i, o := range app {
		var err error
		if bus[i], err = toBusOffer(o); err != nil {
			return nil, fmt.Errorf("offer[%d]: %w", i, err)
		}
	}
	return bus, nil
}

// NewOffer defines the data needed to add an offer.
type NewOffer struct {
	MicrosoftOfferID string   `json:"microsoftOfferId"`
	Title            string   `json:"title"`
	Subtitle         string   `json:"subtitle"`
	Features         []string `json:"features"`
	Summary          []string `json:"summary"`
	Price            int64    `json:"price"`
	Thumbnail        string   `json:"thumbnail"`
}

// Decode implements the web.Decoder interface.
func (app *NewOffer) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

func toBusNewOffer(app NewOffer) offerbus.NewPartnerOffer {
	return offerbus.NewPartnerOffer{
		MicrosoftOfferID: app.MicrosoftOfferID,
		Title:            app.Title,
		Subtitle:         app.Subtitle,
		Features:         app.Features,
		Summary:          app.Summary,
		Price:            app.Price,
		Thumbnail:        app.Thumbnail,
	}
}

// MicrosoftOffer represents an entry of the Microsoft catalog.
type MicrosoftOffer struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	Category        string `json:"category"`
	MinimumQuantity int    `json:"minimumQuantity"`
	MaximumQuantity int    `json:"maximumQuantity"`
	Thumbnail       string `json:"thumbnail"`
}

// MicrosoftOffers is a collection of catalog entries.
type MicrosoftOffers []MicrosoftOffer

// Encode implements the web.Encoder interface.
func (m MicrosoftOffers) Encode() ([]byte, string, error) {
	data, err := json.Marshal(m)
	return data, "application/json", err
}

func toAppMicrosoftOffers(bus []offerbus.MicrosoftOffer) MicrosoftOffers {
	app := make(MicrosoftOffers, len(bus))
	for i, o := range bus {
		app[i] = MicrosoftOffer(o)
	}
	return app
}

// =============================================================================

// PaymentConfiguration represents the payment gateway settings.
type PaymentConfiguration struct {
	Gateway                string `json:"gateway"`
	ClientID               string `json:"clientId"`
	ClientSecret           string `json:"clientSecret"`
	AccountType            string `json:"accountType"`
	WebExperienceProfileID string `json:"webExperienceProfileId"`
	UpdatedAt              string `json:"updatedAt,omitempty"`
}

// Encode implements the web.Encoder interface.
func (p PaymentConfiguration) Encode() ([]byte, string, error) {
	data, err := json.Marshal(p)
	return data, "application/json", err
}

// Decode implements the web.Decoder interface.
func (p *PaymentConfiguration) Decode(data []byte) error {
	return json.Unmarshal(data, p)
}

func toAppPayment(bus paymentbus.Configuration) PaymentConfiguration {
	return PaymentConfiguration{
		Gateway:                bus.Gateway.String(),
		ClientID:               bus.PayPal.ClientID,
		ClientSecret:           bus.PayPal.ClientSecret,
		AccountType:            bus.PayPal.AccountType,
		WebExperienceProfileID: bus.PayPal.WebExperienceProfileID,
		UpdatedAt:              bus.UpdatedAt.Format(time.RFC3339),
	}
}

// toBusPayment leaves an unknown gateway as the zero value so the payment
// rules report it against the Gateway field.
func toBusPayment(app PaymentConfiguration) paymentbus.Configuration {
	gw, _ := gateway.Parse(strings.ToUpper(strings.TrimSpace(app.Gateway)))

	return paymentbus.Configuration{
		Gateway: gw,
		PayPal: paymentbus.PayPalSettings{
			ClientID:               app.ClientID,
			ClientSecret:           app.ClientSecret,
			AccountType:            app.AccountType,
			WebExperienceProfileID: app.WebExperienceProfileID,
		},
	}
}

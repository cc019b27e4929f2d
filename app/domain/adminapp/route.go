package adminapp

import (
	"net/http"

	"github.com/jcpaschoal/partner-portal/app/sdk/auth"
	"github.com/jcpaschoal/partner-portal/app/sdk/mid"
	"github.com/jcpaschoal/partner-portal/business/domain/brandingbus"
	"github.com/jcpaschoal/partner-portal/business/domain/offerbus"
	"github.com/jcpaschoal/partner-portal/business/domain/paymentbus"
	"github.com/jcpaschoal/partner-portal/business/domain/statusbus"
	"github.com/jcpaschoal/partner-portal/business/sdk/web"
	"github.com/jcpaschoal/partner-portal/business/types/resource"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Auth        *auth.Auth
	StatusBus   *statusbus.Core
	BrandingBus *brandingbus.Core
	OfferBus    *offerbus.Core
	PaymentBus  *paymentbus.Core
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	authen := mid.Authenticate(cfg.Auth)
	status := mid.Authorize(cfg.Auth, resource.Status)
	branding := mid.Authorize(cfg.Auth, resource.Branding)
	offers := mid.Authorize(cfg.Auth, resource.Offers)
	catalog := mid.Authorize(cfg.Auth, resource.MicrosoftOffers)
	payment := mid.Authorize(cfg.Auth, resource.Payment)

	api := newApp(cfg)

	app.HandlerFunc(http.MethodGet, version, "/admin/status", api.status, authen, status)

	app.HandlerFunc(http.MethodGet, version, "/admin/branding", api.queryBranding, authen, branding)
	app.HandlerFunc(http.MethodPost, version, "/admin/branding", api.updateBranding, authen, branding)

	app.HandlerFunc(http.MethodGet, version, "/admin/offers", api.queryOffers, authen, offers)
	app.HandlerFunc(http.MethodPost, version, "/admin/offers", api.createOffer, authen, offers)
	app.HandlerFunc(http.MethodPut, version, "/admin/offers", api.updateOffer, authen, offers)
	app.HandlerFunc(http.MethodPost, version, "/admin/offers/delete", api.deleteOffers, authen, offers)

	app.HandlerFunc(http.MethodGet, version, "/admin/microsoftoffers", api.queryMicrosoftOffers, authen, catalog)

	app.HandlerFunc(http.MethodGet, version, "/admin/payment", api.queryPayment, authen, payment)
	app.HandlerFunc(http.MethodPut, version, "/admin/payment", api.updatePayment, authen, payment)
}

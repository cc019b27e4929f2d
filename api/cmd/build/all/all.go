// Package all binds all the routes into the specified app.
package all

import (
	"github.com/jcpaschoal/partner-portal/app/domain/adminapp"
	"github.com/jcpaschoal/partner-portal/app/domain/checkapp"
	"github.com/jcpaschoal/partner-portal/app/sdk/mux"
	"github.com/jcpaschoal/partner-portal/business/domain/brandingbus"
	"github.com/jcpaschoal/partner-portal/business/domain/brandingbus/stores/brandingdb"
	"github.com/jcpaschoal/partner-portal/business/domain/offerbus"
	"github.com/jcpaschoal/partner-portal/business/domain/offerbus/stores/catalogcache"
	"github.com/jcpaschoal/partner-portal/business/domain/offerbus/stores/offercache"
	"github.com/jcpaschoal/partner-portal/business/domain/offerbus/stores/offerdb"
	"github.com/jcpaschoal/partner-portal/business/domain/paymentbus"
	"github.com/jcpaschoal/partner-portal/business/domain/paymentbus/stores/paymentdb"
	"github.com/jcpaschoal/partner-portal/business/domain/statusbus"
	"github.com/jcpaschoal/partner-portal/business/sdk/web"
)

// Routes constructs the add value which provides the implementation of
// of RouteAdder for specifying what routes to bind to this instance.
func Routes() add {
	return add{}
}

type add struct{}

// Add implements the RouterAdder interface.
func (add) Add(app *web.App, cfg mux.Config) {
	sc := cfg.Stores

	catalog := sc.Catalog
	if sc.Redis != nil {
		catalog = catalogcache.NewStore(cfg.Log, catalog, sc.Redis, sc.CatalogCacheTTL)
	}

	brandingBus := brandingbus.NewCore(cfg.Log, brandingdb.NewStore(cfg.Log, cfg.DB, sc.Uploader))
	offerBus := offerbus.NewCore(cfg.Log, offercache.NewStore(cfg.Log, offerdb.NewStore(cfg.Log, cfg.DB), sc.OfferCacheTTL), catalog)
	paymentBus := paymentbus.NewCore(cfg.Log, paymentdb.NewStore(cfg.Log, cfg.DB, sc.Sealer))
	statusBus := statusbus.NewCore(cfg.Log, offerBus, brandingBus, paymentBus)

	checkapp.Routes(app, checkapp.Config{
		Build: cfg.Build,
		Log:   cfg.Log,
		DB:    cfg.DB,
	})

	adminapp.Routes(app, adminapp.Config{
		Auth:        cfg.AuthConfig.Auth,
		StatusBus:   statusBus,
		BrandingBus: brandingBus,
		OfferBus:    offerBus,
		PaymentBus:  paymentBus,
	})
}

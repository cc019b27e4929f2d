// Package adminapp maintains the app layer api for the partner admin console.
package adminapp

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/jcpaschoal/partner-portal/app/sdk/errs"
	"github.com/jcpaschoal/partner-portal/business/domain/brandingbus"
	"github.com/jcpaschoal/partner-portal/business/domain/offerbus"
	"github.com/jcpaschoal/partner-portal/business/domain/paymentbus"
	"github.com/jcpaschoal/partner-portal/business/domain/statusbus"
	"github.com/jcpaschoal/partner-portal/business/sdk/domainerr"
	"github.com/jcpaschoal/partner-portal/business/sdk/web"
	"github.com/jcpaschoal/partner-portal/foundation/blobstore"
)

// maxFormMemory bounds the part of a multipart form kept in memory.
const maxFormMemory = 8 << 20

type app struct {
	statusBus   *statusbus.Core
	brandingBus *brandingbus.Core
	offerBus    *offerbus.Core
	paymentBus  *paymentbus.Core
}

func newApp(cfg Config) *app {
	return &app{
		statusBus:   cfg.StatusBus,
		brandingBus: cfg.BrandingBus,
		offerBus:    cfg.OfferBus,
		paymentBus:  cfg.PaymentBus,
	}
}

func (a *app) status(ctx context.Context, r *http.Request) web.Encoder {
	st, err := a.statusBus.Query(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "query status: %s", err)
	}

	return toAppStatus(st)
}

// =============================================================================

func (a *app) queryBranding(ctx context.Context, r *http.Request) web.Encoder {
	b, err := a.brandingBus.Retrieve(ctx)
	if err != nil {
		return toAppError("retrieve branding", err)
	}

	return toAppBranding(b)
}

func (a *app) updateBranding(ctx context.Context, r *http.Request) web.Encoder {
	r.Body = http.MaxBytesReader(web.GetWriter(ctx), r.Body, 2*blobstore.MaxObjectSize+maxFormMemory)

	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("parse form: %w", err))
	}
	defer r.MultipartForm.RemoveAll()

	logo, closeLogo, err := formUpload(r, "OrganizationLogoFile")
	if err != nil {
		return errs.NewFieldErrors("OrganizationLogoFile", err)
	}
	defer closeLogo()

	header, closeHeader, err := formUpload(r, "HeaderImageFile")
	if err != nil {
		return errs.NewFieldErrors("HeaderImageFile", err)
	}
	defer closeHeader()

	sub := brandingbus.Submission{
		OrganizationName: r.FormValue("OrganizationName"),
		ContactUs: brandingbus.Contact{
			Email: r.FormValue("ContactUsEmail"),
			Phone: r.FormValue("ContactUsPhone"),
		},
		ContactSales: brandingbus.Contact{
			Email: r.FormValue("ContactSalesEmail"),
			Phone: r.FormValue("ContactSalesPhone"),
		},
		OrganizationLogo: brandingbus.AssetInput{
			Display: r.FormValue("OrganizationLogo"),
			Upload:  logo,
		},
		HeaderImage: brandingbus.AssetInput{
			Display: r.FormValue("HeaderImage"),
			Upload:  header,
		},
		PrivacyAgreement: r.FormValue("PrivacyAgreement"),
	}

	b, err := a.brandingBus.Update(ctx, sub)
	if err != nil {
		return toAppError("update branding", err)
	}

	return toAppBranding(b)
}

// formUpload opens the named file part. A missing part yields a nil upload
// and a no-op close.
func formUpload(r *http.Request, field string) (*brandingbus.Upload, func(), error) {
	file, fh, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, func() {}, nil
		}
		return nil, func() {}, err
	}

	up := brandingbus.Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Content:     file,
	}

	return &up, closer(file), nil
}

func closer(f multipart.File) func() {
	return func() { f.Close() }
}

// =============================================================================

func (a *app) queryOffers(ctx context.Context, r *http.Request) web.Encoder {
	offers, err := a.offerBus.QueryActive(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "query offers: %s", err)
	}

	return toAppOffers(offers)
}

func (a *app) createOffer(ctx context.Context, r *http.Request) web.Encoder {
	var req NewOffer
	if err := web.Decode(r, &req); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	o, err := a.offerBus.Create(ctx, toBusNewOffer(req))
	if err != nil {
		return errs.Errorf(errs.Internal, "create offer: %s", err)
	}

	return toAppOffer(o)
}

func (a *app) updateOffer(ctx context.Context, r *http.Request) web.Encoder {
	var req Offer
	if err := web.Decode(r, &req); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	bus, err := toBusOffer(req)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	o, err := a.offerBus.Update(ctx, bus)
	if err != nil {
		return toAppError("update offer", err)
	}

	return toAppOffer(o)
}

func (a *app) deleteOffers(ctx context.Context, r *http.Request) web.Encoder {
	var req Offers
	if err := web.Decode(r, &req); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	bus, err := toBusOffers(req)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	remaining, err := a.offerBus.Delete(ctx, bus)
	if err != nil {
		return errs.Errorf(errs.Internal, "delete offers: %s", err)
	}

	return toAppOffers(remaining)
}

func (a *app) queryMicrosoftOffers(ctx context.Context, r *http.Request) web.Encoder {
	offers, err := a.offerBus.QueryMicrosoftOffers(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "query microsoft offers: %s", err)
	}

	return toAppMicrosoftOffers(offers)
}

// =============================================================================

func (a *app) queryPayment(ctx context.Context, r *http.Request) web.Encoder {
	cfg, err := a.paymentBus.Retrieve(ctx)
	if err != nil {
		return toAppError("retrieve payment", err)
	}

	return toAppPayment(cfg)
}

func (a *app) updatePayment(ctx context.Context, r *http.Request) web.Encoder {
	var req PaymentConfiguration
	if err := web.Decode(r, &req); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	cfg, err := a.paymentBus.Update(ctx, toBusPayment(req))
	if err != nil {
		return toAppError("update payment", err)
	}

	return toAppPayment(cfg)
}

// =============================================================================

// toAppError maps business failures onto app errors. Field-tagged validation
// failures keep their field names.
func toAppError(op string, err error) *errs.Error {
	if all := domainerr.All(err); len(all) > 0 {
		var fe errs.FieldErrors
		for _, de := range all {
			fe = append(fe, errs.FieldError{Field: de.Field, Err: de.Message})
		}
		return fe.ToError()
	}

	switch {
	case errors.Is(err, brandingbus.ErrNotFound),
		errors.Is(err, offerbus.ErrNotFound),
		errors.Is(err, paymentbus.ErrNotFound):
		return errs.New(errs.NotFound, err)
	}

	return errs.Errorf(errs.Internal, "%s: %s", op, err)
}

package mid

import (
	"context"
	"errors"
	"net/http"

	"github.com/jcpaschoal/partner-portal/app/sdk/auth"
	"github.com/jcpaschoal/partner-portal/app/sdk/errs"
	"github.com/jcpaschoal/partner-portal/business/sdk/web"
	"github.com/jcpaschoal/partner-portal/business/types/actions"
	"github.com/jcpaschoal/partner-portal/business/types/resource"
)

// Authorize checks the authenticated role may perform the request's action
// on the resource. It must run after Authenticate.
func Authorize(ath *auth.Auth, res resource.Resource) web.MidFunc {
	m := func(next web.HandlerFunc) web.HandlerFunc {
		h := func(ctx context.Context, r *http.Request) web.Encoder {
			claims := GetClaims(ctx)
			if claims.Subject == "" {
				return errs.New(errs.Unauthenticated, errors.New("claims missing from context"))
			}

			act, err := actions.FromMethod(r.Method)
			if err != nil {
				return errs.New(errs.FailedPrecondition, err)
			}

			if err := ath.Authorize(ctx, claims, res, act); err != nil {
				return errs.New(errs.PermissionDenied, err)
			}

			return next(ctx, r)
		}

		return h
	}

	return m
}

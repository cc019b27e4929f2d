package mid

import (
	"context"
	"errors"
	"net/http"

	"github.com/jcpaschoal/partner-portal/app/sdk/auth"
	"github.com/jcpaschoal/partner-portal/app/sdk/errs"
	"github.com/jcpaschoal/partner-portal/business/sdk/web"
)

// Authenticate validates the JWT in the Authorization header and stores its
// claims in the context.
func Authenticate(a *auth.Auth) web.MidFunc {
	m := func(next web.HandlerFunc) web.HandlerFunc {
		h := func(ctx context.Context, r *http.Request) web.Encoder {
			authStr := r.Header.Get("authorization")
			if authStr == "" {
				return errs.New(errs.Unauthenticated, errors.New("missing authorization header"))
			}

			claims, err := a.Authenticate(ctx, authStr)
			if err != nil {
				return errs.New(errs.Unauthenticated, err)
			}

			ctx = setClaims(ctx, claims)

			return next(ctx, r)
		}

		return h
	}

	return m
}

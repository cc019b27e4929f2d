// Package auth provides authentication and authorization support for the
// admin console.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jcpaschoal/partner-portal/business/types/actions"
	"github.com/jcpaschoal/partner-portal/business/types/resource"
	"github.com/jcpaschoal/partner-portal/business/types/role"
	"github.com/jcpaschoal/partner-portal/foundation/logger"
)

// Set of error variables for authentication and authorization.
var (
	ErrForbidden    = errors.New("attempted action is not allowed")
	ErrKIDMissing   = errors.New("kid missing from token header")
	ErrKIDMalformed = errors.New("kid in token header is malformed")
	ErrInvalidRole  = errors.New("token contains an invalid role")
)

// Claims represents the authorization claims transmitted via a JWT.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// KeyLookup declares a method set of behavior for looking up
// private and public keys for JWT use.
type KeyLookup interface {
	PrivateKey(kid string) (key string, err error)
	PublicKey(kid string) (key string, err error)
}

// Config represents information required to initialize auth.
type Config struct {
	Log       *logger.Logger
	KeyLookup KeyLookup
	Issuer    string
	TokenTTL  time.Duration
}

// Auth is used to authenticate clients.
type Auth struct {
	log       *logger.Logger
	keyLookup KeyLookup
	policy    *Policy
	method    jwt.SigningMethod
	parser    *jwt.Parser
	issuer    string
	ttl       time.Duration
}

// New creates an Auth to support authentication/authorization.
func New(cfg Config) (*Auth, error) {
	policy, err := NewPolicy()
	if err != nil {
		return nil, fmt.Errorf("policy: %w", err)
	}

	ttl := cfg.TokenTTL
	if ttl == 0 {
		ttl = 8 * time.Hour
	}

	a := Auth{
		log:       cfg.Log,
		keyLookup: cfg.KeyLookup,
		policy:    policy,
		method:    jwt.GetSigningMethod(jwt.SigningMethodRS256.Name),
		parser:    jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Name}), jwt.WithIssuer(cfg.Issuer)),
		issuer:    cfg.Issuer,
		ttl:       ttl,
	}

	return &a, nil
}

// Issuer provides the configured issuer used to authenticate tokens.
func (a *Auth) Issuer() string {
	return a.issuer
}

// GenerateToken generates a signed JWT token string for the subject and role.
func (a *Auth) GenerateToken(kid string, subject string, r role.Role) (string, error) {
	now := time.Now()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    a.issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Role: r.String(),
	}

	token := jwt.NewWithClaims(a.method, claims)
	token.Header["kid"] = kid

	privateKeyPEM, err := a.keyLookup.PrivateKey(kid)
	if err != nil {
		return "", fmt.Errorf("private key: %w", err)
	}

	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(privateKeyPEM))
	if err != nil {
		return "", fmt.Errorf("parsing private key from PEM: %w", err)
	}

	str, err := token.SignedString(privateKey)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}

	return str, nil
}

// Authenticate processes the token to validate the sender's token is valid.
func (a *Auth) Authenticate(ctx context.Context, bearerToken string) (Claims, error) {
	parts := strings.Split(bearerToken, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return Claims{}, errors.New("expected authorization header format: Bearer <token>")
	}

	jwtUnverified := parts[1]

	var claims Claims
	token, _, err := a.parser.ParseUnverified(jwtUnverified, &claims)
	if err != nil {
		return Claims{}, fmt.Errorf("error parsing token: %w", err)
	}

	kidRaw, exists := token.Header["kid"]
	if !exists {
		return Claims{}, ErrKIDMissing
	}

	kid, ok := kidRaw.(string)
	if !ok {
		return Claims{}, ErrKIDMalformed
	}

	pem, err := a.keyLookup.PublicKey(kid)
	if err != nil {
		return Claims{}, fmt.Errorf("fetching public key for kid %q: %w", kid, err)
	}

	verified, err := a.verify(jwtUnverified, pem)
	if err != nil {
		a.log.Info(ctx, "**Authenticate-FAILED**", "subject", claims.Subject, "ERROR", err)
		return Claims{}, fmt.Errorf("authentication failed: %w", err)
	}

	if _, err := role.Parse(verified.Role); err != nil {
		return Claims{}, ErrInvalidRole
	}

	return verified, nil
}

// Authorize checks the role in the claims is allowed to perform the action on
// the resource.
func (a *Auth) Authorize(ctx context.Context, claims Claims, res resource.Resource, act actions.Action) error {
	r, err := role.Parse(claims.Role)
	if err != nil {
		return ErrInvalidRole
	}

	ok, err := a.policy.Allowed(r, res, act)
	if err != nil {
		return fmt.Errorf("enforce: %w", err)
	}

	if !ok {
		return fmt.Errorf("%w: role %q cannot %s %s", ErrForbidden, r, act, res)
	}

	return nil
}

// verify parses the token with the public key, validates the signature, and
// checks the issuer claim.
func (a *Auth) verify(tokenStr string, pemStr string) (Claims, error) {
	publicKey, err := jwt.ParseRSAPublicKeyFromPEM([]byte(pemStr))
	if err != nil {
		return Claims{}, fmt.Errorf("parsing public key: %w", err)
	}

	var claims Claims
	token, err := a.parser.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		return publicKey, nil
	})
	if err != nil {
		return Claims{}, fmt.Errorf("validating token: %w", err)
	}

	if !token.Valid {
		return Claims{}, errors.New("token is invalid")
	}

	return claims, nil
}

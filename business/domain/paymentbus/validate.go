package paymentbus

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jcpaschoal/partner-portal/business/sdk/domainerr"
	"github.com/jcpaschoal/partner-portal/business/types/gateway"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type paypalRules struct {
	ClientID               string `validate:"required"`
	ClientSecret           string `validate:"required"`
	AccountType            string `validate:"oneof=sandbox live"`
	WebExperienceProfileID string
}

// Validate checks the configuration against the rules of its gateway. Every
// failing field is reported as its own InvalidInput error.
func Validate(cfg Configuration) error {
	switch {
	case cfg.Gateway.Equal(gateway.PayPal):
		return validatePayPal(cfg.PayPal)

	default:
		return domainerr.New(domainerr.InvalidInput, "Gateway", fmt.Sprintf("unsupported payment gateway %q", cfg.Gateway.String()))
	}
}

func validatePayPal(s PayPalSettings) error {
	rules := paypalRules{
		ClientID:               strings.TrimSpace(s.ClientID),
		ClientSecret:           strings.TrimSpace(s.ClientSecret),
		AccountType:            strings.TrimSpace(s.AccountType),
		WebExperienceProfileID: strings.TrimSpace(s.WebExperienceProfileID),
	}

	err := validate.Struct(rules)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate: %w", err)
	}

	fails := make([]error, len(verrs))
	for i, fe := range verrs {
		fails[i] = domainerr.New(domainerr.InvalidInput, fe.StructField(), message(fe))
	}

	return errors.Join(fails...)
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.StructField())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.StructField(), fe.Param())
	default:
		return fmt.Sprintf("%s failed on %s", fe.StructField(), fe.Tag())
	}
}

package paymentbus_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jcpaschoal/partner-portal/business/domain/paymentbus"
	"github.com/jcpaschoal/partner-portal/business/sdk/domainerr"
	"github.com/jcpaschoal/partner-portal/business/types/gateway"
	"github.com/jcpaschoal/partner-portal/foundation/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStorer struct {
	updates int
	stored  *paymentbus.Configuration
	err     error
}

func (f *fakeStorer) IsConfigured(ctx context.Context) (bool, error) {
	return f.stored != nil, f.err
}

func (f *fakeStorer) Retrieve(ctx context.Context) (paymentbus.Configuration, error) {
	if f.err != nil {
		return paymentbus.Configuration{}, f.err
	}
	if f.stored == nil {
		return paymentbus.Configuration{}, paymentbus.ErrNotFound
	}
	return *f.stored, nil
}

func (f *fakeStorer) Update(ctx context.Context, cfg paymentbus.Configuration) (paymentbus.Configuration, error) {
	f.updates++
	if f.err != nil {
		return paymentbus.Configuration{}, f.err
	}
	f.stored = &cfg
	return cfg, nil
}

func validPayPal() paymentbus.Configuration {
	return paymentbus.Configuration{
		Gateway: gateway.PayPal,
		PayPal: paymentbus.PayPalSettings{
			ClientID:     "AYSq3RDGsmBLJE-otTkBtM",
			ClientSecret: "EGnHDxD_qRPdaLdZz8iCr8N7",
			AccountType:  paymentbus.AccountSandbox,
		},
	}
}

func Test_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*paymentbus.Configuration)
		fields []string
	}{
		{
			name:   "valid",
			mutate: func(*paymentbus.Configuration) {},
		},
		{
			name:   "live without profile",
			mutate: func(c *paymentbus.Configuration) { c.PayPal.AccountType = paymentbus.AccountLive },
		},
		{
			name:   "missing client id",
			mutate: func(c *paymentbus.Configuration) { c.PayPal.ClientID = "  " },
			fields: []string{"ClientID"},
		},
		{
			name:   "bad account type",
			mutate: func(c *paymentbus.Configuration) { c.PayPal.AccountType = "production" },
			fields: []string{"AccountType"},
		},
		{
			name: "every field wrong",
			mutate: func(c *paymentbus.Configuration) {
				c.PayPal = paymentbus.PayPalSettings{}
			},
			fields: []string{"ClientID", "ClientSecret", "AccountType"},
		},
		{
			name:   "unknown gateway",
			mutate: func(c *paymentbus.Configuration) { c.Gateway = gateway.Gateway{} },
			fields: []string{"Gateway"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validPayPal()
			tt.mutate(&cfg)

			err := paymentbus.Validate(cfg)
			if len(tt.fields) == 0 {
				require.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.True(t, domainerr.IsCode(err, domainerr.InvalidInput))
			assert.Equal(t, tt.fields, domainerr.Fields(err))
		})
	}
}

func Test_UpdateInvalidNeverPersists(t *testing.T) {
	s := &fakeStorer{}
	core := paymentbus.NewCore(logger.NewDiscard(), s)

	cfg := validPayPal()
	cfg.PayPal.ClientSecret = ""

	_, err := core.Update(context.Background(), cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, &domainerr.Error{Code: domainerr.InvalidInput, Field: "ClientSecret"})
	assert.Equal(t, 0, s.updates)

	ok, err := core.IsConfigured(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func Test_UpdatePersistsValid(t *testing.T) {
	s := &fakeStorer{}
	core := paymentbus.NewCore(logger.NewDiscard(), s)
	ctx := context.Background()

	got, err := core.Update(ctx, validPayPal())
	require.NoError(t, err)
	assert.Equal(t, 1, s.updates)
	assert.False(t, got.UpdatedAt.IsZero())

	stored, err := core.Retrieve(ctx)
	require.NoError(t, err)
	assert.Equal(t, "AYSq3RDGsmBLJE-otTkBtM", stored.PayPal.ClientID)
}

func Test_RetrieveUnconfigured(t *testing.T) {
	core := paymentbus.NewCore(logger.NewDiscard(), &fakeStorer{})

	_, err := core.Retrieve(context.Background())
	require.ErrorIs(t, err, paymentbus.ErrNotFound)
}

func Test_UpdateStoreErrorPropagates(t *testing.T) {
	dbErr := errors.New("db down")
	core := paymentbus.NewCore(logger.NewDiscard(), &fakeStorer{err: dbErr})

	_, err := core.Update(context.Background(), validPayPal())
	require.ErrorIs(t, err, dbErr)
}

package brandingbus_test

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/jcpaschoal/partner-portal/business/domain/brandingbus"
	"github.com/jcpaschoal/partner-portal/business/sdk/domainerr"
	"github.com/jcpaschoal/partner-portal/foundation/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStorer struct {
	updates    int
	configured bool
	stored     brandingbus.Branding
	err        error
}

func (f *fakeStorer) IsConfigured(ctx context.Context) (bool, error) {
	return f.configured, f.err
}

func (f *fakeStorer) Retrieve(ctx context.Context) (brandingbus.Branding, error) {
	if f.err != nil {
		return brandingbus.Branding{}, f.err
	}
	if !f.configured {
		return brandingbus.Branding{}, brandingbus.ErrNotFound
	}
	return f.stored, nil
}

func (f *fakeStorer) Update(ctx context.Context, b brandingbus.Branding) (brandingbus.Branding, error) {
	f.updates++
	if f.err != nil {
		return brandingbus.Branding{}, f.err
	}
	f.stored = b
	f.configured = true
	return b, nil
}

func newCore(s *fakeStorer) *brandingbus.Core {
	return brandingbus.NewCore(logger.NewDiscard(), s)
}

func Test_UpdateLogoUpload(t *testing.T) {
	s := &fakeStorer{}
	core := newCore(s)

	sub := brandingbus.Submission{
		OrganizationName: "Contoso",
		ContactUs:        brandingbus.Contact{Email: "help@contoso.com", Phone: "555-0100"},
		OrganizationLogo: brandingbus.AssetInput{
			Display: "logo.png",
			Upload: &brandingbus.Upload{
				Filename:    "logo.png",
				ContentType: "image/png",
				Content:     strings.NewReader("png"),
			},
		},
	}

	got, err := core.Update(context.Background(), sub)
	require.NoError(t, err)
	assert.Equal(t, 1, s.updates)

	c, ok := got.OrganizationLogo.Content()
	require.True(t, ok)
	assert.Equal(t, "logo.png", c.Name)
	assert.True(t, got.HeaderImage.IsUnchanged())
	assert.True(t, got.PrivacyAgreement.IsUnchanged())
	assert.Equal(t, "Contoso", got.OrganizationName)
	assert.False(t, got.UpdatedAt.IsZero())
}

func Test_UpdateHeaderURI(t *testing.T) {
	s := &fakeStorer{}
	core := newCore(s)

	sub := brandingbus.Submission{
		HeaderImage:      brandingbus.AssetInput{Display: "https://cdn.example.com/h.jpg"},
		PrivacyAgreement: "https://contoso.com/privacy",
	}

	got, err := core.Update(context.Background(), sub)
	require.NoError(t, err)

	u, ok := got.HeaderImage.URI()
	require.True(t, ok)
	assert.Equal(t, "https://cdn.example.com/h.jpg", u.String())

	p, ok := got.PrivacyAgreement.URI()
	require.True(t, ok)
	assert.Equal(t, "https://contoso.com/privacy", p.String())
}

func Test_UpdateRejectsWithoutStoreCall(t *testing.T) {
	tests := []struct {
		name  string
		sub   brandingbus.Submission
		code  domainerr.Code
		field string
	}{
		{
			name: "logo not an image",
			sub: brandingbus.Submission{
				OrganizationLogo: brandingbus.AssetInput{
					Display: "logo.pdf",
					Upload:  &brandingbus.Upload{Filename: "logo.pdf", ContentType: "application/pdf", Content: strings.NewReader("")},
				},
			},
			code:  domainerr.InvalidFileType,
			field: "OrganizationLogoFile",
		},
		{
			name: "header image not an image",
			sub: brandingbus.Submission{
				HeaderImage: brandingbus.AssetInput{
					Display: "h.txt",
					Upload:  &brandingbus.Upload{Filename: "h.txt", ContentType: "text/plain", Content: strings.NewReader("")},
				},
			},
			code:  domainerr.InvalidFileType,
			field: "HeaderImageFile",
		},
		{
			name:  "logo not a uri",
			sub:   brandingbus.Submission{OrganizationLogo: brandingbus.AssetInput{Display: "not a uri"}},
			code:  domainerr.InvalidInput,
			field: "OrganizationLogo",
		},
		{
			name:  "privacy agreement relative",
			sub:   brandingbus.Submission{PrivacyAgreement: "privacy.html"},
			code:  domainerr.InvalidInput,
			field: "PrivacyAgreement",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &fakeStorer{}
			core := newCore(s)

			_, err := core.Update(context.Background(), tt.sub)
			require.Error(t, err)
			assert.ErrorIs(t, err, &domainerr.Error{Code: tt.code, Field: tt.field})
			assert.Equal(t, 0, s.updates)
		})
	}
}

func Test_UpdatePropagatesStoreError(t *testing.T) {
	dbErr := errors.New("connection reset")
	s := &fakeStorer{err: dbErr}
	core := newCore(s)

	_, err := core.Update(context.Background(), brandingbus.Submission{OrganizationName: "Contoso"})
	require.ErrorIs(t, err, dbErr)
	assert.Equal(t, 1, s.updates)
}

func Test_RetrieveAndIsConfigured(t *testing.T) {
	s := &fakeStorer{}
	core := newCore(s)
	ctx := context.Background()

	ok, err := core.IsConfigured(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = core.Retrieve(ctx)
	require.ErrorIs(t, err, brandingbus.ErrNotFound)

	u, _ := url.Parse("https://cdn.example.com/logo.png")
	s.configured = true
	s.stored = brandingbus.Branding{OrganizationName: "Contoso", OrganizationLogo: brandingbus.URIReference(u)}

	ok, err = core.IsConfigured(ctx)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := core.Retrieve(ctx)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/logo.png", got.OrganizationLogo.String())
}

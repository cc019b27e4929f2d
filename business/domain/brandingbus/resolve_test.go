package brandingbus_test

import (
	"strings"
	"testing"

	"github.com/jcpaschoal/partner-portal/business/domain/brandingbus"
	"github.com/jcpaschoal/partner-portal/business/sdk/domainerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func upload(name, contentType string) *brandingbus.Upload {
	return &brandingbus.Upload{
		Filename:    name,
		ContentType: contentType,
		Content:     strings.NewReader("binary"),
	}
}

func Test_ResolveAsset(t *testing.T) {
	tests := []struct {
		name      string
		in        brandingbus.AssetInput
		unchanged bool
		uri       string
		content   string
		errCode   *domainerr.Code
		errField  string
	}{
		{
			name:    "upload matching display",
			in:      brandingbus.AssetInput{Display: "logo.png", Upload: upload("logo.png", "image/png")},
			content: "logo.png",
		},
		{
			name:    "upload with client path",
			in:      brandingbus.AssetInput{Display: "logo.png", Upload: upload(`C:\Users\me\logo.png`, " image/png ")},
			content: "logo.png",
		},
		{
			name:     "upload not an image",
			in:       brandingbus.AssetInput{Display: "logo.pdf", Upload: upload("logo.pdf", "application/pdf")},
			errCode:  &domainerr.InvalidFileType,
			errField: "OrganizationLogoFile",
		},
		{
			name: "upload name differs so display is a uri",
			in:   brandingbus.AssetInput{Display: "https://cdn.example.com/logo.png", Upload: upload("other.png", "image/png")},
			uri:  "https://cdn.example.com/logo.png",
		},
		{
			name: "uri without upload",
			in:   brandingbus.AssetInput{Display: "https://cdn.example.com/logo.png"},
			uri:  "https://cdn.example.com/logo.png",
		},
		{
			name:     "not a uri",
			in:       brandingbus.AssetInput{Display: "not a uri"},
			errCode:  &domainerr.InvalidInput,
			errField: "OrganizationLogo",
		},
		{
			name:     "non matching upload with relative display",
			in:       brandingbus.AssetInput{Display: "logo.png", Upload: upload("other.png", "text/plain")},
			errCode:  &domainerr.InvalidInput,
			errField: "OrganizationLogo",
		},
		{
			name:      "empty display",
			in:        brandingbus.AssetInput{},
			unchanged: true,
		},
		{
			name:      "blank display",
			in:        brandingbus.AssetInput{Display: "   "},
			unchanged: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := brandingbus.ResolveAsset(brandingbus.OrganizationLogoSlot, tt.in)

			if tt.errCode != nil {
				require.Error(t, err)

				var de *domainerr.Error
				require.ErrorAs(t, err, &de)
				assert.True(t, de.Code.Equal(*tt.errCode))
				assert.Equal(t, tt.errField, de.Field)
				return
			}

			require.NoError(t, err)

			switch {
			case tt.unchanged:
				assert.True(t, got.IsUnchanged())

			case tt.uri != "":
				u, ok := got.URI()
				require.True(t, ok)
				assert.Equal(t, tt.uri, u.String())

				_, isContent := got.Content()
				assert.False(t, isContent)

			case tt.content != "":
				c, ok := got.Content()
				require.True(t, ok)
				assert.Equal(t, tt.content, c.Name)
				assert.Equal(t, "image/png", c.ContentType)

				_, isURI := got.URI()
				assert.False(t, isURI)
			}
		})
	}
}

func Test_ResolveURIPrivacyAgreement(t *testing.T) {
	got, err := brandingbus.ResolveURI(brandingbus.PrivacyAgreementSlot, "https://contoso.com/privacy")
	require.NoError(t, err)

	u, ok := got.URI()
	require.True(t, ok)
	assert.Equal(t, "contoso.com", u.Host)

	_, err = brandingbus.ResolveURI(brandingbus.PrivacyAgreementSlot, "/privacy")
	assert.ErrorIs(t, err, &domainerr.Error{Code: domainerr.InvalidInput, Field: "PrivacyAgreement"})

	got, err = brandingbus.ResolveURI(brandingbus.PrivacyAgreementSlot, "")
	require.NoError(t, err)
	assert.True(t, got.IsUnchanged())
}

func Test_URIReferenceNilIsUnchanged(t *testing.T) {
	assert.True(t, brandingbus.URIReference(nil).IsUnchanged())
}

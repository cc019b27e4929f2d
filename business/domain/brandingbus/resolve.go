package brandingbus

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/jcpaschoal/partner-portal/business/sdk/domainerr"
)

// Slot names a branding asset field as it is submitted.
type Slot struct {
	Field     string
	FileField string
	Label     string
}

// The set of asset slots a branding update resolves.
var (
	OrganizationLogoSlot = Slot{Field: "OrganizationLogo", FileField: "OrganizationLogoFile", Label: "organization logo"}
	HeaderImageSlot      = Slot{Field: "HeaderImage", FileField: "HeaderImageFile", Label: "header image"}
	PrivacyAgreementSlot = Slot{Field: "PrivacyAgreement", Label: "privacy agreement"}
)

var errNotAbsolute = errors.New("uri is not absolute")

// ResolveAsset decides what a submitted slot means. An upload whose file
// name equals the display value is a new image; otherwise a non-blank
// display value must be an absolute URI; otherwise the slot is unchanged.
func ResolveAsset(s Slot, in AssetInput) (Asset, error) {
	if in.Upload != nil && baseName(in.Upload.Filename) == in.Display {
		contentType := strings.TrimSpace(in.Upload.ContentType)

		if !strings.HasPrefix(contentType, "image/") {
			return Asset{}, domainerr.New(domainerr.InvalidFileType, s.FileField, fmt.Sprintf("provide an image file type for the %s", s.Label))
		}

		return OwnedContent(Content{
			Name:        baseName(in.Upload.Filename),
			ContentType: contentType,
			Data:        in.Upload.Content,
		}), nil
	}

	return ResolveURI(s, in.Display)
}

// ResolveURI resolves a slot that only accepts a remote reference.
func ResolveURI(s Slot, display string) (Asset, error) {
	raw := strings.TrimSpace(display)
	if raw == "" {
		return Unchanged(), nil
	}

	u, err := parseAbsoluteURI(raw)
	if err != nil {
		return Asset{}, domainerr.Wrap(domainerr.InvalidInput, s.Field, fmt.Sprintf("invalid %s uri", s.Label), err)
	}

	return URIReference(u), nil
}

func parseAbsoluteURI(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}

	if !u.IsAbs() || (u.Host == "" && u.Opaque == "" && u.Path == "") {
		return nil, fmt.Errorf("%q: %w", raw, errNotAbsolute)
	}

	return u, nil
}

// baseName strips any client-side directory from an uploaded file name.
// Browsers on Windows may send a full path with backslashes.
func baseName(filename string) string {
	if i := strings.LastIndexAny(filename, `/\`); i >= 0 {
		return filename[i+1:]
	}

	return filename
}

package brandingbus

import (
	"io"
	"time"
)

// Branding represents the portal's visual identity and contact details.
type Branding struct {
	OrganizationName string
	ContactUs        Contact
	ContactSales     Contact
	OrganizationLogo Asset
	HeaderImage      Asset
	PrivacyAgreement Asset
	UpdatedAt        time.Time
}

// Contact is an email and phone pair shown on the portal.
type Contact struct {
	Email string
	Phone string
}

// Upload is a file submitted alongside a branding update. The caller owns
// Content until the upload is accepted into an Asset and must close it
// either way once the update returns.
type Upload struct {
	Filename    string
	ContentType string
	Content     io.Reader
}

// AssetInput is what was submitted for an asset slot: the display value
// from the form and an optional file.
type AssetInput struct {
	Display string
	Upload  *Upload
}

// Submission contains the information needed to replace the branding.
type Submission struct {
	OrganizationName string
	ContactUs        Contact
	ContactSales     Contact
	OrganizationLogo AssetInput
	HeaderImage      AssetInput
	PrivacyAgreement string
}

package domainerr_test

import (
	"errors"
	"fmt"
	"net/url"
	"testing"

	"github.com/jcpaschoal/partner-portal/business/sdk/domainerr"
	"github.com/stretchr/testify/assert"
)

func Test_IsMatchesCodeAndField(t *testing.T) {
	err := domainerr.New(domainerr.InvalidFileType, "OrganizationLogoFile", "provide an image file type")

	assert.True(t, errors.Is(err, &domainerr.Error{Code: domainerr.InvalidFileType}))
	assert.True(t, errors.Is(err, &domainerr.Error{Code: domainerr.InvalidFileType, Field: "OrganizationLogoFile"}))
	assert.False(t, errors.Is(err, &domainerr.Error{Code: domainerr.InvalidFileType, Field: "HeaderImageFile"}))
	assert.False(t, errors.Is(err, &domainerr.Error{Code: domainerr.InvalidInput}))
}

func Test_WrapKeepsCause(t *testing.T) {
	_, cause := url.Parse("http://[::1")

	err := domainerr.Wrap(domainerr.InvalidInput, "HeaderImage", "invalid header image uri", cause)

	var ue *url.Error
	assert.True(t, errors.As(err, &ue))
	assert.Contains(t, err.Error(), "HeaderImage")
}

func Test_FieldsAcrossJoinedAndWrapped(t *testing.T) {
	joined := errors.Join(
		domainerr.New(domainerr.InvalidInput, "ClientID", "required"),
		domainerr.New(domainerr.InvalidInput, "AccountType", "oneof"),
	)
	wrapped := fmt.Errorf("update: %w", joined)

	assert.Equal(t, []string{"ClientID", "AccountType"}, domainerr.Fields(wrapped))
	assert.True(t, domainerr.IsCode(wrapped, domainerr.InvalidInput))
	assert.False(t, domainerr.IsCode(wrapped, domainerr.InvalidFileType))
	assert.Empty(t, domainerr.Fields(errors.New("plain")))
}

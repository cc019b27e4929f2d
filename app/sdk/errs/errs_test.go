package errs_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jcpaschoal/partner-portal/app/sdk/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	ClientID    string `json:"clientId" validate:"required"`
	AccountType string `json:"accountType" validate:"oneof=sandbox live"`
}

func Test_CheckReportsJSONFieldNames(t *testing.T) {
	err := errs.Check(payload{AccountType: "prod"})
	require.Error(t, err)

	fe := errs.GetFieldErrors(err)
	require.Len(t, fe, 2)

	fields := fe.Fields()
	assert.Contains(t, fields, "clientId")
	assert.Contains(t, fields, "accountType")
}

func Test_NewKeepsFieldErrors(t *testing.T) {
	var fe errs.FieldErrors
	fe.Add("OrganizationLogoFile", errors.New("provide an image file type"))

	e := errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", fe))
	assert.Equal(t, http.StatusBadRequest, e.HTTPStatus())
	require.Len(t, e.Fields, 1)

	outer := errs.New(errs.InvalidArgument, e)
	require.Len(t, outer.Fields, 1)

	data, ct, err := outer.Encode()
	require.NoError(t, err)
	assert.Equal(t, "application/json", ct)

	var got struct {
		Code   string            `json:"code"`
		Fields []errs.FieldError `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "invalid_argument", got.Code)
	assert.Equal(t, "OrganizationLogoFile", got.Fields[0].Field)
}

func Test_HTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, errs.Errorf(errs.NotFound, "missing").HTTPStatus())
	assert.Equal(t, http.StatusUnauthorized, errs.Errorf(errs.Unauthenticated, "no").HTTPStatus())
	assert.Equal(t, http.StatusForbidden, errs.Errorf(errs.PermissionDenied, "no").HTTPStatus())
}

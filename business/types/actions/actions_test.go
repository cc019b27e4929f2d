package actions_test

import (
	"net/http"
	"testing"

	"github.com/jcpaschoal/partner-portal/business/types/actions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_FromMethod(t *testing.T) {
	tests := []struct {
		method string
		want   actions.Action
	}{
		{http.MethodGet, actions.Read},
		{http.MethodPost, actions.Write},
		{http.MethodPut, actions.Write},
		{http.MethodDelete, actions.Write},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			got, err := actions.FromMethod(tt.method)
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want))
		})
	}

	_, err := actions.FromMethod(http.MethodOptions)
	assert.Error(t, err)
}

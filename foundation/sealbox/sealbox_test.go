package sealbox_test

import (
	"bytes"
	"testing"

	"github.com/jcpaschoal/partner-portal/foundation/sealbox"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKey(b byte) []byte {
	return bytes.Repeat([]byte{b}, 32)
}

func Test_SealOpen(t *testing.T) {
	box, err := sealbox.New(testKey(7))
	require.NoError(t, err)

	sealed, err := box.Seal([]byte("paypal-client-secret"))
	require.NoError(t, err)
	assert.NotContains(t, string(sealed), "paypal-client-secret")

	plain, err := box.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, "paypal-client-secret", string(plain))
}

func Test_OpenWithWrongKey(t *testing.T) {
	a, err := sealbox.New(testKey(1))
	require.NoError(t, err)

	b, err := sealbox.New(testKey(2))
	require.NoError(t, err)

	sealed, err := a.Seal([]byte("secret"))
	require.NoError(t, err)

	_, err = b.Open(sealed)
	assert.ErrorIs(t, err, sealbox.ErrDecryptFailed)
}

func Test_InvalidInputs(t *testing.T) {
	_, err := sealbox.New([]byte("short"))
	assert.ErrorIs(t, err, sealbox.ErrInvalidKey)

	_, err = sealbox.NewFromBase64("***")
	assert.Error(t, err)

	box, err := sealbox.New(testKey(3))
	require.NoError(t, err)

	_, err = box.Open([]byte("tiny"))
	assert.ErrorIs(t, err, sealbox.ErrMalformed)
}

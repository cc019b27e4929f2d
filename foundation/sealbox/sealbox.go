// Package sealbox encrypts small secrets at rest using NaCl secretbox.
package sealbox

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/nacl/secretbox"
)

const (
	keySize   = 32
	nonceSize = 24
)

// Set of error variables for sealing and opening.
var (
	ErrInvalidKey    = errors.New("seal key must be 32 bytes")
	ErrMalformed     = errors.New("sealed value is malformed")
	ErrDecryptFailed = errors.New("sealed value could not be opened")
)

// Box seals and opens values with a single symmetric key.
type Box struct {
	key [keySize]byte
}

// New constructs a Box from a raw 32 byte key.
func New(key []byte) (*Box, error) {
	if len(key) != keySize {
		return nil, ErrInvalidKey
	}

	var b Box
	copy(b.key[:], key)

	return &b, nil
}

// NewFromBase64 constructs a Box from a standard base64 encoded key.
func NewFromBase64(encoded string) (*Box, error) {
	key, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("decode key: %w", err)
	}

	return New(key)
}

// Seal encrypts the plain value. The random nonce is prefixed to the output.
func (b *Box) Seal(plain []byte) ([]byte, error) {
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nil, fmt.Errorf("nonce: %w", err)
	}

	return secretbox.Seal(nonce[:], plain, &nonce, &b.key), nil
}

// Open decrypts a value produced by Seal.
func (b *Box) Open(sealed []byte) ([]byte, error) {
	if len(sealed) < nonceSize+secretbox.Overhead {
		return nil, ErrMalformed
	}

	var nonce [nonceSize]byte
	copy(nonce[:], sealed[:nonceSize])

	plain, ok := secretbox.Open(nil, sealed[nonceSize:], &nonce, &b.key)
	if !ok {
		return nil, ErrDecryptFailed
	}

	return plain, nil
}

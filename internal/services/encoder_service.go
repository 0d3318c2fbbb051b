package services

import (
	"encoding/base64"

	"github.com/blockchainBoi/secure-syndicate/internal/constants"
)

// FieldEncoder turns a plaintext form value into the opaque bytes submitted on-chain.
// Implementations must be deterministic and must not fail.
type FieldEncoder interface {
	Encode(value string) []byte
}

type placeholderEncoder struct{}

// NewPlaceholderEncoder returns the reversible stand-in encoder. It provides no
// confidentiality and must be replaced with a real encryption scheme for production.
func NewPlaceholderEncoder() FieldEncoder {
	return placeholderEncoder{}
}

// Encode returns base64(value + "_encrypted") as ASCII bytes
func (placeholderEncoder) Encode(value string) []byte {
	return []byte(base64.StdEncoding.EncodeToString([]byte(value + constants.EncodedFieldSuffix)))
}

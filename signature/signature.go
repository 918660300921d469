// Package signature splits a 65-byte r||s||v secp256k1 signature into the
// fields an on-chain verifier consumes.
//
// Signing libraries disagree on the recovery byte: go-ethereum reports 0/1,
// wallets and ecrecover use 27/28. Split accepts both and always exposes the
// 0/1 form as RecoveryID.
package signature

import (
	"encoding/json"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
)

// Length is the size of a recoverable signature.
const Length = crypto.SignatureLength

// evmOffset is added to the recovery id by ecrecover-style verifiers.
const evmOffset = 27

var (
	ErrInvalidLength     = errors.New("invalid signature length")
	ErrInvalidRecoveryID = errors.New("invalid recovery id")
)

// Components is a split signature. R and S are fixed-width big-endian.
type Components struct {
	R [32]byte
	S [32]byte
	// V is the recovery byte exactly as the signing primitive reported it.
	V byte
	// RecoveryID is V normalized to {0,1}.
	RecoveryID byte
}

// Split decomposes raw into r, s and v.
func Split(raw []byte) (Components, error) {
	var c Components
	if len(raw) != Length {
		return c, errors.Wrapf(ErrInvalidLength, "want %d bytes, got %d", Length, len(raw))
	}
	id, err := NormalizeRecoveryID(raw[crypto.RecoveryIDOffset])
	if err != nil {
		return c, err
	}
	copy(c.R[:], raw[:32])
	copy(c.S[:], raw[32:64])
	c.V = raw[crypto.RecoveryIDOffset]
	c.RecoveryID = id
	return c, nil
}

// NormalizeRecoveryID maps {27,28} to {0,1} and passes {0,1} through.
func NormalizeRecoveryID(v byte) (byte, error) {
	switch v {
	case 0, 1:
		return v, nil
	case evmOffset, evmOffset + 1:
		return v - evmOffset, nil
	default:
		return 0, errors.Wrapf(ErrInvalidRecoveryID, "%d", v)
	}
}

// RS returns r||s, the form verifiers take alongside a separate recovery id.
func (c Components) RS() []byte {
	out := make([]byte, 64)
	copy(out, c.R[:])
	copy(out[32:], c.S[:])
	return out
}

// Bytes returns r||s||v with v in {0,1}.
func (c Components) Bytes() []byte {
	return append(c.RS(), c.RecoveryID)
}

// EVM returns r||s||v with v in {27,28}.
func (c Components) EVM() []byte {
	return append(c.RS(), c.RecoveryID+evmOffset)
}

type componentsJSON struct {
	R          hexutil.Bytes `json:"r"`
	S          hexutil.Bytes `json:"s"`
	V          uint8         `json:"v"`
	RecoveryID uint8         `json:"recovery_id"`
	RS         hexutil.Bytes `json:"signature_bytes"`
}

// MarshalJSON encodes byte fields as 0x-prefixed hex.
func (c Components) MarshalJSON() ([]byte, error) {
	return json.Marshal(componentsJSON{
		R:          c.R[:],
		S:          c.S[:],
		V:          c.V,
		RecoveryID: c.RecoveryID,
		RS:         c.RS(),
	})
}

// UnmarshalJSON decodes the form written by MarshalJSON.
func (c *Components) UnmarshalJSON(data []byte) error {
	var v componentsJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if len(v.R) != 32 || len(v.S) != 32 {
		return errors.Wrap(ErrInvalidLength, "r and s must be 32 bytes")
	}
	raw := make([]byte, 0, Length)
	raw = append(raw, v.R...)
	raw = append(raw, v.S...)
	parsed, err := Split(append(raw, v.V))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

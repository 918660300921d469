// Package hexbytes converts between hex strings and byte buffers.
//
// Decoding is strict: after an optional 0x prefix the digit count must be
// even and every character must be a hex digit. Encode returns the
// canonical form (lower-case, no prefix); Encode0x is used for display.
package hexbytes

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
)

// ErrInvalidEncoding is returned for odd-length or non-hex input.
var ErrInvalidEncoding = errors.New("invalid hex encoding")

// StripPrefix removes a single leading 0x or 0X.
func StripPrefix(s string) string {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		return s[2:]
	}
	return s
}

// Decode parses a hex string with or without a 0x prefix.
func Decode(s string) ([]byte, error) {
	digits := StripPrefix(s)
	if len(digits)%2 != 0 {
		return nil, errors.Wrapf(ErrInvalidEncoding, "odd number of hex digits (%d)", len(digits))
	}
	b, err := hexutil.Decode("0x" + digits)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidEncoding, err.Error())
	}
	return b, nil
}

// Encode returns b as lower-case hex without a prefix.
func Encode(b []byte) string {
	return common.Bytes2Hex(b)
}

// Encode0x returns b as lower-case hex with a 0x prefix.
func Encode0x(b []byte) string {
	return hexutil.Encode(b)
}

// Normalize returns the canonical form of a valid hex string.
func Normalize(s string) (string, error) {
	if _, err := Decode(s); err != nil {
		return "", err
	}
	return strings.ToLower(StripPrefix(s)), nil
}

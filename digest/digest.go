// Package digest implements the closed set of message-digest conventions an
// on-chain verifier may expect for an address-link attestation.
//
// The strategy is part of the protocol contract with the verifier. Picking
// the wrong one still yields a valid signature, just over a digest the
// verifier never recomputes, so there is no default and no auto-detection.
package digest

import (
	"crypto/sha256"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
)

// MessagePrefix is the EIP-191 personal-message domain separator.
const MessagePrefix = "\x19Ethereum Signed Message:\n"

// ErrUnsupportedStrategy is returned for an unknown strategy identifier.
var ErrUnsupportedStrategy = errors.New("unsupported digest strategy")

// Strategy selects how the target bytes are turned into the signed digest.
type Strategy int

const (
	// Passthrough hands the raw message to a signer that applies the
	// personal-message prefix itself.
	Passthrough Strategy = iota + 1
	// PersonalPrefix is keccak256(MessagePrefix || len || msg).
	PersonalPrefix
	// RawKeccak256 is keccak256(msg) with no prefix.
	RawKeccak256
	// SHA256 is sha256(msg).
	SHA256
)

var names = map[Strategy]string{
	Passthrough:    "passthrough",
	PersonalPrefix: "personal-prefix",
	RawKeccak256:   "raw-keccak256",
	SHA256:         "sha256",
}

// Strategies lists every supported strategy in a stable order.
func Strategies() []Strategy {
	return []Strategy{PersonalPrefix, RawKeccak256, SHA256, Passthrough}
}

// Names returns the identifiers accepted by ParseStrategy.
func Names() []string {
	out := make([]string, 0, len(names))
	for _, s := range Strategies() {
		out = append(out, s.String())
	}
	return out
}

func (s Strategy) String() string {
	if n, ok := names[s]; ok {
		return n
	}
	return "unknown"
}

// Valid reports whether s is one of the supported strategies.
func (s Strategy) Valid() bool {
	_, ok := names[s]
	return ok
}

// Hashed reports whether Compute returns a fixed 32-byte hash.
func (s Strategy) Hashed() bool {
	return s.Valid() && s != Passthrough
}

// ParseStrategy maps a configuration identifier to a Strategy.
func ParseStrategy(id string) (Strategy, error) {
	id = strings.ToLower(strings.TrimSpace(id))
	for s, n := range names {
		if n == id {
			return s, nil
		}
	}
	return 0, errors.Wrapf(ErrUnsupportedStrategy, "%q (want one of: %s)", id, strings.Join(Names(), ", "))
}

// MarshalText implements encoding.TextMarshaler.
func (s Strategy) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, errors.Wrapf(ErrUnsupportedStrategy, "%d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Strategy) UnmarshalText(text []byte) error {
	parsed, err := ParseStrategy(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Compute returns the digest of msg under s. The result never aliases msg.
func (s Strategy) Compute(msg []byte) ([]byte, error) {
	switch s {
	case Passthrough:
		return append([]byte{}, msg...), nil
	case PersonalPrefix:
		return crypto.Keccak256(PersonalMessage(msg)), nil
	case RawKeccak256:
		return crypto.Keccak256(msg), nil
	case SHA256:
		sum := sha256.Sum256(msg)
		return sum[:], nil
	default:
		return nil, errors.Wrapf(ErrUnsupportedStrategy, "%d", int(s))
	}
}

// PersonalMessage returns the unhashed EIP-191 preimage of msg.
func PersonalMessage(msg []byte) []byte {
	out := make([]byte, 0, len(MessagePrefix)+20+len(msg))
	out = append(out, MessagePrefix...)
	out = strconv.AppendInt(out, int64(len(msg)), 10)
	return append(out, msg...)
}

// TextHash is the hash a wallet's sign-message routine signs for msg.
func TextHash(msg []byte) []byte {
	return accounts.TextHash(msg)
}

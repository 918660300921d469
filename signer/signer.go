package signer

import (
	"crypto/ecdsa"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"

	"github.com/base-org/linksigner/hexbytes"
)

// DefaultHDPath is the first account of the standard Ethereum derivation path.
const DefaultHDPath = "m/44'/60'/0'/0/0"

var (
	// ErrInvalidPrivateKey is returned when key bytes are not a valid secp256k1 scalar.
	ErrInvalidPrivateKey = errors.New("invalid private key")
	// ErrSigning is returned when the signing primitive rejects its input.
	ErrSigning = errors.New("signing failed")
)

type Signer interface {
	// Address is the Ethereum address of the signing key.
	Address() common.Address
	// PublicKey is the 65-byte uncompressed public key.
	PublicKey() []byte
	// SignDigest signs exactly the given 32-byte digest with no further hashing.
	SignDigest(digest []byte) ([]byte, error)
	// SignText applies the personal-message prefix, hashes, and signs, the way
	// a wallet's sign-message routine does.
	SignText(msg []byte) ([]byte, error)
}

// CreateSigner builds a Signer from either a hex private key or a mnemonic.
// Exactly one of privateKey and mnemonic must be set.
func CreateSigner(privateKey, mnemonic, hdPath string) (Signer, error) {
	if (privateKey == "") == (mnemonic == "") {
		return nil, errors.Wrap(ErrInvalidPrivateKey, "one (and only one) of private key and mnemonic must be set")
	}

	if privateKey != "" {
		key, err := ParsePrivateKey(privateKey)
		if err != nil {
			return nil, errors.Wrap(err, "error parsing private key")
		}
		return &ecdsaSigner{privKey: key}, nil
	}

	if hdPath == "" {
		hdPath = DefaultHDPath
	}
	path, err := accounts.ParseDerivationPath(hdPath)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidPrivateKey, "error parsing hd path %q: %v", hdPath, err)
	}
	key, err := derivePrivateKey(mnemonic, path)
	if err != nil {
		return nil, errors.Wrap(err, "error deriving key from mnemonic")
	}
	return &ecdsaSigner{privKey: key}, nil
}

// ParsePrivateKey decodes a 32-byte hex private key, with or without 0x.
func ParsePrivateKey(s string) (*ecdsa.PrivateKey, error) {
	b, err := hexbytes.Decode(s)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidPrivateKey, err.Error())
	}
	return toECDSA(b)
}

func toECDSA(b []byte) (*ecdsa.PrivateKey, error) {
	if len(b) != 32 {
		return nil, errors.Wrapf(ErrInvalidPrivateKey, "need 32 bytes, got %d", len(b))
	}
	key, err := crypto.ToECDSA(b)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidPrivateKey, err.Error())
	}
	return key, nil
}

// DerivePublicKey returns the uncompressed public key for raw private key bytes.
func DerivePublicKey(privateKey []byte) ([]byte, error) {
	key, err := toECDSA(privateKey)
	if err != nil {
		return nil, err
	}
	return crypto.FromECDSAPub(&key.PublicKey), nil
}

// DeriveAddress returns the address for an uncompressed public key.
func DeriveAddress(publicKey []byte) (common.Address, error) {
	pub, err := crypto.UnmarshalPubkey(publicKey)
	if err != nil {
		return common.Address{}, errors.Wrap(err, "invalid public key")
	}
	return crypto.PubkeyToAddress(*pub), nil
}

// RecoverPublicKey recovers the uncompressed public key that produced sig over
// hash. The recovery byte may be in {0,1} or {27,28}.
func RecoverPublicKey(hash, sig []byte) ([]byte, error) {
	if len(sig) != crypto.SignatureLength {
		return nil, errors.Errorf("invalid signature length %d", len(sig))
	}
	local := make([]byte, crypto.SignatureLength)
	copy(local, sig)
	if local[crypto.RecoveryIDOffset] >= 27 {
		local[crypto.RecoveryIDOffset] -= 27
	}
	pub, err := crypto.Ecrecover(hash, local)
	if err != nil {
		return nil, errors.Wrap(err, "signature recovery failed")
	}
	return pub, nil
}

// RecoverAddress recovers the signer address of sig over hash.
func RecoverAddress(hash, sig []byte) (common.Address, error) {
	pub, err := RecoverPublicKey(hash, sig)
	if err != nil {
		return common.Address{}, err
	}
	return DeriveAddress(pub)
}

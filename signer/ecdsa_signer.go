package signer

import (
	"crypto/ecdsa"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
)

// ecdsaSigner signs with an in-memory secp256k1 key. Signatures come from
// crypto.Sign: RFC6979 nonces, low-s, and a recovery id in {0,1}.
type ecdsaSigner struct {
	privKey *ecdsa.PrivateKey
}

func (s *ecdsaSigner) Address() common.Address {
	return crypto.PubkeyToAddress(s.privKey.PublicKey)
}

func (s *ecdsaSigner) PublicKey() []byte {
	return crypto.FromECDSAPub(&s.privKey.PublicKey)
}

func (s *ecdsaSigner) SignDigest(digest []byte) ([]byte, error) {
	if len(digest) != crypto.DigestLength {
		return nil, errors.Wrapf(ErrSigning, "digest must be %d bytes, got %d", crypto.DigestLength, len(digest))
	}
	sig, err := crypto.Sign(digest, s.privKey)
	if err != nil {
		return nil, errors.Wrap(ErrSigning, err.Error())
	}
	return sig, nil
}

func (s *ecdsaSigner) SignText(msg []byte) ([]byte, error) {
	return s.SignDigest(accounts.TextHash(msg))
}

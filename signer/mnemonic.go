package signer

import (
	"crypto/ecdsa"

	"github.com/decred/dcrd/hdkeychain/v3"
	"github.com/ethereum/go-ethereum/accounts"
	"github.com/pkg/errors"
	"github.com/tyler-smith/go-bip39"
)

func derivePrivateKey(mnemonic string, path accounts.DerivationPath) (*ecdsa.PrivateKey, error) {
	// Parse the seed string into the master BIP32 key.
	seed, err := bip39.NewSeedWithErrorChecking(mnemonic, "")
	if err != nil {
		return nil, errors.Wrap(ErrInvalidPrivateKey, err.Error())
	}

	privKey, err := hdkeychain.NewMaster(seed, fakeNetworkParams{})
	if err != nil {
		return nil, errors.Wrap(ErrInvalidPrivateKey, err.Error())
	}

	for _, child := range path {
		privKey, err = privKey.Child(child)
		if err != nil {
			return nil, errors.Wrap(ErrInvalidPrivateKey, err.Error())
		}
	}

	rawPrivKey, err := privKey.SerializedPrivKey()
	if err != nil {
		return nil, errors.Wrap(ErrInvalidPrivateKey, err.Error())
	}

	return toECDSA(rawPrivKey)
}

// fakeNetworkParams satisfies hdkeychain; the version bytes are never serialized.
type fakeNetworkParams struct{}

func (f fakeNetworkParams) HDPrivKeyVersion() [4]byte {
	return [4]byte{}
}

func (f fakeNetworkParams) HDPubKeyVersion() [4]byte {
	return [4]byte{}
}

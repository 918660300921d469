// Package attest runs the address-link pipeline: target bytes are digested
// with the selected strategy, signed, split into r/s/recovery id, and checked
// by recovering the signer address before the result is handed back.
package attest

import (
	"bytes"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"

	"github.com/base-org/linksigner/digest"
	"github.com/base-org/linksigner/hexbytes"
	"github.com/base-org/linksigner/signature"
	"github.com/base-org/linksigner/signer"
)

// ErrMismatch is returned when a signature does not recover to the expected address.
var ErrMismatch = errors.New("signature does not recover to signer address")

type Request struct {
	Signer   signer.Signer
	Target   []byte
	Strategy digest.Strategy
}

// Attestation is the full record of one signing run.
type Attestation struct {
	Address   common.Address  `json:"eth_address"`
	PublicKey hexutil.Bytes   `json:"public_key"`
	Target    hexutil.Bytes   `json:"target_address"`
	Strategy  digest.Strategy `json:"strategy"`
	// Digest is the strategy output. For passthrough it is the raw target.
	Digest hexutil.Bytes `json:"digest"`
	// SignedHash is the 32 bytes the primitive actually signed.
	SignedHash hexutil.Bytes        `json:"signed_hash"`
	Signature  hexutil.Bytes        `json:"signature"`
	Components signature.Components `json:"components"`
}

// ParseTarget decodes the foreign-chain address to attest to.
func ParseTarget(s string) ([]byte, error) {
	b, err := hexbytes.Decode(s)
	if err != nil {
		return nil, errors.Wrap(err, "decode target address")
	}
	if len(b) == 0 {
		return nil, errors.Wrap(hexbytes.ErrInvalidEncoding, "decode target address: empty")
	}
	return b, nil
}

// SignedHash returns the hash the signer is given for a strategy output.
// Passthrough leaves prefixing to the signer, which applies the wallet
// personal-message hash itself.
func SignedHash(strategy digest.Strategy, d []byte) []byte {
	if strategy == digest.Passthrough {
		return digest.TextHash(d)
	}
	return d
}

// Build produces an attestation for req. Every failure aborts the run.
func Build(req Request) (*Attestation, error) {
	if req.Signer == nil {
		return nil, errors.Wrap(signer.ErrSigning, "no signer")
	}
	if len(req.Target) == 0 {
		return nil, errors.Wrap(hexbytes.ErrInvalidEncoding, "empty target address")
	}

	d, err := req.Strategy.Compute(req.Target)
	if err != nil {
		return nil, errors.Wrap(err, "compute digest")
	}

	var raw []byte
	if req.Strategy == digest.Passthrough {
		raw, err = req.Signer.SignText(d)
	} else {
		raw, err = req.Signer.SignDigest(d)
	}
	if err != nil {
		return nil, errors.Wrap(err, "sign")
	}

	parts, err := signature.Split(raw)
	if err != nil {
		return nil, errors.Wrap(err, "split signature")
	}

	att := &Attestation{
		Address:    req.Signer.Address(),
		PublicKey:  req.Signer.PublicKey(),
		Target:     append([]byte{}, req.Target...),
		Strategy:   req.Strategy,
		Digest:     d,
		SignedHash: SignedHash(req.Strategy, d),
		Signature:  raw,
		Components: parts,
	}
	if err := Verify(att); err != nil {
		return nil, errors.Wrap(signer.ErrSigning, err.Error())
	}
	return att, nil
}

// Verify recomputes the signed hash from the target and strategy and checks
// that the normalized signature recovers to the attested address, the way
// the on-chain verifier does.
func Verify(att *Attestation) error {
	d, err := att.Strategy.Compute(att.Target)
	if err != nil {
		return errors.Wrap(err, "compute digest")
	}
	if !bytes.Equal(d, att.Digest) {
		return errors.Wrap(ErrMismatch, "digest does not match target and strategy")
	}
	hash := SignedHash(att.Strategy, d)

	got, err := signer.RecoverAddress(hash, att.Components.Bytes())
	if err != nil {
		return errors.Wrap(ErrMismatch, err.Error())
	}
	if got != att.Address {
		return errors.Wrapf(ErrMismatch, "recovered %s, want %s", got.Hex(), att.Address.Hex())
	}
	return nil
}

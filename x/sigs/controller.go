package sigs

import (
	"crypto/sha512"
	"encoding/binary"

	"github.com/iov-one/treasury"
	"github.com/iov-one/treasury/crypto"
	"github.com/iov-one/treasury/errors"
)

// SignCodeV1 is the current way to prefix the bytes we use to build
// a signature
var SignCodeV1 = []byte{0, 0xCA, 0xFE, 0}

// VerifyTxSignatures checks all the signatures on the tx and increments the
// nonce of every signer.
//
// It returns the conditions of all signers (possibly empty), or an error if
// any signature is invalid.
func VerifyTxSignatures(db treasury.KVStore, tx SignedTx, chainID string) ([]treasury.Condition, error) {
	bz, err := tx.GetSignBytes()
	if err != nil {
		return nil, errors.Wrap(err, "sign bytes")
	}
	sigs := tx.GetSignatures()

	signers := make([]treasury.Condition, 0, len(sigs))
	for i, sig := range sigs {
		signer, err := VerifySignature(db, sig, bz, chainID)
		if err != nil {
			return nil, errors.Wrapf(err, "signature %d", i)
		}
		signers = append(signers, signer)
	}
	return signers, nil
}

// VerifySignature checks one signature against sign bytes and updates the
// signer state in the store.
func VerifySignature(db treasury.KVStore, sig *StdSignature, signBytes []byte, chainID string) (treasury.Condition, error) {
	if err := sig.Validate(); err != nil {
		return nil, err
	}
	pub, err := crypto.NewPublicKey(sig.PubKey)
	if err != nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "invalid public key")
	}

	bucket := NewBucket()
	user, err := loadUser(db, bucket, pub)
	if err != nil {
		return nil, err
	}

	toSign, err := BuildSignBytes(signBytes, chainID, sig.Sequence)
	if err != nil {
		return nil, err
	}
	if !pub.Verify(toSign, sig.Signature) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "invalid signature")
	}

	if err := user.CheckAndIncrementSequence(sig.Sequence); err != nil {
		return nil, err
	}
	if err := bucket.Put(db, pub.Address(), user); err != nil {
		return nil, errors.Wrap(err, "save signer")
	}
	return pub.Condition(), nil
}

/*
BuildSignBytes combines all info on the actual tx before signing.

The following format is used:

version | len(chainID) | chainID      | nonce             | signBytes
4bytes  | uint8        | ascii string | int64 (bigendian) | serialized transaction

This is then prehashed with sha512 before fed into the public key
signing/verification step.
*/
func BuildSignBytes(signBytes []byte, chainID string, seq int64) ([]byte, error) {
	if seq < 0 {
		return nil, errors.Wrap(ErrInvalidSequence, "negative")
	}
	if !treasury.IsValidChainID(chainID) {
		return nil, errors.Wrapf(errors.ErrInput, "chain id: %v", chainID)
	}

	nonce := make([]byte, 8)
	binary.BigEndian.PutUint64(nonce, uint64(seq))

	output := make([]byte, 0, 4+1+len(chainID)+8+len(signBytes))
	output = append(output, SignCodeV1...)
	output = append(output, uint8(len(chainID)))
	output = append(output, chainID...)
	output = append(output, nonce...)
	output = append(output, signBytes...)

	hashed := sha512.Sum512(output)
	return hashed[:], nil
}

// SignTx creates a signature for the given tx.
func SignTx(signer crypto.Signer, tx SignedTx, chainID string, seq int64) (*StdSignature, error) {
	signBytes, err := tx.GetSignBytes()
	if err != nil {
		return nil, err
	}
	toSign, err := BuildSignBytes(signBytes, chainID, seq)
	if err != nil {
		return nil, err
	}
	sig, err := signer.Sign(toSign)
	if err != nil {
		return nil, err
	}
	return &StdSignature{
		Sequence:  seq,
		PubKey:    signer.PublicKey().Bytes(),
		Signature: sig,
	}, nil
}

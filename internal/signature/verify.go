// Package signature implements verification of WATA webhook signatures.
//
// Webhook notifications are signed with RSASSA-PSS over the SHA-256 digest
// of the raw request body, using MGF1 with SHA-256. Verification MUST run
// against the exact byte sequence received on the wire: re-serializing a
// parsed body changes the bytes and invalidates the signature.
package signature

import (
	"crypto"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"errors"
	"fmt"
)

// ErrVerificationFailed is returned when a signature does not match.
var ErrVerificationFailed = errors.New("signature verification failed")

// pssOptions accepts any conformant salt length, including the maximum
// salt length the API signs with.
var pssOptions = &rsa.PSSOptions{
	SaltLength: rsa.PSSSaltLengthAuto,
	Hash:       crypto.SHA256,
}

// ParsePublicKey decodes a PEM-encoded RSA public key. Both PKIX
// (SubjectPublicKeyInfo) and PKCS#1 encodings are accepted.
func ParsePublicKey(pemBytes []byte) (*rsa.PublicKey, error) {
	block, _ := pem.Decode(pemBytes)
	if block == nil {
		return nil, errors.New("no PEM block found in key material")
	}

	pub, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		if rsaPub, pkcs1Err := x509.ParsePKCS1PublicKey(block.Bytes); pkcs1Err == nil {
			return rsaPub, nil
		}
		return nil, fmt.Errorf("parse public key: %w", err)
	}

	rsaPub, ok := pub.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("unexpected public key type %T, want RSA", pub)
	}
	return rsaPub, nil
}

// Verify checks an RSASSA-PSS/SHA-256 signature over body.
func Verify(pub *rsa.PublicKey, body, sig []byte) error {
	digest := sha256.Sum256(body)
	if err := rsa.VerifyPSS(pub, crypto.SHA256, digest[:], sig, pssOptions); err != nil {
		return ErrVerificationFailed
	}
	return nil
}

// VerifyBase64 checks a base64-encoded signature over body without
// returning an error: a malformed signature or mismatch yields false.
func VerifyBase64(pub *rsa.PublicKey, body []byte, signature string) bool {
	sig, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		return false
	}
	return Verify(pub, body, sig) == nil
}

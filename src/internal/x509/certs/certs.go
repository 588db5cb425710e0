// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509certs

import (
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"

	"github.com/cloudflare/cfssl/crypto/pkcs7"
)

var (
	// ErrInvalidBlockType indicates that the PEM block type is not the expected certificate type.
	ErrInvalidBlockType = errors.New("x509certs: invalid block type")

	// ErrParseCertificate indicates a failure to parse the certificate from the provided data.
	ErrParseCertificate = errors.New("x509certs: failed to parse certificate")

	// ErrNoCertificatesInPKCS indicates that no certificates were found in the PKCS7 data.
	ErrNoCertificatesInPKCS = errors.New("x509certs: no certificates found in PKCS7 data")

	// ErrEmptyInput indicates that there was nothing to decode.
	ErrEmptyInput = errors.New("x509certs: empty input")
)

// Certificate decodes and encodes [X.509] certificates.
// It maintains internal configuration such as the certificate block type.
//
// [X.509]: https://en.wikipedia.org/wiki/X.509
type Certificate struct {
	certBlockType string
}

// New creates a new Certificate with default settings.
func New() *Certificate {
	return &Certificate{
		certBlockType: "CERTIFICATE",
	}
}

// IsPEM checks if the data is in PEM format.
func (c *Certificate) IsPEM(data []byte) bool {
	block, _ := pem.Decode(data)
	return block != nil
}

// DecodeDER parses exactly one DER encoded certificate, as presented on the
// wire during a TLS handshake.
//
// Parameters:
//   - der: Raw DER bytes of a single certificate
//
// Returns:
//   - *x509.Certificate: The parsed certificate
//   - error: [ErrEmptyInput], or [ErrParseCertificate] wrapping the parser diagnostic
func (c *Certificate) DecodeDER(der []byte) (*x509.Certificate, error) {
	if len(der) == 0 {
		return nil, ErrEmptyInput
	}

	cert, err := x509.ParseCertificate(der)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseCertificate, err)
	}

	return cert, nil
}

// DecodeMultiple decodes a bundle of certificates, preserving their order.
// The bundle may be concatenated PEM blocks, concatenated DER certificates,
// or a PKCS7 structure (.p7b/.p7c) carrying certificates.
//
// Parameters:
//   - data: Bundle contents read from a file or stdin
//
// Returns:
//   - []*x509.Certificate: Decoded certificates in input order
//   - error: Decoding error if the bundle cannot be interpreted
func (c *Certificate) DecodeMultiple(data []byte) ([]*x509.Certificate, error) {
	if len(data) == 0 {
		return nil, ErrEmptyInput
	}

	if c.IsPEM(data) {
		return c.decodePEMBundle(data)
	}

	certs, err := x509.ParseCertificates(data)
	if err == nil && len(certs) > 0 {
		return certs, nil
	}

	// Fall back to PKCS7 using Cloudflare's library
	p, perr := pkcs7.ParsePKCS7(data)
	if perr != nil {
		if err == nil {
			err = perr
		}
		return nil, fmt.Errorf("%w: %v", ErrParseCertificate, err)
	}
	if len(p.Content.SignedData.Certificates) == 0 {
		return nil, ErrNoCertificatesInPKCS
	}

	return p.Content.SignedData.Certificates, nil
}

// decodePEMBundle walks every PEM block in data. Blocks of another type
// (keys, parameters) are rejected so that a mislabelled bundle is not
// silently truncated.
func (c *Certificate) decodePEMBundle(data []byte) ([]*x509.Certificate, error) {
	var certs []*x509.Certificate

	for len(data) > 0 {
		block, rest := pem.Decode(data)
		if block == nil {
			break
		}
		if block.Type != c.certBlockType {
			return nil, fmt.Errorf("%w: %s", ErrInvalidBlockType, block.Type)
		}

		cert, err := x509.ParseCertificate(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrParseCertificate, err)
		}

		certs = append(certs, cert)
		data = rest
	}

	return certs, nil
}

// EncodePEM encodes a certificate to PEM format.
func (c *Certificate) EncodePEM(cert *x509.Certificate) []byte {
	block := pem.Block{
		Type:  c.certBlockType,
		Bytes: cert.Raw,
	}
	return pem.EncodeToMemory(&block)
}

// EncodeMultiplePEM encodes multiple certificates to PEM format.
func (c *Certificate) EncodeMultiplePEM(certs []*x509.Certificate) []byte {
	var data []byte

	for _, cert := range certs {
		data = append(data, c.EncodePEM(cert)...)
	}

	return data
}

// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package testcert generates throwaway certificate hierarchies with precise
// validity windows for tests. It is only imported from _test.go files.
package testcert

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"net"
	"testing"
	"time"
)

// Issued is a generated certificate together with its private key.
type Issued struct {
	Cert *x509.Certificate
	Key  *ecdsa.PrivateKey
}

// Options controls the leaf or intermediate produced by [Issued.Issue].
type Options struct {
	CommonName string
	NotBefore  time.Time
	NotAfter   time.Time
	IsCA       bool
	DNSNames   []string
	IPs        []net.IP
}

var serial int64

func nextSerial() *big.Int {
	serial++
	return big.NewInt(time.Now().UnixNano() + serial)
}

// NewCA creates a self-signed root valid in [notBefore, notAfter].
func NewCA(tb testing.TB, cn string, notBefore, notAfter time.Time) *Issued {
	tb.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		tb.Fatalf("generate CA key: %v", err)
	}

	tmpl := &x509.Certificate{
		SerialNumber:          nextSerial(),
		Subject:               pkix.Name{CommonName: cn},
		NotBefore:             notBefore,
		NotAfter:              notAfter,
		KeyUsage:              x509.KeyUsageCertSign | x509.KeyUsageDigitalSignature,
		BasicConstraintsValid: true,
		IsCA:                  true,
	}

	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	if err != nil {
		tb.Fatalf("create CA certificate: %v", err)
	}
	cert, err := x509.ParseCertificate(der)
	if err != nil {
		tb.Fatalf("parse CA certificate: %v", err)
	}

	return &Issued{Cert: cert, Key: key}
}

// Issue signs a new certificate with the receiver.
func (i *Issued) Issue(tb testing.TB, opts Options) *Issued {
	tb.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		tb.Fatalf("generate key: %v", err)
	}

	tmpl := &x509.Certificate{
		SerialNumber:          nextSerial(),
		Subject:               pkix.Name{CommonName: opts.CommonName},
		NotBefore:             opts.NotBefore,
		NotAfter:              opts.NotAfter,
		DNSNames:              opts.DNSNames,
		IPAddresses:           opts.IPs,
		BasicConstraintsValid: true,
		IsCA:                  opts.IsCA,
	}
	if opts.IsCA {
		tmpl.KeyUsage = x509.KeyUsageCertSign | x509.KeyUsageDigitalSignature
	} else {
		tmpl.KeyUsage = x509.KeyUsageDigitalSignature
		tmpl.ExtKeyUsage = []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth}
	}

	der, err := x509.CreateCertificate(rand.Reader, tmpl, i.Cert, &key.PublicKey, i.Key)
	if err != nil {
		tb.Fatalf("create certificate %q: %v", opts.CommonName, err)
	}
	cert, err := x509.ParseCertificate(der)
	if err != nil {
		tb.Fatalf("parse certificate %q: %v", opts.CommonName, err)
	}

	return &Issued{Cert: cert, Key: key}
}

// TLSCertificate returns a server certificate presenting the receiver as leaf
// followed by the given issuers, in order.
func (i *Issued) TLSCertificate(issuers ...*Issued) tls.Certificate {
	chain := [][]byte{i.Cert.Raw}
	for _, issuer := range issuers {
		chain = append(chain, issuer.Cert.Raw)
	}
	return tls.Certificate{
		Certificate: chain,
		PrivateKey:  i.Key,
		Leaf:        i.Cert,
	}
}

// PEM encodes certificates as a concatenated PEM bundle.
func PEM(certs ...*x509.Certificate) []byte {
	var out []byte
	for _, c := range certs {
		out = append(out, pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: c.Raw})...)
	}
	return out
}

// Raw returns the DER encodings of certs, preserving order.
func Raw(certs ...*x509.Certificate) [][]byte {
	out := make([][]byte, 0, len(certs))
	for _, c := range certs {
		out = append(out, c.Raw)
	}
	return out
}

// Date is shorthand for a UTC midnight timestamp.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

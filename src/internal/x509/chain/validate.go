// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain

import (
	"bytes"
	"crypto/x509"
	"fmt"
	"time"

	"github.com/H0llyW00dzZ/tls-cert-expiry-monitor/src/logger"
	x509certs "github.com/H0llyW00dzZ/tls-cert-expiry-monitor/src/internal/x509/certs"
)

// DefaultMinRemainingDays is the minimum remaining lifetime required of every
// certificate when nothing else is configured.
const DefaultMinRemainingDays = 10

// timeLayout is used for validity windows in logs and error details.
const timeLayout = "2006-01-02T15:04:05Z"

var decoder = x509certs.New()

// Policy fixes the parameters of one validation run.
//
// Now is captured once and reused for every certificate of every domain so
// that all verdicts in a run refer to the same instant.
type Policy struct {
	MinRemainingDays int           // Required days of validity left, must be >= 0
	Now              time.Time     // Evaluation instant
	Log              logger.Logger // Optional, receives validity windows
}

// NewPolicy returns a Policy evaluated at the current UTC time.
func NewPolicy(minRemainingDays int) Policy {
	return Policy{
		MinRemainingDays: minRemainingDays,
		Now:              time.Now().UTC(),
	}
}

// Deadline returns the instant a certificate must outlive to pass.
func (p Policy) Deadline() time.Time {
	return p.Now.AddDate(0, 0, p.MinRemainingDays)
}

func (p Policy) logf(format string, v ...any) {
	if p.Log != nil {
		p.Log.Printf(format, v...)
	}
}

// CheckCertificate applies the validity window rules to one certificate.
//
// Parameters:
//   - cert: Parsed certificate
//   - policy: Evaluation instant and minimum remaining days
//
// Returns:
//   - bool: true when the certificate outlives the policy deadline, false
//     when it is currently valid but expires at or before the deadline
//   - error: A certificate [Error] wrapping [ErrNotYetValid] or [ErrExpired]
func CheckCertificate(cert *x509.Certificate, policy Policy) (bool, error) {
	notBefore, notAfter := cert.NotBefore.UTC(), cert.NotAfter.UTC()
	policy.logf("Certificate %q: not before %s, not after %s",
		cert.Subject.CommonName, notBefore.Format(timeLayout), notAfter.Format(timeLayout))

	deadline := policy.Deadline()
	policy.logf("Checking against date %s", deadline.UTC().Format(timeLayout))

	switch {
	case policy.Now.Before(notBefore):
		return false, certificateError(fmt.Errorf("%w (not before %s)", ErrNotYetValid, notBefore.Format(timeLayout)))
	case policy.Now.After(notAfter):
		return false, certificateError(fmt.Errorf("%w (not after %s)", ErrExpired, notAfter.Format(timeLayout)))
	case !deadline.Before(notAfter):
		return false, nil
	default:
		return true, nil
	}
}

// ValidateCertificate decodes one DER certificate and checks it.
//
// Returns:
//   - bool: See [CheckCertificate]
//   - error: A certificate [Error] wrapping [ErrDecode] with the decoder
//     diagnostic, or any error from [CheckCertificate]
func ValidateCertificate(raw []byte, policy Policy) (bool, error) {
	cert, err := decoder.DecodeDER(raw)
	if err != nil {
		return false, certificateError(fmt.Errorf("%w: %w", ErrDecode, err))
	}
	return CheckCertificate(cert, policy)
}

// ValidateChain validates every certificate of a chain.
//
// The result starts at true and is AND-ed with each certificate's result.
// A soft miss does not stop evaluation, so a later certificate can still
// produce an error; the first error is returned immediately.
//
// Parameters:
//   - raw: Chain as returned by [Fetcher.FetchChain]
//   - policy: Evaluation instant and minimum remaining days
//
// Returns:
//   - bool: true only if every certificate passed
//   - error: A certificate [Error] wrapping [ErrChainTooShort] for chains with
//     fewer than two certificates, or the first per-certificate error
func ValidateChain(raw RawChain, policy Policy) (bool, error) {
	if len(raw) < 2 {
		return false, certificateError(ErrChainTooShort)
	}

	policy.logf("Validating %d certificates with %d days", len(raw), policy.MinRemainingDays)

	result := true
	for _, der := range raw {
		ok, err := ValidateCertificate(der, policy)
		if err != nil {
			return false, err
		}
		result = result && ok
	}

	return result, nil
}

// Verdict is the per-certificate outcome shown by [Inspect].
type Verdict string

const (
	VerdictValid        Verdict = "valid"
	VerdictExpiringSoon Verdict = "expiring_soon"
	VerdictExpired      Verdict = "expired"
	VerdictNotYetValid  Verdict = "not_yet_valid"
	VerdictUndecodable  Verdict = "undecodable"
)

// CertificateReport describes one certificate of an inspected chain.
type CertificateReport struct {
	Index         int       `json:"index"`
	Role          string    `json:"role"`
	Subject       string    `json:"subject"`
	Issuer        string    `json:"issuer"`
	NotBefore     time.Time `json:"notBefore"`
	NotAfter      time.Time `json:"notAfter"`
	DaysRemaining int       `json:"daysRemaining"`
	Verdict       Verdict   `json:"verdict"`
	Detail        string    `json:"detail,omitempty"`
}

// Inspect evaluates every certificate of a chain without stopping at the
// first failure, for display purposes. Unlike [ValidateChain] it accepts
// chains of any non-zero length.
//
// Returns:
//   - []CertificateReport: One entry per certificate, in chain order
//   - error: A certificate [Error] wrapping [ErrNoCertificates] for an empty chain
func Inspect(raw RawChain, policy Policy) ([]CertificateReport, error) {
	if len(raw) == 0 {
		return nil, certificateError(ErrNoCertificates)
	}

	reports := make([]CertificateReport, len(raw))
	for i, der := range raw {
		r := CertificateReport{Index: i}

		cert, err := decoder.DecodeDER(der)
		if err != nil {
			r.Role = "Unknown"
			r.Verdict = VerdictUndecodable
			r.Detail = err.Error()
			reports[i] = r
			continue
		}

		r.Role = certificateRole(i, cert)
		r.Subject = cert.Subject.CommonName
		r.Issuer = cert.Issuer.CommonName
		r.NotBefore = cert.NotBefore.UTC()
		r.NotAfter = cert.NotAfter.UTC()
		r.DaysRemaining = int(r.NotAfter.Sub(policy.Now) / (24 * time.Hour))

		ok, err := CheckCertificate(cert, policy)
		switch {
		case err != nil && isNotYetValid(err):
			r.Verdict = VerdictNotYetValid
			r.Detail = err.Error()
		case err != nil:
			r.Verdict = VerdictExpired
			r.Detail = err.Error()
		case ok:
			r.Verdict = VerdictValid
		default:
			r.Verdict = VerdictExpiringSoon
		}

		reports[i] = r
	}

	return reports, nil
}

// FromCertificates converts parsed certificates into a [RawChain].
func FromCertificates(certs []*x509.Certificate) RawChain {
	raw := make(RawChain, 0, len(certs))
	for _, c := range certs {
		raw = append(raw, c.Raw)
	}
	return raw
}

// certificateRole names the function of a certificate in the chain.
// Servers usually omit the root, so only a self-issued CA is called one.
func certificateRole(index int, cert *x509.Certificate) string {
	selfIssued := bytes.Equal(cert.RawSubject, cert.RawIssuer)
	switch {
	case index == 0 && selfIssued && !cert.IsCA:
		return "Self-Signed Certificate"
	case index == 0:
		return "End-Entity (Server/Leaf) Certificate"
	case cert.IsCA && selfIssued:
		return "Root CA Certificate"
	default:
		return "Intermediate CA Certificate"
	}
}

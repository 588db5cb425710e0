// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain

import (
	"errors"
	"fmt"
)

var (
	// ErrChainTooShort indicates that fewer than two certificates were presented.
	ErrChainTooShort = errors.New("no certificates in chain")

	// ErrNoCertificates indicates that the peer presented no certificates at all.
	ErrNoCertificates = errors.New("no certificates")

	// ErrNotYetValid indicates that the evaluation instant precedes NotBefore.
	ErrNotYetValid = errors.New("certificate is before its validity window")

	// ErrExpired indicates that the evaluation instant follows NotAfter.
	ErrExpired = errors.New("certificate is after its validity window")

	// ErrDecode indicates that a raw certificate could not be decoded.
	ErrDecode = errors.New("cannot decode certificate")

	// ErrEmptyDomain indicates that no host was given to the fetcher.
	ErrEmptyDomain = errors.New("empty domain")
)

// Kind classifies the failure of a single domain check.
type Kind int

const (
	// KindNetwork covers connect, handshake, write, read and deadline failures.
	KindNetwork Kind = iota
	// KindCertificate covers decode failures, short chains and validity windows.
	KindCertificate
)

// String returns the lower-case label used in error messages.
func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindCertificate:
		return "certificate"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error is a classified failure. Its message has the form
// "<kind> error: <detail>" and it unwraps to the underlying cause so that
// callers can match sentinels with [errors.Is].
type Error struct {
	Kind Kind
	Err  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Kind.String() + " error: " + e.Err.Error()
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.Err }

func networkError(err error) error {
	return &Error{Kind: KindNetwork, Err: err}
}

func certificateError(err error) error {
	return &Error{Kind: KindCertificate, Err: err}
}

// KindOf reports the classification of err and whether it carried one.
func KindOf(err error) (Kind, bool) {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind, true
	}
	return 0, false
}

func isNotYetValid(err error) bool {
	return errors.Is(err, ErrNotYetValid)
}

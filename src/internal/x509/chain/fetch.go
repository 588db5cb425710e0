// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/H0llyW00dzZ/tls-cert-expiry-monitor/src/internal/helper/gc"
	"github.com/H0llyW00dzZ/tls-cert-expiry-monitor/src/version"
)

const (
	// DefaultPort is the TLS port dialed when Fetcher.Port is zero.
	DefaultPort = 443

	// DefaultTimeout bounds one fetch when Fetcher.Timeout is zero.
	DefaultTimeout = 10 * time.Second
)

// RawChain is a certificate chain as presented by a server, leaf first,
// each entry holding the DER encoding of one certificate.
type RawChain [][]byte

// systemRoots loads the public root pool once per process and shares it
// read-only between every fetch.
var systemRoots = sync.OnceValues(x509.SystemCertPool)

// Fetcher retrieves the certificate chain presented by a TLS server.
//
// A zero Fetcher is usable: it dials port 443 with a 10 second deadline and
// trusts the system root pool.
type Fetcher struct {
	Port      int            // TCP port, defaults to [DefaultPort]
	Timeout   time.Duration  // Per-call deadline, defaults to [DefaultTimeout]
	RootCAs   *x509.CertPool // Trust anchors, nil selects the system pool
	UserAgent string         // Request User-Agent, empty selects [version.UserAgent]
}

// NewFetcher creates a Fetcher for the default port with the given timeout.
func NewFetcher(timeout time.Duration) *Fetcher {
	return &Fetcher{Port: DefaultPort, Timeout: timeout}
}

// FetchChain connects to domain, completes a verified TLS handshake, issues
// a minimal HTTP request and drains the response, then returns the peer
// certificates in the order the server sent them.
//
// Exactly one connection is opened per call and nothing is retried.
//
// Parameters:
//   - ctx: Context for cancellation; an earlier context deadline wins over Timeout
//   - domain: Host name used for both the TCP address and SNI
//
// Returns:
//   - RawChain: DER certificates, leaf first
//   - error: A network [Error] for connect, handshake, write, read or deadline
//     failures, or a certificate [Error] wrapping [ErrNoCertificates]
//
// Thread Safety: Safe for concurrent use.
func (f *Fetcher) FetchChain(ctx context.Context, domain string) (RawChain, error) {
	if domain == "" {
		return nil, networkError(ErrEmptyDomain)
	}

	roots, err := f.roots()
	if err != nil {
		return nil, networkError(fmt.Errorf("load root certificates: %w", err))
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout())
	defer cancel()

	addr := net.JoinHostPort(domain, strconv.Itoa(f.port()))
	dialer := &tls.Dialer{
		Config: &tls.Config{
			ServerName: domain,
			RootCAs:    roots,
			MinVersion: tls.VersionTLS12,
		},
	}

	// DialContext performs the handshake, so verification failures surface here.
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, networkError(withContextCause(ctx, fmt.Errorf("connect %s: %w", addr, err)))
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}
	stop := context.AfterFunc(ctx, func() {
		_ = conn.SetDeadline(time.Now())
	})
	defer stop()

	if err := f.exchange(conn, domain); err != nil {
		return nil, networkError(withContextCause(ctx, err))
	}

	peers := conn.(*tls.Conn).ConnectionState().PeerCertificates
	if len(peers) == 0 {
		return nil, certificateError(ErrNoCertificates)
	}

	raw := make(RawChain, 0, len(peers))
	for _, cert := range peers {
		raw = append(raw, cert.Raw)
	}

	return raw, nil
}

// exchange writes the request and drains the response to end of stream.
// The body is discarded; only the pooled request buffer is held.
func (f *Fetcher) exchange(conn net.Conn, domain string) error {
	if err := f.writeRequest(conn, domain); err != nil {
		return fmt.Errorf("write: %w", err)
	}

	// Peers that close without close_notify end the stream with ErrUnexpectedEOF.
	if _, err := io.Copy(io.Discard, conn); err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("read: %w", err)
	}

	return nil
}

func (f *Fetcher) writeRequest(w io.Writer, domain string) error {
	buf := gc.Default.Get()
	defer func() {
		buf.Reset()
		gc.Default.Put(buf)
	}()

	buf.WriteString("GET / HTTP/1.1\r\nHost: ")
	buf.WriteString(domain)
	buf.WriteString("\r\nConnection: close\r\nAccept: */*\r\nUser-Agent: ")
	buf.WriteString(f.userAgent())
	buf.WriteString("\r\n\r\n")

	_, err := buf.WriteTo(w)
	return err
}

// withContextCause makes a context cancellation or deadline matchable with
// [errors.Is], since the net package reports them with its own error values.
func withContextCause(ctx context.Context, err error) error {
	ctxErr := ctx.Err()
	if ctxErr == nil || errors.Is(err, ctxErr) {
		return err
	}
	return fmt.Errorf("%w: %w", ctxErr, err)
}

func (f *Fetcher) roots() (*x509.CertPool, error) {
	if f.RootCAs != nil {
		return f.RootCAs, nil
	}
	return systemRoots()
}

func (f *Fetcher) port() int {
	if f.Port <= 0 || f.Port > 65535 {
		return DefaultPort
	}
	return f.Port
}

func (f *Fetcher) timeout() time.Duration {
	if f.Timeout <= 0 {
		return DefaultTimeout
	}
	return f.Timeout
}

func (f *Fetcher) userAgent() string {
	if f.UserAgent != "" {
		return f.UserAgent
	}
	return version.UserAgent()
}

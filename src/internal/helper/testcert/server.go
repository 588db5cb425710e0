// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package testcert

import (
	"bufio"
	"crypto/tls"
	"crypto/x509"
	"net"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

// Server is a local HTTPS endpoint presenting a generated chain.
type Server struct {
	*httptest.Server

	Roots        *x509.CertPool // Pool trusting the generated root
	Port         int
	Leaf         *Issued
	Intermediate *Issued
	Root         *Issued
}

// ServerOptions tweaks the chain served by [NewServer].
type ServerOptions struct {
	// LeafNotAfter overrides the leaf expiry, default one year from now.
	LeafNotAfter time.Time
	// LeafOnly serves the leaf without its intermediate.
	LeafOnly bool
}

// NewServer starts an HTTPS server on 127.0.0.1 whose leaf is issued by an
// intermediate under a fresh root. The server is closed when the test ends.
func NewServer(tb testing.TB, opts ServerOptions) *Server {
	tb.Helper()

	c := newChain(tb, opts)

	srv := httptest.NewUnstartedServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("ok\n"))
	}))
	srv.TLS = &tls.Config{Certificates: []tls.Certificate{c.served}}
	srv.StartTLS()
	tb.Cleanup(srv.Close)

	return &Server{
		Server:       srv,
		Roots:        c.roots,
		Port:         srv.Listener.Addr().(*net.TCPAddr).Port,
		Leaf:         c.leaf,
		Intermediate: c.inter,
		Root:         c.root,
	}
}

type chain struct {
	root, inter, leaf *Issued
	served            tls.Certificate
	roots             *x509.CertPool
}

func newChain(tb testing.TB, opts ServerOptions) chain {
	tb.Helper()

	now := time.Now().UTC()
	notBefore := now.Add(-time.Hour)
	leafNotAfter := opts.LeafNotAfter
	if leafNotAfter.IsZero() {
		leafNotAfter = now.AddDate(1, 0, 0)
	}

	root := NewCA(tb, "Local Test Root", notBefore, now.AddDate(10, 0, 0))
	inter := root.Issue(tb, Options{
		CommonName: "Local Test Intermediate",
		NotBefore:  notBefore,
		NotAfter:   now.AddDate(5, 0, 0),
		IsCA:       true,
	})
	leaf := inter.Issue(tb, Options{
		CommonName: "127.0.0.1",
		NotBefore:  notBefore,
		NotAfter:   leafNotAfter,
		IPs:        []net.IP{net.IPv4(127, 0, 0, 1)},
		DNSNames:   []string{"localhost"},
	})

	served := leaf.TLSCertificate(inter)
	if opts.LeafOnly {
		served = leaf.TLSCertificate()
	}

	roots := x509.NewCertPool()
	roots.AddCert(root.Cert)

	return chain{root: root, inter: inter, leaf: leaf, served: served, roots: roots}
}

// RawServer is a TLS endpoint that completes the handshake and then answers
// with a scripted byte stream instead of a real HTTP server.
type RawServer struct {
	Roots *x509.CertPool // Pool trusting the generated root
	Port  int
	Leaf  *Issued
}

// rawHandler runs after a successful handshake. raw is the TCP connection
// underneath conn; done is closed when the test ends.
type rawHandler func(conn *tls.Conn, raw net.Conn, done <-chan struct{})

// AbruptCloseServer answers each request with a short HTTP response, then
// writes half of a TLS record and closes the TCP connection without a
// close_notify alert. Clients see io.ErrUnexpectedEOF after the response.
func AbruptCloseServer(tb testing.TB) *RawServer {
	tb.Helper()

	return newRawServer(tb, func(conn *tls.Conn, raw net.Conn, _ <-chan struct{}) {
		if !readRequest(conn) {
			return
		}
		if _, err := conn.Write([]byte("HTTP/1.1 200 OK\r\nContent-Length: 2\r\nConnection: close\r\n\r\nok")); err != nil {
			return
		}
		// Application data header announcing 64 bytes, followed by none.
		_, _ = raw.Write([]byte{23, 3, 3, 0, 64})
	})
}

// StallingServer completes the handshake, reads the request and then never
// answers nor closes, so clients block on the response until their deadline.
func StallingServer(tb testing.TB) *RawServer {
	tb.Helper()

	return newRawServer(tb, func(conn *tls.Conn, _ net.Conn, done <-chan struct{}) {
		if !readRequest(conn) {
			return
		}
		<-done
	})
}

func newRawServer(tb testing.TB, handle rawHandler) *RawServer {
	tb.Helper()

	c := newChain(tb, ServerOptions{})
	cfg := &tls.Config{Certificates: []tls.Certificate{c.served}}

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		tb.Fatalf("listen: %v", err)
	}

	var (
		mu    sync.Mutex
		conns []net.Conn
		wg    sync.WaitGroup
	)
	done := make(chan struct{})
	accepted := make(chan struct{})

	go func() {
		defer close(accepted)
		for {
			raw, err := ln.Accept()
			if err != nil {
				return
			}
			mu.Lock()
			conns = append(conns, raw)
			mu.Unlock()

			wg.Add(1)
			go func() {
				defer wg.Done()
				defer raw.Close()

				conn := tls.Server(raw, cfg)
				if err := conn.Handshake(); err != nil {
					return
				}
				handle(conn, raw, done)
			}()
		}
	}()

	tb.Cleanup(func() {
		close(done)
		_ = ln.Close()
		<-accepted
		mu.Lock()
		for _, raw := range conns {
			_ = raw.Close()
		}
		mu.Unlock()
		wg.Wait()
	})

	return &RawServer{
		Roots: c.roots,
		Port:  ln.Addr().(*net.TCPAddr).Port,
		Leaf:  c.leaf,
	}
}

// readRequest consumes an HTTP request head, reporting whether the blank
// line ending it was seen.
func readRequest(conn *tls.Conn) bool {
	r := bufio.NewReader(conn)
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return false
		}
		if line == "\r\n" {
			return true
		}
	}
}

// UnusedPort returns a local port that nothing listens on.
func UnusedPort(tb testing.TB) int {
	tb.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		tb.Fatalf("listen: %v", err)
	}
	port := ln.Addr().(*net.TCPAddr).Port
	_ = ln.Close()
	return port
}

// SilentListener accepts connections and never answers, so TLS handshakes
// against it stall until the client gives up.
func SilentListener(tb testing.TB) int {
	tb.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		tb.Fatalf("listen: %v", err)
	}

	var conns []net.Conn
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			c, err := ln.Accept()
			if err != nil {
				return
			}
			conns = append(conns, c)
		}
	}()

	tb.Cleanup(func() {
		_ = ln.Close()
		<-done
		for _, c := range conns {
			_ = c.Close()
		}
	})

	return ln.Addr().(*net.TCPAddr).Port
}

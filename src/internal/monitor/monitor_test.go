// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package monitor_test

import (
	"bytes"
	"context"
	"crypto/x509"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/H0llyW00dzZ/tls-cert-expiry-monitor/src/internal/helper/testcert"
	"github.com/H0llyW00dzZ/tls-cert-expiry-monitor/src/internal/monitor"
	x509chain "github.com/H0llyW00dzZ/tls-cert-expiry-monitor/src/internal/x509/chain"
	"github.com/H0llyW00dzZ/tls-cert-expiry-monitor/src/logger"
)

var fakeNow = testcert.Date(2024, time.May, 1)

// stubFetcher serves canned chains or errors per domain.
type stubFetcher struct {
	chains map[string]x509chain.RawChain
	errs   map[string]error
	delay  func(domain string) time.Duration

	inFlight    atomic.Int32
	maxInFlight atomic.Int32
	calls       atomic.Int32
}

func (s *stubFetcher) FetchChain(ctx context.Context, domain string) (x509chain.RawChain, error) {
	s.calls.Add(1)
	n := s.inFlight.Add(1)
	defer s.inFlight.Add(-1)
	for {
		m := s.maxInFlight.Load()
		if n <= m || s.maxInFlight.CompareAndSwap(m, n) {
			break
		}
	}

	if s.delay != nil {
		select {
		case <-time.After(s.delay(domain)):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if err, ok := s.errs[domain]; ok {
		return nil, err
	}
	if raw, ok := s.chains[domain]; ok {
		return raw, nil
	}
	return nil, &x509chain.Error{Kind: x509chain.KindNetwork, Err: fmt.Errorf("lookup %s: no such host", domain)}
}

type chains struct {
	good     x509chain.RawChain
	expiring x509chain.RawChain
	expired  x509chain.RawChain
	short    x509chain.RawChain
}

func newChains(t *testing.T) chains {
	t.Helper()

	ca := testcert.NewCA(t, "Monitor CA", testcert.Date(2019, time.January, 1), testcert.Date(2040, time.January, 1))
	issue := func(cn string, nb, na time.Time) *x509.Certificate {
		return ca.Issue(t, testcert.Options{CommonName: cn, NotBefore: nb, NotAfter: na}).Cert
	}

	good := issue("good.example", testcert.Date(2021, time.January, 1), testcert.Date(2031, time.January, 1))
	expiring := issue("soon.example", testcert.Date(2024, time.January, 1), fakeNow.AddDate(0, 0, 3))
	expired := issue("old.example", testcert.Date(2020, time.January, 1), testcert.Date(2022, time.January, 1))

	return chains{
		good:     x509chain.FromCertificates([]*x509.Certificate{good, ca.Cert}),
		expiring: x509chain.FromCertificates([]*x509.Certificate{expiring, ca.Cert}),
		expired:  x509chain.FromCertificates([]*x509.Certificate{expired, ca.Cert}),
		short:    x509chain.FromCertificates([]*x509.Certificate{good}),
	}
}

func newChecker(f monitor.ChainFetcher, days, concurrency int) *monitor.Checker {
	return &monitor.Checker{
		Fetcher:     f,
		Policy:      x509chain.Policy{MinRemainingDays: days, Now: fakeNow},
		Concurrency: concurrency,
	}
}

func TestCheckDomain(t *testing.T) {
	c := newChains(t)
	fetcher := &stubFetcher{
		chains: map[string]x509chain.RawChain{
			"good.example":  c.good,
			"soon.example":  c.expiring,
			"old.example":   c.expired,
			"short.example": c.short,
		},
		errs: map[string]error{
			"refused.example": &x509chain.Error{Kind: x509chain.KindNetwork, Err: errors.New("connection refused")},
		},
	}
	checker := newChecker(fetcher, 10, 1)

	tests := []struct {
		name        string
		domain      string
		want        monitor.Status
		errContains string
	}{
		{
			name:   "Valid",
			domain: "good.example",
			want:   monitor.Status{Domain: "good.example", Valid: true, State: monitor.StateValid},
		},
		{
			name:   "Soft Miss Has Empty Error",
			domain: "soon.example",
			want:   monitor.Status{Domain: "soon.example", Valid: false, Error: "", State: monitor.StateExpiringSoon},
		},
		{
			name:        "Expired",
			domain:      "old.example",
			errContains: "certificate error: certificate is after its validity window",
		},
		{
			name:        "Short Chain",
			domain:      "short.example",
			errContains: "certificate error: no certificates in chain",
		},
		{
			name:        "Network Failure",
			domain:      "refused.example",
			errContains: "network error: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := checker.CheckDomain(context.Background(), tt.domain)
			if tt.errContains != "" {
				assert.Equal(t, tt.domain, got.Domain)
				assert.False(t, got.Valid)
				assert.Equal(t, monitor.StateError, got.State)
				assert.Contains(t, got.Error, tt.errContains)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCheckDomains_PreservesOrder(t *testing.T) {
	c := newChains(t)

	var domains []string
	chainsByDomain := make(map[string]x509chain.RawChain)
	for i := range 40 {
		d := fmt.Sprintf("d%02d.example", i)
		domains = append(domains, d)
		if i%3 == 0 {
			chainsByDomain[d] = c.expiring
		} else {
			chainsByDomain[d] = c.good
		}
	}
	// Duplicates and an unknown host keep their slots.
	domains = append(domains, "d01.example", "missing.example")

	fetcher := &stubFetcher{
		chains: chainsByDomain,
		// Later domains finish first.
		delay: func(domain string) time.Duration {
			var n int
			_, _ = fmt.Sscanf(domain, "d%02d.example", &n)
			return time.Duration(40-n) * time.Millisecond / 4
		},
	}

	statuses := newChecker(fetcher, 10, 8).CheckDomains(context.Background(), domains)
	require.Len(t, statuses, len(domains))

	for i, d := range domains {
		assert.Equal(t, d, statuses[i].Domain, "slot %d", i)
	}
	assert.Equal(t, monitor.StateExpiringSoon, statuses[0].State)
	assert.Equal(t, monitor.StateValid, statuses[1].State)
	assert.Equal(t, monitor.StateValid, statuses[40].State)
	assert.Equal(t, monitor.StateError, statuses[41].State)
	assert.Equal(t, int32(len(domains)), fetcher.calls.Load())
}

func TestCheckDomains_BoundedConcurrency(t *testing.T) {
	c := newChains(t)
	fetcher := &stubFetcher{
		chains: map[string]x509chain.RawChain{},
		delay:  func(string) time.Duration { return 20 * time.Millisecond },
	}

	domains := make([]string, 30)
	for i := range domains {
		domains[i] = fmt.Sprintf("host%d.example", i)
		fetcher.chains[domains[i]] = c.good
	}

	statuses := newChecker(fetcher, 0, 4).CheckDomains(context.Background(), domains)
	require.Len(t, statuses, 30)

	assert.LessOrEqual(t, fetcher.maxInFlight.Load(), int32(4))
	assert.Greater(t, fetcher.maxInFlight.Load(), int32(1), "expected parallel checks")
	for _, st := range statuses {
		assert.True(t, st.Valid)
	}
}

func TestCheckDomains_Empty(t *testing.T) {
	statuses := newChecker(&stubFetcher{}, 10, 0).CheckDomains(context.Background(), nil)
	assert.Empty(t, statuses)
}

func TestCheckDomains_CancelledContext(t *testing.T) {
	fetcher := &stubFetcher{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	statuses := newChecker(fetcher, 10, 2).CheckDomains(ctx, []string{"a.example", "b.example", "c.example"})
	require.Len(t, statuses, 3)

	for _, st := range statuses {
		assert.False(t, st.Valid)
		assert.Equal(t, monitor.StateError, st.State)
		assert.Equal(t, "network error: context canceled", st.Error)
	}
	assert.Zero(t, fetcher.calls.Load())
}

func TestNewChecker_Logs(t *testing.T) {
	c := newChains(t)

	var (
		mu  sync.Mutex
		buf bytes.Buffer
	)
	log := logger.NewJSONLogger(&lockedWriter{mu: &mu, w: &buf}, "monitor", false)

	checker := monitor.NewChecker(&stubFetcher{
		chains: map[string]x509chain.RawChain{"good.example": c.good},
	}, 10, 0, log)
	// Pin the instant so the fixture certificates are in their window.
	checker.Policy.Now = fakeNow

	st := checker.CheckDomain(context.Background(), "good.example")
	assert.True(t, st.Valid)

	mu.Lock()
	out := buf.String()
	mu.Unlock()
	assert.Contains(t, out, "Validating good.example with 10 days")
	assert.Contains(t, out, `"component":"monitor"`)
	assert.Contains(t, out, "Checking against date")
}

func TestSummarize(t *testing.T) {
	statuses := []monitor.Status{
		{Domain: "a", Valid: true, State: monitor.StateValid},
		{Domain: "b", Valid: false, State: monitor.StateExpiringSoon},
		{Domain: "c", Valid: false, Error: "network error: x", State: monitor.StateError},
		// Legacy records without state.
		{Domain: "d", Valid: true},
		{Domain: "e", Valid: false},
		{Domain: "f", Valid: false, Error: "certificate error: y"},
	}

	assert.Equal(t, monitor.Summary{Total: 6, Valid: 2, ExpiringSoon: 2, Errors: 2}, monitor.Summarize(statuses))
}

type lockedWriter struct {
	mu *sync.Mutex
	w  *bytes.Buffer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

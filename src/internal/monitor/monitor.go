// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package monitor

import (
	"context"
	"sync"

	"github.com/H0llyW00dzZ/tls-cert-expiry-monitor/src/logger"
	x509chain "github.com/H0llyW00dzZ/tls-cert-expiry-monitor/src/internal/x509/chain"
)

// DefaultConcurrency is the number of domains checked at once when
// Checker.Concurrency is not positive.
const DefaultConcurrency = 8

// ChainFetcher retrieves the raw certificate chain of a domain.
// [*x509chain.Fetcher] is the production implementation.
type ChainFetcher interface {
	FetchChain(ctx context.Context, domain string) (x509chain.RawChain, error)
}

// Checker runs domain checks under one policy.
type Checker struct {
	Fetcher     ChainFetcher
	Policy      x509chain.Policy
	Concurrency int
	Logger      logger.Logger // Optional
}

// NewChecker creates a Checker whose policy instant is captured now.
//
// Parameters:
//   - fetcher: Transport used to retrieve chains
//   - minRemainingDays: Required days of validity left on every certificate
//   - concurrency: Maximum domains checked at once, non-positive selects [DefaultConcurrency]
//   - log: Optional logger for progress and validity windows
//
// Returns:
//   - *Checker: Ready to use checker
func NewChecker(fetcher ChainFetcher, minRemainingDays, concurrency int, log logger.Logger) *Checker {
	policy := x509chain.NewPolicy(minRemainingDays)
	policy.Log = log

	return &Checker{
		Fetcher:     fetcher,
		Policy:      policy,
		Concurrency: concurrency,
		Logger:      log,
	}
}

// CheckDomain fetches and validates one domain. Every failure is folded
// into the returned Status, so the call itself never fails.
func (c *Checker) CheckDomain(ctx context.Context, domain string) Status {
	if err := ctx.Err(); err != nil {
		return c.failed(domain, &x509chain.Error{Kind: x509chain.KindNetwork, Err: err})
	}

	c.logf("Validating %s with %d days", domain, c.Policy.MinRemainingDays)

	raw, err := c.Fetcher.FetchChain(ctx, domain)
	if err != nil {
		return c.failed(domain, err)
	}

	ok, err := x509chain.ValidateChain(raw, c.Policy)
	if err != nil {
		return c.failed(domain, err)
	}

	st := Status{Domain: domain, Valid: ok, State: StateValid}
	if !ok {
		st.State = StateExpiringSoon
		c.logf("Domain %s expires within %d days", domain, c.Policy.MinRemainingDays)
	}
	return st
}

// CheckDomains checks every domain with at most Concurrency checks in flight.
// Results are returned in input order, one per input including duplicates.
// Domains not yet started when ctx is cancelled report a network error.
func (c *Checker) CheckDomains(ctx context.Context, domains []string) []Status {
	statuses := make([]Status, len(domains))
	if len(domains) == 0 {
		return statuses
	}

	workers := c.Concurrency
	if workers <= 0 {
		workers = DefaultConcurrency
	}
	if workers > len(domains) {
		workers = len(domains)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				statuses[i] = c.CheckDomain(ctx, domains[i])
			}
		}()
	}

	for i := range domains {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return statuses
}

func (c *Checker) failed(domain string, err error) Status {
	c.logf("Domain %s failed: %v", domain, err)
	return Status{Domain: domain, Valid: false, Error: err.Error(), State: StateError}
}

func (c *Checker) logf(format string, v ...any) {
	if c.Logger != nil {
		c.Logger.Printf(format, v...)
	}
}

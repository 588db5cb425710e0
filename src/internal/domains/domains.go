// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package domains

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/aws/aws-sdk-go/service/s3/s3iface"

	"github.com/H0llyW00dzZ/tls-cert-expiry-monitor/src/logger"
)

var (
	// ErrMalformedS3URL indicates an s3:// location without a bucket or key.
	ErrMalformedS3URL = errors.New("cannot parse S3 url")

	// ErrNotUTF8 indicates a domain list that is not valid UTF-8 text.
	ErrNotUTF8 = errors.New("domain list is not valid UTF-8")

	// ErrEmptyLocation indicates that no location was given.
	ErrEmptyLocation = errors.New("no domain list location given")
)

// Error is a configuration failure while loading a domain list.
type Error struct {
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string { return "config error: " + e.Err.Error() }

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.Err }

func configError(err error) error { return &Error{Err: err} }

// Parse splits text into domains, one per line.
func Parse(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out
}

// Loader picks a source for a location and parses its contents.
//
// The S3 client is created on first use unless one is supplied, so that
// runs reading local files never touch AWS configuration.
type Loader struct {
	S3     s3iface.S3API // Optional, defaults to a client from the shared AWS config
	Stdin  io.Reader     // Reader for "-", defaults to os.Stdin
	Logger logger.Logger // Optional

	once  sync.Once
	s3err error
}

// Load reads the domain list at location.
//
// Parameters:
//   - ctx: Context for cancellation of remote reads
//   - location: "s3://bucket/key", "-" for standard input, or a file path
//
// Returns:
//   - []string: Parsed domains in order
//   - error: A config [Error] describing why the list could not be read
func (l *Loader) Load(ctx context.Context, location string) ([]string, error) {
	location = strings.TrimSpace(location)

	var (
		data []byte
		err  error
	)
	switch {
	case location == "":
		return nil, configError(ErrEmptyLocation)
	case strings.HasPrefix(location, "s3://"):
		data, err = l.loadS3(ctx, location)
	case location == "-":
		data, err = l.loadReader()
	default:
		data, err = os.ReadFile(location)
		if err != nil {
			err = configError(fmt.Errorf("read domain list: %w", err))
		}
	}
	if err != nil {
		return nil, err
	}

	if !utf8.Valid(data) {
		return nil, configError(fmt.Errorf("%w: %s", ErrNotUTF8, location))
	}

	list := Parse(string(data))
	l.logf("Loaded %d domains from %s", len(list), location)
	return list, nil
}

func (l *Loader) loadS3(ctx context.Context, location string) ([]byte, error) {
	bucket, key, err := ParseS3URL(location)
	if err != nil {
		return nil, err
	}
	l.logf("Parse S3 config location %s to bucket: %s, key: %s", location, bucket, key)

	client, err := l.s3Client()
	if err != nil {
		return nil, configError(fmt.Errorf("create S3 client: %w", err))
	}

	src := &S3Source{Client: client, Bucket: bucket, Key: key}
	return src.Fetch(ctx)
}

func (l *Loader) loadReader() ([]byte, error) {
	r := l.Stdin
	if r == nil {
		r = os.Stdin
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, configError(fmt.Errorf("read domain list from stdin: %w", err))
	}
	return data, nil
}

func (l *Loader) s3Client() (s3iface.S3API, error) {
	l.once.Do(func() {
		if l.S3 == nil {
			l.S3, l.s3err = NewS3Client()
		}
	})
	return l.S3, l.s3err
}

func (l *Loader) logf(format string, v ...any) {
	if l.Logger != nil {
		l.Logger.Printf(format, v...)
	}
}

// Load reads the domain list at location with a default [Loader].
func Load(ctx context.Context, location string) ([]string, error) {
	return (&Loader{}).Load(ctx, location)
}

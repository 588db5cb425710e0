// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package domains_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/H0llyW00dzZ/tls-cert-expiry-monitor/src/internal/domains"
	"github.com/H0llyW00dzZ/tls-cert-expiry-monitor/src/logger"
)

// fakeS3 serves objects from memory.
type fakeS3 struct {
	s3iface.S3API

	objects map[string]string
	err     error
	gotKeys []string
}

func (f *fakeS3) GetObjectWithContext(_ aws.Context, in *s3.GetObjectInput, _ ...request.Option) (*s3.GetObjectOutput, error) {
	path := aws.StringValue(in.Bucket) + "/" + aws.StringValue(in.Key)
	f.gotKeys = append(f.gotKeys, path)

	if f.err != nil {
		return nil, f.err
	}
	body, ok := f.objects[path]
	if !ok {
		return nil, errors.New("NoSuchKey: The specified key does not exist.")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(body))}, nil
}

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "Empty", input: "", want: nil},
		{name: "Single", input: "example.com", want: []string{"example.com"}},
		{name: "Trailing Newline", input: "a.example\nb.example\n", want: []string{"a.example", "b.example"}},
		{name: "CRLF And Spaces", input: "  a.example \r\n\tb.example\r\n", want: []string{"a.example", "b.example"}},
		{name: "Blank Lines Skipped", input: "\n\na.example\n\n\nb.example", want: []string{"a.example", "b.example"}},
		{name: "Comments Skipped", input: "# production\na.example\n  # staging\nb.example", want: []string{"a.example", "b.example"}},
		{name: "Order And Duplicates Kept", input: "z.example\na.example\nz.example", want: []string{"z.example", "a.example", "z.example"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domains.Parse(tt.input))
		})
	}
}

func TestParseS3URL(t *testing.T) {
	tests := []struct {
		name       string
		location   string
		wantBucket string
		wantKey    string
		wantErr    bool
	}{
		{name: "Simple", location: "s3://bucket/domains.txt", wantBucket: "bucket", wantKey: "domains.txt"},
		{name: "Nested Key", location: "s3://bucket/config/prod/domains.txt", wantBucket: "bucket", wantKey: "config/prod/domains.txt"},
		{name: "Missing Key", location: "s3://bucket", wantErr: true},
		{name: "Missing Key With Slash", location: "s3://bucket/", wantErr: true},
		{name: "Missing Bucket", location: "s3:///domains.txt", wantErr: true},
		{name: "Wrong Scheme", location: "https://bucket/domains.txt", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bucket, key, err := domains.ParseS3URL(tt.location)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, domains.ErrMalformedS3URL)
				assert.Equal(t, "config error: cannot parse S3 url "+tt.location, err.Error())
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantBucket, bucket)
			assert.Equal(t, tt.wantKey, key)
		})
	}
}

func TestLoader(t *testing.T) {
	dir := t.TempDir()
	listPath := filepath.Join(dir, "domains.txt")
	require.NoError(t, os.WriteFile(listPath, []byte("a.example\n# skip\nb.example\n"), 0o600))

	badPath := filepath.Join(dir, "binary.txt")
	require.NoError(t, os.WriteFile(badPath, []byte{0xff, 0xfe, 0x00}, 0o600))

	tests := []struct {
		name     string
		testFunc func(t *testing.T)
	}{
		{
			name: "Local File",
			testFunc: func(t *testing.T) {
				got, err := domains.Load(context.Background(), listPath)
				require.NoError(t, err)
				assert.Equal(t, []string{"a.example", "b.example"}, got)
			},
		},
		{
			name: "Missing File",
			testFunc: func(t *testing.T) {
				_, err := domains.Load(context.Background(), filepath.Join(dir, "missing.txt"))
				require.Error(t, err)

				var cfgErr *domains.Error
				require.ErrorAs(t, err, &cfgErr)
				assert.ErrorIs(t, err, os.ErrNotExist)
				assert.True(t, strings.HasPrefix(err.Error(), "config error: "))
			},
		},
		{
			name: "Invalid UTF-8",
			testFunc: func(t *testing.T) {
				_, err := domains.Load(context.Background(), badPath)
				assert.ErrorIs(t, err, domains.ErrNotUTF8)
			},
		},
		{
			name: "Empty Location",
			testFunc: func(t *testing.T) {
				_, err := domains.Load(context.Background(), "  ")
				assert.ErrorIs(t, err, domains.ErrEmptyLocation)
			},
		},
		{
			name: "Stdin",
			testFunc: func(t *testing.T) {
				l := &domains.Loader{Stdin: strings.NewReader("x.example\r\ny.example")}
				got, err := l.Load(context.Background(), "-")
				require.NoError(t, err)
				assert.Equal(t, []string{"x.example", "y.example"}, got)
			},
		},
		{
			name: "S3 Object",
			testFunc: func(t *testing.T) {
				client := &fakeS3{objects: map[string]string{
					"monitoring/config/domains.txt": "google.com\n\nexample.org\n",
				}}

				var buf bytes.Buffer
				log := logger.NewCLILogger()
				log.SetOutput(&buf)

				l := &domains.Loader{S3: client, Logger: log}
				got, err := l.Load(context.Background(), "s3://monitoring/config/domains.txt")
				require.NoError(t, err)

				assert.Equal(t, []string{"google.com", "example.org"}, got)
				assert.Equal(t, []string{"monitoring/config/domains.txt"}, client.gotKeys)
				assert.Contains(t, buf.String(), "bucket: monitoring, key: config/domains.txt")
				assert.Contains(t, buf.String(), "Loaded 2 domains")
			},
		},
		{
			name: "S3 Missing Object",
			testFunc: func(t *testing.T) {
				l := &domains.Loader{S3: &fakeS3{}}
				_, err := l.Load(context.Background(), "s3://bucket/nothing.txt")
				require.Error(t, err)
				assert.Contains(t, err.Error(), "config error: get s3://bucket/nothing.txt: NoSuchKey")
			},
		},
		{
			name: "S3 Malformed URL Does Not Call Client",
			testFunc: func(t *testing.T) {
				client := &fakeS3{}
				l := &domains.Loader{S3: client}
				_, err := l.Load(context.Background(), "s3://bucket")
				assert.ErrorIs(t, err, domains.ErrMalformedS3URL)
				assert.Empty(t, client.gotKeys)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, tt.testFunc)
	}
}

// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package domains

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

// DefaultRegion is used when neither the environment nor the shared AWS
// configuration names a region.
const DefaultRegion = "us-east-1"

// ParseS3URL splits an s3://bucket/key location.
//
// Returns:
//   - bucket: Host part of the URL
//   - key: Path without its leading slash
//   - err: A config [Error] wrapping [ErrMalformedS3URL]
func ParseS3URL(location string) (bucket, key string, err error) {
	u, perr := url.Parse(location)
	if perr != nil || u.Scheme != "s3" || u.Host == "" {
		return "", "", configError(fmt.Errorf("%w %s", ErrMalformedS3URL, location))
	}

	key = strings.TrimLeft(u.Path, "/")
	if key == "" {
		return "", "", configError(fmt.Errorf("%w %s", ErrMalformedS3URL, location))
	}

	return u.Host, key, nil
}

// S3Source reads a domain list object from S3.
type S3Source struct {
	Client s3iface.S3API
	Bucket string
	Key    string
}

// Fetch downloads the object body.
func (s *S3Source) Fetch(ctx context.Context) ([]byte, error) {
	out, err := s.Client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(s.Key),
	})
	if err != nil {
		return nil, configError(fmt.Errorf("get s3://%s/%s: %w", s.Bucket, s.Key, err))
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, configError(fmt.Errorf("read s3://%s/%s: %w", s.Bucket, s.Key, err))
	}

	return data, nil
}

// NewS3Client creates an S3 client from the shared AWS configuration,
// falling back to [DefaultRegion].
func NewS3Client() (s3iface.S3API, error) {
	sess, err := session.NewSessionWithOptions(session.Options{
		SharedConfigState: session.SharedConfigEnable,
	})
	if err != nil {
		return nil, err
	}

	cfg := aws.NewConfig()
	if aws.StringValue(sess.Config.Region) == "" && os.Getenv("AWS_REGION") == "" {
		cfg = cfg.WithRegion(DefaultRegion)
	}

	return s3.New(sess, cfg), nil
}

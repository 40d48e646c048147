package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

// DefaultS3Timeout bounds every S3 call, including reading the object body.
const DefaultS3Timeout = 10 * time.Second

// S3Provider serves the catalog and favorites buckets from any S3-compatible
// endpoint. Objects here are small (one schedule page, one favorites list
// per visitor), so Get reads the whole body before returning.
type S3Provider struct {
	api     s3iface.S3API
	timeout time.Duration
}

func NewS3Provider(sess *session.Session) *S3Provider {
	return NewS3ProviderWithAPI(s3.New(sess))
}

// NewS3ProviderWithAPI wraps an existing client, e.g. a fake in tests.
func NewS3ProviderWithAPI(api s3iface.S3API) *S3Provider {
	return &S3Provider{api: api, timeout: DefaultS3Timeout}
}

func (s *S3Provider) callContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.timeout)
}

// List returns object keys under prefix, skipping folder placeholders.
func (s *S3Provider) List(bucket, prefix string) ([]string, error) {
	ctx, cancel := s.callContext()
	defer cancel()

	var keys []string
	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(bucket),
		Prefix: aws.String(prefix),
	}
	err := s.api.ListObjectsV2PagesWithContext(ctx, input, func(page *s3.ListObjectsV2Output, _ bool) bool {
		for _, item := range page.Contents {
			key := aws.StringValue(item.Key)
			if key == "" || strings.HasSuffix(key, "/") {
				continue
			}
			keys = append(keys, key)
		}
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("list %s/%s: %w", bucket, prefix, err)
	}
	return keys, nil
}

func (s *S3Provider) Get(bucket, key string) (*FileObject, error) {
	ctx, cancel := s.callContext()
	defer cancel()

	out, err := s.api.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if isNotFound(err) {
		return nil, fmt.Errorf("%s/%s: %w", bucket, key, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", bucket, key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s/%s: %w", bucket, key, err)
	}

	return &FileObject{
		Body:          io.NopCloser(bytes.NewReader(data)),
		ContentType:   aws.StringValue(out.ContentType),
		ContentLength: int64(len(data)),
		LastModified:  aws.TimeValue(out.LastModified),
	}, nil
}

// Put uploads body. cacheControl distinguishes the public catalog
// ("no-cache") from private favorites records ("no-store").
func (s *S3Provider) Put(bucket, key string, body io.ReadSeeker, contentType, cacheControl string) error {
	ctx, cancel := s.callContext()
	defer cancel()

	input := &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	}
	if cacheControl != "" {
		input.CacheControl = aws.String(cacheControl)
	}
	if _, err := s.api.PutObjectWithContext(ctx, input); err != nil {
		return fmt.Errorf("put %s/%s: %w", bucket, key, err)
	}
	return nil
}

func isNotFound(err error) bool {
	aerr, ok := err.(awserr.Error)
	if !ok {
		return false
	}
	switch aerr.Code() {
	case s3.ErrCodeNoSuchKey, s3.ErrCodeNoSuchBucket, "NotFound":
		return true
	}
	return false
}

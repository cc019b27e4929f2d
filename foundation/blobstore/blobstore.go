// Package blobstore stores uploaded portal assets in an S3 bucket and hands
// back the public address the portal should reference.
package blobstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/jcpaschoal/partner-portal/foundation/logger"
)

// MaxObjectSize bounds a single uploaded asset.
const MaxObjectSize = 10 << 20

// ErrTooLarge is returned when an asset exceeds MaxObjectSize.
var ErrTooLarge = errors.New("asset exceeds maximum size")

// putter is the subset of the S3 client used by the store.
type putter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// Config holds the settings for the asset bucket.
type Config struct {
	Region string
	Bucket string

	// PublicBaseURL is the CDN or website origin serving the bucket. When
	// empty the virtual-hosted S3 address is used.
	PublicBaseURL string
}

// Store uploads objects to S3.
type Store struct {
	log     *logger.Logger
	client  putter
	bucket  string
	baseURL *url.URL
}

// New constructs a Store using the default AWS credential chain.
func New(ctx context.Context, log *logger.Logger, cfg Config) (*Store, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	return newStore(log, s3.NewFromConfig(awsCfg), cfg)
}

func newStore(log *logger.Logger, client putter, cfg Config) (*Store, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("bucket is required")
	}

	base := cfg.PublicBaseURL
	if base == "" {
		base = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}

	baseURL, err := url.Parse(strings.TrimSuffix(base, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse public base url: %w", err)
	}

	return &Store{
		log:     log,
		client:  client,
		bucket:  cfg.Bucket,
		baseURL: baseURL,
	}, nil
}

// Upload writes the content under key and returns its public address.
func (s *Store) Upload(ctx context.Context, key string, contentType string, r io.Reader) (*url.URL, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxObjectSize+1))
	if err != nil {
		return nil, fmt.Errorf("read content: %w", err)
	}

	if len(data) > MaxObjectSize {
		return nil, ErrTooLarge
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(data),
		ContentType:  aws.String(contentType),
		CacheControl: aws.String("public, max-age=31536000"),
	})
	if err != nil {
		return nil, fmt.Errorf("put object[%s]: %w", key, err)
	}

	s.log.Info(ctx, "blobstore: uploaded", "key", key, "size", len(data))

	return s.baseURL.JoinPath(key), nil
}

// Remove deletes the object stored under key.
func (s *Store) Remove(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete object[%s]: %w", key, err)
	}

	s.log.Info(ctx, "blobstore: removed", "key", key)

	return nil
}

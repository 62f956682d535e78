// Package s3 implements core.Store on an S3-compatible bucket (AWS S3 or
// MinIO). Each subtree is one JSON object; SetSubtree overwrites it.
package s3

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	aws "github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"civicsync/internal/treestore/core"
)

// Compile-time contract assertion ensuring the store satisfies core.Store.
var _ core.Store = (*Store)(nil)

// api is the S3 surface the store needs; *s3.Client satisfies it and tests
// substitute a fake.
type api interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, opts ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Config holds explicit construction parameters (mostly for tests). For prod
// we rely primarily on environment variables.
type Config struct {
	Region    string
	Bucket    string
	Endpoint  string // optional; if set enables custom endpoint (e.g. MinIO)
	PathStyle bool
	Prefix    string // optional key prefix inside the bucket
}

// Environment variables:
//
//	CIVICSYNC_TREE_DRIVER=s3
//	CIVICSYNC_TREE_S3_BUCKET=<bucket> (required)
//	CIVICSYNC_TREE_S3_REGION=<region> (default us-east-1)
//	CIVICSYNC_TREE_S3_ENDPOINT=<url> (optional, for MinIO)
//	CIVICSYNC_TREE_S3_PATH_STYLE=true|false (default false)
//	CIVICSYNC_TREE_S3_PREFIX=<key prefix> (optional)
//	AWS_ACCESS_KEY_ID / AWS_SECRET_ACCESS_KEY / AWS_SESSION_TOKEN (optional)

// Store implements core.Store over a single bucket.
type Store struct {
	client api
	bucket string
	prefix string
}

// New creates an S3 tree store from Config.
func New(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket required")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, err
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.PathStyle {
			o.UsePathStyle = true
		}
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return &Store{client: client, bucket: cfg.Bucket, prefix: cfg.Prefix}, nil
}

// OpenFromEnv constructs an S3 store from process environment.
func OpenFromEnv(ctx context.Context) (*Store, error) {
	bucket := os.Getenv("CIVICSYNC_TREE_S3_BUCKET")
	if bucket == "" {
		return nil, fmt.Errorf("CIVICSYNC_TREE_S3_BUCKET required for s3 driver")
	}
	cfg := Config{
		Bucket:    bucket,
		Region:    os.Getenv("CIVICSYNC_TREE_S3_REGION"),
		Endpoint:  os.Getenv("CIVICSYNC_TREE_S3_ENDPOINT"),
		PathStyle: strings.EqualFold(os.Getenv("CIVICSYNC_TREE_S3_PATH_STYLE"), "true"),
		Prefix:    os.Getenv("CIVICSYNC_TREE_S3_PREFIX"),
	}
	return New(ctx, cfg)
}

// Driver returns the tree-store driver identifier.
func (s *Store) Driver() core.Driver { return core.DriverS3 }

// SetSubtree overwrites the object for path with the JSON encoding of value.
func (s *Store) SetSubtree(ctx context.Context, path string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode subtree %s: %w", path, err)
	}
	key := s.key(path)
	contentType := "application/json"
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &s.bucket,
		Key:         &key,
		Body:        bytes.NewReader(payload),
		ContentType: &contentType,
	})
	if err != nil {
		return fmt.Errorf("put s3 object %s: %w", key, err)
	}
	return nil
}

// GetSubtree reads and decodes the object for path.
func (s *Store) GetSubtree(ctx context.Context, path string, out any) error {
	key := s.key(path)
	obj, err := s.client.GetObject(ctx, &s3.GetObjectInput{Bucket: &s.bucket, Key: &key})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return core.ErrNotFound
		}
		return fmt.Errorf("get s3 object %s: %w", key, err)
	}
	defer func() { _ = obj.Body.Close() }()
	body, err := io.ReadAll(obj.Body)
	if err != nil {
		return fmt.Errorf("read s3 object %s: %w", key, err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode subtree %s: %w", core.CleanPath(path), err)
	}
	return nil
}

func (s *Store) key(path string) string {
	key := strings.TrimPrefix(core.CleanPath(path), "/") + ".json"
	if s.prefix != "" {
		key = strings.TrimSuffix(s.prefix, "/") + "/" + key
	}
	return key
}

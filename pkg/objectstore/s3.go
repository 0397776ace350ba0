// Package objectstore stores uploaded images in an S3 bucket.
package objectstore

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/abgdnv/shopfront/pkg/config"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Object locates a stored file: the public URL and the bucket key.
type Object struct {
	URL  string
	Path string
}

type s3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

type S3Storage struct {
	client s3API
	bucket string
	region string
	folder string
}

// NewS3Storage builds a client from the default AWS credential chain.
func NewS3Storage(ctx context.Context, cfg config.ObjectStorageConfig) (*S3Storage, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}
	return newS3Storage(s3.NewFromConfig(awsCfg), cfg), nil
}

func newS3Storage(client s3API, cfg config.ObjectStorageConfig) *S3Storage {
	return &S3Storage{
		client: client,
		bucket: cfg.Bucket,
		region: cfg.Region,
		folder: cfg.Folder,
	}
}

// Upload stores data under <folder>/<ownerID>/<unix millis>_<file name>.
func (s *S3Storage) Upload(ctx context.Context, ownerID, fileName, contentType string, data []byte) (Object, error) {
	key := ObjectKey(s.folder, ownerID, fileName, time.Now())
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return Object{}, fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return Object{URL: s.objectURL(key), Path: key}, nil
}

// Delete removes the object at path. An empty path is a no-op.
func (s *S3Storage) Delete(ctx context.Context, path string) error {
	if path == "" {
		return nil
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(path),
	})
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", path, err)
	}
	return nil
}

func (s *S3Storage) objectURL(key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}

// ObjectKey builds the bucket key for an upload. Whitespace in the file name becomes '_'.
func ObjectKey(folder, ownerID, fileName string, at time.Time) string {
	name := strings.Join(strings.Fields(fileName), "_")
	if name == "" {
		name = "image"
	}
	return fmt.Sprintf("%s/%s/%d_%s", folder, ownerID, at.UnixMilli(), name)
}

package sink

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// S3Config configures an S3Sink.
type S3Config struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	// Prefix is prepended to every object key.
	Prefix string
	UseSSL bool
	// RunID groups the units of one conversion. Empty means a new UUID.
	RunID string
}

// S3Sink stores one object per unit at <prefix>/<run>/<name>.swift.
type S3Sink struct {
	client     *minio.Client
	bucketName string
	region     string
	prefix     string
	runID      string
	initOnce   sync.Once
	initErr    error
}

// NewS3Sink creates the client. The bucket is created on first write if
// it does not exist.
func NewS3Sink(cfg S3Config) (*S3Sink, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("s3 endpoint is required")
	}
	access := strings.TrimSpace(cfg.AccessKey)
	secret := strings.TrimSpace(cfg.SecretKey)
	if access == "" || secret == "" {
		return nil, fmt.Errorf("s3 access key and secret key are required")
	}
	bucket := strings.TrimSpace(cfg.Bucket)
	if bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}
	region := strings.TrimSpace(cfg.Region)
	if region == "" {
		region = "us-east-1"
	}
	runID := cfg.RunID
	if runID == "" {
		runID = uuid.NewString()
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(access, secret, ""),
		Secure: cfg.UseSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("init s3 client: %w", err)
	}

	return &S3Sink{
		client:     client,
		bucketName: bucket,
		region:     region,
		prefix:     strings.Trim(cfg.Prefix, "/"),
		runID:      runID,
	}, nil
}

func (s *S3Sink) ensureBucket(ctx context.Context) error {
	s.initOnce.Do(func() {
		exists, err := s.client.BucketExists(ctx, s.bucketName)
		if err != nil {
			s.initErr = err
			return
		}
		if exists {
			return
		}
		s.initErr = s.client.MakeBucket(ctx, s.bucketName, minio.MakeBucketOptions{Region: s.region})
	})
	return s.initErr
}

// Kind returns "s3".
func (s *S3Sink) Kind() string { return "s3" }

// RunID identifies this run.
func (s *S3Sink) RunID() string { return s.runID }

// Location returns the s3:// URL of the unit called name.
func (s *S3Sink) Location(name string) string {
	return "s3://" + s.bucketName + "/" + objectKey(s.prefix, s.runID, name)
}

// WriteUnit uploads name.swift.
func (s *S3Sink) WriteUnit(ctx context.Context, name, text string) error {
	if err := s.ensureBucket(ctx); err != nil {
		return fmt.Errorf("ensure bucket: %w", err)
	}
	data := []byte(text)
	_, err := s.client.PutObject(ctx, s.bucketName, objectKey(s.prefix, s.runID, name),
		bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
			ContentType: "text/x-swift; charset=utf-8",
		})
	return err
}

// Close is a no-op; the client holds no connections between requests.
func (s *S3Sink) Close() error { return nil }

func objectKey(prefix, runID, name string) string {
	return path.Join(prefix, strings.TrimSpace(runID), name+".swift")
}

// Package minio fetches object payloads from S3-compatible storage.
package minio

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/unkn0wn-root/doccache/source"
)

var ErrNilClient = errors.New("minio source: nil client")

type Store struct {
	cl *minio.Client
}

var _ source.ObjectStore = (*Store)(nil)

type Config struct {
	// Client takes precedence over the connection fields below.
	Client *minio.Client

	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	UseSSL    bool
}

func New(cfg Config) (*Store, error) {
	if cfg.Client != nil {
		return &Store{cl: cfg.Client}, nil
	}
	if cfg.Endpoint == "" {
		return nil, ErrNilClient
	}
	cl, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}
	return &Store{cl: cl}, nil
}

// GetObject reads the whole object. Missing buckets and keys are misses.
func (s *Store) GetObject(ctx context.Context, bucket, key string) ([]byte, bool, error) {
	obj, err := s.cl.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		if isNotFound(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("minio get %s/%s: %w", bucket, key, err)
	}
	defer obj.Close()

	// GetObject is lazy; errors such as NoSuchKey surface on first read.
	b, err := io.ReadAll(obj)
	if err != nil {
		if isNotFound(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("minio read %s/%s: %w", bucket, key, err)
	}
	return b, true, nil
}

func isNotFound(err error) bool {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NoSuchBucket":
		return true
	}
	return false
}

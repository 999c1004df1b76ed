package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/yanqian/weatherstyle/internal/domain/styling"
	"github.com/yanqian/weatherstyle/internal/infra/breaker"
)

// Options configures the S3-compatible storage adapter.
type Options struct {
	Endpoint      string
	AccessKey     string
	SecretKey     string
	Bucket        string
	Region        string
	PublicBaseURL string
	URLExpiry     time.Duration
	Timeout       time.Duration
}

// R2Storage stores objects in an S3-compatible bucket (Cloudflare R2, MinIO,
// Supabase storage) through minio-go.
type R2Storage struct {
	client        *minio.Client
	bucket        string
	publicBaseURL string
	urlExpiry     time.Duration
	timeout       time.Duration
	logger        *slog.Logger
}

// NewR2Storage constructs the storage adapter.
func NewR2Storage(opts Options, logger *slog.Logger) (*R2Storage, error) {
	if logger == nil {
		logger = slog.Default()
	}
	cleanEndpoint := sanitizeEndpoint(opts.Endpoint)
	useSSL := strings.HasPrefix(strings.ToLower(opts.Endpoint), "https")
	client, err := minio.New(cleanEndpoint, &minio.Options{
		Creds:        credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure:       useSSL,
		Region:       opts.Region,
		BucketLookup: minio.BucketLookupPath,
	})
	if err != nil {
		return nil, fmt.Errorf("init r2 client: %w", err)
	}
	expiry := opts.URLExpiry
	if expiry <= 0 {
		expiry = time.Hour
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &R2Storage{
		client:        client,
		bucket:        opts.Bucket,
		publicBaseURL: strings.TrimRight(strings.TrimSpace(opts.PublicBaseURL), "/"),
		urlExpiry:     expiry,
		timeout:       timeout,
		logger:        logger.With("component", "storage.r2"),
	}, nil
}

func (s *R2Storage) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err == nil && exists {
		return nil
	}
	err = s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{})
	if err != nil && minio.ToErrorResponse(err).Code != "BucketAlreadyOwnedByYou" {
		return err
	}
	return nil
}

// Put uploads data, overwriting any object under the same key.
func (s *R2Storage) Put(ctx context.Context, key string, data []byte, mimeType string) (styling.StoredObject, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	obj, err := s.put(ctx, key, data, mimeType)
	breaker.RecordCall("storage", "put", err)
	return obj, err
}

func (s *R2Storage) put(ctx context.Context, key string, data []byte, mimeType string) (styling.StoredObject, error) {
	if err := s.ensureBucket(ctx); err != nil {
		return styling.StoredObject{}, fmt.Errorf("ensure bucket %s: %w", s.bucket, err)
	}
	info, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType:      mimeType,
		DisableMultipart: len(data) < 5*1024*1024,
	})
	if err != nil {
		return styling.StoredObject{}, fmt.Errorf("put object %s: %w", key, err)
	}
	s.logger.Info("object stored", "key", key, "size", info.Size)
	return styling.StoredObject{
		Key:      key,
		Size:     info.Size,
		MimeType: mimeType,
		ETag:     info.ETag,
	}, nil
}

// Get fetches an object for reading.
func (s *R2Storage) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		breaker.RecordCall("storage", "get", err)
		return nil, err
	}
	if _, statErr := obj.Stat(); statErr != nil {
		_ = obj.Close()
		breaker.RecordCall("storage", "get", statErr)
		return nil, statErr
	}
	breaker.RecordCall("storage", "get", nil)
	return obj, nil
}

// URL returns the public URL when a public base is configured and a presigned
// GET URL otherwise.
func (s *R2Storage) URL(ctx context.Context, key string) (string, error) {
	if s.publicBaseURL != "" {
		return publicURL(s.publicBaseURL, key), nil
	}
	signed, err := s.client.PresignedGetObject(ctx, s.bucket, key, s.urlExpiry, url.Values{})
	if err != nil {
		return "", fmt.Errorf("presign %s: %w", key, err)
	}
	return signed.String(), nil
}

var _ styling.ObjectStorage = (*R2Storage)(nil)

func publicURL(base, key string) string {
	return base + "/" + strings.TrimLeft(key, "/")
}

// sanitizeEndpoint removes schemes and paths to satisfy minio.New expectations.
func sanitizeEndpoint(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return raw
	}
	raw = strings.TrimPrefix(strings.TrimPrefix(raw, "https://"), "http://")
	if strings.Contains(raw, "/") {
		parts := strings.Split(raw, "/")
		raw = parts[0]
	}
	return raw
}

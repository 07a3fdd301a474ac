package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	cos "github.com/tencentyun/cos-go-sdk-v5"
	"go.uber.org/zap"
)

// COSStore is a Store backed by a private COS-compatible bucket.
type COSStore struct {
	cos    client
	logger *zap.Logger
}

// NewCOSStore creates a store for the bucket at bucketURL, for example
// https://bucket-1234567890.cos.ap-guangzhou.myqcloud.com.
//
// The bucket URL comes from configuration and credentials from options or the environment;
// neither is ever compiled in.
func NewCOSStore(bucketURL string, opts ...Option) (*COSStore, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	var c *cos.Client
	if o.client != nil {
		c = o.client
	} else {
		if strings.TrimSpace(bucketURL) == "" {
			return nil, errors.New("storage bucket URL is required")
		}
		u, err := url.Parse(bucketURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return nil, fmt.Errorf("invalid storage bucket URL %q", bucketURL)
		}
		if o.secretID == "" || o.secretKey == "" {
			return nil, fmt.Errorf("storage credentials missing: set %s and %s", EnvSecretID, EnvSecretKey)
		}

		httpClient := o.httpClient
		if httpClient == nil {
			httpClient = &http.Client{
				Timeout: o.timeout,
				Transport: &cos.AuthorizationTransport{
					SecretID:  o.secretID,
					SecretKey: o.secretKey,
				},
			}
		}
		c = cos.NewClient(&cos.BaseURL{BucketURL: u}, httpClient)
	}

	return &COSStore{
		cos:    newCosClient(c, o.secretID, o.secretKey),
		logger: o.logger,
	}, nil
}

// Put uploads data with a private ACL under a fresh resumes/ key.
func (s *COSStore) Put(ctx context.Context, data []byte, logicalName, contentType string) (Reference, error) {
	if len(data) == 0 {
		return "", errors.New("refusing to store empty object")
	}
	key := ObjectKey(logicalName)
	if err := s.cos.PutObject(ctx, key, bytes.NewReader(data), contentType); err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}
	ref := ReferenceFor(s.cos.Bucket(), key)
	s.logger.Info("stored object", zap.String("key", key), zap.Int("bytes", len(data)))
	return ref, nil
}

// Delete removes the referenced object.
func (s *COSStore) Delete(ctx context.Context, ref Reference) error {
	key := KeyFromReference(s.cos.Bucket(), ref)
	if key == "" {
		return fmt.Errorf("invalid reference %q", ref)
	}
	if err := s.cos.DeleteObject(ctx, key); err != nil {
		if cos.IsNotFoundError(err) {
			s.logger.Warn("object to delete not found", zap.String("key", key))
			return ErrNotFound
		}
		s.logger.Warn("failed to delete object", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	s.logger.Info("deleted object", zap.String("key", key))
	return nil
}

// Presign returns a signed GET URL for the object valid for ttl.
func (s *COSStore) Presign(ctx context.Context, ref Reference, ttl time.Duration) (string, error) {
	key := KeyFromReference(s.cos.Bucket(), ref)
	if key == "" {
		return "", fmt.Errorf("invalid reference %q", ref)
	}
	u, err := s.cos.PresignGetURL(ctx, key, normalizeTTL(ttl))
	if err != nil {
		s.logger.Warn("failed to presign object", zap.String("key", key), zap.Error(err))
		return "", fmt.Errorf("failed to presign %s: %w", key, err)
	}
	return u.String(), nil
}

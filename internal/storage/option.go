package storage

import (
	"net/http"
	"os"
	"time"

	cos "github.com/tencentyun/cos-go-sdk-v5"
	"go.uber.org/zap"
)

// Environment variables holding object storage credentials.
const (
	EnvSecretID  = "COS_SECRETID"
	EnvSecretKey = "COS_SECRETKEY"
)

const defaultTimeout = 60 * time.Second

// Option configures a COSStore.
type Option func(*options)

type options struct {
	client     *cos.Client
	httpClient *http.Client
	logger     *zap.Logger

	timeout   time.Duration
	secretID  string
	secretKey string
}

// WithClient sets the COS client directly.
// Credentials are still needed for presigning; pass them with WithSecretID and WithSecretKey
// or through the environment.
func WithClient(client *cos.Client) Option {
	return func(o *options) {
		o.client = client
	}
}

// WithHTTPClient sets the HTTP client to use for COS requests.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

// WithTimeout sets the timeout duration for HTTP requests.
func WithTimeout(timeout time.Duration) Option {
	return func(o *options) {
		o.timeout = timeout
	}
}

// WithSecretID sets the secret ID. Defaults to the COS_SECRETID environment variable.
func WithSecretID(secretID string) Option {
	return func(o *options) {
		o.secretID = secretID
	}
}

// WithSecretKey sets the secret key. Defaults to the COS_SECRETKEY environment variable.
func WithSecretKey(secretKey string) Option {
	return func(o *options) {
		o.secretKey = secretKey
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func defaultOptions() *options {
	return &options{
		timeout:   defaultTimeout,
		secretID:  os.Getenv(EnvSecretID),
		secretKey: os.Getenv(EnvSecretKey),
		logger:    zap.NewNop(),
	}
}

package storage

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	cos "github.com/tencentyun/cos-go-sdk-v5"
)

// client interface is unstable and may change in the future.
type client interface {
	PutObject(ctx context.Context, name string, content io.Reader, mimeType string) error
	DeleteObject(ctx context.Context, name string) error
	PresignGetURL(ctx context.Context, name string, ttl time.Duration) (*url.URL, error)
	Bucket() *url.URL
}

type cosClient struct {
	*cos.Client
	secretID  string
	secretKey string
}

func newCosClient(client *cos.Client, secretID, secretKey string) client {
	return &cosClient{Client: client, secretID: secretID, secretKey: secretKey}
}

func (c *cosClient) PutObject(ctx context.Context, name string, content io.Reader, mimeType string) error {
	opt := &cos.ObjectPutOptions{
		ACLHeaderOptions: &cos.ACLHeaderOptions{
			XCosACL: "private",
		},
		ObjectPutHeaderOptions: &cos.ObjectPutHeaderOptions{
			ContentType: mimeType,
		},
	}

	_, err := c.Client.Object.Put(ctx, name, content, opt)
	return err
}

func (c *cosClient) DeleteObject(ctx context.Context, name string) error {
	_, err := c.Client.Object.Delete(ctx, name)
	return err
}

func (c *cosClient) PresignGetURL(ctx context.Context, name string, ttl time.Duration) (*url.URL, error) {
	return c.Client.Object.GetPresignedURL(ctx, http.MethodGet, name, c.secretID, c.secretKey, ttl, nil)
}

func (c *cosClient) Bucket() *url.URL {
	return c.Client.BaseURL.BucketURL
}

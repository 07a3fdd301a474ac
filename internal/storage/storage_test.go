package storage

import (
	"context"
	"errors"
	"hash/crc64"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	cos "github.com/tencentyun/cos-go-sdk-v5"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const mockBucketURL = "https://resumes-1250000000.cos.ap-guangzhou.myqcloud.com"

// mockTransport implements http.RoundTripper to mock COS HTTP requests.
type mockTransport struct {
	mu      sync.Mutex
	objects map[string][]byte
	headers map[string]http.Header

	failDeletes bool
}

func newMockTransport() *mockTransport {
	return &mockTransport{
		objects: make(map[string][]byte),
		headers: make(map[string]http.Header),
	}
}

func (m *mockTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := strings.TrimPrefix(req.URL.Path, "/")
	switch req.Method {
	case http.MethodPut:
		data, err := io.ReadAll(req.Body)
		if err != nil {
			return nil, err
		}
		m.objects[key] = data
		m.headers[key] = req.Header.Clone()

		header := make(http.Header)
		header.Set("x-cos-hash-crc64ecma", strconv.FormatUint(crc64.Checksum(data, crc64.MakeTable(crc64.ECMA)), 10))
		header.Set("ETag", `"mocketagvalue"`)
		return &http.Response{
			StatusCode: http.StatusOK,
			Header:     header,
			Body:       io.NopCloser(strings.NewReader("")),
			Request:    req,
		}, nil
	case http.MethodDelete:
		if m.failDeletes {
			return &http.Response{
				StatusCode: http.StatusInternalServerError,
				Header:     make(http.Header),
				Body:       io.NopCloser(strings.NewReader("<Error><Code>InternalError</Code></Error>")),
				Request:    req,
			}, nil
		}
		if _, ok := m.objects[key]; !ok {
			return &http.Response{
				StatusCode: http.StatusNotFound,
				Header:     make(http.Header),
				Body:       io.NopCloser(strings.NewReader("<Error><Code>NoSuchKey</Code></Error>")),
				Request:    req,
			}, nil
		}
		delete(m.objects, key)
		return &http.Response{
			StatusCode: http.StatusNoContent,
			Header:     make(http.Header),
			Body:       io.NopCloser(strings.NewReader("")),
			Request:    req,
		}, nil
	}
	return &http.Response{
		StatusCode: http.StatusMethodNotAllowed,
		Header:     make(http.Header),
		Body:       io.NopCloser(strings.NewReader("")),
		Request:    req,
	}, nil
}

func newMockStore(t *testing.T, opts ...Option) (*COSStore, *mockTransport) {
	t.Helper()
	transport := newMockTransport()
	u, err := url.Parse(mockBucketURL)
	require.NoError(t, err)
	client := cos.NewClient(&cos.BaseURL{BucketURL: u}, &http.Client{Transport: transport})

	opts = append([]Option{WithClient(client), WithSecretID("test-id"), WithSecretKey("test-key")}, opts...)
	store, err := NewCOSStore("", opts...)
	require.NoError(t, err)
	return store, transport
}

func TestObjectKey(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantExt string
	}{
		{name: "pdf", input: "resume.pdf", wantExt: ".pdf"},
		{name: "uppercase extension", input: "CV.PDF", wantExt: ".pdf"},
		{name: "path prefix", input: "uploads/jane/resume.docx", wantExt: ".docx"},
		{name: "no extension", input: "resume", wantExt: ""},
		{name: "trailing dot", input: "resume.", wantExt: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := ObjectKey(tt.input)
			require.True(t, strings.HasPrefix(key, KeyPrefix))
			rest := strings.TrimPrefix(key, KeyPrefix)
			if tt.wantExt == "" {
				assert.NotContains(t, rest, ".")
				assert.Len(t, rest, 36)
			} else {
				assert.True(t, strings.HasSuffix(rest, tt.wantExt))
				assert.Len(t, rest, 36+len(tt.wantExt))
			}
		})
	}

	assert.NotEqual(t, ObjectKey("a.pdf"), ObjectKey("a.pdf"))
}

func TestKeyFromReference(t *testing.T) {
	base, err := url.Parse(mockBucketURL)
	require.NoError(t, err)

	assert.Equal(t, "resumes/abc.pdf", KeyFromReference(base, Reference(mockBucketURL+"/resumes/abc.pdf")))
	assert.Equal(t, "resumes/abc.pdf", KeyFromReference(base, "resumes/abc.pdf"))
	assert.Equal(t, "resumes/abc.pdf", KeyFromReference(base, "https://other.example.com/resumes/abc.pdf"))
	assert.Equal(t, "resumes/abc.pdf", KeyFromReference(nil, "/resumes/abc.pdf"))
}

func TestNewCOSStore_RequiresConfiguration(t *testing.T) {
	t.Setenv(EnvSecretID, "")
	t.Setenv(EnvSecretKey, "")

	_, err := NewCOSStore("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bucket URL is required")

	_, err = NewCOSStore("not a url")
	require.Error(t, err)

	_, err = NewCOSStore(mockBucketURL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvSecretID)
}

func TestNewCOSStore_CredentialsFromEnv(t *testing.T) {
	t.Setenv(EnvSecretID, "env-id")
	t.Setenv(EnvSecretKey, "env-key")

	store, err := NewCOSStore(mockBucketURL, WithTimeout(5*time.Second))
	require.NoError(t, err)
	assert.Equal(t, mockBucketURL, store.cos.Bucket().String())
}

func TestCOSStore_PutIsPrivate(t *testing.T) {
	store, transport := newMockStore(t)
	ctx := context.Background()

	ref, err := store.Put(ctx, []byte("%PDF-1.4 test"), "resume.pdf", "application/pdf")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ref.String(), mockBucketURL+"/"+KeyPrefix))
	assert.True(t, strings.HasSuffix(ref.String(), ".pdf"))

	key := strings.TrimPrefix(ref.String(), mockBucketURL+"/")
	transport.mu.Lock()
	defer transport.mu.Unlock()
	assert.Equal(t, []byte("%PDF-1.4 test"), transport.objects[key])
	assert.Equal(t, "private", transport.headers[key].Get("x-cos-acl"))
	assert.Equal(t, "application/pdf", transport.headers[key].Get("Content-Type"))
}

func TestCOSStore_PutRejectsEmpty(t *testing.T) {
	store, _ := newMockStore(t)
	_, err := store.Put(context.Background(), nil, "resume.pdf", "application/pdf")
	require.Error(t, err)
}

func TestCOSStore_Delete(t *testing.T) {
	store, transport := newMockStore(t)
	ctx := context.Background()

	ref, err := store.Put(ctx, []byte("data"), "resume.pdf", "application/pdf")
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, ref))
	transport.mu.Lock()
	assert.Empty(t, transport.objects)
	transport.mu.Unlock()

	err = store.Delete(ctx, ref)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCOSStore_DeleteFailuresAreLogged(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	store, transport := newMockStore(t, WithLogger(zap.New(core)))
	ctx := context.Background()

	ref, err := store.Put(ctx, []byte("data"), "resume.pdf", "application/pdf")
	require.NoError(t, err)

	transport.mu.Lock()
	transport.failDeletes = true
	transport.mu.Unlock()

	err = store.Delete(ctx, ref)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	require.Equal(t, 1, logs.FilterMessage("failed to delete object").Len())

	transport.mu.Lock()
	transport.failDeletes = false
	delete(transport.objects, strings.TrimPrefix(ref.String(), mockBucketURL+"/"))
	transport.mu.Unlock()

	assert.ErrorIs(t, store.Delete(ctx, ref), ErrNotFound)
	assert.Equal(t, 1, logs.FilterMessage("object to delete not found").Len())
}

// presignFailingClient wraps a working client but cannot sign URLs.
type presignFailingClient struct {
	client
}

func (presignFailingClient) PresignGetURL(context.Context, string, time.Duration) (*url.URL, error) {
	return nil, errors.New("signing key unavailable")
}

func TestCOSStore_PresignFailureIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	store, _ := newMockStore(t, WithLogger(zap.New(core)))
	store.cos = presignFailingClient{client: store.cos}
	ctx := context.Background()

	ref, err := store.Put(ctx, []byte("data"), "resume.pdf", "application/pdf")
	require.NoError(t, err)

	_, err = store.Presign(ctx, ref, time.Minute)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "signing key unavailable")
	assert.Equal(t, 1, logs.FilterMessage("failed to presign object").Len())
}

func TestCOSStore_Presign(t *testing.T) {
	store, _ := newMockStore(t)
	ctx := context.Background()

	ref, err := store.Put(ctx, []byte("data"), "resume.pdf", "application/pdf")
	require.NoError(t, err)

	signed, err := store.Presign(ctx, ref, 10*time.Minute)
	require.NoError(t, err)
	key := strings.TrimPrefix(ref.String(), mockBucketURL+"/")
	assert.True(t, strings.HasPrefix(signed, mockBucketURL+"/"+key))
	assert.Contains(t, signed, "q-sign-algorithm")
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	ref, err := store.Put(ctx, []byte("pdf bytes"), "resume.pdf", "application/pdf")
	require.NoError(t, err)
	assert.Equal(t, 1, store.Len())

	data, contentType, ok := store.Get(ref)
	require.True(t, ok)
	assert.Equal(t, []byte("pdf bytes"), data)
	assert.Equal(t, "application/pdf", contentType)

	signed, err := store.Presign(ctx, ref, 0)
	require.NoError(t, err)
	assert.Contains(t, signed, "expires=")

	require.NoError(t, store.Delete(ctx, ref))
	assert.Equal(t, 0, store.Len())
	assert.ErrorIs(t, store.Delete(ctx, ref), ErrNotFound)

	_, err = store.Presign(ctx, ref, time.Minute)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_CanceledContext(t *testing.T) {
	store := NewMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Put(ctx, []byte("x"), "a.pdf", "application/pdf")
	assert.ErrorIs(t, err, context.Canceled)
}

var (
	_ Store = (*COSStore)(nil)
	_ Store = (*MemoryStore)(nil)
)

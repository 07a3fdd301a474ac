// Package storage persists normalized resumes in private object storage and issues
// time-limited access URLs.
//
// A Reference is the full object URL, <bucket URL>/<key>. Objects are never public; reading
// one requires a presigned URL.
package storage

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// KeyPrefix is the folder every resume object is stored under.
const KeyPrefix = "resumes/"

// DefaultPresignTTL is used when a non-positive TTL is requested.
const DefaultPresignTTL = time.Hour

// ErrNotFound is returned when a reference does not point at a stored object.
var ErrNotFound = errors.New("object not found")

// Reference identifies a stored object.
type Reference string

// String implements fmt.Stringer.
func (r Reference) String() string {
	return string(r)
}

// Store is the object store contract used by the intake pipeline.
type Store interface {
	// Put stores data under a fresh key derived from logicalName and returns its reference.
	Put(ctx context.Context, data []byte, logicalName, contentType string) (Reference, error)
	// Delete removes the referenced object.
	Delete(ctx context.Context, ref Reference) error
	// Presign returns a URL granting read access to the object for ttl.
	Presign(ctx context.Context, ref Reference, ttl time.Duration) (string, error)
}

// ObjectKey returns a new unique key for logicalName: resumes/<uuid>.<ext>, or
// resumes/<uuid> when the name has no extension.
func ObjectKey(logicalName string) string {
	id := uuid.NewString()
	base := logicalName
	if idx := strings.LastIndex(base, "/"); idx >= 0 {
		base = base[idx+1:]
	}
	if idx := strings.LastIndex(base, "."); idx >= 0 && idx < len(base)-1 {
		return KeyPrefix + id + "." + strings.ToLower(base[idx+1:])
	}
	return KeyPrefix + id
}

// ReferenceFor joins a bucket URL and an object key.
func ReferenceFor(bucketURL *url.URL, key string) Reference {
	return Reference(strings.TrimSuffix(bucketURL.String(), "/") + "/" + key)
}

// KeyFromReference extracts the object key from a reference. A reference that is not a URL
// under bucketURL is treated as a bare key.
func KeyFromReference(bucketURL *url.URL, ref Reference) string {
	raw := strings.TrimSpace(string(ref))
	if bucketURL != nil {
		base := strings.TrimSuffix(bucketURL.String(), "/") + "/"
		if strings.HasPrefix(raw, base) {
			return strings.TrimPrefix(raw, base)
		}
	}
	if u, err := url.Parse(raw); err == nil && u.Scheme != "" && u.Host != "" {
		return strings.TrimPrefix(u.Path, "/")
	}
	return strings.TrimPrefix(raw, "/")
}

func normalizeTTL(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return DefaultPresignTTL
	}
	return ttl
}

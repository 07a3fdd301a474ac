package storage

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"
)

// MemoryStore is an in-process Store used by tests and dry runs.
type MemoryStore struct {
	mu      sync.RWMutex
	base    *url.URL
	objects map[string]memoryObject
}

type memoryObject struct {
	data        []byte
	contentType string
}

// NewMemoryStore creates an empty store rooted at memory://resumes-bucket.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		base:    &url.URL{Scheme: "memory", Host: "resumes-bucket"},
		objects: make(map[string]memoryObject),
	}
}

// Put implements Store.
func (m *MemoryStore) Put(ctx context.Context, data []byte, logicalName, contentType string) (Reference, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", errors.New("refusing to store empty object")
	}
	key := ObjectKey(logicalName)
	buf := make([]byte, len(data))
	copy(buf, data)

	m.mu.Lock()
	m.objects[key] = memoryObject{data: buf, contentType: contentType}
	m.mu.Unlock()
	return ReferenceFor(m.base, key), nil
}

// Delete implements Store.
func (m *MemoryStore) Delete(ctx context.Context, ref Reference) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	key := KeyFromReference(m.base, ref)
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.objects[key]; !ok {
		return ErrNotFound
	}
	delete(m.objects, key)
	return nil
}

// Presign implements Store. The returned URL carries the expiry as a query parameter.
func (m *MemoryStore) Presign(ctx context.Context, ref Reference, ttl time.Duration) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	key := KeyFromReference(m.base, ref)
	m.mu.RLock()
	_, ok := m.objects[key]
	m.mu.RUnlock()
	if !ok {
		return "", ErrNotFound
	}
	expires := time.Now().Add(normalizeTTL(ttl)).Unix()
	return fmt.Sprintf("%s?expires=%d", ReferenceFor(m.base, key), expires), nil
}

// Get returns a stored object's bytes and content type.
func (m *MemoryStore) Get(ref Reference) ([]byte, string, bool) {
	key := KeyFromReference(m.base, ref)
	m.mu.RLock()
	defer m.mu.RUnlock()
	obj, ok := m.objects[key]
	if !ok {
		return nil, "", false
	}
	return obj.data, obj.contentType, true
}

// Len returns the number of stored objects.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}

package mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"sync"
)

// MockResourceStore is an in-memory implementation of store.ResourceStore
// for testing.
type MockResourceStore struct {
	mu          sync.RWMutex
	collections map[string][]map[string]any
	nextID      int

	// For tracking calls and injecting failures in tests
	ListCalls   []string
	CreateCalls []CreateCall
	PatchCalls  []PatchCall
	DeleteCalls []DeleteCall

	ListErr   error
	CreateErr error
	PatchErr  error
	DeleteErr error
}

// CreateCall records parameters passed to Create
type CreateCall struct {
	Collection string
	Body       map[string]any
}

// PatchCall records parameters passed to Patch
type PatchCall struct {
	Collection string
	ID         string
	Fields     map[string]any
}

// DeleteCall records parameters passed to Delete
type DeleteCall struct {
	Collection string
	ID         string
}

// NewMockResourceStore creates an empty MockResourceStore
func NewMockResourceStore() *MockResourceStore {
	return &MockResourceStore{
		collections: make(map[string][]map[string]any),
	}
}

// Seed inserts records directly, bypassing call tracking. Records without
// an "id" field get one assigned.
func (m *MockResourceStore) Seed(collection string, records ...map[string]any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range records {
		if _, ok := r["id"]; !ok {
			r["id"] = m.newID()
		}
		m.collections[collection] = append(m.collections[collection], r)
	}
}

// Records returns a copy of a collection's raw records for assertions.
func (m *MockResourceStore) Records(collection string) []map[string]any {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]map[string]any, len(m.collections[collection]))
	copy(out, m.collections[collection])
	return out
}

func (m *MockResourceStore) List(ctx context.Context, collection string, out any) error {
	m.mu.Lock()
	m.ListCalls = append(m.ListCalls, collection)
	m.mu.Unlock()

	if m.ListErr != nil {
		return m.ListErr
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	return remarshal(m.collections[collection], out)
}

func (m *MockResourceStore) ListWhere(ctx context.Context, collection string, filter url.Values, out any) error {
	m.mu.Lock()
	m.ListCalls = append(m.ListCalls, collection)
	m.mu.Unlock()

	if m.ListErr != nil {
		return m.ListErr
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	matched := make([]map[string]any, 0)
	for _, r := range m.collections[collection] {
		if matchesFilter(r, filter) {
			matched = append(matched, r)
		}
	}
	return remarshal(matched, out)
}

func (m *MockResourceStore) Create(ctx context.Context, collection string, body any, out any) error {
	record := make(map[string]any)
	if err := remarshal(body, &record); err != nil {
		return err
	}

	m.mu.Lock()
	m.CreateCalls = append(m.CreateCalls, CreateCall{Collection: collection, Body: record})

	if m.CreateErr != nil {
		m.mu.Unlock()
		return m.CreateErr
	}

	if id, ok := record["id"].(string); !ok || id == "" {
		record["id"] = m.newID()
	}
	m.collections[collection] = append(m.collections[collection], record)
	m.mu.Unlock()

	if out != nil {
		return remarshal(record, out)
	}
	return nil
}

func (m *MockResourceStore) Patch(ctx context.Context, collection, id string, fields any) error {
	patch := make(map[string]any)
	if err := remarshal(fields, &patch); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.PatchCalls = append(m.PatchCalls, PatchCall{Collection: collection, ID: id, Fields: patch})

	if m.PatchErr != nil {
		return m.PatchErr
	}

	for _, r := range m.collections[collection] {
		if fmt.Sprint(r["id"]) == id {
			for k, v := range patch {
				r[k] = v
			}
			return nil
		}
	}
	return fmt.Errorf("record %s/%s not found", collection, id)
}

func (m *MockResourceStore) Delete(ctx context.Context, collection, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteCalls = append(m.DeleteCalls, DeleteCall{Collection: collection, ID: id})

	if m.DeleteErr != nil {
		return m.DeleteErr
	}

	records := m.collections[collection]
	for i, r := range records {
		if fmt.Sprint(r["id"]) == id {
			m.collections[collection] = append(records[:i:i], records[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("record %s/%s not found", collection, id)
}

func (m *MockResourceStore) newID() string {
	m.nextID++
	return strconv.Itoa(m.nextID)
}

func matchesFilter(record map[string]any, filter url.Values) bool {
	for key, want := range filter {
		if len(want) == 0 {
			continue
		}
		if fmt.Sprint(record[key]) != want[0] {
			return false
		}
	}
	return true
}

// remarshal copies src into dst through JSON, mimicking a wire round-trip.
func remarshal(src, dst any) error {
	data, err := json.Marshal(src)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dst)
}

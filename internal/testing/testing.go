// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"sync"
	"testing"

	"github.com/desertthunder/moodx/internal/models"
)

// MockCatalogProvider is a test double for [services.CatalogProvider]
type MockCatalogProvider struct {
	Items []models.ContentItem
	Err   error
	Calls int
	Label string
}

func (m *MockCatalogProvider) Catalog(ctx context.Context) ([]models.ContentItem, error) {
	m.Calls++
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Items, nil
}

func (m *MockCatalogProvider) Name() string {
	if m.Label == "" {
		return "mock"
	}
	return m.Label
}

// MockCatalogCacher records cached items in memory, keyed by source and item ID.
//
// FailIDs lists item IDs that fail to cache.
type MockCatalogCacher struct {
	mu      sync.Mutex
	Cached  map[string]models.ContentItem
	Order   []string
	FailIDs map[string]bool
}

func NewMockCatalogCacher() *MockCatalogCacher {
	return &MockCatalogCacher{Cached: make(map[string]models.ContentItem), FailIDs: make(map[string]bool)}
}

func (m *MockCatalogCacher) CacheItem(source string, item models.ContentItem) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailIDs[item.ID] {
		return false, errors.New("cache failed")
	}

	key := source + "/" + item.ID
	_, exists := m.Cached[key]
	m.Cached[key] = item
	if !exists {
		m.Order = append(m.Order, key)
	}
	return !exists, nil
}

// MockHistorySource returns canned viewing history per user.
type MockHistorySource struct {
	ByUser map[string][]models.ContentItem
	Err    error
}

func (m *MockHistorySource) Items(userID string) ([]models.ContentItem, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.ByUser[userID], nil
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

// Item builds a content item for classification tests.
func Item(id, title, description string, genres ...string) models.ContentItem {
	return models.ContentItem{ID: id, Kind: models.KindMovie, Title: title, Description: description, Genres: genres}
}

package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/desertthunder/moodx/internal/shared"
	tu "github.com/desertthunder/moodx/internal/testing"
)

// catalogServer serves n records in pages and optionally requires a bearer token.
func catalogServer(t *testing.T, n int, token string) (*httptest.Server, *int32) {
	t.Helper()
	return cappedCatalogServer(t, n, token, 0)
}

// cappedCatalogServer serves n items, returning at most maxLimit per page when maxLimit is positive.
func cappedCatalogServer(t *testing.T, n int, token string, maxLimit int) (*httptest.Server, *int32) {
	t.Helper()
	var requests int32

	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("failed to parse token form: %v", err)
		}
		if r.Form.Get("grant_type") != "client_credentials" {
			t.Errorf("expected client_credentials grant, got %q", r.Form.Get("grant_type"))
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"access_token":%q,"token_type":"bearer","expires_in":3600}`, token)
	})
	mux.HandleFunc("/items", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		if token != "" && r.Header.Get("Authorization") != "Bearer "+token {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
		if maxLimit > 0 && limit > maxLimit {
			limit = maxLimit
		}

		page := remotePage{Items: []catalogRecord{}, Total: n, Limit: limit, Offset: offset}
		for i := offset; i < n && i < offset+limit; i++ {
			page.Items = append(page.Items, catalogRecord{
				ID:     fmt.Sprintf("item-%d", i),
				Title:  fmt.Sprintf("Item %d", i),
				Genres: []string{"drama"},
			})
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(page)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, &requests
}

func TestRemoteCatalog(t *testing.T) {
	t.Run("New", func(t *testing.T) {
		t.Run("Requires BaseURL", func(t *testing.T) {
			_, err := NewRemoteCatalog(shared.RemoteConfig{})
			if !errors.Is(err, shared.ErrMissingConfig) {
				t.Errorf("expected ErrMissingConfig, got %v", err)
			}
		})

		t.Run("Requires Both Credentials", func(t *testing.T) {
			_, err := NewRemoteCatalog(shared.RemoteConfig{BaseURL: "http://example.com", ClientID: "id"})
			if !errors.Is(err, shared.ErrMissingCredentials) {
				t.Errorf("expected ErrMissingCredentials, got %v", err)
			}
		})

		t.Run("Defaults", func(t *testing.T) {
			rc, err := NewRemoteCatalog(shared.RemoteConfig{BaseURL: "http://example.com/", PageSize: 9999})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if rc.baseURL != "http://example.com" {
				t.Errorf("expected trailing slash trimmed, got %s", rc.baseURL)
			}
			if rc.pageSize != maxPageSize {
				t.Errorf("expected page size capped at %d, got %d", maxPageSize, rc.pageSize)
			}
			if rc.creds != nil {
				t.Error("expected anonymous client without credentials")
			}
			if rc.Name() != "remote" {
				t.Errorf("expected name 'remote', got %s", rc.Name())
			}
		})
	})

	t.Run("Pages In Order", func(t *testing.T) {
		server, requests := catalogServer(t, 7, "")
		rc, err := NewRemoteCatalog(shared.RemoteConfig{BaseURL: server.URL, PageSize: 3, RequestsPerSecond: 1000})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		items, err := rc.Catalog(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(items) != 7 {
			t.Fatalf("expected 7 items, got %d", len(items))
		}
		for i, item := range items {
			if item.ID != fmt.Sprintf("item-%d", i) {
				t.Errorf("item %d out of order: %s", i, item.ID)
			}
		}
		if got := atomic.LoadInt32(requests); got != 3 {
			t.Errorf("expected 3 page requests, got %d", got)
		}
	})

	t.Run("Exact Page Boundary Stops On Total", func(t *testing.T) {
		server, requests := catalogServer(t, 6, "")
		rc, _ := NewRemoteCatalog(shared.RemoteConfig{BaseURL: server.URL, PageSize: 3, RequestsPerSecond: 1000})

		items, err := rc.Catalog(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(items) != 6 {
			t.Errorf("expected 6 items, got %d", len(items))
		}
		if got := atomic.LoadInt32(requests); got != 2 {
			t.Errorf("expected 2 page requests, got %d", got)
		}
	})

	t.Run("Server Capped Limit Pages To Total", func(t *testing.T) {
		server, requests := cappedCatalogServer(t, 120, "", 50)
		rc, _ := NewRemoteCatalog(shared.RemoteConfig{BaseURL: server.URL, PageSize: 100, RequestsPerSecond: 1000})

		items, err := rc.Catalog(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(items) != 120 {
			t.Fatalf("expected 120 items, got %d", len(items))
		}
		if items[119].ID != "item-119" {
			t.Errorf("expected last item item-119, got %s", items[119].ID)
		}
		if got := atomic.LoadInt32(requests); got != 3 {
			t.Errorf("expected 3 page requests, got %d", got)
		}
	})

	t.Run("Short Page Without Total Stops", func(t *testing.T) {
		var requests int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&requests, 1)
			w.Write([]byte(`{"items":[{"id":"a"},{"id":"b"}]}`))
		}))
		defer server.Close()

		rc, _ := NewRemoteCatalog(shared.RemoteConfig{BaseURL: server.URL, PageSize: 3, RequestsPerSecond: 1000})
		items, err := rc.Catalog(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(items) != 2 || atomic.LoadInt32(&requests) != 1 {
			t.Errorf("expected 2 items from 1 request, got %d items from %d", len(items), atomic.LoadInt32(&requests))
		}
	})

	t.Run("Empty Page Before Total Stops", func(t *testing.T) {
		var requests int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if atomic.AddInt32(&requests, 1) == 1 {
				w.Write([]byte(`{"items":[{"id":"a"}],"total":5}`))
				return
			}
			w.Write([]byte(`{"items":[],"total":5}`))
		}))
		defer server.Close()

		rc, _ := NewRemoteCatalog(shared.RemoteConfig{BaseURL: server.URL, PageSize: 3, RequestsPerSecond: 1000})
		items, err := rc.Catalog(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(items) != 1 || atomic.LoadInt32(&requests) != 2 {
			t.Errorf("expected 1 item from 2 requests, got %d items from %d", len(items), atomic.LoadInt32(&requests))
		}
	})

	t.Run("Client Credentials", func(t *testing.T) {
		server, _ := catalogServer(t, 2, "secret-token")
		rc, err := NewRemoteCatalog(shared.RemoteConfig{
			BaseURL:           server.URL,
			ClientID:          "moodx",
			ClientSecret:      "shh",
			Scopes:            []string{"catalog.read"},
			RequestsPerSecond: 1000,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		items, err := rc.Catalog(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(items) != 2 {
			t.Errorf("expected 2 items, got %d", len(items))
		}
	})

	t.Run("Errors", func(t *testing.T) {
		tests := []struct {
			name    string
			handler http.HandlerFunc
			want    error
		}{
			{
				name:    "Server Error",
				handler: func(w http.ResponseWriter, r *http.Request) { http.Error(w, "boom", http.StatusInternalServerError) },
				want:    shared.ErrAPIRequest,
			},
			{
				name:    "Unavailable",
				handler: func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusServiceUnavailable) },
				want:    shared.ErrServiceUnavailable,
			},
			{
				name:    "Malformed Body",
				handler: func(w http.ResponseWriter, r *http.Request) { w.Write([]byte("not json")) },
				want:    shared.ErrInvalidCatalog,
			},
			{
				name: "Invalid Record",
				handler: func(w http.ResponseWriter, r *http.Request) {
					w.Write([]byte(`{"items":[{"title":"missing id"}],"total":1}`))
				},
				want: shared.ErrInvalidCatalog,
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				server := httptest.NewServer(tt.handler)
				defer server.Close()

				rc, _ := NewRemoteCatalog(shared.RemoteConfig{BaseURL: server.URL, RequestsPerSecond: 1000})
				_, err := rc.Catalog(context.Background())
				if !errors.Is(err, tt.want) {
					t.Errorf("expected %v, got %v", tt.want, err)
				}
			})
		}
	})

	t.Run("Transport Failures", func(t *testing.T) {
		t.Run("Request Error", func(t *testing.T) {
			client := &http.Client{Transport: tu.NewMockRoundTripper(nil, errors.New("connection refused"))}
			rc, _ := NewRemoteCatalog(shared.RemoteConfig{BaseURL: "http://catalog.invalid"}, WithHTTPClient(client))

			if _, err := rc.Catalog(context.Background()); !errors.Is(err, shared.ErrAPIRequest) {
				t.Errorf("expected ErrAPIRequest, got %v", err)
			}
		})

		t.Run("Body Read Error", func(t *testing.T) {
			resp := &http.Response{StatusCode: http.StatusOK, Body: &tu.FCloser{}, Header: http.Header{}}
			client := &http.Client{Transport: tu.NewMockRoundTripper(resp, nil)}
			rc, _ := NewRemoteCatalog(shared.RemoteConfig{BaseURL: "http://catalog.invalid"}, WithHTTPClient(client))

			if _, err := rc.Catalog(context.Background()); !errors.Is(err, shared.ErrInvalidCatalog) {
				t.Errorf("expected ErrInvalidCatalog, got %v", err)
			}
		})
	})

	t.Run("Cancelled Context", func(t *testing.T) {
		server, _ := catalogServer(t, 1, "")
		rc, _ := NewRemoteCatalog(shared.RemoteConfig{BaseURL: server.URL})

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if _, err := rc.Catalog(ctx); err == nil {
			t.Error("expected error for cancelled context")
		}
	})
}

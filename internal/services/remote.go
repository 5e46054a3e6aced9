package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/desertthunder/moodx/internal/models"
	"github.com/desertthunder/moodx/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/time/rate"
)

const (
	defaultPageSize = 100
	maxPageSize     = 500
	defaultRate     = 5.0
	maxPages        = 10000
)

// remotePage is one page of GET /items.
type remotePage struct {
	Items  []catalogRecord `json:"items"`
	Total  int             `json:"total"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
}

// RemoteCatalog implements [CatalogProvider] for a paginated catalog API.
//
// When client credentials are configured, requests carry an OAuth2 token obtained with the
// client credentials grant and refreshed automatically. Without them requests are anonymous.
type RemoteCatalog struct {
	baseURL    string
	pageSize   int
	limiter    *rate.Limiter
	httpClient *http.Client
	creds      *clientcredentials.Config
}

// RemoteOption configures a [RemoteCatalog].
type RemoteOption func(*RemoteCatalog)

// WithHTTPClient sets the transport client. With credentials configured it is also used for token requests.
func WithHTTPClient(client *http.Client) RemoteOption {
	return func(r *RemoteCatalog) {
		if client != nil {
			r.httpClient = client
		}
	}
}

// NewRemoteCatalog creates a remote provider from configuration.
func NewRemoteCatalog(cfg shared.RemoteConfig, opts ...RemoteOption) (*RemoteCatalog, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("%w: remote catalog base_url is required", shared.ErrMissingConfig)
	}
	if (cfg.ClientID == "") != (cfg.ClientSecret == "") {
		return nil, fmt.Errorf("%w: client_id and client_secret must be set together", shared.ErrMissingCredentials)
	}

	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = defaultRate
	}

	r := &RemoteCatalog{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		pageSize:   pageSize,
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}

	if cfg.ClientID != "" {
		tokenURL := cfg.TokenURL
		if tokenURL == "" {
			tokenURL = r.baseURL + "/oauth/token"
		}
		r.creds = &clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     tokenURL,
			Scopes:       cfg.Scopes,
		}
	}

	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

func (r *RemoteCatalog) Name() string {
	return "remote"
}

// Catalog fetches every page in server order.
func (r *RemoteCatalog) Catalog(ctx context.Context) ([]models.ContentItem, error) {
	client := r.client(ctx)
	rv := newRecordValidator()

	var items []models.ContentItem
	offset := 0
	for range maxPages {
		page, err := r.fetchPage(ctx, client, offset)
		if err != nil {
			return nil, err
		}

		converted, err := rv.convert(page.Items, models.KindMovie, offset)
		if err != nil {
			return nil, err
		}
		items = append(items, converted...)
		offset += len(page.Items)

		// Servers may cap limit below pageSize, so a reported total wins over short pages.
		if len(page.Items) == 0 {
			return items, nil
		}
		if page.Total > 0 {
			if offset >= page.Total {
				return items, nil
			}
		} else if len(page.Items) < r.pageSize {
			return items, nil
		}
	}
	return nil, fmt.Errorf("%w: catalog exceeds %d pages", shared.ErrAPIRequest, maxPages)
}

// client returns the HTTP client for ctx, wrapping it in a token source when credentials are set.
func (r *RemoteCatalog) client(ctx context.Context) *http.Client {
	if r.creds == nil {
		return r.httpClient
	}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, r.httpClient)
	return r.creds.Client(ctx)
}

func (r *RemoteCatalog) fetchPage(ctx context.Context, client *http.Client, offset int) (*remotePage, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("limit", strconv.Itoa(r.pageSize))
	query.Set("offset", strconv.Itoa(offset))
	endpoint := r.baseURL + "/items?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusServiceUnavailable:
		return nil, fmt.Errorf("%w: catalog API returned %d", shared.ErrServiceUnavailable, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: status %d: %s", shared.ErrAPIRequest, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var page remotePage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("%w: failed to decode page at offset %d: %v", shared.ErrInvalidCatalog, offset, err)
	}
	return &page, nil
}

// Package investidor10 talks to investidor10.com.br: the authenticated wallet
// API for holdings and the public instrument pages for scraping.
package investidor10

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/wonny/carteira/internal/contracts"
	"github.com/wonny/carteira/pkg/config"
	"github.com/wonny/carteira/pkg/httputil"
	"github.com/wonny/carteira/pkg/logger"
)

// ErrNoCredentials is returned by FetchHoldings when no cookie or wallet ID is
// configured. No request is made in that case.
var ErrNoCredentials = errors.New("investidor10: wallet credentials not configured")

// Client handles communication with investidor10
// ⭐ SSOT: investidor10 calls happen only in this client
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
	cookie     string
	walletID   string
}

// NewClient creates a new investidor10 client
func NewClient(httpClient *httputil.Client, cfg config.Investidor10Config, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		cookie:     cfg.Cookie,
		walletID:   cfg.WalletID,
	}
}

// HasCredentials reports whether wallet requests can be made
func (c *Client) HasCredentials() bool {
	return c.cookie != "" && c.walletID != ""
}

// fetch performs a GET against the site; the cookie is attached only when asked
func (c *Client) fetch(ctx context.Context, path string, withCookie bool) ([]byte, error) {
	fullURL := fmt.Sprintf("%s%s", c.baseURL, path)

	var extra http.Header
	if withCookie {
		extra = http.Header{}
		extra.Set("Cookie", c.cookie)
		extra.Set("Accept", "application/json")
	}

	body, err := c.httpClient.GetBody(ctx, fullURL, extra)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", path, err)
	}
	return body, nil
}

// Compile-time interface checks
var (
	_ contracts.HoldingsSource = (*Client)(nil)
	_ contracts.PageSource     = (*Client)(nil)
)

package investidor10

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/wonny/carteira/internal/contracts"
)

// FetchPage returns the HTML of the public page of an instrument.
// Public pages are requested without the wallet cookie.
func (c *Client) FetchPage(ctx context.Context, kind contracts.Kind, symbol string) (string, error) {
	symbol = strings.ToLower(strings.TrimSpace(symbol))
	if symbol == "" {
		return "", fmt.Errorf("fetch page: empty symbol")
	}

	path := fmt.Sprintf("/%s/%s", kind.PagePath(), url.PathEscape(symbol))

	body, err := c.fetch(ctx, path, false)
	if err != nil {
		return "", fmt.Errorf("fetch page: %w", err)
	}

	c.logger.WithFields(map[string]interface{}{
		"kind":   kind,
		"symbol": symbol,
		"bytes":  len(body),
	}).Debug("Fetched instrument page")

	return string(body), nil
}

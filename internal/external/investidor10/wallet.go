package investidor10

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/wonny/carteira/internal/contracts"
)

// walletResponse is the envelope of the wallet summary endpoint
type walletResponse struct {
	Data []contracts.Holding `json:"data"`
}

// FetchHoldings returns the wallet positions of one instrument kind.
// ⭐ SSOT: the wallet endpoint is called only here
func (c *Client) FetchHoldings(ctx context.Context, kind contracts.Kind) ([]contracts.Holding, error) {
	if !c.HasCredentials() {
		return nil, ErrNoCredentials
	}

	path := fmt.Sprintf("/wallet/api/proxy/wallet-app/summary/actives/%s/%s",
		url.PathEscape(c.walletID), kind.WalletSegment())

	body, err := c.fetch(ctx, path, true)
	if err != nil {
		return nil, fmt.Errorf("fetch wallet: %w", err)
	}

	holdings, err := parseWallet(body)
	if err != nil {
		return nil, fmt.Errorf("parse wallet: %w", err)
	}

	c.logger.WithFields(map[string]interface{}{
		"kind":  kind,
		"count": len(holdings),
	}).Debug("Fetched wallet holdings")

	return holdings, nil
}

// parseWallet decodes the envelope; a missing data key is an empty wallet.
// Entries without a symbol are dropped.
func parseWallet(body []byte) ([]contracts.Holding, error) {
	var resp walletResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, err
	}

	holdings := make([]contracts.Holding, 0, len(resp.Data))
	for _, h := range resp.Data {
		if h.Key() == "" {
			continue
		}
		holdings = append(holdings, h)
	}
	return holdings, nil
}

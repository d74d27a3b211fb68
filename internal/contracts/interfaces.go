package contracts

import "context"

// HoldingsSource lists the wallet positions of one instrument kind
// ⭐ SSOT: wallet access interface
//
// An unavailable wallet (no credentials, non-200, transport error) is reported
// as an error; the report builder turns it into "no holdings".
type HoldingsSource interface {
	FetchHoldings(ctx context.Context, kind Kind) ([]Holding, error)
}

// PageSource fetches the public instrument page body
// ⭐ SSOT: public page access interface
type PageSource interface {
	FetchPage(ctx context.Context, kind Kind, symbol string) (string, error)
}

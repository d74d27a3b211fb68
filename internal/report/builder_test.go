package report

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/carteira/internal/contracts"
	"github.com/wonny/carteira/internal/valuation"
	"github.com/wonny/carteira/pkg/logger"
)

type fakeWallet struct {
	holdings []contracts.Holding
	err      error
}

func (f *fakeWallet) FetchHoldings(_ context.Context, _ contracts.Kind) ([]contracts.Holding, error) {
	return f.holdings, f.err
}

type fakePages struct {
	mu    sync.Mutex
	pages map[string]string
	calls []string
}

func (f *fakePages) FetchPage(_ context.Context, _ contracts.Kind, symbol string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, symbol)

	body, ok := f.pages[symbol]
	if !ok {
		return "", fmt.Errorf("unexpected status code: 404")
	}
	return body, nil
}

func fundPage(symbol, price, pvp, category string) string {
	return fmt.Sprintf(`<html><head><meta name="articleBody" content="Fundo de %s"></head>
		<body><div><span>P/VP</span><span>%s</span></div>
		<p>A cotação hoje de %s é de R$ %s</p></body></html>`, category, pvp, symbol, price)
}

func TestBuild_Funds(t *testing.T) {
	wallet := &fakeWallet{holdings: []contracts.Holding{
		{Symbol: "HGLG11", CurrentPrice: flex(159.6), AvgPrice: flex(150), Quantity: flex(10),
			Yield: flex(8.4), PVP: flex(0.95), Category: "Tijolo"},
		{Symbol: "KNCR11", CurrentPrice: flex(104), AvgPrice: flex(100), Quantity: flex(20),
			Yield: flex(12)}, // no category in the wallet
		{Symbol: "XPML11", TotalValue: flex(2000), Yield: flex(9)}, // not requested
	}}
	pages := &fakePages{pages: map[string]string{
		"KNCR11": fundPage("KNCR11", "104,50", "1,03", "papel"),
		"MXRF11": fundPage("MXRF11", "9,80", "0,98", "papel"),
	}}

	b := NewBuilder(wallet, pages, valuation.DefaultRules(), 1, logger.NewNop())
	report, err := b.Build(context.Background(), contracts.KindFund, []string{"hglg11", "", "KNCR11", "  ", "MXRF11"})
	require.NoError(t, err)

	require.Len(t, report.Records, 3)
	assert.Equal(t, []string{"HGLG11", "KNCR11", "MXRF11"},
		[]string{report.Records[0].Symbol, report.Records[1].Symbol, report.Records[2].Symbol})

	hglg := report.Records[0]
	assert.True(t, hglg.InWallet)
	assert.False(t, hglg.Scraped)
	assert.Equal(t, contracts.CategoryBrick, hglg.Category)
	assert.Equal(t, contracts.Cheap, hglg.Status)

	kncr := report.Records[1]
	assert.True(t, kncr.InWallet)
	assert.True(t, kncr.Scraped)
	assert.Equal(t, contracts.Some(104), kncr.Price, "wallet price wins over the page")
	assert.Equal(t, contracts.Some(1.03), kncr.PVP)
	assert.Equal(t, contracts.CategoryPaper, kncr.Category)
	assert.Equal(t, contracts.Expensive, kncr.Status)

	mxrf := report.Records[2]
	assert.False(t, mxrf.InWallet)
	assert.Equal(t, contracts.Some(9.80), mxrf.Price)
	assert.Equal(t, contracts.Cheap, mxrf.Status)

	assert.ElementsMatch(t, []string{"KNCR11", "MXRF11"}, pages.calls)

	// summary covers the full wallet, including the unrequested XPML11
	require.NotNil(t, report.Summary)
	assert.Equal(t, 3, report.Summary.Holdings)
	assert.InDelta(t, 1500+2000+2000, report.Summary.TotalInvested, 1e-9)

	assert.False(t, report.Degraded)
	assert.NotEmpty(t, report.RunID)
	assert.Len(t, report.RulesHash, 64)
}

func TestBuild_Stocks(t *testing.T) {
	stockPage := `<h1>PETR4</h1><p>PETR4 cotação R$ 9,00</p>
		<table><tr><td>LPA</td><td>1,00</td></tr><tr><td>VPA</td><td>5,00</td></tr></table>`

	b := NewBuilder(&fakeWallet{}, &fakePages{pages: map[string]string{"PETR4": stockPage}},
		valuation.DefaultRules(), 1, logger.NewNop())

	report, err := b.Build(context.Background(), contracts.KindStock, []string{"PETR4"})
	require.NoError(t, err)
	require.Len(t, report.Records, 1)

	rec := report.Records[0]
	assert.Equal(t, contracts.Some(9.0), rec.Price)
	assert.Equal(t, contracts.Some(1.0), rec.LPA)
	assert.Equal(t, contracts.Some(5.0), rec.VPA)
	assert.InDelta(t, 10.6066, rec.FairValue.Value, 1e-4)
	assert.Equal(t, contracts.Cheap, rec.Status)
	assert.Nil(t, report.Summary)
}

func TestBuild_DegradedWallet(t *testing.T) {
	wallet := &fakeWallet{err: errors.New("unexpected status code: 401")}
	pages := &fakePages{pages: map[string]string{
		"MXRF11": fundPage("MXRF11", "9,80", "0,98", "papel"),
	}}

	b := NewBuilder(wallet, pages, valuation.DefaultRules(), 1, logger.NewNop())
	report, err := b.Build(context.Background(), contracts.KindFund, []string{"MXRF11", "GONE11"})
	require.NoError(t, err)

	assert.True(t, report.Degraded)
	assert.Nil(t, report.Summary)
	require.Len(t, report.Records, 2)
	assert.Equal(t, contracts.Cheap, report.Records[0].Status)

	gone := report.Records[1]
	assert.Equal(t, "GONE11", gone.Symbol)
	assert.Equal(t, contracts.Unknown, gone.Status)
	assert.False(t, gone.Scraped)
}

func TestBuild_NilWalletIsDegraded(t *testing.T) {
	b := NewBuilder(nil, &fakePages{}, valuation.DefaultRules(), 1, logger.NewNop())

	report, err := b.Build(context.Background(), contracts.KindStock, nil)
	require.NoError(t, err)
	assert.True(t, report.Degraded)
	assert.Empty(t, report.Records)
}

func TestBuild_WorkerPoolKeepsInputOrder(t *testing.T) {
	pages := &fakePages{pages: map[string]string{}}
	var symbols []string
	for i := 0; i < 25; i++ {
		sym := fmt.Sprintf("FND%02d11", i)
		symbols = append(symbols, sym)
		pages.pages[sym] = fundPage(sym, fmt.Sprintf("%d,00", 10+i), "0,90", "tijolo")
	}

	b := NewBuilder(&fakeWallet{}, pages, valuation.DefaultRules(), 4, logger.NewNop())
	report, err := b.Build(context.Background(), contracts.KindFund, symbols)
	require.NoError(t, err)

	require.Len(t, report.Records, len(symbols))
	for i, rec := range report.Records {
		assert.Equal(t, symbols[i], rec.Symbol)
		assert.Equal(t, contracts.Some(float64(10+i)), rec.Price)
		assert.Equal(t, contracts.Cheap, rec.Status)
	}
	assert.Len(t, pages.calls, len(symbols))
}

func TestBuild_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	b := NewBuilder(&fakeWallet{}, &fakePages{}, valuation.DefaultRules(), 1, logger.NewNop())
	_, err := b.Build(ctx, contracts.KindStock, []string{"PETR4"})

	assert.ErrorIs(t, err, context.Canceled)
}

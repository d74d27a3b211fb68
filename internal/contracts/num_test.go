package contracts

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNum(t *testing.T) {
	v, ok := Some(1.5).Get()
	assert.True(t, ok)
	assert.Equal(t, 1.5, v)

	_, ok = None.Get()
	assert.False(t, ok)

	assert.True(t, Some(2).Present())
	assert.False(t, Some(0).Present())
	assert.False(t, None.Present())

	assert.Equal(t, Some(3), None.Or(Some(3)))
	assert.Equal(t, Some(1), Some(1).Or(Some(3)))
	assert.Nil(t, None.Ptr())
	assert.Equal(t, 4.0, *Some(4).Ptr())
	assert.Equal(t, "-", None.String())
	assert.Equal(t, "159.6", Some(159.6).String())
}

func TestNumJSON(t *testing.T) {
	data, err := json.Marshal(struct {
		A Num `json:"a"`
		B Num `json:"b"`
	}{A: Some(10.5), B: None})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":10.5,"b":null}`, string(data))

	var back struct {
		A Num `json:"a"`
		B Num `json:"b"`
	}
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, Some(10.5), back.A)
	assert.Equal(t, None, back.B)
}

func TestFlexNum(t *testing.T) {
	tests := []struct {
		name string
		json string
		want Num
	}{
		{"number", `12.34`, Some(12.34)},
		{"integer", `100`, Some(100)},
		{"brazilian string", `"1.234,56"`, Some(1234.56)},
		{"currency string", `"R$ 9,87"`, Some(9.87)},
		{"null", `null`, None},
		{"empty string", `""`, None},
		{"garbage string", `"n/a"`, None},
		{"bool", `true`, None},
		{"object", `{"v":1}`, None},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f FlexNum
			require.NoError(t, json.Unmarshal([]byte(tt.json), &f))
			assert.Equal(t, tt.want.Valid, f.Valid)
			if tt.want.Valid {
				assert.InDelta(t, tt.want.Value, f.Value, 1e-9)
			}
		})
	}
}

func TestHoldingDecode(t *testing.T) {
	body := `{
		"ticker_name": "hglg11",
		"current_price": "159,60",
		"avg_price": 150.25,
		"quantity": 10,
		"dividend_yield": "8,5",
		"total_value": null,
		"fii_type": "Tijolo"
	}`

	var h Holding
	require.NoError(t, json.Unmarshal([]byte(body), &h))

	assert.Equal(t, "HGLG11", h.Key())
	assert.InDelta(t, 159.60, h.CurrentPrice.Value, 1e-9)
	assert.Equal(t, 150.25, h.AvgPrice.Value)
	assert.Equal(t, 10.0, h.Quantity.Value)
	assert.InDelta(t, 8.5, h.Yield.Value, 1e-9)
	assert.False(t, h.TotalValue.Valid)
	assert.False(t, h.LPA.Valid)
	assert.Equal(t, "Tijolo", h.Category)
}

func TestParseKind(t *testing.T) {
	for _, s := range []string{"stock", "acoes", "ações", " ACOES "} {
		k, err := ParseKind(s)
		require.NoError(t, err, s)
		assert.Equal(t, KindStock, k)
	}
	for _, s := range []string{"fund", "fii", "FIIS"} {
		k, err := ParseKind(s)
		require.NoError(t, err, s)
		assert.Equal(t, KindFund, k)
	}
	_, err := ParseKind("etf")
	assert.Error(t, err)

	assert.Equal(t, "Ticker", KindStock.WalletSegment())
	assert.Equal(t, "Fii", KindFund.WalletSegment())
	assert.Equal(t, "acoes", KindStock.PagePath())
	assert.Equal(t, "fiis", KindFund.PagePath())
}

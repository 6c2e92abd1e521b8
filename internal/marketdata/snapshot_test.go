package marketdata

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/yieldpilot/internal/contracts"
)

const sampleYAML = `
id: snap-20261016
as_of: "2026-10-16"
instruments:
  - ticker: SCHD
    name: Schwab US Dividend Equity
    strategy: dividend growth
    price: 27.4
    return_1y: 0.11
    volatility: 0.14
    yield: 0.036
    trading_days: 2500
    windows: {r4: 0.01, r13: 0.03, r26: 0.05, r52: 0.11}
  - ticker: JEPI
    price: 57.1
    return_1y: 0.09
growth:
  JEPI: {r4: 0.008, r13: 0.02, r26: 0.04, r52: 0.09}
prices:
  SCHD: 27.5
positions:
  - ticker: SCHD
    shares: 100
    current_value: 2750
    signal: 1
    rank: 3
ranking:
  SCHD: 3
  JEPI: 1
`

func TestParseSnapshot_YAML(t *testing.T) {
	snap, err := ParseSnapshot([]byte(sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "snap-20261016", snap.ID)
	require.Len(t, snap.Instruments, 2)

	schd := snap.Instruments[0]
	require.NotNil(t, schd.Price)
	assert.Equal(t, 27.4, *schd.Price)
	require.NotNil(t, schd.TradingDays)
	assert.Equal(t, 2500, *schd.TradingDays)
	assert.True(t, schd.Windows.Complete())

	assert.True(t, snap.Growth["JEPI"].Complete())
	assert.Equal(t, 27.5, snap.PriceMap()["SCHD"])

	require.Len(t, snap.Positions, 1)
	assert.Equal(t, contracts.SignalBuy, snap.Positions[0].Signal)
	require.NotNil(t, snap.Positions[0].Rank)
	assert.Equal(t, 3, *snap.Positions[0].Rank)

	ranking := snap.RankingSnapshot()
	rank, ok := ranking.Rank("JEPI")
	assert.True(t, ok)
	assert.Equal(t, 1, rank)

	u := snap.Universe()
	assert.Equal(t, "JEPI", u.Instruments[0].Ticker, "universe is sorted by ticker")
	assert.Equal(t, []string{"SCHD", "JEPI"}, snap.Tickers())
}

func TestParseSnapshot_JSON(t *testing.T) {
	data := []byte(`{"id": "j1", "instruments": [{"ticker": "QYLD", "price": 17.2, "return_1y": 0.04}], "ranking": {"QYLD": 2}}`)

	snap, err := ParseSnapshot(data)
	require.NoError(t, err)
	require.Len(t, snap.Instruments, 1)
	assert.Equal(t, "QYLD", snap.Instruments[0].Ticker)
	assert.Equal(t, 1, snap.RankingSnapshot().Len())
}

func TestParseSnapshot_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty", ""},
		{"unknown field", "instrumets: []"},
		{"missing ticker", "instruments:\n  - price: 10"},
		{"negative shares", "positions:\n  - ticker: A\n    shares: -1"},
		{"negative price", "prices:\n  A: -3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSnapshot([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestSnapshot_CopiesAreIndependent(t *testing.T) {
	snap, err := ParseSnapshot([]byte(sampleYAML))
	require.NoError(t, err)

	prices := snap.PriceMap()
	prices["SCHD"] = 1
	growth := snap.GrowthCache()
	delete(growth, "JEPI")

	assert.Equal(t, 27.5, snap.Prices["SCHD"])
	assert.Contains(t, snap.Growth, "JEPI")
}

func TestSnapshot_WriteRoundTrip(t *testing.T) {
	snap, err := ParseSnapshot([]byte(sampleYAML))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, snap.Write(&buf))

	again, err := ParseSnapshot(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, snap, again)
}

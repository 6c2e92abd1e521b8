package portfolio

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/wonny/yieldpilot/internal/contracts"
)

// Assembly is the S4 output: entries plus the money actually put to work
type Assembly struct {
	Entries  []contracts.PortfolioEntry
	Invested float64 // Σ rounded dollars
	Cash     float64 // capital - invested
}

// Assemble converts final weights into dollar allocations and share counts.
// selected and weights are parallel slices. Every score of the record is
// copied onto its entry.
func Assemble(selected []contracts.ScoreRecord, weights []float64, capital float64, roundShares bool) Assembly {
	entries := make([]contracts.PortfolioEntry, 0, len(selected))
	capitalDec := decimal.NewFromFloat(capital)
	invested := decimal.Zero

	for i, rec := range selected {
		dollars := weights[i] * capital

		shares := 0.0
		if rec.Price > 0 {
			shares = dollars / rec.Price
			if roundShares {
				shares = math.Floor(shares)
			}
		}

		// shares × price, no cent rounding
		rounded := decimal.NewFromFloat(shares).Mul(decimal.NewFromFloat(rec.Price))
		invested = invested.Add(rounded)

		entries = append(entries, contracts.PortfolioEntry{
			Ticker:         rec.Ticker,
			Name:           rec.Name,
			Weight:         weights[i],
			Shares:         shares,
			Price:          rec.Price,
			Dollars:        dollars,
			RoundedDollars: rounded.InexactFloat64(),
			Scores:         rec,
		})
	}

	return Assembly{
		Entries:  entries,
		Invested: invested.InexactFloat64(),
		Cash:     capitalDec.Sub(invested).InexactFloat64(),
	}
}

package marketdata

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/wonny/yieldpilot/internal/contracts"
)

// Snapshot is one point-in-time input bundle: the universe with its metadata,
// the growth cache, a price map, current holdings and a ranking table.
// YAML or JSON (JSON is valid YAML).
type Snapshot struct {
	ID          string                 `yaml:"id" json:"id"`
	AsOf        string                 `yaml:"as_of" json:"as_of"` // YYYY-MM-DD
	Instruments []contracts.Instrument `yaml:"instruments" json:"instruments"`
	Growth      contracts.GrowthCache  `yaml:"growth,omitempty" json:"growth,omitempty"`
	Prices      map[string]float64     `yaml:"prices,omitempty" json:"prices,omitempty"`
	Positions   []contracts.Position   `yaml:"positions,omitempty" json:"positions,omitempty"`
	Ranking     map[string]int         `yaml:"ranking,omitempty" json:"ranking,omitempty"`
}

// LoadSnapshot reads a snapshot file
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot %s: %w", path, err)
	}
	return ParseSnapshot(data)
}

// ParseSnapshot decodes and validates a snapshot. Unknown fields fail.
func ParseSnapshot(data []byte) (*Snapshot, error) {
	var snap Snapshot
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&snap); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("snapshot is empty")
		}
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}

	if err := snap.Validate(); err != nil {
		return nil, err
	}
	return &snap, nil
}

// Validate rejects structurally broken input. Missing metrics are fine:
// the engine excludes those instruments itself.
func (s *Snapshot) Validate() error {
	for i, inst := range s.Instruments {
		if inst.Ticker == "" {
			return fmt.Errorf("instruments[%d]: ticker required", i)
		}
	}
	for i, p := range s.Positions {
		if p.Ticker == "" {
			return fmt.Errorf("positions[%d]: ticker required", i)
		}
		if p.Shares < 0 || p.CurrentValue < 0 {
			return fmt.Errorf("positions[%d] %s: shares and current_value must be >= 0", i, p.Ticker)
		}
	}
	for ticker, price := range s.Prices {
		if price < 0 {
			return fmt.Errorf("prices.%s: must be >= 0", ticker)
		}
	}
	return nil
}

// Universe returns a fresh universe built from the instruments
func (s *Snapshot) Universe() *contracts.Universe {
	return contracts.NewUniverse(s.Instruments)
}

// GrowthCache returns a copy of the growth cache
func (s *Snapshot) GrowthCache() contracts.GrowthCache {
	out := make(contracts.GrowthCache, len(s.Growth))
	for k, v := range s.Growth {
		out[k] = v
	}
	return out
}

// PriceMap returns a copy of the explicit prices
func (s *Snapshot) PriceMap() map[string]float64 {
	out := make(map[string]float64, len(s.Prices))
	for k, v := range s.Prices {
		out[k] = v
	}
	return out
}

// RankingSnapshot freezes the ranking table
func (s *Snapshot) RankingSnapshot() contracts.RankingSnapshot {
	return contracts.NewRankingSnapshot(s.Ranking)
}

// Tickers returns every instrument ticker in file order
func (s *Snapshot) Tickers() []string {
	out := make([]string, 0, len(s.Instruments))
	for _, inst := range s.Instruments {
		out = append(out, inst.Ticker)
	}
	return out
}

// Write encodes the snapshot as YAML
func (s *Snapshot) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return err
	}
	return enc.Close()
}

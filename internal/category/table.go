// Package category holds the marketplace category fee table the seller
// picks a listing category from.
package category

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Option is one selectable fee tier: a display label, the fee percent,
// and the marketplace categories it covers.
type Option struct {
	Label      string   `json:"label"`
	Value      float64  `json:"value"`
	Categories []string `json:"categories"`
}

type Table struct {
	options []Option
	byLabel map[string]Option
}

// Load reads the fee options from a JSON file.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read category table: %w", err)
	}
	return Parse(data)
}

// Parse builds the fee table from raw JSON.
func Parse(data []byte) (*Table, error) {
	var options []Option
	if err := json.Unmarshal(data, &options); err != nil {
		return nil, fmt.Errorf("parse category table: %w", err)
	}
	if len(options) == 0 {
		return nil, errors.New("category table has no options")
	}

	byLabel := make(map[string]Option, len(options))
	for _, opt := range options {
		if opt.Value < 0 {
			return nil, fmt.Errorf("category %q has a negative fee percent", opt.Label)
		}
		byLabel[strings.ToLower(opt.Label)] = opt
	}

	return &Table{options: options, byLabel: byLabel}, nil
}

// Options returns the fee tiers in file order for display.
func (t *Table) Options() []Option {
	out := make([]Option, len(t.options))
	copy(out, t.options)
	return out
}

// FeePercent looks up a tier's fee percent by label, case-insensitively.
func (t *Table) FeePercent(label string) (float64, bool) {
	opt, ok := t.byLabel[strings.ToLower(strings.TrimSpace(label))]
	if !ok {
		return 0, false
	}
	return opt.Value, true
}

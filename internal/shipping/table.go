// Package shipping resolves the cheapest shipping method for a parcel
// from a static rate table, the settlement-currency cost input the profit
// engine treats as opaque.
package shipping

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
)

var ErrNoMethodFits = errors.New("no shipping method fits the parcel")

// Dimensions are parcel dimensions in centimeters.
type Dimensions struct {
	LengthCM float64 `json:"length_cm"`
	WidthCM  float64 `json:"width_cm"`
	HeightCM float64 `json:"height_cm"`
}

func (d Dimensions) longestSide() float64 {
	longest := d.LengthCM
	if d.WidthCM > longest {
		longest = d.WidthCM
	}
	if d.HeightCM > longest {
		longest = d.HeightCM
	}
	return longest
}

func (d Dimensions) girth() float64 {
	return d.LengthCM + d.WidthCM + d.HeightCM
}

// Bracket is one weight step of a method's rate card.
type Bracket struct {
	UpToGrams int     `json:"up_to_g"`
	Price     float64 `json:"price_jpy"`
}

// Method is one shipping service with its size limits and rate card.
// Zero limits mean the method does not constrain that dimension.
type Method struct {
	Name       string    `json:"name"`
	MaxWeight  int       `json:"max_weight_g"`
	MaxLongest float64   `json:"max_length_cm"`
	MaxGirth   float64   `json:"max_total_cm"`
	Brackets   []Bracket `json:"brackets"`
}

// Quote is a priced shipping option in the settlement currency.
type Quote struct {
	Method string  `json:"method"`
	Price  float64 `json:"price_jpy"`
}

type Table struct {
	methods []Method
}

// Load reads a rate table from a JSON file.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read shipping table: %w", err)
	}
	return Parse(data)
}

// Parse builds a rate table from raw JSON.
func Parse(data []byte) (*Table, error) {
	var doc struct {
		Methods []Method `json:"methods"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse shipping table: %w", err)
	}
	if len(doc.Methods) == 0 {
		return nil, errors.New("shipping table has no methods")
	}

	for i := range doc.Methods {
		brackets := doc.Methods[i].Brackets
		sort.Slice(brackets, func(a, b int) bool {
			return brackets[a].UpToGrams < brackets[b].UpToGrams
		})
	}

	return &Table{methods: doc.Methods}, nil
}

// Cheapest returns the lowest-priced method that accepts the parcel.
func (t *Table) Cheapest(weightGrams int, dims Dimensions) (Quote, error) {
	if weightGrams <= 0 {
		return Quote{}, fmt.Errorf("weight must be positive, got %d", weightGrams)
	}

	best := Quote{}
	found := false
	for _, m := range t.methods {
		price, ok := m.price(weightGrams, dims)
		if !ok {
			continue
		}
		if !found || price < best.Price {
			best = Quote{Method: m.Name, Price: price}
			found = true
		}
	}
	if !found {
		return Quote{}, ErrNoMethodFits
	}
	return best, nil
}

func (m Method) price(weightGrams int, dims Dimensions) (float64, bool) {
	if m.MaxWeight > 0 && weightGrams > m.MaxWeight {
		return 0, false
	}
	if m.MaxLongest > 0 && dims.longestSide() > m.MaxLongest {
		return 0, false
	}
	if m.MaxGirth > 0 && dims.girth() > m.MaxGirth {
		return 0, false
	}

	for _, b := range m.Brackets {
		if weightGrams <= b.UpToGrams {
			return b.Price, true
		}
	}
	return 0, false
}

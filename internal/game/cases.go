package game

import (
	"errors"
	"fmt"

	"casino_webapp/internal/rng"
)

const (
	CaseOddsTotal = 100.0
	CaseMinOpens  = 1
	CaseMaxOpens  = 5
)

var (
	ErrUnknownCase      = errors.New("unknown case")
	ErrInvalidOpenCount = errors.New("open count must be between 1 and 5")
)

// CaseItem is one prize inside a case. Odds are percentages summing to 100
// across the case.
type CaseItem struct {
	Name       string  `json:"name"`
	Odds       float64 `json:"odds"`
	ValueMinor int64   `json:"value"`
}

// CaseDef is a static case definition: a price and a weighted item list.
type CaseDef struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	PriceMinor int64      `json:"price"`
	Items      []CaseItem `json:"items"`
}

func (c CaseDef) pool() []WeightedItem {
	pool := make([]WeightedItem, len(c.Items))
	for i, item := range c.Items {
		pool[i] = WeightedItem{ID: item.Name, Weight: item.Odds, Payload: item}
	}
	return pool
}

// Validate checks item odds sum to the fixed total. Fatal at load time.
func (c CaseDef) Validate() error {
	if c.PriceMinor <= 0 {
		return fmt.Errorf("case %s: non-positive price", c.ID)
	}
	if err := ValidatePool(c.pool(), CaseOddsTotal); err != nil {
		return fmt.Errorf("case %s: %w", c.ID, err)
	}
	return nil
}

// DefaultCatalog returns the built-in case set.
func DefaultCatalog() []CaseDef {
	return []CaseDef{
		{
			ID: "starter", Name: "Starter Case", PriceMinor: 100,
			Items: []CaseItem{
				{Name: "Scrap", Odds: 55, ValueMinor: 30},
				{Name: "Common Pin", Odds: 25, ValueMinor: 90},
				{Name: "Bronze Coin", Odds: 12, ValueMinor: 200},
				{Name: "Silver Coin", Odds: 6, ValueMinor: 500},
				{Name: "Gold Coin", Odds: 2, ValueMinor: 1500},
			},
		},
		{
			ID: "premium", Name: "Premium Case", PriceMinor: 1000,
			Items: []CaseItem{
				{Name: "Trinket", Odds: 50, ValueMinor: 250},
				{Name: "Charm", Odds: 28, ValueMinor: 900},
				{Name: "Amulet", Odds: 14, ValueMinor: 2000},
				{Name: "Relic", Odds: 6.5, ValueMinor: 5000},
				{Name: "Crown", Odds: 1.5, ValueMinor: 25000},
			},
		},
		{
			ID: "mystery", Name: "Mystery Box", PriceMinor: 500,
			Items: []CaseItem{
				{Name: "Dud", Odds: 40, ValueMinor: 0},
				{Name: "Small Prize", Odds: 35, ValueMinor: 400},
				{Name: "Medium Prize", Odds: 18, ValueMinor: 1200},
				{Name: "Big Prize", Odds: 6, ValueMinor: 3500},
				{Name: "Jackpot", Odds: 1, ValueMinor: 20000},
			},
		},
	}
}

// Catalog is a validated case lookup.
type Catalog struct {
	cases map[string]CaseDef
	order []string
}

// NewCatalog validates every case definition up front; any malformed odds
// table is rejected here, never at draw time.
func NewCatalog(defs []CaseDef) (*Catalog, error) {
	c := &Catalog{cases: make(map[string]CaseDef, len(defs))}
	for _, def := range defs {
		if err := def.Validate(); err != nil {
			return nil, err
		}
		c.cases[def.ID] = def
		c.order = append(c.order, def.ID)
	}
	return c, nil
}

func (c *Catalog) Get(id string) (CaseDef, bool) {
	def, ok := c.cases[id]
	return def, ok
}

func (c *Catalog) List() []CaseDef {
	out := make([]CaseDef, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.cases[id])
	}
	return out
}

// CaseOutcome is the result of opening a case one or more times.
type CaseOutcome struct {
	CaseID      string     `json:"case_id"`
	Opens       int        `json:"opens"`
	Items       []CaseItem `json:"items"`
	TotalStake  int64      `json:"total_stake"`
	TotalPayout int64      `json:"total_payout"`
}

// OpenCase performs `count` independent weighted draws. Multi-opens are
// repeated single draws, not a shuffle: the same item can drop twice.
func (c *Catalog) OpenCase(id string, count int, r rng.Source) (CaseOutcome, error) {
	def, ok := c.Get(id)
	if !ok {
		return CaseOutcome{}, ErrUnknownCase
	}
	if count < CaseMinOpens || count > CaseMaxOpens {
		return CaseOutcome{}, ErrInvalidOpenCount
	}

	out := CaseOutcome{
		CaseID:     id,
		Opens:      count,
		TotalStake: def.PriceMinor * int64(count),
	}
	pool := def.pool()
	for i := 0; i < count; i++ {
		picked, err := PickWeighted(pool, CaseOddsTotal, r)
		if err != nil {
			return CaseOutcome{}, err
		}
		item := picked.Payload.(CaseItem)
		out.Items = append(out.Items, item)
		out.TotalPayout += item.ValueMinor
	}
	return out, nil
}

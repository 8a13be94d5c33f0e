// Package reference holds the two static reference tables the contract
// engine depends on: the contract-type table and the contract-category
// table. Both are loaded once at startup and passed around by handle;
// nothing in this package mutates a table after it is built.
package reference

// TypeFacts is the static metadata of a single contract type.
type TypeFacts struct {
	Code          string `yaml:"-" json:"code"`
	ID            int    `yaml:"id" json:"id"`
	Category      string `yaml:"category" json:"category"`
	PricingCode   string `yaml:"pricing_code" json:"pricing_code"`
	DisplayName   string `yaml:"display_name" json:"display_name"`
	Sentiment     string `yaml:"sentiment" json:"sentiment"` // up, down, high_vol, low_vol, match, differ, odd, even, over, under
	OtherSideCode string `yaml:"other_side_code" json:"other_side_code"`
	PayoutType    string `yaml:"payout_type" json:"payout_type"` // binary, non-binary
	PayoutTime    string `yaml:"payouttime" json:"payouttime"`   // end, hit
}

// IsBinary reports whether the type pays a fixed amount or nothing.
func (t TypeFacts) IsBinary() bool {
	return t.PayoutType == "binary"
}

// CategoryFacts is the behavioral profile shared by all contract types in
// one category.
type CategoryFacts struct {
	Code                 string   `yaml:"-" json:"code"`
	DisplayName          string   `yaml:"display_name" json:"display_name"`
	DisplayOrder         int      `yaml:"display_order" json:"display_order"`
	TwoBarriers          bool     `yaml:"two_barriers" json:"two_barriers"`
	AllowForwardStarting bool     `yaml:"allow_forward_starting" json:"allow_forward_starting"`
	IsPathDependent      bool     `yaml:"is_path_dependent" json:"is_path_dependent"`
	BarrierAtStart       bool     `yaml:"barrier_at_start" json:"barrier_at_start"`
	SupportedExpiries    []string `yaml:"supported_expiries" json:"supported_expiries"` // intraday, daily, tick
}

// SupportsExpiry reports whether the category allows the given expiry kind.
func (c CategoryFacts) SupportsExpiry(kind string) bool {
	for _, e := range c.SupportedExpiries {
		if e == kind {
			return true
		}
	}
	return false
}

// TypeTable maps upper-case contract-type codes to their TypeFacts.
type TypeTable struct {
	types map[string]TypeFacts
}

// Lookup returns the facts for a type code.
func (t *TypeTable) Lookup(code string) (TypeFacts, bool) {
	facts, ok := t.types[code]
	return facts, ok
}

// Has reports whether the type code exists in the table.
func (t *TypeTable) Has(code string) bool {
	_, ok := t.types[code]
	return ok
}

// Count returns the number of contract types in the table.
func (t *TypeTable) Count() int {
	return len(t.types)
}

// CategoryTable maps category codes to their CategoryFacts.
type CategoryTable struct {
	categories map[string]CategoryFacts
}

// Lookup returns the facts for a category code.
func (t *CategoryTable) Lookup(code string) (CategoryFacts, bool) {
	facts, ok := t.categories[code]
	return facts, ok
}

// Count returns the number of categories in the table.
func (t *CategoryTable) Count() int {
	return len(t.categories)
}

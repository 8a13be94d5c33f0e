package contract

import (
	"fmt"
	"time"

	"github.com/junbon-binary/finance-contract/internal/market"
	"github.com/junbon-binary/finance-contract/internal/reference"
)

// Factory assembles Contracts from shortcodes or direct parameters. It
// holds the reference-table handles and market collaborators; application
// startup builds one and keeps it for the process lifetime.
type Factory struct {
	types         *reference.TypeTable
	categories    *reference.CategoryTable
	codec         *Codec
	tickOverrides map[string]TickOverride
}

// NewFactory builds a factory over the given tables and collaborators.
func NewFactory(types *reference.TypeTable, categories *reference.CategoryTable, registry market.Registry, strikes market.StrikeResolver) *Factory {
	return &Factory{
		types:         types,
		categories:    categories,
		codec:         NewCodec(types, categories, registry, strikes),
		tickOverrides: make(map[string]TickOverride),
	}
}

// Codec returns the shortcode codec sharing this factory's tables.
func (f *Factory) Codec() *Codec {
	return f.codec
}

// RegisterTickOverride installs category-specific ticks-to-expiry
// arithmetic. Digit and Asian kinds own their rules; register them here
// rather than special-casing the resolver.
func (f *Factory) RegisterTickOverride(categoryCode string, fn TickOverride) {
	f.tickOverrides[categoryCode] = fn
}

// FromShortcode decodes a shortcode and assembles the contract, priced as
// of datePricing. Unrecognized shortcodes yield an inert legacy contract.
func (f *Factory) FromShortcode(shortcode, currency string, datePricing time.Time) (*Contract, error) {
	params, err := f.codec.Decode(shortcode, currency)
	if err != nil {
		return nil, err
	}
	if params.IsLegacy() {
		return &Contract{params: params, datePricing: datePricing, codec: f.codec}, nil
	}
	return f.FromParameters(params, datePricing)
}

// FromParameters assembles a contract from an already-structured record.
// Unlike decoding, missing required fields here are a hard failure.
func (f *Factory) FromParameters(p *Parameters, datePricing time.Time) (*Contract, error) {
	if p.Currency == "" {
		return nil, ErrMissingCurrency
	}

	typeFacts, ok := f.types.Lookup(p.ContractType)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownContractType, p.ContractType)
	}
	category, ok := f.categories.Lookup(typeFacts.Category)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCategory, typeFacts.Category)
	}

	if p.UnderlyingSymbol == "" {
		return nil, fmt.Errorf("%w: underlying_symbol", ErrMissingField)
	}
	if p.DateStart.IsZero() {
		return nil, fmt.Errorf("%w: date_start", ErrMissingField)
	}
	if typeFacts.IsBinary() && p.Payout == nil {
		return nil, fmt.Errorf("%w: payout", ErrMissingField)
	}
	if !p.TickExpiry && p.DateExpiry.IsZero() && p.Spread == nil {
		return nil, fmt.Errorf("%w: date_expiry", ErrMissingField)
	}
	if !p.DateExpiry.IsZero() && p.DateStart.After(p.DateExpiry) {
		return nil, fmt.Errorf("%w: start %s, expiry %s", ErrInvalidLifetime,
			p.DateStart.UTC().Format(time.RFC3339), p.DateExpiry.UTC().Format(time.RFC3339))
	}

	// Sticky by design: once a contract was transacted before its start it
	// stays marked forward-starting for life.
	if !p.StartsAsForwardStarting && IsForwardStarting(p, datePricing, category) {
		p.StartsAsForwardStarting = true
	}

	return &Contract{
		params:       p,
		typeFacts:    typeFacts,
		category:     category,
		datePricing:  datePricing,
		codec:        f.codec,
		tickOverride: f.tickOverrides[category.Code],
	}, nil
}

// Contract is an immutable contract value: canonical parameters plus the
// static facts resolved from the reference tables, anchored to one pricing
// reference time. Derived attributes are recomputed on each call; they are
// cheap, and recomputing keeps SetDateExpiry trivially consistent and the
// value safe for concurrent readers.
type Contract struct {
	params       *Parameters
	typeFacts    reference.TypeFacts
	category     reference.CategoryFacts
	datePricing  time.Time
	codec        *Codec
	tickOverride TickOverride
}

// Params returns the canonical parameter record.
func (c *Contract) Params() *Parameters {
	return c.params
}

// Type returns the contract type's static metadata.
func (c *Contract) Type() reference.TypeFacts {
	return c.typeFacts
}

// Category returns the category's behavioral profile.
func (c *Contract) Category() reference.CategoryFacts {
	return c.category
}

// DatePricing returns the pricing reference time the contract is anchored
// to.
func (c *Contract) DatePricing() time.Time {
	return c.datePricing
}

// IsLegacy reports whether this is an inert placeholder contract.
func (c *Contract) IsLegacy() bool {
	return c.params.IsLegacy()
}

// SetDateExpiry re-anchors the contract's end boundary. Backpricing
// workflows use this; every derived attribute reflects the new expiry on
// its next read. This is the one permitted mutation and is not safe to
// race with concurrent readers.
func (c *Contract) SetDateExpiry(t time.Time) {
	c.params.DateExpiry = t
}

// EffectiveStart is the instant duration calculations run from.
func (c *Contract) EffectiveStart() time.Time {
	return EffectiveStart(c.params, c.datePricing)
}

// RemainingTime is the time left to expiry, never negative.
func (c *Contract) RemainingTime() time.Duration {
	return RemainingTime(c.params, c.datePricing)
}

// TimeInDays is the clamped duration from effective start to expiry.
func (c *Contract) TimeInDays() float64 {
	return TimeInDays(c.params, c.datePricing)
}

// TimeInYears is the clamped duration in 365-day years.
func (c *Contract) TimeInYears() float64 {
	return TimeInYears(c.params, c.datePricing)
}

// TicksToExpiry is the number of ticks from purchase to settlement.
func (c *Contract) TicksToExpiry() int {
	return TicksToExpiry(c.params, c.tickOverride)
}

// IsForwardStarting reports whether the contract's life has not begun as of
// the pricing time.
func (c *Contract) IsForwardStarting() bool {
	return IsForwardStarting(c.params, c.datePricing, c.category)
}

// IsATM reports whether the single barrier sits exactly at the money.
func (c *Contract) IsATM() bool {
	return IsATM(c.params, c.category)
}

// BarrierCategory classifies the contract's barrier behavior.
func (c *Contract) BarrierCategory() string {
	return BarrierCategory(c.params, c.category)
}

// Shortcode returns the contract's shortcode, encoding it if the record was
// built from direct parameters.
func (c *Contract) Shortcode() (string, error) {
	if c.params.Shortcode != "" {
		return c.params.Shortcode, nil
	}
	if c.IsLegacy() {
		return "", fmt.Errorf("%w: shortcode", ErrMissingField)
	}
	return c.codec.Encode(c.params, c.datePricing)
}

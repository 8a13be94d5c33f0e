// Package contract models a single options contract: the canonical
// parameter record, the shortcode codec that moves between that record and
// its compact textual form, and the resolvers that derive temporal and
// barrier facts from it.
package contract

import (
	"time"

	"github.com/shopspring/decimal"
)

// Parameters is the decoded, format-agnostic representation of a contract.
// It is the single shape every shortcode generation decodes into and the
// only input the encoder accepts.
type Parameters struct {
	ContractType     string `json:"contract_type"`
	UnderlyingSymbol string `json:"underlying_symbol"`
	Currency         string `json:"currency"`

	// Payout is absent for non-binary contracts and legacy placeholders.
	Payout *decimal.Decimal `json:"payout,omitempty"`

	DateStart  time.Time `json:"date_start"`
	DateExpiry time.Time `json:"date_expiry,omitempty"`

	// Exactly one of DateExpiry or (TickCount, TickExpiry) determines the
	// contract end.
	TickCount  int  `json:"tick_count,omitempty"`
	TickExpiry bool `json:"tick_expiry,omitempty"`

	// FixedExpiry marks an expiry given as an absolute instant rather than
	// computed from a relative duration.
	FixedExpiry bool `json:"fixed_expiry,omitempty"`

	// StartsAsForwardStarting is sticky: set once at creation and never
	// re-derived from the pricing time.
	StartsAsForwardStarting bool `json:"starts_as_forward_starting,omitempty"`

	// Barrier tokens. A two-barrier contract carries High and Low and no
	// single Barrier; empty string means absent. The normalized fields hold
	// the StrikeResolver output; the Supplied fields keep the raw shortcode
	// tokens, which ATM detection and re-encoding read.
	Barrier     string `json:"barrier,omitempty"`
	HighBarrier string `json:"high_barrier,omitempty"`
	LowBarrier  string `json:"low_barrier,omitempty"`

	SuppliedBarrier     string `json:"supplied_barrier,omitempty"`
	SuppliedHighBarrier string `json:"supplied_high_barrier,omitempty"`
	SuppliedLowBarrier  string `json:"supplied_low_barrier,omitempty"`

	// Prediction is the tick-trade prediction (digit trades).
	Prediction *decimal.Decimal `json:"prediction,omitempty"`

	// Spread is set only for spread contracts, which carry their own field
	// shape instead of payout and barriers.
	Spread *SpreadParams `json:"spread,omitempty"`

	// Shortcode is the textual identifier this record was decoded from, or
	// the one it encoded to.
	Shortcode string `json:"shortcode,omitempty"`
}

// SpreadParams is the spread-specific record shape.
type SpreadParams struct {
	AmountPerPoint decimal.Decimal `json:"amount_per_point"`
	StopLoss       decimal.Decimal `json:"stop_loss"`
	StopProfit     decimal.Decimal `json:"stop_profit"`
	StopType       string          `json:"stop_type"` // dollar, point
}

// Legacy placeholder values. An unrecognized shortcode decodes to these
// rather than failing, so batch decodes can skip dead contracts without
// exception-driven control flow.
const (
	LegacyContractType     = "Invalid"
	LegacyUnderlyingSymbol = "config"
)

// NewLegacyPlaceholder returns the inert record used for shortcodes that
// are never meant to price.
func NewLegacyPlaceholder(currency string) *Parameters {
	return &Parameters{
		ContractType:     LegacyContractType,
		UnderlyingSymbol: LegacyUnderlyingSymbol,
		Currency:         currency,
	}
}

// IsLegacy reports whether the record is the legacy placeholder.
func (p *Parameters) IsLegacy() bool {
	return p.ContractType == LegacyContractType
}

// HasTwoBarriers reports whether both high and low barrier tokens are set.
func (p *Parameters) HasTwoBarriers() bool {
	return p.HighBarrier != "" && p.LowBarrier != ""
}

// HasBarrier reports whether any barrier token is set.
func (p *Parameters) HasBarrier() bool {
	return p.Barrier != "" || p.HasTwoBarriers()
}

// BarrierToken is the raw single-barrier token as it appears on the wire.
// Records built from direct parameters carry only the normalized field, so
// it doubles as the fallback.
func (p *Parameters) BarrierToken() string {
	if p.SuppliedBarrier != "" {
		return p.SuppliedBarrier
	}
	return p.Barrier
}

// HighBarrierToken is the raw high-barrier token, falling back to the
// normalized field.
func (p *Parameters) HighBarrierToken() string {
	if p.SuppliedHighBarrier != "" {
		return p.SuppliedHighBarrier
	}
	return p.HighBarrier
}

// LowBarrierToken is the raw low-barrier token, falling back to the
// normalized field.
func (p *Parameters) LowBarrierToken() string {
	if p.SuppliedLowBarrier != "" {
		return p.SuppliedLowBarrier
	}
	return p.LowBarrier
}

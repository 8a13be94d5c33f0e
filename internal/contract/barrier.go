package contract

import (
	"github.com/junbon-binary/finance-contract/internal/reference"
)

// Barrier category tags.
const (
	BarrierEuroATM      = "euro_atm"
	BarrierEuroNonATM   = "euro_non_atm"
	BarrierAmerican     = "american"
	BarrierNonFinancial = "non_financial"
	BarrierAsian        = "asian"
	BarrierSpreads      = "spreads"
)

// atmBarrierToken is the zero relative pip offset: the barrier sits exactly
// on the spot at contract start.
const atmBarrierToken = "S0P"

// categoryBarrierTags maps each category to its sole barrier-category tag.
// callput is absent: it is the only ATM-sensitive category and is handled
// in BarrierCategory directly.
var categoryBarrierTags = map[string]string{
	"endsinout":    BarrierEuroNonATM,
	"touchnotouch": BarrierAmerican,
	"staysinout":   BarrierAmerican,
	"digits":       BarrierNonFinancial,
	"asian":        BarrierAsian,
	"spreads":      BarrierSpreads,
}

// IsATM reports whether a single-barrier contract sits exactly at the
// money. The check reads the supplied token, not the normalized strike: a
// resolver may turn S0P into an absolute price, but the contract was still
// struck at the money. Two-barrier and barrier-less contracts are never
// ATM.
func IsATM(p *Parameters, category reference.CategoryFacts) bool {
	if category.TwoBarriers || p.HasTwoBarriers() {
		return false
	}
	return p.BarrierToken() == atmBarrierToken
}

// BarrierCategory classifies the contract's barrier behavior. Only the
// up/down category distinguishes ATM from non-ATM; every other category has
// a fixed tag.
func BarrierCategory(p *Parameters, category reference.CategoryFacts) string {
	if category.Code == "callput" {
		if IsATM(p, category) {
			return BarrierEuroATM
		}
		return BarrierEuroNonATM
	}
	return categoryBarrierTags[category.Code]
}

package contract

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Encode builds the shortcode for a canonical parameter record. The pricing
// time is needed only to decide whether the contract is forward-starting
// right now; the sticky starts-as-forward-starting flag carries the marker
// for contracts that have since gone live.
func (c *Codec) Encode(p *Parameters, datePricing time.Time) (string, error) {
	if p.UnderlyingSymbol == "" {
		return "", fmt.Errorf("%w: underlying_symbol", ErrMissingField)
	}
	if p.Payout == nil {
		return "", fmt.Errorf("%w: payout", ErrMissingField)
	}
	if p.DateStart.IsZero() {
		return "", fmt.Errorf("%w: date_start", ErrMissingField)
	}
	if p.TickExpiry {
		if p.TickCount <= 0 {
			return "", fmt.Errorf("%w: tick_count", ErrMissingField)
		}
	} else if p.DateExpiry.IsZero() {
		return "", fmt.Errorf("%w: date_expiry", ErrMissingField)
	}

	typeFacts, ok := c.types.Lookup(p.ContractType)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownContractType, p.ContractType)
	}
	category, ok := c.categories.Lookup(typeFacts.Category)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownCategory, typeFacts.Category)
	}

	startToken := strconv.FormatInt(p.DateStart.Unix(), 10)
	if p.StartsAsForwardStarting || IsForwardStarting(p, datePricing, category) {
		startToken += "F"
	}

	var endToken string
	switch {
	case p.TickExpiry:
		endToken = strconv.Itoa(p.TickCount) + "T"
	case p.FixedExpiry:
		endToken = strconv.FormatInt(p.DateExpiry.Unix(), 10) + "F"
	default:
		endToken = strconv.FormatInt(p.DateExpiry.Unix(), 10)
	}

	fields := []string{p.ContractType, p.UnderlyingSymbol, p.Payout.String(), startToken, endToken}

	// Barriers go on the wire as supplied, not as the resolver normalized
	// them; decode(encode(p)) must reproduce the original tokens.
	if p.HasTwoBarriers() {
		fields = append(fields, p.HighBarrierToken(), p.LowBarrierToken())
	} else if barrier := p.BarrierToken(); barrier != "" && category.BarrierAtStart {
		// The trailing 0 is a legacy artifact every consumer of these
		// strings expects; it marks "single barrier", not a low barrier.
		fields = append(fields, barrier, "0")
	}

	shortcode := strings.ToUpper(strings.Join(fields, "_"))
	p.Shortcode = shortcode
	return shortcode, nil
}

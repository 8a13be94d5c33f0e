package contract

import (
	"time"

	"github.com/junbon-binary/finance-contract/internal/reference"
)

// Duration clamp bounds. A duration outside the band is a data-quality
// signal, represented as the clamped value rather than rejected; callers
// that need to detect it compare the raw duration against these bounds.
const (
	MinDurationDays  = 0.000001
	MaxDurationDays  = 730.0
	MinDurationYears = 1e-9

	secondsPerDay = 86400.0
	daysPerYear   = 365.0
)

// TickOverride lets a contract kind replace the default ticks-to-expiry
// arithmetic. Digit and Asian kinds carry their own rules; everything else
// uses the default.
type TickOverride func(tickCount int) int

// EffectiveStart is the instant duration calculations run from. Backpricing
// past expiry and pricing before the contract is live both anchor to the
// contractual start; the past-expiry branch wins if both ever hold.
func EffectiveStart(p *Parameters, datePricing time.Time) time.Time {
	switch {
	case !p.DateExpiry.IsZero() && datePricing.After(p.DateExpiry):
		return p.DateStart
	case !datePricing.After(p.DateStart):
		return p.DateStart
	default:
		return datePricing
	}
}

// TimeToExpiry is the duration from the given instant to expiry, clamped at
// zero. Whole epoch seconds, matching the shortcode's resolution.
func TimeToExpiry(p *Parameters, from time.Time) time.Duration {
	seconds := p.DateExpiry.Unix() - from.Unix()
	if seconds < 0 {
		seconds = 0
	}
	return time.Duration(seconds) * time.Second
}

// RemainingTime is the duration from the later of the pricing time and the
// contractual start to expiry.
func RemainingTime(p *Parameters, datePricing time.Time) time.Duration {
	when := datePricing
	if !datePricing.After(p.DateStart) {
		when = p.DateStart
	}
	return TimeToExpiry(p, when)
}

// TimeInDays is the duration from the effective start to expiry in days,
// clamped to [MinDurationDays, MaxDurationDays].
func TimeInDays(p *Parameters, datePricing time.Time) float64 {
	days := TimeToExpiry(p, EffectiveStart(p, datePricing)).Seconds() / secondsPerDay
	if days < MinDurationDays {
		return MinDurationDays
	}
	if days > MaxDurationDays {
		return MaxDurationDays
	}
	return days
}

// TimeInYears is TimeInDays over a 365-day year, floored at
// MinDurationYears.
func TimeInYears(p *Parameters, datePricing time.Time) float64 {
	years := TimeInDays(p, datePricing) / daysPerYear
	if years < MinDurationYears {
		return MinDurationYears
	}
	return years
}

// TicksToExpiry is the number of ticks from purchase to settlement. The
// count in the shortcode excludes the entry tick, hence the +1 default.
func TicksToExpiry(p *Parameters, override TickOverride) int {
	if override != nil {
		return override(p.TickCount)
	}
	return p.TickCount + 1
}

// IsForwardStarting reports whether, at the pricing time, the contract's
// life has not yet begun. Categories that disallow forward starting are
// never forward-starting, whatever the dates say.
func IsForwardStarting(p *Parameters, datePricing time.Time, category reference.CategoryFacts) bool {
	return category.AllowForwardStarting && datePricing.Before(p.DateStart)
}

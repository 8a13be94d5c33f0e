// Package market defines the seams between the contract engine and the
// market-data world: the underlying registry, the trading calendar, and the
// barrier strike resolver. The engine only sees these interfaces; the real
// pricing stack supplies its own implementations, and the defaults here are
// enough for decoding, encoding, and tests.
package market

import (
	"fmt"
	"strings"
	"time"
)

// Calendar answers trading-session questions for one underlying.
type Calendar interface {
	// ClosingOn returns the scheduled close on the given date, if the
	// market trades that day.
	ClosingOn(date time.Time) (time.Time, bool)

	// RegularTradingDayAfter returns the next regular trading day strictly
	// after the given date.
	RegularTradingDayAfter(date time.Time) time.Time
}

// StrikeResolver turns a supplied barrier token (relative pip offset,
// absolute price, or signed difference) into its canonical string form for
// the given underlying, contract type, and start time.
type StrikeResolver interface {
	Normalize(token, underlying, contractType string, dateStart time.Time) (string, error)
}

// Underlying is the handle the registry hands out for a symbol.
type Underlying struct {
	Symbol   string
	Calendar Calendar
}

// Registry resolves underlying symbols to their handles.
type Registry interface {
	Resolve(symbol string) (Underlying, error)
}

// WeekdayCalendar is a calendar that trades Monday through Friday and
// closes at a fixed time of day, in the given location.
type WeekdayCalendar struct {
	CloseHour   int
	CloseMinute int
	Location    *time.Location
}

// NewWeekdayCalendar returns a calendar closing at 23:59:59 UTC on
// weekdays, the convention for always-on synthetic underlyings.
func NewWeekdayCalendar() *WeekdayCalendar {
	return &WeekdayCalendar{CloseHour: 23, CloseMinute: 59, Location: time.UTC}
}

func (c *WeekdayCalendar) location() *time.Location {
	if c.Location != nil {
		return c.Location
	}
	return time.UTC
}

// ClosingOn implements Calendar.
func (c *WeekdayCalendar) ClosingOn(date time.Time) (time.Time, bool) {
	wd := date.Weekday()
	if wd == time.Saturday || wd == time.Sunday {
		return time.Time{}, false
	}

	y, m, d := date.Date()
	close := time.Date(y, m, d, c.CloseHour, c.CloseMinute, 59, 0, c.location())
	return close, true
}

// RegularTradingDayAfter implements Calendar.
func (c *WeekdayCalendar) RegularTradingDayAfter(date time.Time) time.Time {
	next := date.AddDate(0, 0, 1)
	for {
		wd := next.Weekday()
		if wd != time.Saturday && wd != time.Sunday {
			return next
		}
		next = next.AddDate(0, 0, 1)
	}
}

// PassthroughStrikeResolver returns barrier tokens unchanged. Real barrier
// canonicalization needs live spot and is owned by the pricing stack.
type PassthroughStrikeResolver struct{}

// Normalize implements StrikeResolver.
func (PassthroughStrikeResolver) Normalize(token, underlying, contractType string, dateStart time.Time) (string, error) {
	return token, nil
}

// StaticRegistry resolves every symbol to one shared calendar. Register
// per-symbol calendars for underlyings with real sessions.
type StaticRegistry struct {
	Default   Calendar
	calendars map[string]Calendar
}

// NewStaticRegistry returns a registry backed by the weekday calendar.
func NewStaticRegistry() *StaticRegistry {
	return &StaticRegistry{Default: NewWeekdayCalendar()}
}

// Register assigns a calendar to one symbol.
func (r *StaticRegistry) Register(symbol string, cal Calendar) {
	if r.calendars == nil {
		r.calendars = make(map[string]Calendar)
	}
	r.calendars[strings.ToUpper(symbol)] = cal
}

// Resolve implements Registry.
func (r *StaticRegistry) Resolve(symbol string) (Underlying, error) {
	if symbol == "" {
		return Underlying{}, fmt.Errorf("market: empty underlying symbol")
	}

	sym := strings.ToUpper(symbol)
	if cal, ok := r.calendars[sym]; ok {
		return Underlying{Symbol: sym, Calendar: cal}, nil
	}
	if r.Default == nil {
		return Underlying{}, fmt.Errorf("market: no calendar for %s", sym)
	}
	return Underlying{Symbol: sym, Calendar: r.Default}, nil
}

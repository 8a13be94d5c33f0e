package contract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/junbon-binary/finance-contract/internal/market"
	"github.com/junbon-binary/finance-contract/internal/reference"
)

// Codec moves between shortcodes and Parameters. It owns no state beyond
// handles to the reference tables and the market collaborators, so a single
// Codec is safe for concurrent use.
type Codec struct {
	types      *reference.TypeTable
	categories *reference.CategoryTable
	registry   market.Registry
	strikes    market.StrikeResolver
}

// NewCodec builds a codec over the given tables and collaborators.
func NewCodec(types *reference.TypeTable, categories *reference.CategoryTable, registry market.Registry, strikes market.StrikeResolver) *Codec {
	return &Codec{
		types:      types,
		categories: categories,
		registry:   registry,
		strikes:    strikes,
	}
}

// typeAliases maps deprecated contract-type codes found in stored
// shortcodes to their canonical replacements.
var typeAliases = map[string]string{
	"INTRADU":    "CALL",
	"INTRADD":    "PUT",
	"FLASHU":     "CALL",
	"FLASHD":     "PUT",
	"DOUBLEUP":   "CALL",
	"DOUBLEDOWN": "PUT",
}

// Shortcode grammar. Order matters: the patterns overlap and are tried
// first to last, so the stricter shapes must come before the permissive
// ones (modern before mixed before no-barrier).
var (
	// _<n>H<n> marks a retired hour-range duration encoding; nothing that
	// carries it can price anymore.
	hourRangePattern = regexp.MustCompile(`_\d+H\d+`)

	// SPREADU_R_100_2_1491965798_20_10_DOLLAR
	spreadPattern = regexp.MustCompile(
		`^(SPREADU|SPREADD)_((?:R_)?[A-Z0-9]+)_(\d*\.?\d+)_(\d+)_(\d*\.?\d+)_(\d*\.?\d+)_(DOLLAR|POINT)$`)

	// CALL_FRXUSDJPY_100_4_MAR_13_11_MAR_13_S0P_0
	legacyDatesPattern = regexp.MustCompile(
		`^([A-Z0-9]+)_((?:R_)?[A-Z0-9]+)_(\d*\.?\d*)_(\d{1,2}_[A-Z]{3}_\d{2})_(\d{1,2}_[A-Z]{3}_\d{2})_(S?[+-]?\d*\.?\d*P?)_(S?[+-]?\d*\.?\d*P?)$`)

	// CALL_FRXUSDJPY_100_1491965798_1491965808_S0P_0
	// CALL_R_100_100_1491965798F_1491965828F_S0P_0
	// DIGITMATCH_R_100_18.18_1491965798_5T_7_0
	modernPattern = regexp.MustCompile(
		`^([A-Z0-9]+)_((?:R_)?[A-Z0-9]+)_(\d*\.?\d*)_(\d+)(F?)_(\d+)([FT]?)_(S?[+-]?\d*\.?\d*P?)_(S?[+-]?\d*\.?\d*P?)$`)

	// CALL_FRXUSDJPY_100_1491965798_11_MAR_13_S0P_0
	mixedPattern = regexp.MustCompile(
		`^([A-Z0-9]+)_((?:R_)?[A-Z0-9]+)_(\d*\.?\d*)_(\d+)_(\d{1,2}_[A-Z]{3}_\d{2})_(S?[+-]?\d*\.?\d*P?)_(S?[+-]?\d*\.?\d*P?)$`)

	// ASIANU_R_100_5.84_1491965798_5T
	noBarrierPattern = regexp.MustCompile(
		`^([A-Z0-9]+)_((?:R_)?[A-Z0-9]+)_(\d*\.?\d*)_(\d+)(F?)_(\d+)([FT]?)$`)
)

// Decode parses a shortcode plus its settlement currency into Parameters.
// Unrecognized or retired shortcodes yield the legacy placeholder, never an
// error: malformed input is a data condition here, not a failure.
func (c *Codec) Decode(shortcode, currency string) (*Parameters, error) {
	if currency == "" {
		return nil, ErrMissingCurrency
	}

	code := strings.ToUpper(shortcode)
	// Sold/expired archives append _E; it carries no parameters.
	code = strings.TrimSuffix(code, "_E")

	probe, _, _ := strings.Cut(code, "_")
	// CLUB shortcodes never used a separator after the type code.
	if strings.HasPrefix(code, "CLUB") {
		probe = "CLUB"
	}
	if canonical, ok := typeAliases[probe]; ok {
		probe = canonical
	}

	if !c.types.Has(probe) || hourRangePattern.MatchString(code) {
		return NewLegacyPlaceholder(currency), nil
	}

	if m := spreadPattern.FindStringSubmatch(code); m != nil {
		return c.decodeSpread(m, shortcode, currency)
	}

	if m := legacyDatesPattern.FindStringSubmatch(code); m != nil {
		return c.decodeLegacyDates(m, shortcode, currency)
	}

	if m := modernPattern.FindStringSubmatch(code); m != nil {
		return c.decodeModern(m, shortcode, currency)
	}

	if m := mixedPattern.FindStringSubmatch(code); m != nil {
		return c.decodeMixed(m, shortcode, currency)
	}

	if m := noBarrierPattern.FindStringSubmatch(code); m != nil {
		return c.decodeNoBarrier(m, shortcode, currency)
	}

	return NewLegacyPlaceholder(currency), nil
}

// decodeSpread handles the spread shape: amount per point, start, stop
// loss, stop profit, and stop type instead of payout and barriers.
func (c *Codec) decodeSpread(m []string, shortcode, currency string) (*Parameters, error) {
	amountPerPoint, err := decimal.NewFromString(m[3])
	if err != nil {
		return NewLegacyPlaceholder(currency), nil
	}
	stopLoss, err := decimal.NewFromString(m[5])
	if err != nil {
		return NewLegacyPlaceholder(currency), nil
	}
	stopProfit, err := decimal.NewFromString(m[6])
	if err != nil {
		return NewLegacyPlaceholder(currency), nil
	}

	return &Parameters{
		ContractType:     m[1],
		UnderlyingSymbol: m[2],
		Currency:         currency,
		DateStart:        epochTime(m[4]),
		Spread: &SpreadParams{
			AmountPerPoint: amountPerPoint,
			StopLoss:       stopLoss,
			StopProfit:     stopProfit,
			StopType:       strings.ToLower(m[7]),
		},
		Shortcode: shortcode,
	}, nil
}

// decodeLegacyDates handles the oldest shape, where both start and expiry
// are day-month-year tokens.
func (c *Codec) decodeLegacyDates(m []string, shortcode, currency string) (*Parameters, error) {
	startDate, err := parseLegacyDate(m[4])
	if err != nil {
		return NewLegacyPlaceholder(currency), nil
	}
	expiryDate, err := parseLegacyDate(m[5])
	if err != nil {
		return NewLegacyPlaceholder(currency), nil
	}

	dateExpiry, err := c.resolveExpiryDate(m[2], expiryDate)
	if err != nil {
		return nil, err
	}

	p := &Parameters{
		ContractType:     canonicalType(m[1]),
		UnderlyingSymbol: m[2],
		Currency:         currency,
		Payout:           parsePayout(m[3]),
		DateStart:        startDate,
		DateExpiry:       dateExpiry,
		FixedExpiry:      true,
		Shortcode:        shortcode,
	}
	if err := c.assignBarriers(p, m[6], m[7]); err != nil {
		return nil, err
	}
	return p, nil
}

// decodeModern handles the current shape: epoch start with an optional
// forward-start marker, then an epoch expiry (optional fixed-expiry marker)
// or a tick count with the tick-expiry marker, then two barrier tokens.
func (c *Codec) decodeModern(m []string, shortcode, currency string) (*Parameters, error) {
	p := &Parameters{
		ContractType:            canonicalType(m[1]),
		UnderlyingSymbol:        m[2],
		Currency:                currency,
		Payout:                  parsePayout(m[3]),
		DateStart:               epochTime(m[4]),
		StartsAsForwardStarting: m[5] == "F",
		Shortcode:               shortcode,
	}

	switch m[7] {
	case "T":
		p.TickExpiry = true
		p.TickCount, _ = strconv.Atoi(m[6])
	case "F":
		p.DateExpiry = epochTime(m[6])
		p.FixedExpiry = true
	default:
		p.DateExpiry = epochTime(m[6])
	}

	if err := c.assignBarriers(p, m[8], m[9]); err != nil {
		return nil, err
	}
	return p, nil
}

// decodeMixed handles an epoch start with a day-month-year expiry, which
// always means a fixed expiry.
func (c *Codec) decodeMixed(m []string, shortcode, currency string) (*Parameters, error) {
	expiryDate, err := parseLegacyDate(m[5])
	if err != nil {
		return NewLegacyPlaceholder(currency), nil
	}
	dateExpiry, err := c.resolveExpiryDate(m[2], expiryDate)
	if err != nil {
		return nil, err
	}

	p := &Parameters{
		ContractType:     canonicalType(m[1]),
		UnderlyingSymbol: m[2],
		Currency:         currency,
		Payout:           parsePayout(m[3]),
		DateStart:        epochTime(m[4]),
		DateExpiry:       dateExpiry,
		FixedExpiry:      true,
		Shortcode:        shortcode,
	}
	if err := c.assignBarriers(p, m[6], m[7]); err != nil {
		return nil, err
	}
	return p, nil
}

// decodeNoBarrier handles contracts with no barrier concept at all. The
// start and end tokens carry the same markers as the modern shape.
func (c *Codec) decodeNoBarrier(m []string, shortcode, currency string) (*Parameters, error) {
	p := &Parameters{
		ContractType:            canonicalType(m[1]),
		UnderlyingSymbol:        m[2],
		Currency:                currency,
		Payout:                  parsePayout(m[3]),
		DateStart:               epochTime(m[4]),
		StartsAsForwardStarting: m[5] == "F",
		Shortcode:               shortcode,
	}

	switch m[7] {
	case "T":
		p.TickExpiry = true
		p.TickCount, _ = strconv.Atoi(m[6])
	case "F":
		p.DateExpiry = epochTime(m[6])
		p.FixedExpiry = true
	default:
		p.DateExpiry = epochTime(m[6])
	}
	return p, nil
}

// assignBarriers normalizes the captured barrier tokens and places them on
// the record. A low token of "0" is the single-barrier placeholder, not a
// real barrier; both tokens empty means no barrier at all.
func (c *Codec) assignBarriers(p *Parameters, first, second string) error {
	switch {
	case first != "" && second != "" && second != "0":
		high, err := c.normalizeBarrier(p, first)
		if err != nil {
			return err
		}
		low, err := c.normalizeBarrier(p, second)
		if err != nil {
			return err
		}
		p.SuppliedHighBarrier = first
		p.SuppliedLowBarrier = second
		p.HighBarrier = high
		p.LowBarrier = low

	case first != "":
		barrier, err := c.normalizeBarrier(p, first)
		if err != nil {
			return err
		}
		p.SuppliedBarrier = first
		p.Barrier = barrier

		// Tick trades express their prediction through the barrier slot.
		if p.TickExpiry {
			if pred, err := decimal.NewFromString(first); err == nil {
				p.Prediction = &pred
			}
		}
	}
	return nil
}

func (c *Codec) normalizeBarrier(p *Parameters, token string) (string, error) {
	normalized, err := c.strikes.Normalize(token, p.UnderlyingSymbol, p.ContractType, p.DateStart)
	if err != nil {
		return "", fmt.Errorf("barrier %q: %w", token, err)
	}
	return normalized, nil
}

// resolveExpiryDate turns a day-level expiry date into the instant the
// contract settles. If the market has a scheduled close that day, that is
// the answer. Otherwise the regular close time of the next trading session
// is combined with the requested date. The combined instant is not itself
// a scheduled trading time; downstream consumers depend on exactly this
// value, so it must not be corrected here.
func (c *Codec) resolveExpiryDate(symbol string, date time.Time) (time.Time, error) {
	underlying, err := c.registry.Resolve(symbol)
	if err != nil {
		return time.Time{}, err
	}

	if closeAt, ok := underlying.Calendar.ClosingOn(date); ok {
		return closeAt, nil
	}

	nextDay := underlying.Calendar.RegularTradingDayAfter(date)
	closeAt, ok := underlying.Calendar.ClosingOn(nextDay)
	if !ok {
		return time.Time{}, fmt.Errorf("contract: no regular close after %s for %s",
			date.Format("2006-01-02"), symbol)
	}

	y, mo, d := date.Date()
	h, mi, s := closeAt.Clock()
	return time.Date(y, mo, d, h, mi, s, 0, closeAt.Location()), nil
}

// canonicalType collapses deprecated aliases to their current type code.
func canonicalType(code string) string {
	if canonical, ok := typeAliases[code]; ok {
		return canonical
	}
	return code
}

func parsePayout(token string) *decimal.Decimal {
	if token == "" {
		return nil
	}
	payout, err := decimal.NewFromString(token)
	if err != nil {
		return nil
	}
	return &payout
}

func epochTime(token string) time.Time {
	epoch, _ := strconv.ParseInt(token, 10, 64)
	return time.Unix(epoch, 0).UTC()
}

// parseLegacyDate parses day-month-year tokens such as 4_MAR_13.
func parseLegacyDate(token string) (time.Time, error) {
	parts := strings.Split(token, "_")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("contract: bad date token %q", token)
	}
	month := parts[1]
	if len(month) == 3 {
		month = month[:1] + strings.ToLower(month[1:])
	}

	t, err := time.Parse("2_Jan_06", parts[0]+"_"+month+"_"+parts[2])
	if err != nil {
		return time.Time{}, fmt.Errorf("contract: bad date token %q: %w", token, err)
	}
	return t.UTC(), nil
}

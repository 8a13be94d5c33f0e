package contract

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decimalPtr(d decimal.Decimal) *decimal.Decimal {
	return &d
}

func TestEncode(t *testing.T) {
	codec := newTestCodec(t)
	pricedAt := time.Unix(1491965800, 0).UTC()

	p := &Parameters{
		ContractType:     "CALL",
		UnderlyingSymbol: "FRXUSDJPY",
		Currency:         "USD",
		Payout:           decimalPtr(decimal.NewFromInt(100)),
		DateStart:        time.Unix(1491965798, 0).UTC(),
		DateExpiry:       time.Unix(1491965808, 0).UTC(),
		Barrier:          "S0P",
	}

	shortcode, err := codec.Encode(p, pricedAt)
	require.NoError(t, err)
	assert.Equal(t, "CALL_FRXUSDJPY_100_1491965798_1491965808_S0P_0", shortcode)
	assert.Equal(t, shortcode, p.Shortcode)
}

func TestEncodeMissingFields(t *testing.T) {
	codec := newTestCodec(t)
	pricedAt := time.Unix(1491965800, 0).UTC()

	base := func() *Parameters {
		return &Parameters{
			ContractType:     "CALL",
			UnderlyingSymbol: "FRXUSDJPY",
			Currency:         "USD",
			Payout:           decimalPtr(decimal.NewFromInt(100)),
			DateStart:        time.Unix(1491965798, 0).UTC(),
			DateExpiry:       time.Unix(1491965808, 0).UTC(),
			Barrier:          "S0P",
		}
	}

	tests := []struct {
		name   string
		mutate func(*Parameters)
	}{
		{"no underlying", func(p *Parameters) { p.UnderlyingSymbol = "" }},
		{"no payout", func(p *Parameters) { p.Payout = nil }},
		{"no start", func(p *Parameters) { p.DateStart = time.Time{} }},
		{"no expiry", func(p *Parameters) { p.DateExpiry = time.Time{} }},
		{"tick expiry without count", func(p *Parameters) { p.TickExpiry = true; p.TickCount = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := base()
			tt.mutate(p)
			_, err := codec.Encode(p, pricedAt)
			assert.ErrorIs(t, err, ErrMissingField)
		})
	}
}

func TestEncodeUnknownType(t *testing.T) {
	codec := newTestCodec(t)

	p := &Parameters{
		ContractType:     "WAGER",
		UnderlyingSymbol: "FRXUSDJPY",
		Payout:           decimalPtr(decimal.NewFromInt(100)),
		DateStart:        time.Unix(1491965798, 0).UTC(),
		DateExpiry:       time.Unix(1491965808, 0).UTC(),
	}

	_, err := codec.Encode(p, time.Unix(1491965800, 0))
	assert.ErrorIs(t, err, ErrUnknownContractType)
}

func TestEncodeForwardStarting(t *testing.T) {
	codec := newTestCodec(t)

	p := &Parameters{
		ContractType:     "CALL",
		UnderlyingSymbol: "FRXUSDJPY",
		Currency:         "USD",
		Payout:           decimalPtr(decimal.NewFromInt(100)),
		DateStart:        time.Unix(1491965798, 0).UTC(),
		DateExpiry:       time.Unix(1491965808, 0).UTC(),
		Barrier:          "S0P",
	}

	// Priced before start: forward-starting right now
	shortcode, err := codec.Encode(p, time.Unix(1491965700, 0).UTC())
	require.NoError(t, err)
	assert.Equal(t, "CALL_FRXUSDJPY_100_1491965798F_1491965808_S0P_0", shortcode)

	// The sticky flag keeps the marker after the contract goes live
	p.Shortcode = ""
	p.StartsAsForwardStarting = true
	shortcode, err = codec.Encode(p, time.Unix(1491965805, 0).UTC())
	require.NoError(t, err)
	assert.Equal(t, "CALL_FRXUSDJPY_100_1491965798F_1491965808_S0P_0", shortcode)
}

func TestEncodeTickExpiry(t *testing.T) {
	codec := newTestCodec(t)

	p := &Parameters{
		ContractType:     "DIGITMATCH",
		UnderlyingSymbol: "R_100",
		Currency:         "USD",
		Payout:           decimalPtr(decimal.NewFromFloat(18.18)),
		DateStart:        time.Unix(1491965798, 0).UTC(),
		TickExpiry:       true,
		TickCount:        5,
		Barrier:          "7",
	}

	shortcode, err := codec.Encode(p, time.Unix(1491965800, 0).UTC())
	require.NoError(t, err)
	assert.Equal(t, "DIGITMATCH_R_100_18.18_1491965798_5T_7_0", shortcode)
}

func TestEncodeFixedExpiry(t *testing.T) {
	codec := newTestCodec(t)

	p := &Parameters{
		ContractType:     "CALL",
		UnderlyingSymbol: "FRXUSDJPY",
		Currency:         "USD",
		Payout:           decimalPtr(decimal.NewFromInt(100)),
		DateStart:        time.Unix(1491965798, 0).UTC(),
		DateExpiry:       time.Unix(1491965808, 0).UTC(),
		FixedExpiry:      true,
		Barrier:          "S0P",
	}

	shortcode, err := codec.Encode(p, time.Unix(1491965800, 0).UTC())
	require.NoError(t, err)
	assert.Equal(t, "CALL_FRXUSDJPY_100_1491965798_1491965808F_S0P_0", shortcode)
}

func TestEncodeTwoBarriers(t *testing.T) {
	codec := newTestCodec(t)

	p := &Parameters{
		ContractType:     "EXPIRYRANGE",
		UnderlyingSymbol: "FRXUSDJPY",
		Currency:         "USD",
		Payout:           decimalPtr(decimal.NewFromInt(100)),
		DateStart:        time.Unix(1491965798, 0).UTC(),
		DateExpiry:       time.Unix(1491965808, 0).UTC(),
		HighBarrier:      "1.15",
		LowBarrier:       "1.05",
	}

	shortcode, err := codec.Encode(p, time.Unix(1491965800, 0).UTC())
	require.NoError(t, err)
	assert.Equal(t, "EXPIRYRANGE_FRXUSDJPY_100_1491965798_1491965808_1.15_1.05", shortcode)
}

func TestEncodeBarrierNotKnownAtStart(t *testing.T) {
	codec := newTestCodec(t)

	// Asian barriers are computed at settlement, so the shortcode never
	// carries one even if the record does.
	p := &Parameters{
		ContractType:     "ASIANU",
		UnderlyingSymbol: "R_100",
		Currency:         "USD",
		Payout:           decimalPtr(decimal.NewFromFloat(5.84)),
		DateStart:        time.Unix(1491965798, 0).UTC(),
		TickExpiry:       true,
		TickCount:        5,
		Barrier:          "78.123",
	}

	shortcode, err := codec.Encode(p, time.Unix(1491965800, 0).UTC())
	require.NoError(t, err)
	assert.Equal(t, "ASIANU_R_100_5.84_1491965798_5T", shortcode)
}

func TestEncodeThenDecode(t *testing.T) {
	codec := newTestCodec(t)
	pricedAt := time.Unix(1491965810, 0).UTC()

	p := &Parameters{
		ContractType:     "PUT",
		UnderlyingSymbol: "FRXEURUSD",
		Currency:         "USD",
		Payout:           decimalPtr(decimal.NewFromFloat(19.54)),
		DateStart:        time.Unix(1491965798, 0).UTC(),
		DateExpiry:       time.Unix(1491965808, 0).UTC(),
		Barrier:          "S10P",
	}

	shortcode, err := codec.Encode(p, pricedAt)
	require.NoError(t, err)

	decoded, err := codec.Decode(shortcode, "USD")
	require.NoError(t, err)
	assert.Equal(t, p.ContractType, decoded.ContractType)
	assert.Equal(t, p.UnderlyingSymbol, decoded.UnderlyingSymbol)
	assert.True(t, p.Payout.Equal(*decoded.Payout))
	assert.True(t, p.DateStart.Equal(decoded.DateStart))
	assert.True(t, p.DateExpiry.Equal(decoded.DateExpiry))
	assert.Equal(t, p.Barrier, decoded.Barrier)
	assert.Empty(t, decoded.HighBarrier)
	assert.Empty(t, decoded.LowBarrier)
}

func TestRoundTrip(t *testing.T) {
	codec := newTestCodec(t)
	pricedAt := time.Unix(1491965810, 0).UTC()

	shortcodes := []string{
		"CALL_FRXUSDJPY_100_1491965798_1491965808_S0P_0",
		"PUT_R_100_19.54_1491965798_1491965808_S10P_0",
		"EXPIRYRANGE_FRXUSDJPY_100_1491965798_1491965808_1.15_1.05",
		"ONETOUCH_FRXEURUSD_250_1491965798_1492051200F_1.12_0",
		"DIGITMATCH_R_100_18.18_1491965798_5T_7_0",
		"ASIANU_R_100_5.84_1491965798_5T",
	}

	for _, want := range shortcodes {
		t.Run(want, func(t *testing.T) {
			p, err := codec.Decode(want, "USD")
			require.NoError(t, err)
			require.False(t, p.IsLegacy())

			p.Shortcode = ""
			got, err := codec.Encode(p, pricedAt)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

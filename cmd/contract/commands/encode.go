package commands

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/junbon-binary/finance-contract/internal/contract"
)

var (
	encodeType        string
	encodeUnderlying  string
	encodePayout      string
	encodeStart       int64
	encodeExpiry      int64
	encodeTickCount   int
	encodeFixedExpiry bool
	encodeBarrier     string
	encodeHighBarrier string
	encodeLowBarrier  string
)

// encodeCmd represents the encode command
var encodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Build a shortcode from contract parameters",
	Long: `Validate a parameter set against the reference tables and emit its
canonical shortcode.

Example:
  go run ./cmd/contract encode --type CALL --underlying FRXUSDJPY --payout 100 \
      --start 1491965798 --expiry 1491965808 --barrier S0P
  go run ./cmd/contract encode --type DIGITMATCH --underlying R_100 --payout 18.18 \
      --start 1491965798 --tick-count 5 --barrier 7`,
	RunE: runEncode,
}

func init() {
	rootCmd.AddCommand(encodeCmd)

	encodeCmd.Flags().StringVar(&encodeType, "type", "", "contract type code, e.g. CALL (required)")
	encodeCmd.Flags().StringVar(&encodeUnderlying, "underlying", "", "underlying symbol, e.g. FRXUSDJPY (required)")
	encodeCmd.Flags().StringVar(&encodePayout, "payout", "", "payout amount in the settlement currency")
	encodeCmd.Flags().Int64Var(&encodeStart, "start", 0, "start time as epoch seconds (required)")
	encodeCmd.Flags().Int64Var(&encodeExpiry, "expiry", 0, "expiry time as epoch seconds")
	encodeCmd.Flags().IntVar(&encodeTickCount, "tick-count", 0, "tick count for tick-expiry contracts")
	encodeCmd.Flags().BoolVar(&encodeFixedExpiry, "fixed-expiry", false, "mark the expiry as fixed")
	encodeCmd.Flags().StringVar(&encodeBarrier, "barrier", "", "single barrier token, e.g. S0P")
	encodeCmd.Flags().StringVar(&encodeHighBarrier, "high-barrier", "", "high barrier for two-barrier kinds")
	encodeCmd.Flags().StringVar(&encodeLowBarrier, "low-barrier", "", "low barrier for two-barrier kinds")

	encodeCmd.MarkFlagRequired("type")
	encodeCmd.MarkFlagRequired("underlying")
	encodeCmd.MarkFlagRequired("start")
}

func runEncode(cmd *cobra.Command, args []string) error {
	factory, log, err := setup()
	if err != nil {
		return err
	}

	p := &contract.Parameters{
		ContractType:     encodeType,
		UnderlyingSymbol: encodeUnderlying,
		Currency:         currency,
		DateStart:        time.Unix(encodeStart, 0).UTC(),
		FixedExpiry:      encodeFixedExpiry,
		Barrier:          encodeBarrier,
		HighBarrier:      encodeHighBarrier,
		LowBarrier:       encodeLowBarrier,
	}
	if encodePayout != "" {
		payout, err := decimal.NewFromString(encodePayout)
		if err != nil {
			return fmt.Errorf("parse --payout: %w", err)
		}
		p.Payout = &payout
	}
	if encodeExpiry > 0 {
		p.DateExpiry = time.Unix(encodeExpiry, 0).UTC()
	}
	if encodeTickCount > 0 {
		p.TickCount = encodeTickCount
		p.TickExpiry = true
	}

	c, err := factory.FromParameters(p, pricingReference())
	if err != nil {
		log.WithError(err).Error("Parameter validation failed")
		return err
	}

	shortcode, err := c.Shortcode()
	if err != nil {
		log.WithError(err).Error("Encode failed")
		return err
	}

	fmt.Println(shortcode)
	return nil
}

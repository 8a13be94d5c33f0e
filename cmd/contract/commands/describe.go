package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// describeCmd represents the describe command
var describeCmd = &cobra.Command{
	Use:   "describe <shortcode>",
	Short: "Show a contract's static facts and derived attributes",
	Long: `Assemble the full contract from a shortcode and print its static facts
(type, category, display metadata) together with the attributes derived
at the pricing reference time (effective start, remaining time, barrier
classification).

Example:
  go run ./cmd/contract describe CALL_FRXUSDJPY_100_1491965798_1491965808_S0P_0
  go run ./cmd/contract describe DIGITMATCH_R_100_18.18_1491965798_5T_7_0 --pricing-time 1491965800`,
	Args: cobra.ExactArgs(1),
	RunE: runDescribe,
}

func init() {
	rootCmd.AddCommand(describeCmd)
}

func runDescribe(cmd *cobra.Command, args []string) error {
	factory, log, err := setup()
	if err != nil {
		return err
	}

	pricedAt := pricingReference()
	c, err := factory.FromShortcode(args[0], currency, pricedAt)
	if err != nil {
		log.WithError(err).Error("Failed to assemble contract")
		return err
	}

	PrintHeader(args[0])

	if c.IsLegacy() {
		PrintWarning("Legacy shortcode: placeholder contract, will not price")
		PrintDoubleSeparator()
		return nil
	}

	const w = 14
	p := c.Params()
	PrintKeyValue("Type", fmt.Sprintf("%s (%s, %s)", c.Type().Code, c.Type().DisplayName, c.Type().Sentiment), w)
	PrintKeyValue("Category", fmt.Sprintf("%s (%s)", c.Category().Code, c.Category().DisplayName), w)
	PrintKeyValue("Underlying", p.UnderlyingSymbol, w)
	PrintKeyValue("Currency", p.Currency, w)
	if p.Payout != nil {
		PrintKeyValue("Payout", p.Payout.String(), w)
	}
	if p.Spread != nil {
		PrintKeyValue("Amount/point", fmt.Sprintf("%s (stop type %s)", p.Spread.AmountPerPoint.String(), p.Spread.StopType), w)
		PrintKeyValue("Stop loss", p.Spread.StopLoss.String(), w)
		PrintKeyValue("Stop profit", p.Spread.StopProfit.String(), w)
	}

	PrintKeyValue("Start", p.DateStart.UTC().String(), w)
	if p.TickExpiry {
		PrintKeyValue("Expiry", fmt.Sprintf("%d ticks (%d to settlement)", p.TickCount, c.TicksToExpiry()), w)
	} else if !p.DateExpiry.IsZero() {
		PrintKeyValue("Expiry", fmt.Sprintf("%s (fixed: %v)", p.DateExpiry.UTC(), p.FixedExpiry), w)
	}

	PrintSeparator()
	PrintKeyValue("Priced at", pricedAt.String(), w)
	PrintKeyValue("EffectiveStart", c.EffectiveStart().UTC().String(), w)
	PrintKeyValue("Remaining", c.RemainingTime().String(), w)
	PrintKeyValue("Days to expiry", fmt.Sprintf("%.6f", c.TimeInDays()), w)
	PrintKeyValue("Years", fmt.Sprintf("%.9f", c.TimeInYears()), w)
	PrintKeyValue("Forward start", fmt.Sprintf("%v (sticky: %v)", c.IsForwardStarting(), p.StartsAsForwardStarting), w)

	if p.HasTwoBarriers() {
		PrintKeyValue("Barriers", fmt.Sprintf("high %s / low %s", p.HighBarrier, p.LowBarrier), w)
	} else if p.Barrier != "" {
		PrintKeyValue("Barrier", p.Barrier, w)
	}
	PrintKeyValue("Barrier class", fmt.Sprintf("%s (ATM: %v)", c.BarrierCategory(), c.IsATM()), w)
	PrintDoubleSeparator()
	return nil
}

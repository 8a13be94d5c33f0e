package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

// decodeCmd represents the decode command
var decodeCmd = &cobra.Command{
	Use:   "decode <shortcode>",
	Short: "Decode a shortcode into its canonical parameters",
	Long: `Decode a shortcode into the canonical parameter record, printed as JSON.

Unrecognized or retired shortcodes decode to the legacy placeholder
(contract_type "Invalid") rather than failing; the command exits zero in
that case so batch pipelines can filter on the output instead of the
exit code.

Example:
  go run ./cmd/contract decode CALL_FRXUSDJPY_100_1491965798_1491965808_S0P_0
  go run ./cmd/contract decode ASIANU_R_100_5.84_1491965798_5T --currency EUR`,
	Args: cobra.ExactArgs(1),
	RunE: runDecode,
}

func init() {
	rootCmd.AddCommand(decodeCmd)
}

func runDecode(cmd *cobra.Command, args []string) error {
	factory, log, err := setup()
	if err != nil {
		return err
	}

	params, err := factory.Codec().Decode(args[0], currency)
	if err != nil {
		log.WithError(err).Error("Decode failed")
		return err
	}

	if params.IsLegacy() {
		log.WithField("shortcode", args[0]).Warn("Shortcode is legacy; emitting placeholder")
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(params); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}

// pricingReference resolves the --pricing-time flag, defaulting to now.
func pricingReference() time.Time {
	if pricingTime > 0 {
		return time.Unix(pricingTime, 0).UTC()
	}
	return time.Now().UTC()
}

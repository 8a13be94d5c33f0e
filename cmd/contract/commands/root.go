package commands

import (
	"github.com/spf13/cobra"

	"github.com/junbon-binary/finance-contract/internal/contract"
	"github.com/junbon-binary/finance-contract/internal/market"
	"github.com/junbon-binary/finance-contract/internal/reference"
	"github.com/junbon-binary/finance-contract/pkg/config"
	"github.com/junbon-binary/finance-contract/pkg/logger"
)

var (
	// Global flags
	currency    string
	pricingTime int64
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "contract",
	Short: "Options contract shortcode toolbox",
	Long: `Decode, encode, and describe options contract shortcodes.

A shortcode is the compact textual identifier a contract is stored and
transported as, e.g. CALL_FRXUSDJPY_100_1491965798_1491965808_S0P_0.
The settlement currency is the one parameter a shortcode does not carry,
so every command takes --currency.

Usage:
  go run ./cmd/contract [command]

Examples:
  go run ./cmd/contract decode CALL_FRXUSDJPY_100_1491965798_1491965808_S0P_0
  go run ./cmd/contract describe CALL_FRXUSDJPY_100_1491965798_1491965808_S0P_0
  go run ./cmd/contract encode --type CALL --underlying FRXUSDJPY --payout 100 \
      --start 1491965798 --expiry 1491965808 --barrier S0P`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&currency, "currency", "USD", "settlement currency (ISO code)")
	rootCmd.PersistentFlags().Int64Var(&pricingTime, "pricing-time", 0, "pricing reference time as epoch seconds (default: now)")
}

// setup loads configuration and assembles the contract factory all
// subcommands share.
func setup() (*contract.Factory, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	log := logger.New(cfg)

	types := reference.DefaultTypes()
	categories := reference.DefaultCategories()
	if cfg.ContractTypesPath != "" {
		types, err = reference.LoadTypes(cfg.ContractTypesPath)
		if err != nil {
			log.WithError(err).Error("Failed to load contract type table")
			return nil, nil, err
		}
		categories, err = reference.LoadCategories(cfg.ContractCategoriesPath)
		if err != nil {
			log.WithError(err).Error("Failed to load contract category table")
			return nil, nil, err
		}
		log.WithFields(map[string]interface{}{
			"types":      types.Count(),
			"categories": categories.Count(),
		}).Info("Reference tables loaded from files")
	}

	factory := contract.NewFactory(types, categories,
		market.NewStaticRegistry(), market.PassthroughStrikeResolver{})
	return factory, log, nil
}

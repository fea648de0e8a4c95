package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/weikunhan/reportsmith/config"
	"github.com/weikunhan/reportsmith/report"
)

var rootCmd = &cobra.Command{
	Use:   "reportsmith",
	Short: "Assemble brokerage activity exports into master logs and position ledgers",
	Long: `Reportsmith turns overlapping brokerage activity exports into clean artifacts.

It provides tools for:
  - Concatenating sequential report parts without duplicating boundary rows
  - Reconstructing per-instrument position ledgers with realized profit
  - Writing per-instrument XLSX workbooks (STOCK and OPTION sheets)
  - Keeping assembled master records in a queryable SQLite store`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

var cfgFile string

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (YAML or JSON; defaults are used when omitted)")
}

// loadConfig resolves the run configuration: the file named by --config, or
// the built-in defaults.
func loadConfig() (*config.Config, error) {
	if cfgFile == "" {
		return config.Default(), nil
	}
	cfg, err := config.LoadFromFile(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// loadRules resolves the transaction classification: the configured JSON
// document, or the built-in vocabulary.
func loadRules(cfg *config.Config) (report.Classification, error) {
	if cfg.Paths.RulesFile == "" {
		return report.DefaultClassification(), nil
	}
	return report.LoadClassification(cfg.Paths.RulesFile)
}

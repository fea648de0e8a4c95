package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/weikunhan/reportsmith/report"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a master file into per-instrument ledger workbooks",
	Long: `Rebuild per-instrument position ledgers from an assembled master file.

Every instrument gets one XLSX workbook with a STOCK and an OPTION sheet.
Rows are aggregated by date, code, price and day-trade cycle (stock) or
option leg, newest first; realized profit appears on the row that closes a
position back to zero.

Examples:
  reportsmith convert
  reportsmith convert --config reportsmith.yaml --out-dir ./workbooks`,
	RunE: runConvert,
}

var (
	convertMasterName string
	convertOutDir     string
)

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVarP(&convertMasterName, "master", "m", "", "master file name (overrides config)")
	convertCmd.Flags().StringVarP(&convertOutDir, "out-dir", "O", "", "workbook output directory (overrides config)")
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if convertMasterName != "" {
		cfg.Output.MasterName = convertMasterName
	}
	if convertOutDir != "" {
		cfg.Output.WorkbookDir = convertOutDir
	}

	lg, logFile, err := report.NewRunLogger(cfg.Paths.LogDir)
	if err != nil {
		return err
	}
	defer logFile.Close()

	rules, err := loadRules(cfg)
	if err != nil {
		lg.Errorf("%v", err)
		return err
	}

	masterPath := filepath.Join(cfg.Paths.DataDir, cfg.Output.MasterName)
	recs, err := report.LoadMaster(masterPath, lg)
	if err != nil {
		lg.Errorf("%v", err)
		return err
	}

	if err := os.MkdirAll(cfg.Output.WorkbookDir, 0o755); err != nil {
		return fmt.Errorf("create workbook dir: %w", err)
	}

	// Group by normalized instrument, keeping first-appearance order.
	var order []string
	grouped := make(map[string][]report.Record)
	for _, rec := range recs {
		inst := report.NormalizeInstrument(rec.Instrument)
		if inst == "" {
			continue
		}
		if _, ok := grouped[inst]; !ok {
			order = append(order, inst)
		}
		grouped[inst] = append(grouped[inst], rec)
	}

	for _, inst := range order {
		stock := report.NewStockLedger(rules, lg)
		option := report.NewOptionLedger(rules, lg)

		for _, rec := range grouped[inst] {
			kind, ok := rules.KindFor(rec.TransCode)
			if !ok {
				lg.Warnf("%s %s: transaction code %q not handled", inst, rec.ActivityDate, rec.TransCode)
				continue
			}
			if kind == report.KindStock {
				stock.Add(rec)
			} else {
				option.Add(rec)
			}
		}

		path := filepath.Join(cfg.Output.WorkbookDir, inst+".xlsx")
		if err := report.WriteWorkbook(path, stock.Rows(), option.Rows()); err != nil {
			lg.Errorf("%v", err)
			return err
		}
		lg.Infof("wrote %s", path)
	}

	lg.Infof("converted %d instruments from %s", len(order), masterPath)
	return nil
}

package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/weikunhan/reportsmith/id"
	"github.com/weikunhan/reportsmith/report"
	"github.com/weikunhan/reportsmith/store"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Keep and query master records in SQLite",
	Long: `Persist assembled master files into a SQLite store and query them.

Subcommands:
  import     - Import a master CSV as a new run
  instrument - List stored records for an instrument
  day        - List stored records for an activity date
  runs       - List import runs

Examples:
  reportsmith store import ./data/master.csv
  reportsmith store instrument AAPL
  reportsmith store day 6/21/2024`,
}

var storeImportCmd = &cobra.Command{
	Use:   "import <master.csv>",
	Short: "Import a master CSV into the store",
	Args:  cobra.ExactArgs(1),
	RunE:  runStoreImport,
}

var storeInstrumentCmd = &cobra.Command{
	Use:   "instrument <TICKER>",
	Short: "List stored records for an instrument",
	Args:  cobra.ExactArgs(1),
	RunE:  runStoreInstrument,
}

var storeDayCmd = &cobra.Command{
	Use:   "day <activity-date>",
	Short: "List stored records for an activity date (export date format)",
	Args:  cobra.ExactArgs(1),
	RunE:  runStoreDay,
}

var storeRunsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List import runs",
	Args:  cobra.NoArgs,
	RunE:  runStoreRuns,
}

var storeDBPath string

func init() {
	rootCmd.AddCommand(storeCmd)
	storeCmd.AddCommand(storeImportCmd)
	storeCmd.AddCommand(storeInstrumentCmd)
	storeCmd.AddCommand(storeDayCmd)
	storeCmd.AddCommand(storeRunsCmd)

	storeCmd.PersistentFlags().StringVarP(&storeDBPath, "db", "b", "", "path to the SQLite store (overrides config)")
}

func openStore() (*store.SQLite, error) {
	path := storeDBPath
	if path == "" {
		cfg, err := loadConfig()
		if err != nil {
			return nil, err
		}
		path = cfg.Store.DBPath
	}
	if path == "" {
		return nil, fmt.Errorf("no store path: set store.db_path or pass --db")
	}

	s, err := store.NewSQLite(path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return s, nil
}

func runStoreImport(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	source := args[0]
	recs, err := report.LoadMaster(source, nil)
	if err != nil {
		return err
	}

	run := store.ImportRun{
		ImportID:   id.New(),
		Source:     source,
		ImportedAt: time.Now().UTC(),
		Rows:       len(recs),
	}
	if err := s.ImportMaster(run, recs); err != nil {
		return fmt.Errorf("import master: %w", err)
	}

	fmt.Printf("imported %d rows from %s as run %s\n", run.Rows, source, run.ImportID)
	return nil
}

func runStoreInstrument(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	recs, err := s.ListByInstrument(args[0])
	if err != nil {
		return fmt.Errorf("query records: %w", err)
	}
	printRecords(recs)
	return nil
}

func runStoreDay(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	recs, err := s.ListByDay(args[0])
	if err != nil {
		return fmt.Errorf("query records: %w", err)
	}
	printRecords(recs)
	return nil
}

func runStoreRuns(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	runs, err := s.ListImports()
	if err != nil {
		return fmt.Errorf("query runs: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "IMPORT ID\tSOURCE\tIMPORTED AT\tROWS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\n",
			run.ImportID, run.Source, run.ImportedAt.Format(time.RFC3339), run.Rows)
	}
	return w.Flush()
}

func printRecords(recs []report.Record) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tINSTRUMENT\tCODE\tQUANTITY\tPRICE\tAMOUNT\tDESCRIPTION")
	for _, rec := range recs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\t%s\n",
			rec.ActivityDate, rec.Instrument, rec.TransCode,
			rec.Quantity, rec.Price, rec.Amount, rec.Description)
	}
	w.Flush()
}

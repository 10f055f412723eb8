package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"statbook/adapters/excel"
	"statbook/adapters/postgres"
	"statbook/domain/dataset"
	"statbook/internal"
	"statbook/internal/config"
	"statbook/internal/errors"
	"statbook/ports"
)

// globalFlags are shared by every subcommand
type globalFlags struct {
	file     string
	sheet    string
	sql      string
	columns  []string
	alpha    float64
	lang     string
	logLevel string

	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:           "statbook",
		Short:         "Notebook-style descriptive statistics and hypothesis tests",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.load()
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&g.file, "file", "f", "", "CSV or XLSX file with a header row")
	pf.StringVar(&g.sheet, "sheet", "", "Worksheet to read from an XLSX file (default: first sheet)")
	pf.StringVar(&g.sql, "sql", "", "SQL query run against DATABASE_URL instead of --file")
	pf.StringSliceVarP(&g.columns, "columns", "c", nil, "Columns to use, in order (default: all)")
	pf.Float64Var(&g.alpha, "alpha", 0, "Significance threshold (default: STATBOOK_ALPHA or 0.05)")
	pf.StringVar(&g.lang, "lang", "", "Report language: en or pt-BR (default: STATBOOK_LANG)")
	pf.StringVar(&g.logLevel, "log-level", "", "ERROR, WARN, INFO, DEBUG or TRACE (default: LOG_LEVEL)")

	rootCmd.AddCommand(
		newFreqCmd(g),
		newDescribeCmd(g),
		newPlotCmd(g),
	)
	rootCmd.AddCommand(newTestCmds(g)...)

	return rootCmd
}

// load reads the environment configuration and applies flag overrides
func (g *globalFlags) load() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if g.alpha != 0 {
		cfg.Analysis.Alpha = g.alpha
	}
	if g.lang != "" {
		tag, err := language.Parse(g.lang)
		if err != nil {
			return errors.InvalidInput(fmt.Sprintf("invalid --lang %q", g.lang))
		}
		cfg.Analysis.Language = tag
	}
	if g.logLevel != "" {
		cfg.LogLevel = g.logLevel
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	level, ok := internal.ParseLogLevel(cfg.LogLevel)
	if !ok {
		level = internal.LogLevelWarn
	}
	internal.DefaultLogger.SetLevel(level)

	g.cfg = cfg
	return nil
}

// reader picks the data source named by the flags
func (g *globalFlags) reader(ctx context.Context) (ports.DatasetReader, func(), error) {
	switch {
	case g.sql != "" && g.file != "":
		return nil, nil, errors.InvalidInput("use either --file or --sql, not both")
	case g.sql != "":
		db, err := postgres.Connect(ctx, g.cfg.Database.URL)
		if err != nil {
			return nil, nil, err
		}
		return postgres.NewQueryReader(db, g.sql), func() { db.Close() }, nil
	case g.file != "":
		r := excel.NewDataReader(g.file)
		r.Sheet = g.sheet
		return r, func() {}, nil
	}
	return nil, nil, errors.InvalidInput("a data source is required: --file or --sql")
}

// dataset loads the data source restricted to --columns
func (g *globalFlags) dataset(ctx context.Context) (*dataset.Dataset, error) {
	r, closeFn, err := g.reader(ctx)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	ds, err := r.Read(ctx)
	if err != nil {
		return nil, err
	}
	return ds.Select(trimAll(g.columns)...)
}

func trimAll(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			out = append(out, n)
		}
	}
	return out
}

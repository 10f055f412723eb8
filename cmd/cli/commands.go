package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gonum.org/v1/plot/vg"

	"statbook/domain/stats"
	"statbook/internal/errors"
	"statbook/internal/frequency"
	"statbook/internal/notebook"
	"statbook/internal/plotting"
	"statbook/internal/profiling"
)

func newFreqCmd(g *globalFlags) *cobra.Command {
	var column, labels, format string
	var counts bool

	cmd := &cobra.Command{
		Use:   "freq",
		Short: "Print the frequency table of a column",
		Long: `Print absolute, relative and cumulative frequencies of a column.

With --counts the column already holds frequencies; each row is its own
category, named by --labels or by row position.

Example: statbook freq --file grades.csv --column grade --format markdown`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := g.dataset(cmd.Context())
			if err != nil {
				return err
			}
			if column == "" {
				if ds.Width() == 0 {
					return errors.InvalidInput("no columns to tabulate")
				}
				column = ds.Names()[0]
			}

			var table *frequency.Table
			if labels != "" {
				table, err = frequency.BuildWithLabels(ds, labels, column)
			} else {
				table, err = frequency.Build(ds, column, counts)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch format {
			case "markdown", "md":
				_, err = fmt.Fprint(out, table.Markdown())
				return err
			case "text":
				return table.WriteText(out)
			}
			return errors.InvalidInput(fmt.Sprintf("invalid --format %q: use text or markdown", format))
		},
	}

	cmd.Flags().StringVar(&column, "column", "", "Column to tabulate (default: first column)")
	cmd.Flags().BoolVar(&counts, "counts", false, "The column already holds frequencies")
	cmd.Flags().StringVar(&labels, "labels", "", "Column naming each row when --counts is set")
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text or markdown")

	return cmd
}

func newDescribeCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "describe",
		Short: "Print descriptive statistics for every column",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := g.dataset(cmd.Context())
			if err != nil {
				return err
			}
			return profiling.WriteText(cmd.OutOrStdout(), profiling.ProfileDataset(ds))
		},
	}
}

func newPlotCmd(g *globalFlags) *cobra.Command {
	var column, out, format string
	var bins int

	cmd := &cobra.Command{
		Use:   "plot",
		Short: "Draw a box plot above a histogram with a density curve",
		Long: `Draw the distribution of a numeric column: a horizontal box plot over a
histogram with a Gaussian density curve and the mean, median and mode marked.

Example: statbook plot --file grades.csv --column score --bins 12 --out score.png`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := g.dataset(cmd.Context())
			if err != nil {
				return err
			}
			if column == "" {
				if ds.Width() == 0 {
					return errors.InvalidInput("no columns to plot")
				}
				column = ds.Names()[0]
			}
			if format == "" {
				format = g.cfg.Plot.Format
			}
			if bins < 0 {
				return errors.InvalidInput("--bins must not be negative")
			}

			opts := plotting.Options{
				Width:  vg.Length(g.cfg.Plot.WidthCm) * vg.Centimeter,
				Height: vg.Length(g.cfg.Plot.HeightCm) * vg.Centimeter,
				Format: plotting.Format(format),
				Bins:   plotting.Bins(bins),
			}
			if out == "" {
				out = filepath.Join(g.cfg.Plot.Dir, column+"."+format)
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", out, err)
			}
			summary, err := plotting.HistBox(ds, column, f, opts)
			if cerr := f.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				os.Remove(out)
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: n=%d mean=%.3f median=%.3f mode=%.3f bins=%d -> %s\n",
				column, summary.N, summary.Mean, summary.Median, summary.Mode, summary.Bins, out)
			return nil
		},
	}

	cmd.Flags().StringVar(&column, "column", "", "Column to plot (default: first column)")
	cmd.Flags().IntVar(&bins, "bins", 0, "Number of histogram bins (0 chooses automatically)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default: <plot dir>/<column>.<format>)")
	cmd.Flags().StringVar(&format, "format", "", "Image format: png or svg (default: STATBOOK_PLOT_FORMAT)")

	return cmd
}

// testSpec describes one hypothesis test subcommand
type testSpec struct {
	use         string
	test        stats.TestName
	short       string
	alternative bool
	center      bool
	equalVar    bool
}

var testSpecs = []testSpec{
	{use: "shapiro", test: stats.TestShapiroWilk, short: "Shapiro-Wilk normality test for every column"},
	{use: "levene", test: stats.TestLevene, short: "Levene test for equal variances across columns", center: true},
	{use: "normvar", test: stats.TestShapiroLevene, short: "Shapiro-Wilk for every column followed by Levene", center: true},
	{use: "ttest-ind", test: stats.TestTTestInd, short: "t test for the means of two independent columns", alternative: true, equalVar: true},
	{use: "ttest-rel", test: stats.TestTTestRel, short: "t test for the means of two paired columns", alternative: true},
	{use: "anova", test: stats.TestANOVA, short: "One-way ANOVA across two or more columns"},
	{use: "wilcoxon", test: stats.TestWilcoxon, short: "Wilcoxon signed-rank test for two paired columns", alternative: true},
	{use: "mannwhitney", test: stats.TestMannWhitneyU, short: "Mann-Whitney U test for two independent columns", alternative: true},
	{use: "friedman", test: stats.TestFriedman, short: "Friedman test for three or more repeated measurements"},
	{use: "kruskal", test: stats.TestKruskal, short: "Kruskal-Wallis H test across two or more columns"},
}

func newTestCmds(g *globalFlags) []*cobra.Command {
	cmds := make([]*cobra.Command, 0, len(testSpecs))
	for _, spec := range testSpecs {
		cmds = append(cmds, newTestCmd(g, spec))
	}
	return cmds
}

func newTestCmd(g *globalFlags, spec testSpec) *cobra.Command {
	var alternative, center string
	var equalVar bool

	cmd := &cobra.Command{
		Use:   spec.use,
		Short: spec.short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []notebook.Option
			if spec.alternative {
				alt, err := stats.ParseAlternative(alternative)
				if err != nil {
					return err
				}
				opts = append(opts, notebook.WithAlternative(alt))
			}
			if spec.center {
				c, err := stats.ParseCenter(center)
				if err != nil {
					return err
				}
				opts = append(opts, notebook.WithCenter(c))
			}
			if spec.equalVar {
				opts = append(opts, notebook.WithEqualVariances(equalVar))
			}

			ds, err := g.dataset(cmd.Context())
			if err != nil {
				return err
			}

			nb := notebook.New(cmd.OutOrStdout(), notebook.Config{
				Language: g.cfg.Analysis.Language,
				Alpha:    g.cfg.Analysis.Alpha,
			})
			_, err = nb.Run(spec.test, ds, opts...)
			return err
		},
	}

	if spec.alternative {
		cmd.Flags().StringVar(&alternative, "alternative", string(stats.TwoSided), "Alternative hypothesis: two-sided, less or greater")
	}
	if spec.center {
		cmd.Flags().StringVar(&center, "center", string(stats.CenterMean), "Location used by Levene: mean, median or trimmed")
	}
	if spec.equalVar {
		cmd.Flags().BoolVar(&equalVar, "equal-var", true, "Assume equal variances (false runs Welch's test)")
	}

	return cmd
}

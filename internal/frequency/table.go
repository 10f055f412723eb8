// Package frequency builds frequency distribution tables for a single column.
package frequency

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"statbook/domain/dataset"
	"statbook/internal/errors"
)

// Row is one category of a frequency table
type Row struct {
	Category           string  `json:"category"`
	Frequency          float64 `json:"frequency"`
	Relative           float64 `json:"relative_frequency"`
	Cumulative         float64 `json:"cumulative_frequency"`
	CumulativeRelative float64 `json:"cumulative_relative_frequency"`
}

// Table is a frequency distribution ordered by category
type Table struct {
	Column string `json:"column"`
	Rows   []Row  `json:"rows"`
}

// Build creates the frequency table of column. When countsGiven is set the
// column already holds frequencies and each row is its own category, labelled
// by row position; otherwise distinct values are counted and sorted ascending.
func Build(ds *dataset.Dataset, column string, countsGiven bool) (*Table, error) {
	if countsGiven {
		return BuildWithLabels(ds, "", column)
	}
	col, err := ds.Column(column)
	if err != nil {
		return nil, errors.Wrap(err, "frequency table")
	}

	counts := make(map[string]float64)
	keys := make(map[string]float64)
	total := 0.0
	numeric := col.IsNumeric()
	for i := 0; i < col.Len(); i++ {
		if col.IsMissing(i) {
			continue
		}
		label := col.Raw[i]
		if numeric {
			label = strconv.FormatFloat(col.Values[i], 'g', -1, 64)
			keys[label] = col.Values[i]
		}
		counts[label]++
		total++
	}

	categories := make([]string, 0, len(counts))
	for c := range counts {
		categories = append(categories, c)
	}
	if numeric {
		sort.Slice(categories, func(a, b int) bool { return keys[categories[a]] < keys[categories[b]] })
	} else {
		sort.Strings(categories)
	}

	rows := make([]Row, len(categories))
	for i, c := range categories {
		rows[i] = Row{Category: c, Frequency: counts[c], Relative: counts[c] / total}
	}
	accumulate(rows)
	return &Table{Column: column, Rows: rows}, nil
}

// BuildWithLabels creates a table from a column of precomputed frequencies,
// using labelColumn for category names (row position when empty). Rows keep
// their dataset order; rows with a missing count are skipped.
func BuildWithLabels(ds *dataset.Dataset, labelColumn, countColumn string) (*Table, error) {
	col, err := ds.Column(countColumn)
	if err != nil {
		return nil, errors.Wrap(err, "frequency table")
	}
	var labels *dataset.Column
	if labelColumn != "" {
		if labels, err = ds.Column(labelColumn); err != nil {
			return nil, errors.Wrap(err, "frequency table labels")
		}
	}

	var rows []Row
	total := 0.0
	for i, v := range col.Values {
		if math.IsNaN(v) {
			continue
		}
		label := strconv.Itoa(i)
		if labels != nil {
			label = labels.Raw[i]
		}
		rows = append(rows, Row{Category: label, Frequency: v})
		total += v
	}
	for i := range rows {
		rows[i].Relative = rows[i].Frequency / total
	}
	accumulate(rows)
	return &Table{Column: countColumn, Rows: rows}, nil
}

func accumulate(rows []Row) {
	var freq, rel float64
	for i := range rows {
		freq += rows[i].Frequency
		rel += rows[i].Relative
		rows[i].Cumulative = freq
		rows[i].CumulativeRelative = rel
	}
}

// Total returns the sum of all frequencies
func (t *Table) Total() float64 {
	if len(t.Rows) == 0 {
		return 0
	}
	return t.Rows[len(t.Rows)-1].Cumulative
}

var headers = []string{"frequency", "relative_frequency", "cumulative_frequency", "cumulative_relative_frequency"}

// WriteText prints the table with aligned columns
func (t *Table) WriteText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "%s\t%s\t\n", t.Column, strings.Join(headers, "\t"))
	for _, r := range t.Rows {
		fmt.Fprintf(tw, "%s\t%s\t%.6f\t%s\t%.6f\t\n",
			r.Category, formatCount(r.Frequency), r.Relative, formatCount(r.Cumulative), r.CumulativeRelative)
	}
	return tw.Flush()
}

// Markdown renders the table as a GitHub-flavoured markdown table
func (t *Table) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "| %s | %s |\n", t.Column, strings.Join(headers, " | "))
	b.WriteString("|---|---:|---:|---:|---:|\n")
	for _, r := range t.Rows {
		fmt.Fprintf(&b, "| %s | %s | %.4f | %s | %.4f |\n",
			r.Category, formatCount(r.Frequency), r.Relative, formatCount(r.Cumulative), r.CumulativeRelative)
	}
	return b.String()
}

func formatCount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

package dataset

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"statbook/domain/core"
)

// missingTokens are raw cell values treated as missing observations
var missingTokens = map[string]bool{
	"":     true,
	"na":   true,
	"n/a":  true,
	"nan":  true,
	"null": true,
	"none": true,
}

// IsMissingToken reports whether a raw cell denotes a missing value
func IsMissingToken(cell string) bool {
	return missingTokens[strings.ToLower(strings.TrimSpace(cell))]
}

// Column is a named variable. Values holds the numeric reading of every row
// (NaN when the cell is missing or not numeric); Raw keeps the original cell
// text so categorical columns survive.
type Column struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
	Raw    []string  `json:"raw,omitempty"`
}

// NewNumericColumn creates a column from numeric values; NaN marks missing
func NewNumericColumn(name string, values []float64) *Column {
	raw := make([]string, len(values))
	for i, v := range values {
		if !math.IsNaN(v) {
			raw[i] = strconv.FormatFloat(v, 'g', -1, 64)
		}
	}
	return &Column{Name: name, Values: values, Raw: raw}
}

// NewTextColumn creates a column from raw cells, parsing numbers where possible
func NewTextColumn(name string, cells []string) *Column {
	values := make([]float64, len(cells))
	raw := make([]string, len(cells))
	for i, cell := range cells {
		cell = strings.TrimSpace(cell)
		if IsMissingToken(cell) {
			values[i] = math.NaN()
			continue
		}
		raw[i] = cell
		if v, err := strconv.ParseFloat(cell, 64); err == nil {
			values[i] = v
		} else {
			values[i] = math.NaN()
		}
	}
	return &Column{Name: name, Values: values, Raw: raw}
}

// Len returns the number of rows in the column
func (c *Column) Len() int {
	return len(c.Values)
}

// IsMissing reports whether row i holds no observation
func (c *Column) IsMissing(i int) bool {
	if c.Raw != nil {
		return c.Raw[i] == ""
	}
	return math.IsNaN(c.Values[i])
}

// IsNumeric reports whether every non-missing cell parsed as a number
func (c *Column) IsNumeric() bool {
	for i := range c.Values {
		if !c.IsMissing(i) && math.IsNaN(c.Values[i]) {
			return false
		}
	}
	return true
}

// Observed returns the numeric values with missing entries removed
func (c *Column) Observed() []float64 {
	out := make([]float64, 0, len(c.Values))
	for _, v := range c.Values {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// MissingCount returns the number of missing rows
func (c *Column) MissingCount() int {
	n := 0
	for i := range c.Values {
		if c.IsMissing(i) {
			n++
		}
	}
	return n
}

// Dataset is an ordered set of positionally aligned columns
type Dataset struct {
	columns []*Column
	index   map[string]int
}

// New creates a dataset from columns of equal length
func New(columns ...*Column) (*Dataset, error) {
	ds := &Dataset{index: make(map[string]int, len(columns))}
	for _, col := range columns {
		if err := ds.add(col); err != nil {
			return nil, err
		}
	}
	return ds, nil
}

// FromColumns builds a numeric dataset, ordering columns by order
func FromColumns(order []string, values map[string][]float64) (*Dataset, error) {
	if len(order) == 0 {
		for name := range values {
			order = append(order, name)
		}
		sort.Strings(order)
	}
	columns := make([]*Column, 0, len(order))
	for _, name := range order {
		v, ok := values[name]
		if !ok {
			return nil, core.NewColumnNotFoundError(name)
		}
		columns = append(columns, NewNumericColumn(name, v))
	}
	return New(columns...)
}

func (d *Dataset) add(col *Column) error {
	if col == nil {
		return fmt.Errorf("%w: nil column", core.ErrInvalidSamples)
	}
	if _, dup := d.index[col.Name]; dup {
		return fmt.Errorf("%w: duplicate column %q", core.ErrInvalidSamples, col.Name)
	}
	if len(d.columns) > 0 && col.Len() != d.Len() {
		return fmt.Errorf("%w: column %q has %d rows, expected %d",
			core.ErrUnequalLengths, col.Name, col.Len(), d.Len())
	}
	d.index[col.Name] = len(d.columns)
	d.columns = append(d.columns, col)
	return nil
}

// Len returns the number of rows
func (d *Dataset) Len() int {
	if len(d.columns) == 0 {
		return 0
	}
	return d.columns[0].Len()
}

// Width returns the number of columns
func (d *Dataset) Width() int {
	return len(d.columns)
}

// Names returns the column names in order
func (d *Dataset) Names() []string {
	names := make([]string, len(d.columns))
	for i, col := range d.columns {
		names[i] = col.Name
	}
	return names
}

// Columns returns the columns in order
func (d *Dataset) Columns() []*Column {
	return d.columns
}

// Column looks up a column by name
func (d *Dataset) Column(name string) (*Column, error) {
	i, ok := d.index[name]
	if !ok {
		return nil, core.NewColumnNotFoundError(name)
	}
	return d.columns[i], nil
}

// Select returns a dataset restricted to the named columns, in the given order.
// An empty selection returns the dataset itself.
func (d *Dataset) Select(names ...string) (*Dataset, error) {
	if len(names) == 0 {
		return d, nil
	}
	columns := make([]*Column, 0, len(names))
	for _, name := range names {
		col, err := d.Column(name)
		if err != nil {
			return nil, err
		}
		columns = append(columns, col)
	}
	return New(columns...)
}

// Vectors returns each column's numeric values, NaN preserved
func (d *Dataset) Vectors() [][]float64 {
	out := make([][]float64, len(d.columns))
	for i, col := range d.columns {
		out[i] = col.Values
	}
	return out
}

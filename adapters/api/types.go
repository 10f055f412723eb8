package api

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"statbook/domain/core"
	"statbook/domain/dataset"
	"statbook/domain/stats"
	"statbook/internal/frequency"
)

// DatasetPayload carries a table inline. Cells may be numbers, strings or null.
type DatasetPayload struct {
	Columns map[string][]interface{} `json:"columns"`
	Order   []string                 `json:"order,omitempty"`
}

// FrequencyRequest asks for the frequency table of one column
type FrequencyRequest struct {
	DatasetPayload
	Column      string `json:"column"`
	Counts      bool   `json:"counts,omitempty"`
	LabelColumn string `json:"label_column,omitempty"`
}

// TestRequest asks for one hypothesis test over the selected columns
type TestRequest struct {
	DatasetPayload
	Alpha       float64 `json:"alpha,omitempty"`
	Alternative string  `json:"alternative,omitempty"`
	Center      string  `json:"center,omitempty"`
	EqualVar    *bool   `json:"equal_var,omitempty"`
	Lang        string  `json:"lang,omitempty"`
}

// FrequencyResponse is the body returned by the frequency endpoint
type FrequencyResponse struct {
	ID     core.ReportID   `json:"id"`
	Column string          `json:"column"`
	Rows   []frequency.Row `json:"rows"`
	Report string          `json:"report"`
}

// TestResponse is the body returned by the test endpoints
type TestResponse struct {
	ID      core.ReportID `json:"id"`
	Test    string        `json:"test"`
	Results []ResultJSON  `json:"results"`
	Report  string        `json:"report"`
}

// ResultJSON mirrors stats.TestResult with NaN rendered as null
type ResultJSON struct {
	Test      stats.TestName `json:"test"`
	Sample    string         `json:"sample,omitempty"`
	Statistic *float64       `json:"statistic"`
	PValue    *float64       `json:"p_value"`
	Alpha     float64        `json:"alpha"`
	Decision  stats.Decision `json:"decision"`
}

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func toResultJSON(results []stats.TestResult) []ResultJSON {
	out := make([]ResultJSON, len(results))
	for i, r := range results {
		out[i] = ResultJSON{
			Test:      r.Test,
			Sample:    r.Sample,
			Statistic: finite(r.Statistic),
			PValue:    finite(r.PValue),
			Alpha:     r.Alpha,
			Decision:  r.Decision,
		}
	}
	return out
}

// Dataset converts the payload, ordering columns by Order or by name
func (p DatasetPayload) Dataset() (*dataset.Dataset, error) {
	if len(p.Columns) == 0 {
		return nil, fmt.Errorf("%w: no columns supplied", core.ErrInvalidSamples)
	}
	order := p.Order
	if len(order) == 0 {
		for name := range p.Columns {
			order = append(order, name)
		}
		sort.Strings(order)
	}

	columns := make([]*dataset.Column, 0, len(order))
	for _, name := range order {
		cells, ok := p.Columns[name]
		if !ok {
			return nil, core.NewColumnNotFoundError(name)
		}
		raw := make([]string, len(cells))
		for i, cell := range cells {
			s, err := cellText(cell)
			if err != nil {
				return nil, fmt.Errorf("column %q row %d: %w", name, i, err)
			}
			raw[i] = s
		}
		columns = append(columns, dataset.NewTextColumn(name, raw))
	}
	return dataset.New(columns...)
}

func cellText(cell interface{}) (string, error) {
	switch v := cell.(type) {
	case nil:
		return "", nil
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), nil
	case string:
		return v, nil
	case bool:
		if v {
			return "1", nil
		}
		return "0", nil
	}
	return "", fmt.Errorf("%w: unsupported cell %T", core.ErrNonNumeric, cell)
}

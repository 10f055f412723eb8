package postgres

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"

	"statbook/domain/dataset"
	"statbook/internal"
	apperrors "statbook/internal/errors"
	"statbook/ports"
)

// QueryReader turns the result set of a query into a dataset, one column per
// selected expression
type QueryReader struct {
	db    *sqlx.DB
	query string
	args  []interface{}
}

var _ ports.DatasetReader = (*QueryReader)(nil)

// NewQueryReader creates a reader for query with positional arguments
func NewQueryReader(db *sqlx.DB, query string, args ...interface{}) *QueryReader {
	return &QueryReader{db: db, query: query, args: args}
}

// Read runs the query; NULL cells become missing values
func (r *QueryReader) Read(ctx context.Context) (*dataset.Dataset, error) {
	rows, err := r.db.QueryxContext(ctx, r.query, r.args...)
	if err != nil {
		return nil, apperrors.DatabaseError("query failed: "+describe(err), err)
	}
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		return nil, apperrors.DatabaseError("failed to read result columns", err)
	}

	cells := make([][]string, len(names))
	n := 0
	for rows.Next() {
		values, err := rows.SliceScan()
		if err != nil {
			return nil, apperrors.DatabaseError("failed to scan row", err)
		}
		for j, v := range values {
			cells[j] = append(cells[j], cellString(v))
		}
		n++
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.DatabaseError("row iteration failed: "+describe(err), err)
	}

	columns := make([]*dataset.Column, len(names))
	for j, name := range names {
		if cells[j] == nil {
			cells[j] = []string{}
		}
		columns[j] = dataset.NewTextColumn(name, cells[j])
	}
	internal.DefaultLogger.Debug("[QueryReader] %d columns, %d rows", len(names), n)
	return dataset.New(columns...)
}

// cellString renders a scanned driver value as raw cell text
func cellString(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(x)
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case bool:
		if x {
			return "1"
		}
		return "0"
	case time.Time:
		return x.Format(time.RFC3339)
	default:
		return fmt.Sprint(x)
	}
}

package ports

import (
	"context"

	"statbook/domain/dataset"
)

// DatasetReader loads a table of named columns from some source
type DatasetReader interface {
	Read(ctx context.Context) (*dataset.Dataset, error)
}

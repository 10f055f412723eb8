package excel

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"statbook/domain/core"
	"statbook/domain/dataset"
	"statbook/internal"
	"statbook/ports"
)

// DataReader handles reading Excel and CSV files
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"

	// Sheet names the worksheet to read; empty means the first sheet
	Sheet string
	// Columns restricts the dataset to these headers, in this order
	Columns []string
}

var _ ports.DatasetReader = (*DataReader)(nil)

// NewDataReader creates a new data reader that handles both Excel and CSV files
func NewDataReader(filePath string) *DataReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &DataReader{filePath: filePath, fileType: fileType}
}

// Read loads the file into a dataset; the first row holds the column names
func (r *DataReader) Read(ctx context.Context) (*dataset.Dataset, error) {
	internal.DefaultLogger.Debug("[DataReader] Starting to read %s file: %s", r.fileType, r.filePath)

	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s file %s", core.ErrNotFound, strings.ToUpper(r.fileType), r.filePath)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		rows [][]string
		err  error
	)
	switch r.fileType {
	case "csv":
		rows, err = r.readCSVRows()
	case "xlsx":
		rows, err = r.readExcelRows()
	default:
		return nil, fmt.Errorf("unsupported file type: %s", r.fileType)
	}
	if err != nil {
		return nil, err
	}
	return r.processRows(rows)
}

// readExcelRows reads the configured worksheet
func (r *DataReader) readExcelRows() ([][]string, error) {
	startTime := time.Now()
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheet := r.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	internal.DefaultLogger.Debug("[DataReader] %s read in %.2fms (%d rows)",
		sheet, float64(time.Since(startTime).Nanoseconds())/1e6, len(rows))
	return rows, nil
}

// readCSVRows reads CSV data, tolerating ragged rows
func (r *DataReader) readCSVRows() ([][]string, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	return rows, nil
}

// processRows turns the header row and the data rows into columns
func (r *DataReader) processRows(rows [][]string) (*dataset.Dataset, error) {
	if len(rows) < 2 {
		return nil, fmt.Errorf("%w: %s file must have at least a header row and one data row",
			core.ErrInsufficientData, strings.ToUpper(r.fileType))
	}

	headerRow := rows[0]
	headers := make([]string, len(headerRow))
	for i, header := range headerRow {
		headers[i] = strings.TrimSpace(header)
	}

	cells := make([][]string, len(headers))
	for i := range cells {
		cells[i] = make([]string, len(rows)-1)
	}
	for i, row := range rows[1:] {
		for j, cell := range row {
			if j < len(headers) {
				cells[j][i] = cell
			}
		}
	}

	columns := make([]*dataset.Column, len(headers))
	for j, name := range headers {
		if name == "" {
			name = fmt.Sprintf("column_%d", j+1)
		}
		columns[j] = dataset.NewTextColumn(name, cells[j])
	}

	ds, err := dataset.New(columns...)
	if err != nil {
		return nil, err
	}
	internal.DefaultLogger.Info("[DataReader] %s file processed (%d columns, %d rows)",
		strings.ToUpper(r.fileType), ds.Width(), ds.Len())

	if len(r.Columns) > 0 {
		return ds.Select(r.Columns...)
	}
	return ds, nil
}

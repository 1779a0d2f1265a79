// Package dataset holds the in-memory form of an extended CSV file: a table
// of numeric columns and the metadata sections that describe it.
package dataset

import (
	"fmt"

	"github.com/aclements/go-gg/table"
)

// Dataset is a data table plus its sectioned metadata. Datasets are
// read-only once built; nothing in this module mutates them.
type Dataset struct {
	Data     *table.Table
	Metadata Metadata
}

// New builds a dataset from column labels and their values. All columns must
// have the same length.
func New(labels []string, columns [][]float64, md Metadata) (*Dataset, error) {
	if len(labels) != len(columns) {
		return nil, fmt.Errorf("%d column labels for %d columns", len(labels), len(columns))
	}

	b := table.NewBuilder(nil)
	seen := make(map[string]bool, len(labels))
	for i, label := range labels {
		if seen[label] {
			return nil, fmt.Errorf("duplicate column label %q", label)
		}
		seen[label] = true
		if i > 0 && len(columns[i]) != len(columns[0]) {
			return nil, fmt.Errorf("column %q has %d values, want %d", label, len(columns[i]), len(columns[0]))
		}
		b.Add(label, columns[i])
	}

	if md.ColumnHeaders == nil {
		md.ColumnHeaders = make(map[string]ColumnHeader, len(labels))
		for _, label := range labels {
			md.ColumnHeaders[label] = ParseColumnHeader(label)
		}
	}
	if md.Header == nil {
		md.Header = map[string][]string{}
	}

	return &Dataset{Data: b.Done(), Metadata: md}, nil
}

// Columns returns the column labels in table order.
func (d *Dataset) Columns() []string {
	if d.Data == nil {
		return nil
	}
	return d.Data.Columns()
}

// Len returns the number of rows in the data table.
func (d *Dataset) Len() int {
	if d.Data == nil {
		return 0
	}
	return d.Data.Len()
}

// HasColumn reports whether the data table has a column with the given label.
func (d *Dataset) HasColumn(name string) bool {
	return d.Data != nil && d.Data.Column(name) != nil
}

// Column returns the values of the named column.
func (d *Dataset) Column(name string) ([]float64, error) {
	if !d.HasColumn(name) {
		return nil, &ColumnNotFoundError{Column: name}
	}
	col := d.Data.Column(name)
	values, ok := col.([]float64)
	if !ok {
		return nil, fmt.Errorf("column %q holds %T, not numeric values", name, col)
	}
	return values, nil
}

// ColumnName returns the label of the column at zero-based position index.
func (d *Dataset) ColumnName(index int) (string, error) {
	cols := d.Columns()
	if index < 0 || index >= len(cols) {
		return "", &ColumnIndexOutOfRangeError{Index: index, Count: len(cols)}
	}
	return cols[index], nil
}

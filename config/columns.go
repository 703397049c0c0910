package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/go-theft-auto/grid"
)

// ColumnSpec is one column as written in a column file.
//
//	columns:
//	  - field: id
//	    header: ID
//	    width: 80px
//	    freeze: left
//	    sortable: true
//	  - field: salary
//	    header: Salary
//	    formatter: currency
type ColumnSpec struct {
	Field     string `yaml:"field"`
	Header    string `yaml:"header"`
	Width     string `yaml:"width,omitempty"`
	Freeze    string `yaml:"freeze,omitempty"`
	Sortable  bool   `yaml:"sortable,omitempty"`
	Formatter string `yaml:"formatter,omitempty"`
}

type columnFile struct {
	Columns []ColumnSpec `yaml:"columns"`
}

// LoadColumns reads a YAML column file.
func LoadColumns(path string) ([]grid.Column, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read columns: %w", err)
	}
	cols, err := ParseColumns(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cols, nil
}

// ParseColumns decodes a column file. Unknown keys, unknown freeze sides and
// unknown formatter names are errors, as are duplicate fields.
func ParseColumns(data []byte) ([]grid.Column, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f columnFile
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode columns: %w", err)
	}
	if len(f.Columns) == 0 {
		return nil, errors.New("no columns defined")
	}

	cols := make([]grid.Column, 0, len(f.Columns))
	for i, spec := range f.Columns {
		col, err := spec.Column()
		if err != nil {
			return nil, fmt.Errorf("column %d: %w", i, err)
		}
		cols = append(cols, col)
	}
	if err := grid.ValidateColumns(cols); err != nil {
		return nil, err
	}
	return cols, nil
}

// Column converts the spec to a grid column.
func (s ColumnSpec) Column() (grid.Column, error) {
	freeze, err := grid.ParseFreeze(strings.ToLower(s.Freeze))
	if err != nil {
		return grid.Column{}, err
	}
	col := grid.Column{
		Field:    s.Field,
		Header:   s.Header,
		Width:    s.Width,
		Freeze:   freeze,
		Sortable: s.Sortable,
	}
	if col.Header == "" {
		col.Header = s.Field
	}
	if s.Formatter != "" {
		f, ok := grid.NamedFormatter(s.Formatter)
		if !ok {
			return grid.Column{}, fmt.Errorf("unknown formatter %q (have %s)",
				s.Formatter, strings.Join(grid.FormatterNames(), ", "))
		}
		col.Formatter = f
	}
	return col, nil
}

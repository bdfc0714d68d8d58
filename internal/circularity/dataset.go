package circularity

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/alibaba1709/SIH-25069/internal/domain"
)

// Column is one reference column. Exactly one of Num / Str is populated,
// according to Kind. Gaps are NaN or "".
type Column struct {
	Name string
	Kind domain.Kind
	Num  []float64
	Str  []string
}

// Dataset is the reference table. It is never modified after construction.
type Dataset struct {
	columns []Column
	index   map[string]int
	rows    int
}

// NewDataset builds a dataset from columns of equal length
func NewDataset(columns []Column) (*Dataset, error) {
	ds := &Dataset{index: make(map[string]int, len(columns)), rows: -1}
	for _, c := range columns {
		n := len(c.Num)
		if c.Kind == domain.KindCategorical {
			n = len(c.Str)
		}
		if ds.rows >= 0 && n != ds.rows {
			return nil, &DataLoadError{Reason: fmt.Sprintf("column %q has %d rows, expected %d", c.Name, n, ds.rows)}
		}
		if _, dup := ds.index[c.Name]; dup {
			return nil, &DataLoadError{Reason: fmt.Sprintf("duplicate column %q", c.Name)}
		}
		ds.rows = n
		ds.index[c.Name] = len(ds.columns)
		ds.columns = append(ds.columns, c)
	}
	if ds.rows < 0 {
		ds.rows = 0
	}
	return ds, nil
}

// Rows returns the number of records
func (d *Dataset) Rows() int { return d.rows }

// Columns returns the columns in file order
func (d *Dataset) Columns() []Column { return d.columns }

// Column returns a column by name
func (d *Dataset) Column(name string) (Column, bool) {
	i, ok := d.index[name]
	if !ok {
		return Column{}, false
	}
	return d.columns[i], true
}

var missingTokens = map[string]bool{
	"":     true,
	"nan":  true,
	"NaN":  true,
	"NA":   true,
	"N/A":  true,
	"null": true,
	"NULL": true,
	"None": true,
}

func isMissing(cell string) bool {
	return missingTokens[strings.TrimSpace(cell)]
}

// ReadCSV parses a headed CSV table. A column is numeric when every
// non-missing cell parses as a float, categorical otherwise.
func ReadCSV(r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, &DataLoadError{Reason: "invalid csv", Err: err}
	}
	if len(records) == 0 {
		return nil, &DataLoadError{Reason: "missing header"}
	}
	header := records[0]
	body := records[1:]
	if len(body) == 0 {
		return nil, &DataLoadError{Reason: "no data rows"}
	}

	columns := make([]Column, len(header))
	for j, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		cells := make([]string, len(body))
		for i, rec := range body {
			if j < len(rec) {
				cells[i] = strings.TrimSpace(rec[j])
			}
		}
		columns[j] = inferColumn(name, cells)
	}
	return NewDataset(columns)
}

func inferColumn(name string, cells []string) Column {
	nums := make([]float64, len(cells))
	numeric := true
	for i, cell := range cells {
		if isMissing(cell) {
			nums[i] = math.NaN()
			continue
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			numeric = false
			break
		}
		nums[i] = v
	}
	if numeric {
		return Column{Name: name, Kind: domain.KindNumeric, Num: nums}
	}
	strs := make([]string, len(cells))
	for i, cell := range cells {
		if !isMissing(cell) {
			strs[i] = cell
		}
	}
	return Column{Name: name, Kind: domain.KindCategorical, Str: strs}
}

// LoadCSV reads the reference dataset from a file
func LoadCSV(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &DataLoadError{Source: path, Reason: "cannot open file", Err: err}
	}
	defer f.Close()

	ds, err := ReadCSV(f)
	if err != nil {
		var dle *DataLoadError
		if errors.As(err, &dle) {
			dle.Source = path
		}
		return nil, err
	}
	return ds, nil
}

package circularity

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alibaba1709/SIH-25069/internal/domain"
)

func TestReadCSV_KindInference(t *testing.T) {
	in := "\ufeffname, a,b,c\nx,1,NA,\ny,2.5,3,z\n"
	ds, err := ReadCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if ds.Rows() != 2 {
		t.Fatalf("Rows = %d, want 2", ds.Rows())
	}

	kinds := map[string]domain.Kind{
		"name": domain.KindCategorical,
		"a":    domain.KindNumeric,
		"b":    domain.KindNumeric,
		"c":    domain.KindCategorical,
	}
	for name, want := range kinds {
		col, ok := ds.Column(name)
		if !ok {
			t.Fatalf("column %q missing", name)
		}
		if col.Kind != want {
			t.Errorf("%s kind = %v, want %v", name, col.Kind, want)
		}
	}

	b, _ := ds.Column("b")
	if !math.IsNaN(b.Num[0]) || b.Num[1] != 3 {
		t.Errorf("b = %v, want [NaN 3]", b.Num)
	}
	c, _ := ds.Column("c")
	if c.Str[0] != "" || c.Str[1] != "z" {
		t.Errorf("c = %q", c.Str)
	}
}

func TestReadCSV_Errors(t *testing.T) {
	for name, in := range map[string]string{
		"empty":       "",
		"header only": "a,b\n",
		"ragged":      "a,b\n1,2,3\n",
	} {
		var loadErr *DataLoadError
		if _, err := ReadCSV(strings.NewReader(in)); !errors.As(err, &loadErr) {
			t.Errorf("%s: err = %v, want DataLoadError", name, err)
		}
	}
}

func TestNewDataset_LengthMismatch(t *testing.T) {
	_, err := NewDataset([]Column{
		{Name: "a", Kind: domain.KindNumeric, Num: []float64{1, 2}},
		{Name: "b", Kind: domain.KindCategorical, Str: []string{"x"}},
	})
	var loadErr *DataLoadError
	if !errors.As(err, &loadErr) {
		t.Errorf("err = %v, want DataLoadError", err)
	}
}

func TestLoadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ref.csv")
	if err := os.WriteFile(path, []byte(referenceCSV), 0o644); err != nil {
		t.Fatal(err)
	}
	e, err := NewFromCSV(path, testConfig(2))
	if err != nil {
		t.Fatalf("NewFromCSV: %v", err)
	}
	if e.Rows() != 6 {
		t.Errorf("Rows = %d, want 6", e.Rows())
	}
}

package circularity

import (
	"math"
	"testing"

	"github.com/alibaba1709/SIH-25069/internal/domain"
)

func mciRow(t *testing.T, mass, lifetime, recycled, reuse, recycle float64, route string) domain.Row {
	t.Helper()
	schema, err := domain.NewSchema([]domain.Field{
		{Name: FieldMaterialMass, Kind: domain.KindNumeric},
		{Name: FieldLifetime, Kind: domain.KindNumeric},
		{Name: FieldRecycledContent, Kind: domain.KindNumeric},
		{Name: FieldEOLReuse, Kind: domain.KindNumeric},
		{Name: FieldEOLRecycle, Kind: domain.KindNumeric},
		{Name: FieldRoute, Kind: domain.KindCategorical},
	})
	if err != nil {
		t.Fatalf("NewSchema: %v", err)
	}
	row, err := domain.NewRow(schema, []domain.Value{
		domain.Number(mass), domain.Number(lifetime), domain.Number(recycled),
		domain.Number(reuse), domain.Number(recycle), domain.Category(route),
	})
	if err != nil {
		t.Fatalf("NewRow: %v", err)
	}
	return row
}

func TestMCI(t *testing.T) {
	tests := []struct {
		name                                 string
		mass, life, recycled, reuse, recycle float64
		route                                string
		want                                 float64
	}{
		{"primary half recycled", 1, 15, 0.5, 20, 30, "Primary", 55},
		{"secondary route has no virgin mass", 1, 15, 0.5, 20, 30, "Secondary", 77.5},
		{"virgin prefix is case insensitive", 1, 15, 0.5, 20, 30, "VIRGIN ore", 55},
		{"longer life lowers utility", 1, 30, 0.5, 20, 30, "primary", 77.5},
		{"zero mass falls back to LFI 1", 0, 15, 0.5, 20, 30, "Primary", 10},
		{"zero lifetime uses reference", 1, 0, 0.5, 20, 30, "Primary", 55},
		{"short life clamps to 0", 1, 1, 0, 0, 0, "Primary", 0},
		{"full recovery clamps to 100", 1, 15, 1, 100, 100, "Secondary", 100},
		{"overflowing terms score 0", 1e10, 15, -1e308, 0, 1e308, "Primary", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := mciRow(t, tt.mass, tt.life, tt.recycled, tt.reuse, tt.recycle, tt.route)
			if got := MCI(row); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("MCI = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestComputeMCI_Overflow(t *testing.T) {
	b := ComputeMCI(mciRow(t, 1e10, 15, -1e308, 0, 1e308, "Primary"))
	if !math.IsNaN(b.LFI) {
		t.Fatalf("LFI = %v, want NaN from Inf - Inf", b.LFI)
	}
	if !b.Undefined || b.Score != 0 {
		t.Errorf("breakdown = %+v, want undefined with score 0", b)
	}
	if ok := ComputeMCI(mciRow(t, 1, 15, 0.5, 20, 30, "Primary")); ok.Undefined {
		t.Error("finite terms flagged undefined")
	}
}

func TestComputeMCI_ZeroMass(t *testing.T) {
	b := ComputeMCI(mciRow(t, 0, 10, 0.3, 0, 0, "Primary"))
	if b.LFI != 1 {
		t.Errorf("LFI = %v, want 1", b.LFI)
	}
	if b.Score < 0 || b.Score > 100 {
		t.Errorf("Score = %v out of range", b.Score)
	}
}

func TestMCI_Defaults(t *testing.T) {
	schema, err := domain.NewSchema([]domain.Field{{Name: "other", Kind: domain.KindNumeric}})
	if err != nil {
		t.Fatal(err)
	}
	row, err := domain.NewRow(schema, []domain.Value{domain.Number(3)})
	if err != nil {
		t.Fatal(err)
	}
	b := ComputeMCI(row)
	if b.LFI != 1 || b.NormalizedLifespan != 1.0/15 || b.Score != 0 {
		t.Errorf("defaults breakdown = %+v", b)
	}
}

package corrupt

import (
	"math/rand/v2"
	"reflect"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/YuminosukeSato/cofprep/dataset"
	"github.com/YuminosukeSato/cofprep/pkg/errors"
)

func trainingTable(t *testing.T, n int) dataframe.DataFrame {
	t.Helper()

	density := make([]float64, n)
	surface := make([]float64, n)
	voidFrac := make([]float64, n)
	carbon := make([]int, n)
	target := make([]float64, n)
	ids := make([]int, n)
	for i := 0; i < n; i++ {
		density[i] = 0.5 + 0.01*float64(i)
		surface[i] = 1200.5 + float64(i)
		voidFrac[i] = 0.3 + 0.001*float64(i)
		carbon[i] = 20 + i%9
		target[i] = 5.5 + float64(i)
		ids[i] = i
	}

	df := dataframe.New(
		series.New(density, series.Float, "density"),
		series.New(surface, series.Float, "surface_area"),
		series.New(voidFrac, series.Float, "void_fraction"),
		series.New(carbon, series.Int, "num_carbon"),
		series.New(target, series.Float, dataset.TargetColumn),
		series.New(ids, series.Int, dataset.IDColumn),
	)
	if df.Error() != nil {
		t.Fatalf("building fixture failed: %v", df.Error())
	}
	return df
}

// nanRows returns the positions of rows containing at least one NaN marker,
// and the set of column names where markers appear.
func nanRows(df dataframe.DataFrame) (rows map[int]bool, cols map[string]bool) {
	rows = map[int]bool{}
	cols = map[string]bool{}
	records := df.Records()
	header := records[0]
	for i, rec := range records[1:] {
		for j, cell := range rec {
			if cell == "NaN" {
				rows[i] = true
				cols[header[j]] = true
			}
		}
	}
	return rows, cols
}

func TestCorruptRowCount(t *testing.T) {
	df := trainingTable(t, 20)
	c := NewCorruptor()

	out, err := c.Corrupt(df, rand.NewPCG(9, 9), dataset.TargetColumn, dataset.IDColumn)
	if err != nil {
		t.Fatalf("Corrupt failed: %v", err)
	}

	rows, cols := nanRows(out)
	// floor(0.125 × 20) = 2 rows carry at least one marker.
	if len(rows) != 2 {
		t.Errorf("expected exactly 2 corrupted rows, got %d", len(rows))
	}
	for name := range cols {
		switch name {
		case "num_carbon", dataset.TargetColumn, dataset.IDColumn:
			t.Errorf("marker appeared in protected column %q", name)
		}
	}
}

func TestCorruptLeavesNonEligibleColumnsIntact(t *testing.T) {
	df := trainingTable(t, 40)
	c := NewCorruptor()

	out, err := c.Corrupt(df, rand.NewPCG(21, 21), dataset.TargetColumn, dataset.IDColumn)
	if err != nil {
		t.Fatalf("Corrupt failed: %v", err)
	}

	for _, col := range []string{"num_carbon", dataset.TargetColumn, dataset.IDColumn} {
		before := df.Col(col).Records()
		after := out.Col(col).Records()
		if !reflect.DeepEqual(before, after) {
			t.Errorf("column %q changed during corruption", col)
		}
	}
}

func TestCorruptDeterministic(t *testing.T) {
	df := trainingTable(t, 32)
	c := NewCorruptor()

	a, err := c.Corrupt(df, rand.NewPCG(4, 4), dataset.TargetColumn, dataset.IDColumn)
	if err != nil {
		t.Fatalf("first corruption failed: %v", err)
	}
	b, err := c.Corrupt(df, rand.NewPCG(4, 4), dataset.TargetColumn, dataset.IDColumn)
	if err != nil {
		t.Fatalf("second corruption failed: %v", err)
	}
	if !reflect.DeepEqual(a.Records(), b.Records()) {
		t.Errorf("corruption differs for the same seed")
	}
}

func TestCorruptTooFewRowsForAnyMarker(t *testing.T) {
	df := trainingTable(t, 7)
	c := NewCorruptor()

	// floor(0.125 × 7) = 0: the table passes through untouched.
	out, err := c.Corrupt(df, rand.NewPCG(2, 2), dataset.TargetColumn, dataset.IDColumn)
	if err != nil {
		t.Fatalf("Corrupt failed: %v", err)
	}
	rows, _ := nanRows(out)
	if len(rows) != 0 {
		t.Errorf("expected no corrupted rows, got %d", len(rows))
	}
}

func TestCorruptNoEligibleColumns(t *testing.T) {
	ids := []int{0, 1, 2, 3, 4, 5, 6, 7}
	carbon := []int{20, 21, 22, 23, 24, 25, 26, 27}
	df := dataframe.New(
		series.New(carbon, series.Int, "num_carbon"),
		series.New(ids, series.Int, dataset.IDColumn),
	)
	c := NewCorruptor()

	_, err := c.Corrupt(df, rand.NewPCG(1, 1), dataset.IDColumn)
	var irErr *errors.InsufficientRowsError
	if !errors.As(err, &irErr) {
		t.Fatalf("expected InsufficientRowsError, got %v", err)
	}
	if irErr.Kind != "columns" {
		t.Errorf("expected columns kind, got %q", irErr.Kind)
	}
}

func TestSampleRowMaskClipsOversizedDraw(t *testing.T) {
	var captured error
	errors.SetWarningHandler(func(w error) { captured = w })
	defer errors.SetWarningHandler(nil)

	src := rand.NewPCG(8, 8)
	rng := rand.New(src)
	// With p = 1 the binomial always yields n, so k = n + 1 must be clipped.
	bin := distuv.Binomial{N: 3, P: 1.0, Src: src}

	mask := SampleRowMask(bin, rng, 3)
	if len(mask) != 3 {
		t.Fatalf("expected mask clipped to 3 columns, got %d", len(mask))
	}
	seen := map[int]bool{}
	for _, off := range mask {
		if off < 0 || off >= 3 {
			t.Errorf("offset %d out of range", off)
		}
		if seen[off] {
			t.Errorf("offset %d drawn twice", off)
		}
		seen[off] = true
	}

	var clipped *errors.ClippedDrawWarning
	if !errors.As(captured, &clipped) {
		t.Fatalf("expected ClippedDrawWarning, got %v", captured)
	}
	if clipped.Drawn != 4 || clipped.Max != 3 {
		t.Errorf("unexpected warning fields: %+v", clipped)
	}
}

func TestNewCorruptorWithValidation(t *testing.T) {
	if _, err := NewCorruptorWith(1.5, 0.1); err == nil {
		t.Error("expected validation error for rowFraction > 1")
	}
	if _, err := NewCorruptorWith(0.125, -0.1); err == nil {
		t.Error("expected validation error for negative columnProb")
	}
	c, err := NewCorruptorWith(0.25, 0.2)
	if err != nil || c == nil {
		t.Fatalf("valid parameters rejected: %v", err)
	}
}

package split

import (
	"math/rand/v2"
	"reflect"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/YuminosukeSato/cofprep/dataset"
	"github.com/YuminosukeSato/cofprep/pkg/errors"
)

// cleanedTable builds an n-row cleaned table (two float features, one int
// feature, target) with a strictly increasing target and positional ids.
func cleanedTable(t *testing.T, n int) dataframe.DataFrame {
	t.Helper()

	density := make([]float64, n)
	voidFrac := make([]float64, n)
	carbon := make([]int, n)
	target := make([]float64, n)
	for i := 0; i < n; i++ {
		density[i] = 0.5 + 0.001*float64(i)
		voidFrac[i] = 0.3 + 0.002*float64(i)
		carbon[i] = 20 + i%9
		target[i] = 0.25 + 1.5*float64(i)
	}

	df := dataframe.New(
		series.New(density, series.Float, "density"),
		series.New(voidFrac, series.Float, "void_fraction"),
		series.New(carbon, series.Int, "num_carbon"),
		series.New(target, series.Float, dataset.TargetColumn),
	)
	if df.Error() != nil {
		t.Fatalf("building fixture failed: %v", df.Error())
	}
	withID, err := dataset.AssignID(df)
	if err != nil {
		t.Fatalf("AssignID failed: %v", err)
	}
	return withID
}

func TestSplitSizesAndInvariants(t *testing.T) {
	df := cleanedTable(t, 120)
	splitter := NewHoldoutSplitter()

	res, err := splitter.Split(df, dataset.TargetColumn, rand.NewPCG(7, 7))
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}

	if res.HeldOut.Nrow() != 100 {
		t.Errorf("expected 100 held-out rows, got %d", res.HeldOut.Nrow())
	}
	if res.Training.Nrow() != 20 {
		t.Errorf("expected 20 training rows, got %d", res.Training.Nrow())
	}

	heldIDs, err := dataset.IDs(res.HeldOut)
	if err != nil {
		t.Fatalf("held-out ids: %v", err)
	}
	trainIDs, err := dataset.IDs(res.Training)
	if err != nil {
		t.Fatalf("training ids: %v", err)
	}

	seen := map[int]string{}
	for _, id := range heldIDs {
		if _, dup := seen[id]; dup {
			t.Errorf("duplicate id %d in held-out set", id)
		}
		seen[id] = "held"
	}
	for _, id := range trainIDs {
		if side, dup := seen[id]; dup && side == "held" {
			t.Errorf("id %d present in both partitions", id)
		} else if dup {
			t.Errorf("duplicate id %d in training set", id)
		}
		seen[id] = "train"
	}
	if len(seen) != 120 {
		t.Errorf("partition lost or invented rows: %d distinct ids", len(seen))
	}
}

func TestSplitBestRowAlwaysHeldOut(t *testing.T) {
	df := cleanedTable(t, 120)
	splitter := NewHoldoutSplitter()

	// The target increases with the row index, so row 119 is the maximum.
	for seed := uint64(1); seed <= 5; seed++ {
		res, err := splitter.Split(df, dataset.TargetColumn, rand.NewPCG(seed, seed))
		if err != nil {
			t.Fatalf("Split failed: %v", err)
		}
		heldIDs, err := dataset.IDs(res.HeldOut)
		if err != nil {
			t.Fatalf("held-out ids: %v", err)
		}
		// Assembly order puts best first.
		if heldIDs[0] != 119 {
			t.Errorf("seed %d: expected best row 119 first in held-out set, got %d", seed, heldIDs[0])
		}
		trainIDs, err := dataset.IDs(res.Training)
		if err != nil {
			t.Fatalf("training ids: %v", err)
		}
		for _, id := range trainIDs {
			if id == 119 {
				t.Errorf("seed %d: best row leaked into training set", seed)
			}
		}
	}
}

func TestSplitSolutionAndBaseline(t *testing.T) {
	df := cleanedTable(t, 120)
	splitter := NewHoldoutSplitter()

	res, err := splitter.Split(df, dataset.TargetColumn, rand.NewPCG(11, 11))
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}

	wantCols := []string{dataset.IDColumn, dataset.TargetColumn, dataset.UsageColumn}
	if !reflect.DeepEqual(res.Solution.Names(), wantCols) {
		t.Errorf("solution columns: got %v, want %v", res.Solution.Names(), wantCols)
	}
	for _, u := range res.Solution.Col(dataset.UsageColumn).Records() {
		if u != dataset.UsagePublic {
			t.Errorf("expected Usage %q, got %q", dataset.UsagePublic, u)
		}
	}

	heldIDs, _ := dataset.IDs(res.HeldOut)
	solIDs, _ := dataset.IDs(res.Solution)
	if !reflect.DeepEqual(heldIDs, solIDs) {
		t.Errorf("solution ids must follow held-out assembly order")
	}
	baseIDs, _ := dataset.IDs(res.Baseline)
	if !reflect.DeepEqual(heldIDs, baseIDs) {
		t.Errorf("baseline ids must match the held-out set")
	}

	// Solution values are the true targets of the held-out rows.
	heldTargets := res.HeldOut.Col(dataset.TargetColumn).Float()
	solTargets := res.Solution.Col(dataset.TargetColumn).Float()
	if !reflect.DeepEqual(heldTargets, solTargets) {
		t.Errorf("solution targets diverge from held-out targets")
	}

	// Baseline draws stay within the full-table target range.
	minT, maxT := 0.25, 0.25+1.5*119
	for _, v := range res.Baseline.Col(dataset.TargetColumn).Float() {
		if v < minT || v > maxT {
			t.Errorf("baseline value %f outside [%f, %f]", v, minT, maxT)
		}
	}
}

func TestSplitDeterministic(t *testing.T) {
	df := cleanedTable(t, 120)
	splitter := NewHoldoutSplitter()

	a, err := splitter.Split(df, dataset.TargetColumn, rand.NewPCG(42, 42))
	if err != nil {
		t.Fatalf("first split failed: %v", err)
	}
	b, err := splitter.Split(df, dataset.TargetColumn, rand.NewPCG(42, 42))
	if err != nil {
		t.Fatalf("second split failed: %v", err)
	}

	if !reflect.DeepEqual(a.HeldOut.Records(), b.HeldOut.Records()) {
		t.Errorf("held-out sets differ for the same seed")
	}
	if !reflect.DeepEqual(a.Training.Records(), b.Training.Records()) {
		t.Errorf("training sets differ for the same seed")
	}
	if !reflect.DeepEqual(a.Baseline.Records(), b.Baseline.Records()) {
		t.Errorf("baseline submissions differ for the same seed")
	}
}

func TestSplitInsufficientRows(t *testing.T) {
	df := cleanedTable(t, 50)
	splitter := NewHoldoutSplitter()

	_, err := splitter.Split(df, dataset.TargetColumn, rand.NewPCG(1, 1))
	if err == nil {
		t.Fatal("expected error for table smaller than the held-out size")
	}
	var irErr *errors.InsufficientRowsError
	if !errors.As(err, &irErr) {
		t.Fatalf("expected InsufficientRowsError, got %T: %v", err, err)
	}
}

func TestSplitNearHoldoutSize(t *testing.T) {
	// 101 rows: the training side shrinks to a single row but the split stays legal.
	df := cleanedTable(t, 101)
	splitter := NewHoldoutSplitter()

	res, err := splitter.Split(df, dataset.TargetColumn, rand.NewPCG(3, 3))
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}
	if res.HeldOut.Nrow() != 100 || res.Training.Nrow() != 1 {
		t.Errorf("expected 100/1 partition, got %d/%d", res.HeldOut.Nrow(), res.Training.Nrow())
	}
}

func TestSplitSmallConfiguration(t *testing.T) {
	df := cleanedTable(t, 20)
	splitter := NewHoldoutSplitter(
		WithHoldoutSize(10),
		WithTopExclude(2),
		WithGreatPoolSize(4),
		WithGreatCount(2),
	)

	res, err := splitter.Split(df, dataset.TargetColumn, rand.NewPCG(5, 5))
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}
	if res.HeldOut.Nrow() != 10 || res.Training.Nrow() != 10 {
		t.Fatalf("expected 10/10 partition, got %d/%d", res.HeldOut.Nrow(), res.Training.Nrow())
	}

	heldIDs, _ := dataset.IDs(res.HeldOut)
	if heldIDs[0] != 19 {
		t.Errorf("best row 19 must lead the held-out set, got %d", heldIDs[0])
	}
	// The two great rows come from ranks 3..6, i.e. rows 17..14.
	for _, id := range heldIDs[1:3] {
		if id < 14 || id > 17 {
			t.Errorf("great row %d outside the ranked pool [14,17]", id)
		}
	}
}

func TestSplitInvalidOptions(t *testing.T) {
	df := cleanedTable(t, 120)
	splitter := NewHoldoutSplitter(WithGreatCount(20), WithGreatPoolSize(10))

	_, err := splitter.Split(df, dataset.TargetColumn, rand.NewPCG(1, 1))
	var valErr *errors.ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

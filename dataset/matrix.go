package dataset

import (
	"github.com/go-gota/gota/dataframe"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/cofprep/pkg/errors"
)

// Matrix は指定した列を n_samples × n_features のDense行列に変換する。
// 欠損セルはNaNのまま保持される。モデル層（gonum/mat）への橋渡し。
func Matrix(df dataframe.DataFrame, cols []string) (*mat.Dense, error) {
	if len(cols) == 0 {
		return nil, errors.NewValueError("dataset.Matrix", "no columns specified")
	}
	names := make(map[string]bool, df.Ncol())
	for _, n := range df.Names() {
		names[n] = true
	}
	for _, c := range cols {
		if !names[c] {
			return nil, errors.NewSchemaError("Matrix", c)
		}
	}

	r := df.Nrow()
	X := mat.NewDense(r, len(cols), nil)
	for j, c := range cols {
		vals := df.Col(c).Float()
		for i := 0; i < r; i++ {
			X.Set(i, j, vals[i])
		}
	}
	return X, nil
}

// TargetVector はターゲット列を列ベクトルとして取り出す。
func TargetVector(df dataframe.DataFrame, target string) (*mat.VecDense, error) {
	found := false
	for _, n := range df.Names() {
		if n == target {
			found = true
			break
		}
	}
	if !found {
		return nil, errors.NewSchemaError("TargetVector", target)
	}
	vals := df.Col(target).Float()
	return mat.NewVecDense(len(vals), vals), nil
}

package preprocessing

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/cofprep/core/model"
	"github.com/YuminosukeSato/cofprep/pkg/errors"
)

// MeanImputer は欠損（NaN）を列平均で補完する変換器
//
// 平均は欠損を除いた値から計算する。列の全行が欠損の場合はエラーになる。
type MeanImputer struct {
	model.BaseEstimator

	// Mean は各特徴量の（欠損を除いた）平均値
	Mean []float64

	// NFeatures は特徴量の数
	NFeatures int
}

// NewMeanImputer は新しいMeanImputerを作成する
func NewMeanImputer() *MeanImputer {
	return &MeanImputer{}
}

// Fit は欠損を除いた列平均を計算する
func (m *MeanImputer) Fit(X mat.Matrix) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewValueError("MeanImputer.Fit", "empty data")
	}

	m.NFeatures = c
	m.Mean = make([]float64, c)

	for j := 0; j < c; j++ {
		sum := 0.0
		count := 0
		for i := 0; i < r; i++ {
			v := X.At(i, j)
			if math.IsNaN(v) {
				continue
			}
			sum += v
			count++
		}
		if count == 0 {
			return errors.NewInsufficientRowsError("MeanImputer.Fit", "rows", 1, 0)
		}
		m.Mean[j] = sum / float64(count)
	}

	m.SetFitted()
	return nil
}

// Transform は学習済みの列平均で欠損セルを埋めたコピーを返す
func (m *MeanImputer) Transform(X mat.Matrix) (mat.Matrix, error) {
	if !m.IsFitted() {
		return nil, errors.NewNotFittedError("MeanImputer", "Transform")
	}

	r, c := X.Dims()
	if c != m.NFeatures {
		return nil, errors.NewDimensionError("MeanImputer.Transform", m.NFeatures, c, 1)
	}

	out := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := X.At(i, j)
			if math.IsNaN(v) {
				v = m.Mean[j]
			}
			out.Set(i, j, v)
		}
	}
	return out, nil
}

// FitTransform はFitとTransformを一度に実行する
func (m *MeanImputer) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := m.Fit(X); err != nil {
		return nil, err
	}
	return m.Transform(X)
}

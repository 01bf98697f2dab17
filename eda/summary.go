// Package eda は探索的データ分析のための要約統計とプロットを提供します。
// 参加者がtrain.csvを最初に眺めるときの道具立て。
package eda

import (
	"math"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/cofprep/pkg/errors"
)

// ColumnSummary は1列ぶんの要約統計
type ColumnSummary struct {
	Name    string
	Count   int // 欠損を除いた観測数
	Missing int // 欠損数
	Mean    float64
	Std     float64 // 標本標準偏差（n-1）
	Min     float64
	Max     float64
}

// Summarize は数値列（Float・Int）ごとの要約統計を返す。統計は欠損を除いて計算する。
func Summarize(df dataframe.DataFrame) ([]ColumnSummary, error) {
	if df.Nrow() == 0 {
		return nil, errors.WithStack(errors.ErrEmptyData)
	}

	var out []ColumnSummary
	for _, name := range df.Names() {
		col := df.Col(name)
		if t := col.Type(); t != series.Float && t != series.Int {
			continue
		}

		var observed []float64
		missing := 0
		for _, v := range col.Float() {
			if math.IsNaN(v) {
				missing++
				continue
			}
			observed = append(observed, v)
		}

		s := ColumnSummary{Name: name, Count: len(observed), Missing: missing}
		if len(observed) > 0 {
			s.Mean = stat.Mean(observed, nil)
			s.Std = stat.StdDev(observed, nil)
			s.Min = floats.Min(observed)
			s.Max = floats.Max(observed)
		}
		out = append(out, s)
	}
	return out, nil
}

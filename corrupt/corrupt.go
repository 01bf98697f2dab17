// Package corrupt は訓練テーブルへの合成欠損の注入を提供します。
//
// 欠損は2段階の確率過程で入る: まず行の12.5%を非復元抽出し、選ばれた各行について
// 二項分布から欠損させる列数kを引き、k列を非復元抽出してNaNで上書きする。
// 評価用の保持セットには注入しない。正解が欠損している評価は成立しないため。
package corrupt

import (
	"math"
	"math/rand/v2"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/YuminosukeSato/cofprep/dataset"
	"github.com/YuminosukeSato/cofprep/pkg/errors"
)

const (
	// DefaultRowFraction は欠損を受ける行の割合。nanRowCount = floor(0.125 × 行数)。
	DefaultRowFraction = 0.125

	// DefaultColumnProb は二項分布のp。k = B(適格列数, p) + 1。
	DefaultColumnProb = 0.1
)

// Corruptor は宣言型がFloatの特徴量列にのみ欠損を注入するコラプター
type Corruptor struct {
	rowFraction float64
	columnProb  float64
}

// NewCorruptor はデフォルト設定（行割合0.125、列確率0.1）のCorruptorを作成する
func NewCorruptor() *Corruptor {
	return &Corruptor{
		rowFraction: DefaultRowFraction,
		columnProb:  DefaultColumnProb,
	}
}

// NewCorruptorWith は割合と確率を指定してCorruptorを作成する
func NewCorruptorWith(rowFraction, columnProb float64) (*Corruptor, error) {
	if rowFraction < 0 || rowFraction > 1 {
		return nil, errors.NewValidationError("rowFraction", "must be in [0, 1]", rowFraction)
	}
	if columnProb < 0 || columnProb > 1 {
		return nil, errors.NewValidationError("columnProb", "must be in [0, 1]", columnProb)
	}
	return &Corruptor{rowFraction: rowFraction, columnProb: columnProb}, nil
}

// NanRowCount は行数nのテーブルで欠損を受ける行数を返す。
func (c *Corruptor) NanRowCount(n int) int {
	return int(math.Floor(c.rowFraction * float64(n)))
}

// SampleRowMask は1行ぶんの欠損列を決定する純粋関数。
// 二項分布から列数kを引き、続いてk列を非復元抽出する。ドロー順を固定するため、
// kがnEligibleを超えた場合も再抽選せず上限にクリップする（抽選回数が行ごとに一定になる）。
//
// 戻り値は適格列集合へのオフセット。長さは1以上nEligible以下。
func SampleRowMask(bin distuv.Binomial, rng *rand.Rand, nEligible int) []int {
	k := int(bin.Rand()) + 1
	if k > nEligible {
		errors.Warn(errors.NewClippedDrawWarning("SampleRowMask", k, nEligible))
		k = nEligible
	}
	return rng.Perm(nEligible)[:k]
}

// Corrupt は訓練テーブルのFloat型特徴量列に欠損（NaN）を注入したコピーを返す。
//
// 適格列はexcludeを除く宣言型Floatの列のみ。ターゲット列や整数のカウント列は
// 値が連続的でも対象にしない。乱数ドローは (1) 行の非復元抽出 →
// (2) 行選択順に、行ごとの二項ドローと列抽出 の順で共有ソースを消費する。
//
// パラメータ:
//   - df: 訓練テーブル
//   - src: 共有乱数ソース
//   - exclude: 適格判定から除外する列名（ターゲット・id）
//
// 戻り値:
//   - dataframe.DataFrame: 欠損注入済みのテーブル
//   - error: 適格列が存在しない場合
func (c *Corruptor) Corrupt(df dataframe.DataFrame, src rand.Source, exclude ...string) (dataframe.DataFrame, error) {
	n := df.Nrow()
	nanRowCount := c.NanRowCount(n)
	if nanRowCount == 0 {
		return df, nil
	}

	eligible := dataset.FloatColumns(df, exclude...)
	if len(eligible) == 0 {
		return dataframe.DataFrame{}, errors.NewInsufficientRowsError("Corrupt", "columns", 1, 0)
	}

	rng := rand.New(src)

	// ドロー: 欠損を受ける行を非復元抽出。以降の行ごとのドローは抽出順に行う。
	rows := rng.Perm(n)[:nanRowCount]

	bin := distuv.Binomial{N: float64(len(eligible)), P: c.columnProb, Src: src}

	// 列ごとにNaN化する行位置を集め、最後にまとめて上書きする。
	hits := make(map[string][]int, len(eligible))
	for _, r := range rows {
		for _, off := range SampleRowMask(bin, rng, len(eligible)) {
			col := eligible[off]
			hits[col] = append(hits[col], r)
		}
	}

	out := df
	for _, col := range eligible {
		idx, ok := hits[col]
		if !ok {
			continue
		}
		nans := make([]float64, len(idx))
		for i := range nans {
			nans[i] = math.NaN()
		}
		s := out.Col(col)
		s = s.Set(idx, series.New(nans, series.Float, col))
		if s.Err != nil {
			return dataframe.DataFrame{}, errors.Wrap(s.Err, "corrupt: setting missing markers failed")
		}
		out = out.Mutate(s)
		if out.Error() != nil {
			return dataframe.DataFrame{}, errors.Wrap(out.Error(), "corrupt: mutate failed")
		}
	}
	return out, nil
}

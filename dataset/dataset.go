// Package dataset はCOFテーブルの読み込み・クリーニング・id付与を提供します。
// テーブル表現にはgotaのDataFrameをそのまま使い、列型の判定はシリーズの宣言型に従います。
package dataset

import (
	"io"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/YuminosukeSato/cofprep/pkg/errors"
)

// Load はCSVからテーブルを読み込む。ヘッダ行必須、列型は値から推論される。
// 整数のみの列はInt、小数を含む列はFloatになる点が後段の欠損注入の適格判定に効く。
func Load(r io.Reader) (dataframe.DataFrame, error) {
	df := dataframe.ReadCSV(r)
	if df.Error() != nil {
		return dataframe.DataFrame{}, errors.Wrap(df.Error(), "dataset.Load: failed to read CSV")
	}
	if df.Nrow() == 0 {
		return dataframe.DataFrame{}, errors.WithStack(errors.ErrEmptyData)
	}
	return df, nil
}

// Clean は指定された列を全て落とし、ターゲット列と数値特徴量だけのテーブルを返す。
// 列挙された列が1つでも存在しなければSchemaErrorで中断する。黙認はしない。
// id付与より前に実行すること。idはクリーニング後の行位置として定義される。
func Clean(df dataframe.DataFrame, target string, drop ...string) (dataframe.DataFrame, error) {
	names := make(map[string]bool, df.Ncol())
	for _, n := range df.Names() {
		names[n] = true
	}

	if !names[target] {
		return dataframe.DataFrame{}, errors.NewSchemaError("Clean", target)
	}
	for _, col := range drop {
		if !names[col] {
			return dataframe.DataFrame{}, errors.NewSchemaError("Clean", col)
		}
	}

	if len(drop) == 0 {
		return df, nil
	}
	cleaned := df.Drop(drop)
	if cleaned.Error() != nil {
		return dataframe.DataFrame{}, errors.Wrap(cleaned.Error(), "dataset.Clean: drop failed")
	}
	return cleaned, nil
}

// AssignID はクリーニング済みテーブルに0始まりの行位置をid列として付与する。
// idは一意かつ安定で、以降の分割・照合の唯一のキーになる。
func AssignID(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	for _, n := range df.Names() {
		if n == IDColumn {
			return dataframe.DataFrame{}, errors.NewValidationError(IDColumn, "column already present", n)
		}
	}

	ids := make([]int, df.Nrow())
	for i := range ids {
		ids[i] = i
	}
	out := df.Mutate(series.New(ids, series.Int, IDColumn))
	if out.Error() != nil {
		return dataframe.DataFrame{}, errors.Wrap(out.Error(), "dataset.AssignID: mutate failed")
	}
	return out, nil
}

// FloatColumns は宣言型がFloatである列の名前を返す（exclude指定の列は除く）。
// 欠損注入の適格集合はこの宣言型チェックのみで決まり、値による判定は行わない。
func FloatColumns(df dataframe.DataFrame, exclude ...string) []string {
	skip := make(map[string]bool, len(exclude))
	for _, n := range exclude {
		skip[n] = true
	}

	var cols []string
	for _, name := range df.Names() {
		if skip[name] {
			continue
		}
		if df.Col(name).Type() == series.Float {
			cols = append(cols, name)
		}
	}
	return cols
}

// IDs はid列を整数スライスとして返す。
func IDs(df dataframe.DataFrame) ([]int, error) {
	ids, err := df.Col(IDColumn).Int()
	if err != nil {
		return nil, errors.Wrap(err, "dataset.IDs: id column is not integral")
	}
	return ids, nil
}

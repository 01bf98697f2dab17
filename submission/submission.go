// Package submission はKaggle形式の提出ファイルの読み書き・検証・採点を提供します。
package submission

import (
	"io"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/cofprep/dataset"
	"github.com/YuminosukeSato/cofprep/metrics"
	"github.com/YuminosukeSato/cofprep/pkg/errors"
)

// Write は提出ファイル（id, 予測値）をCSVとして書き出す
func Write(w io.Writer, ids []int, preds []float64, target string) error {
	if len(ids) != len(preds) {
		return errors.NewDimensionError("submission.Write", len(ids), len(preds), 0)
	}
	if len(ids) == 0 {
		return errors.NewValueError("submission.Write", "empty submission")
	}

	df := dataframe.New(
		series.New(ids, series.Int, dataset.IDColumn),
		series.New(preds, series.Float, target),
	)
	if df.Error() != nil {
		return errors.Wrap(df.Error(), "submission.Write: building frame")
	}
	return df.WriteCSV(w)
}

// Read は提出ファイルを読み込む。id列と予測値列の2列構成を要求する。
func Read(r io.Reader, target string) (dataframe.DataFrame, error) {
	df := dataframe.ReadCSV(r)
	if df.Error() != nil {
		return dataframe.DataFrame{}, errors.Wrap(df.Error(), "submission.Read")
	}

	names := map[string]bool{}
	for _, n := range df.Names() {
		names[n] = true
	}
	if !names[dataset.IDColumn] {
		return dataframe.DataFrame{}, errors.NewSchemaError("submission.Read", dataset.IDColumn)
	}
	if !names[target] {
		return dataframe.DataFrame{}, errors.NewSchemaError("submission.Read", target)
	}
	return df, nil
}

// Validate は提出のid集合がテストセットのid集合と一致することを確認する
func Validate(sub, test dataframe.DataFrame) error {
	subIDs, err := dataset.IDs(sub)
	if err != nil {
		return err
	}
	testIDs, err := dataset.IDs(test)
	if err != nil {
		return err
	}

	if len(subIDs) != len(testIDs) {
		return errors.NewDimensionError("submission.Validate", len(testIDs), len(subIDs), 0)
	}

	want := make(map[int]bool, len(testIDs))
	for _, id := range testIDs {
		want[id] = true
	}
	seen := make(map[int]bool, len(subIDs))
	for _, id := range subIDs {
		if seen[id] {
			return errors.NewValidationError("id", "duplicated in submission", id)
		}
		seen[id] = true
		if !want[id] {
			return errors.NewValidationError("id", "not present in test set", id)
		}
	}
	return nil
}

// Score は提出を正解表に対してRMSEで採点する。行はidで突き合わせる。
func Score(sub, solution dataframe.DataFrame, target string) (float64, error) {
	if err := Validate(sub, solution); err != nil {
		return 0, err
	}

	subIDs, err := dataset.IDs(sub)
	if err != nil {
		return 0, err
	}
	subPreds := sub.Col(target).Float()
	predByID := make(map[int]float64, len(subIDs))
	for i, id := range subIDs {
		predByID[id] = subPreds[i]
	}

	solIDs, err := dataset.IDs(solution)
	if err != nil {
		return 0, err
	}
	truth := solution.Col(target).Float()

	yTrue := mat.NewVecDense(len(solIDs), nil)
	yPred := mat.NewVecDense(len(solIDs), nil)
	for i, id := range solIDs {
		yTrue.SetVec(i, truth[i])
		yPred.SetVec(i, predByID[id])
	}
	return metrics.RMSE(yTrue, yPred)
}

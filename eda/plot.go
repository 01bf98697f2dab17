package eda

import (
	"math"

	"github.com/go-gota/gota/dataframe"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/cofprep/pkg/errors"
)

// TargetHistogram はターゲット分布のヒストグラムをPNGとして書き出す。
// 保持セットが分布の極値側に偏っている様子を確かめるのに使う。
func TargetHistogram(df dataframe.DataFrame, target, path string, bins int) error {
	vals, err := observedColumn(df, target)
	if err != nil {
		return err
	}

	p := plot.New()
	p.Title.Text = "Distribution of " + target
	p.X.Label.Text = target
	p.Y.Label.Text = "Count"

	h, err := plotter.NewHist(plotter.Values(vals), bins)
	if err != nil {
		return errors.Wrap(err, "eda: building histogram")
	}
	p.Add(h)

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return errors.Wrap(err, "eda: saving histogram")
	}
	return nil
}

// FeatureScatter は特徴量とターゲットの散布図をPNGとして書き出す。
// どちらかが欠損している行は描画から外す。
func FeatureScatter(df dataframe.DataFrame, feature, target, path string) error {
	names := map[string]bool{}
	for _, n := range df.Names() {
		names[n] = true
	}
	if !names[feature] {
		return errors.NewSchemaError("eda.FeatureScatter", feature)
	}
	if !names[target] {
		return errors.NewSchemaError("eda.FeatureScatter", target)
	}

	xRaw := df.Col(feature).Float()
	yRaw := df.Col(target).Float()

	pts := make(plotter.XYs, 0, len(xRaw))
	for i := range xRaw {
		if math.IsNaN(xRaw[i]) || math.IsNaN(yRaw[i]) {
			continue
		}
		pts = append(pts, plotter.XY{X: xRaw[i], Y: yRaw[i]})
	}
	if len(pts) == 0 {
		return errors.NewValueError("eda.FeatureScatter", "no complete rows to plot")
	}

	p := plot.New()
	p.Title.Text = feature + " vs " + target
	p.X.Label.Text = feature
	p.Y.Label.Text = target

	s, err := plotter.NewScatter(pts)
	if err != nil {
		return errors.Wrap(err, "eda: building scatter")
	}
	p.Add(s)

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return errors.Wrap(err, "eda: saving scatter")
	}
	return nil
}

// observedColumn は列の欠損を除いた値を返す。列が無い・数値が残らない場合はエラー。
func observedColumn(df dataframe.DataFrame, name string) ([]float64, error) {
	found := false
	for _, n := range df.Names() {
		if n == name {
			found = true
			break
		}
	}
	if !found {
		return nil, errors.NewSchemaError("eda", name)
	}

	var vals []float64
	for _, v := range df.Col(name).Float() {
		if !math.IsNaN(v) {
			vals = append(vals, v)
		}
	}
	if len(vals) == 0 {
		return nil, errors.NewInsufficientRowsError("eda", "rows", 1, 0)
	}
	return vals, nil
}

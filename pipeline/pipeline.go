// Package pipeline はデータセット生成のバッチ実行（Load → Clean → Split → Corrupt → Persist）を提供します。
//
// 実行は単一ゴルーチンの逐次処理で、1つの固定シードから生成した乱数ソースを
// 決まった順序で消費する。同じ入力と同じシードに対して4つの成果物は
// バイト単位で一致する。途中で失敗した場合、出力ファイルは一切書かれない。
package pipeline

import (
	"bytes"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"github.com/go-gota/gota/dataframe"

	"github.com/YuminosukeSato/cofprep/corrupt"
	"github.com/YuminosukeSato/cofprep/dataset"
	"github.com/YuminosukeSato/cofprep/pkg/errors"
	cflog "github.com/YuminosukeSato/cofprep/pkg/log"
	"github.com/YuminosukeSato/cofprep/split"
)

// 出力ファイル名。カンマ区切り・ヘッダ行あり・行インデックス列なし。
const (
	TrainFile      = "train.csv"
	TestFile       = "test.csv"
	SolutionFile   = "solution.csv"
	SubmissionFile = "sample_submission.csv"
)

// DefaultSeed はコンペ成果物の再現に使う固定シード。
const DefaultSeed uint64 = 42

// Config はパイプラインの設定
type Config struct {
	// InputPath は生のCOFテーブル（CSV）のパス
	InputPath string

	// OutDir は4つの成果物を書き出すディレクトリ
	OutDir string

	// Seed は全乱数ドローを駆動する単一シード
	Seed uint64

	// Target はターゲット列名
	Target string

	// Drop はクリーニングで落とす列
	Drop []string

	// Splitter は保持セットのスプリッター
	Splitter *split.HoldoutSplitter

	// Corruptor は欠損注入のコラプター
	Corruptor *corrupt.Corruptor
}

// DefaultConfig はCOFコンペの既定設定を返す
func DefaultConfig(inputPath, outDir string) Config {
	return Config{
		InputPath: inputPath,
		OutDir:    outDir,
		Seed:      DefaultSeed,
		Target:    dataset.TargetColumn,
		Drop:      dataset.DropColumns(),
		Splitter:  split.NewHoldoutSplitter(),
		Corruptor: corrupt.NewCorruptor(),
	}
}

// Run はパイプラインを一括実行する
//
// 成果物は全てメモリ上に描画してからまとめて書き出す。部分出力モードはなく、
// 4ファイル全て正しく書けるか、1つも書かないかのどちらかになる。
func Run(cfg Config) error {
	start := time.Now()

	f, err := os.Open(cfg.InputPath)
	if err != nil {
		return errors.Wrap(err, "pipeline: opening input")
	}
	defer f.Close()

	raw, err := dataset.Load(f)
	if err != nil {
		return err
	}
	slog.Info("raw table loaded",
		cflog.StageKey, "load",
		cflog.InputPathKey, cfg.InputPath,
		cflog.RowsKey, raw.Nrow(),
		cflog.ColumnsKey, raw.Ncol(),
	)

	cleaned, err := dataset.Clean(raw, cfg.Target, cfg.Drop...)
	if err != nil {
		return err
	}
	withID, err := dataset.AssignID(cleaned)
	if err != nil {
		return err
	}
	slog.Info("table cleaned",
		cflog.StageKey, "clean",
		cflog.RowsKey, withID.Nrow(),
		cflog.ColumnsKey, withID.Ncol(),
		cflog.TargetKey, cfg.Target,
	)

	src := rand.NewPCG(cfg.Seed, cfg.Seed)

	// gotaの層は不正なインデックスでpanicし得るため、構造化エラーに変換して返す。
	var res split.Result
	err = errors.SafeExecute("pipeline.split", func() error {
		var splitErr error
		res, splitErr = cfg.Splitter.Split(withID, cfg.Target, src)
		return splitErr
	})
	if err != nil {
		return err
	}
	slog.Info("holdout split complete",
		cflog.StageKey, "split",
		cflog.SeedKey, cfg.Seed,
		cflog.HeldOutRowsKey, res.HeldOut.Nrow(),
		cflog.TrainingRowsKey, res.Training.Nrow(),
	)

	var training dataframe.DataFrame
	err = errors.SafeExecute("pipeline.corrupt", func() error {
		var corruptErr error
		training, corruptErr = cfg.Corruptor.Corrupt(res.Training, src, cfg.Target, dataset.IDColumn)
		return corruptErr
	})
	if err != nil {
		return err
	}
	slog.Info("missingness injected",
		cflog.StageKey, "corrupt",
		cflog.TrainingRowsKey, training.Nrow(),
		cflog.CorruptedRowsKey, cfg.Corruptor.NanRowCount(training.Nrow()),
		cflog.EligibleColumnsKey, len(dataset.FloatColumns(training, cfg.Target, dataset.IDColumn)),
	)

	if err := persist(cfg.OutDir, cfg.Target, training, res); err != nil {
		return err
	}
	slog.Info("pipeline complete",
		cflog.StageKey, "persist",
		cflog.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return nil
}

// persist は4つの成果物を描画して書き出す。規約どおりtrain.csvにはidを残さず、
// test.csvからはターゲット列を落とす。
func persist(outDir, target string, training dataframe.DataFrame, res split.Result) error {
	trainOut := training.Drop(dataset.IDColumn)
	if trainOut.Error() != nil {
		return errors.Wrap(trainOut.Error(), "pipeline: preparing train.csv")
	}
	testOut := res.HeldOut.Drop(target)
	if testOut.Error() != nil {
		return errors.Wrap(testOut.Error(), "pipeline: preparing test.csv")
	}

	artifacts := []struct {
		name string
		df   dataframe.DataFrame
	}{
		{TrainFile, trainOut},
		{TestFile, testOut},
		{SolutionFile, res.Solution},
		{SubmissionFile, res.Baseline},
	}

	// 先に全成果物をメモリ上に描画する。ここで失敗したらファイルは1つも書かない。
	rendered := make([]*bytes.Buffer, len(artifacts))
	for i, a := range artifacts {
		var buf bytes.Buffer
		if err := a.df.WriteCSV(&buf); err != nil {
			return errors.Wrapf(err, "pipeline: rendering %s", a.name)
		}
		rendered[i] = &buf
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return errors.Wrap(err, "pipeline: creating output directory")
	}
	for i, a := range artifacts {
		path := filepath.Join(outDir, a.name)
		if err := os.WriteFile(path, rendered[i].Bytes(), 0o644); err != nil {
			return errors.Wrapf(err, "pipeline: writing %s", a.name)
		}
		slog.Info("artifact written",
			cflog.StageKey, "persist",
			cflog.ArtifactKey, a.name,
			cflog.RowsKey, a.df.Nrow(),
		)
	}
	return nil
}

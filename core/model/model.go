// Package model は推定器の共通基盤を提供します。
package model

import "gonum.org/v1/gonum/mat"

// EstimatorState はモデルの学習状態を表す
type EstimatorState int

const (
	// NotFitted はモデルが未学習の状態
	NotFitted EstimatorState = iota
	// Fitted はモデルが学習済みの状態
	Fitted
)

// BaseEstimator は全てのモデルの基底となる構造体
type BaseEstimator struct {
	state EstimatorState
}

// IsFitted はモデルが学習済みかどうかを返す
func (e *BaseEstimator) IsFitted() bool {
	return e.state == Fitted
}

// SetFitted はモデルを学習済み状態に設定する
func (e *BaseEstimator) SetFitted() {
	e.state = Fitted
}

// Reset はモデルを初期状態にリセットする
func (e *BaseEstimator) Reset() {
	e.state = NotFitted
}

// Estimator は教師あり学習モデルの共通インターフェース
type Estimator interface {
	// Fit はモデルを訓練データで学習させる
	Fit(X, y mat.Matrix) error
	// Predict は入力データに対する予測値を返す
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// Transformer はデータ変換器の共通インターフェース
type Transformer interface {
	// Fit は訓練データから変換に必要な統計情報を学習する
	Fit(X mat.Matrix) error
	// Transform は学習済みの統計情報を使ってデータを変換する
	Transform(X mat.Matrix) (mat.Matrix, error)
}

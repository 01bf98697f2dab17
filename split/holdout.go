// Package split は評価用の保持セットを意図的に偏らせて切り出すスプリッターを提供します。
//
// 保持セットはターゲット最大の1行（best）、上位5件を除く6〜15位から無作為に5行（great）、
// 残り全体からの無作為補充（filler)の3段で組み立てられる。リーダーボード上位を
// 当てに行く面白さを残しつつ、大半は無作為という構成になっている。
package split

import (
	"fmt"
	"math/rand/v2"
	"sort"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/YuminosukeSato/cofprep/dataset"
	"github.com/YuminosukeSato/cofprep/pkg/errors"
)

// HoldoutSplitter はターゲット分布の極値側に偏った保持セットを切り出すスプリッター
type HoldoutSplitter struct {
	holdoutSize   int // 保持セットの総行数
	topExclude    int // greatプールから除外する上位件数
	greatPoolSize int // greatプールの件数（topExcludeの次からの順位幅）
	greatCount    int // プールから抽出するgreat行数
}

// NewHoldoutSplitter は新しいHoldoutSplitterを作成する
//
// デフォルト設定: 保持100行、上位5件除外、6〜15位の10行プールから5行抽出。
func NewHoldoutSplitter(opts ...Option) *HoldoutSplitter {
	s := &HoldoutSplitter{
		holdoutSize:   100,
		topExclude:    5,
		greatPoolSize: 10,
		greatCount:    5,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Result は分割の成果物一式
type Result struct {
	// HeldOut は保持セット（特徴量+ターゲット+id）。組み立て順: best → great → filler。
	HeldOut dataframe.DataFrame

	// Training は残りの訓練セット。元テーブルの行順を保つ。
	Training dataframe.DataFrame

	// Solution は保持セットの正解表（id, ターゲット, Usage="Public")。
	Solution dataframe.DataFrame

	// Baseline は非情報的な参照提出（id, 全テーブルのターゲット範囲[min,max]上の一様乱数)。
	Baseline dataframe.DataFrame
}

// Split はid付与済みテーブルを保持セットと訓練セットに分割する
//
// 乱数ドローは厳密に (1) greatサンプリング → (2) fillerサンプリング →
// (3) baseline一様乱数 の順で共有ソースを消費する。順序を変えると
// 同一シードでも成果物が変わる。
//
// パラメータ:
//   - df: id列付与済みのクリーニング済みテーブル
//   - target: ターゲット列名
//   - src: 共有乱数ソース
//
// 戻り値:
//   - Result: 分割成果物一式
//   - error: 行数不足・スキーマ欠落・不変条件違反の場合
func (s *HoldoutSplitter) Split(df dataframe.DataFrame, target string, src rand.Source) (Result, error) {
	if s.greatCount > s.greatPoolSize {
		return Result{}, errors.NewValidationError("greatCount", "must not exceed greatPoolSize", s.greatCount)
	}
	if s.holdoutSize < s.greatCount+1 {
		return Result{}, errors.NewValidationError("holdoutSize", "must cover the anchor rows", s.holdoutSize)
	}

	names := map[string]bool{}
	for _, n := range df.Names() {
		names[n] = true
	}
	if !names[target] {
		return Result{}, errors.NewSchemaError("Split", target)
	}
	if !names[dataset.IDColumn] {
		return Result{}, errors.NewSchemaError("Split", dataset.IDColumn)
	}

	n := df.Nrow()
	if n < s.holdoutSize {
		return Result{}, errors.NewInsufficientRowsError("Split", "rows", s.holdoutSize, n)
	}
	if n < s.topExclude+s.greatPoolSize {
		return Result{}, errors.NewInsufficientRowsError("Split", "rows", s.topExclude+s.greatPoolSize, n)
	}

	vals := df.Col(target).Float()

	// ターゲット降順の順位。同値は行位置昇順で順序を固定する。
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		if vals[order[i]] != vals[order[j]] {
			return vals[order[i]] > vals[order[j]]
		}
		return order[i] < order[j]
	})

	best := order[0]
	pool := order[s.topExclude : s.topExclude+s.greatPoolSize]

	rng := rand.New(src)

	// ドロー(1): プールからgreat行を非復元抽出。抽出順を保持する。
	great := make([]int, 0, s.greatCount)
	for _, p := range rng.Perm(len(pool))[:s.greatCount] {
		great = append(great, pool[p])
	}

	anchors := append([]int{best}, great...)
	inAnchor := make(map[int]bool, len(anchors))
	for _, a := range anchors {
		inAnchor[a] = true
	}

	remaining := make([]int, 0, n-len(anchors))
	for i := 0; i < n; i++ {
		if !inAnchor[i] {
			remaining = append(remaining, i)
		}
	}

	fillerCount := s.holdoutSize - len(anchors)
	if len(remaining) < fillerCount {
		return Result{}, errors.NewInsufficientRowsError("Split", "rows", fillerCount, len(remaining))
	}

	// ドロー(2): 残り全体からfillerを非復元抽出。
	filler := make([]int, 0, fillerCount)
	for _, p := range rng.Perm(len(remaining))[:fillerCount] {
		filler = append(filler, remaining[p])
	}

	heldIdx := append(append([]int{}, anchors...), filler...)
	inHeld := make(map[int]bool, len(heldIdx))
	for _, h := range heldIdx {
		inHeld[h] = true
	}
	trainIdx := make([]int, 0, n-len(heldIdx))
	for i := 0; i < n; i++ {
		if !inHeld[i] {
			trainIdx = append(trainIdx, i)
		}
	}

	held := df.Subset(heldIdx)
	if held.Error() != nil {
		return Result{}, errors.Wrap(held.Error(), "split: held-out subset failed")
	}
	train := df.Subset(trainIdx)
	if train.Error() != nil {
		return Result{}, errors.Wrap(train.Error(), "split: training subset failed")
	}

	if err := checkInvariants(n, held, train); err != nil {
		return Result{}, err
	}

	heldIDs, err := dataset.IDs(held)
	if err != nil {
		return Result{}, err
	}
	heldTargets := held.Col(target).Float()

	usage := make([]string, len(heldIDs))
	for i := range usage {
		usage[i] = dataset.UsagePublic
	}
	solution := dataframe.New(
		series.New(heldIDs, series.Int, dataset.IDColumn),
		series.New(heldTargets, series.Float, target),
		series.New(usage, series.String, dataset.UsageColumn),
	)
	if solution.Error() != nil {
		return Result{}, errors.Wrap(solution.Error(), "split: building solution failed")
	}

	// ドロー(3): 参照提出。全テーブルのターゲット範囲上の一様乱数を保持行ごとに引く。
	uni := distuv.Uniform{Min: floats.Min(vals), Max: floats.Max(vals), Src: src}
	preds := make([]float64, len(heldIDs))
	for i := range preds {
		preds[i] = uni.Rand()
	}
	baseline := dataframe.New(
		series.New(heldIDs, series.Int, dataset.IDColumn),
		series.New(preds, series.Float, target),
	)
	if baseline.Error() != nil {
		return Result{}, errors.Wrap(baseline.Error(), "split: building baseline failed")
	}

	return Result{
		HeldOut:  held,
		Training: train,
		Solution: solution,
		Baseline: baseline,
	}, nil
}

// checkInvariants は分割後の必須検査を行う。違反はサンプリングロジックの欠陥であり致命的。
func checkInvariants(total int, held, train dataframe.DataFrame) error {
	if held.Nrow()+train.Nrow() != total {
		return errors.NewInvariantViolationError("Split", "row_count",
			fmt.Sprintf("held %d + train %d != total %d", held.Nrow(), train.Nrow(), total))
	}

	heldIDs, err := dataset.IDs(held)
	if err != nil {
		return err
	}
	trainIDs, err := dataset.IDs(train)
	if err != nil {
		return err
	}

	seenHeld := make(map[int]bool, len(heldIDs))
	for _, id := range heldIDs {
		if seenHeld[id] {
			return errors.NewInvariantViolationError("Split", "id_unique_heldout",
				fmt.Sprintf("id %d duplicated in held-out set", id))
		}
		seenHeld[id] = true
	}

	seenTrain := make(map[int]bool, len(trainIDs))
	for _, id := range trainIDs {
		if seenTrain[id] {
			return errors.NewInvariantViolationError("Split", "id_unique_training",
				fmt.Sprintf("id %d duplicated in training set", id))
		}
		seenTrain[id] = true
		if seenHeld[id] {
			return errors.NewInvariantViolationError("Split", "id_disjoint",
				fmt.Sprintf("id %d present in both partitions", id))
		}
	}
	return nil
}

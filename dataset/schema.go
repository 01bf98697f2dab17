package dataset

// COFテーブルの固定スキーマ。
// 列は4群に分かれる: 識別子・カテゴリ列、代替ターゲット列、
// アクティブなターゲット列、残りの数値特徴量。

const (
	// TargetColumn は高圧条件下のメタン吸着量（mol基準）。本コンペの唯一の予測対象。
	TargetColumn = "highUptake_mol"

	// IDColumn はクリーニング後の行位置から振られる合成id列。
	IDColumn = "id"

	// UsageColumn はsolution.csvの定数列名。
	UsageColumn = "Usage"

	// UsagePublic は公開リーダーボード行を示す定数値。
	UsagePublic = "Public"
)

// IdentifierColumns は識別子・カテゴリ・記述列。本タスクでは一切使用しない。
var IdentifierColumns = []string{
	"name",
	"linker1",
	"linker2",
	"functionalization",
	"topology",
}

// AlternateTargetColumns は今回のタスクで使わない別条件のターゲット列。
var AlternateTargetColumns = []string{
	"lowUptake_mol",
	"lowUptake_g",
	"highUptake_g",
}

// DropColumns はクリーニングで落とす全列を返す。
// 特徴量列は「残り全部」なので列挙しない。
func DropColumns() []string {
	cols := make([]string, 0, len(IdentifierColumns)+len(AlternateTargetColumns))
	cols = append(cols, IdentifierColumns...)
	cols = append(cols, AlternateTargetColumns...)
	return cols
}

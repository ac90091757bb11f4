package model

// TrailCategory トレイルの分類（描画スタイルを決定する）
const (
	TrailCategoryOfficialHiking = "official-hiking-route" // route=hiking タグ付きの公式ルート
	TrailCategoryInformalPath   = "informal-path"         // それ以外の歩道・小道
)

// Trail 名前付きのハイキング経路1区間を表すモデル
// 取り込みパスごとに生成され、以降は不変。再取得時は全て破棄して作り直す
type Trail struct {
	ID       string   `json:"id"`        // 元データのエレメントIDから導出
	Name     string   `json:"name"`      // 表示名（複数区間で重複しうる）
	Path     []LatLng `json:"path"`      // 経路の座標列（長さ1以上）
	MidPoint LatLng   `json:"mid_point"` // Path[len/2] の点。クラスタリングの基準点
	Category string   `json:"category"`  // TrailCategoryOfficialHiking / TrailCategoryInformalPath
}

// DefaultStyle カテゴリに応じたデフォルトの描画スタイルを返す
func (t *Trail) DefaultStyle() PolylineStyle {
	if t.Category == TrailCategoryOfficialHiking {
		return PolylineStyle{
			StrokeColor:   "#2d5b27",
			StrokeOpacity: 0.9,
			StrokeWeight:  4,
		}
	}
	return PolylineStyle{
		StrokeColor:   "#FF5733",
		StrokeOpacity: 0.9,
		StrokeWeight:  3,
	}
}

// TrailCluster 空間的に近いトレイル区間のグループ
// Center はメンバー追加のたびに「旧中心と新メンバー中点の2点平均」で更新されるため、
// 挿入順に依存する。真の重心ではない点に注意（意図的な近似として維持している）
type TrailCluster struct {
	Center      LatLng   `json:"center"`
	Trails      []*Trail `json:"trails"`       // 割り当て順のメンバー列（1件以上）
	DisplayName string   `json:"display_name"` // メンバー名のうち最頻出のもの
}

// MemberCount メンバー数を返す
func (c *TrailCluster) MemberCount() int {
	return len(c.Trails)
}

// OverpassElement Overpass APIから返る生エレメント
type OverpassElement struct {
	Type     string              `json:"type"`
	ID       int64               `json:"id"`
	Geometry []OverpassGeoPoint  `json:"geometry,omitempty"`
	Tags     *OverpassElementTag `json:"tags,omitempty"`
}

// OverpassGeoPoint Overpassのジオメトリ座標（経度フィールドは lon）
type OverpassGeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// OverpassElementTag トレイル判定に使うタグの一部
type OverpassElementTag struct {
	Name    string `json:"name,omitempty"`
	Highway string `json:"highway,omitempty"`
	Foot    string `json:"foot,omitempty"`
	Route   string `json:"route,omitempty"`
}

// OverpassResponse Overpass APIのレスポンス全体
type OverpassResponse struct {
	Elements []OverpassElement `json:"elements"`
}

// ClusterSummary クラスタ一覧APIのレスポンス用サマリ
type ClusterSummary struct {
	Center      LatLng `json:"center"`
	DisplayName string `json:"display_name"`
	MemberCount int    `json:"member_count"`
}

// GetClustersResponse GET /trails/clusters のレスポンス
type GetClustersResponse struct {
	Clusters []ClusterSummary `json:"clusters"`
}

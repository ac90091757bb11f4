package model

// OverlayHandle 外部の地図描画面が発行する、描画済みオブジェクトへの不透明な参照
type OverlayHandle string

// PolylineStyle 線オーバーレイの描画スタイル
type PolylineStyle struct {
	StrokeColor   string  `json:"stroke_color"`
	StrokeOpacity float64 `json:"stroke_opacity"`
	StrokeWeight  float64 `json:"stroke_weight"`
	ZIndex        int     `json:"z_index"`
}

// MarkerIcon 点オーバーレイのアイコン定義
type MarkerIcon struct {
	Shape        string  `json:"shape"` // 現状は circle のみ
	Scale        float64 `json:"scale"`
	FillColor    string  `json:"fill_color"`
	FillOpacity  float64 `json:"fill_opacity"`
	StrokeColor  string  `json:"stroke_color"`
	StrokeWeight float64 `json:"stroke_weight"`
	ImageURL     string  `json:"image_url,omitempty"` // 画像アイコンの場合はURL指定
}

// MarkerOptions 点オーバーレイの生成オプション
type MarkerOptions struct {
	Position LatLng     `json:"position"`
	Title    string     `json:"title"`
	Icon     MarkerIcon `json:"icon"`
	ZIndex   int        `json:"z_index"`
}

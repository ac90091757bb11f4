package model

// PlantReport Firestoreの plant_info コレクションに保存する報告ドキュメント
// 緯度経度は文字列で保存する（取得側で数値に変換する運用）
type PlantReport struct {
	ID           string `firestore:"-" json:"id"` // ドキュメントIDはFirestoreに含めない
	UserEmail    string `firestore:"userEmail" json:"userEmail"`
	PlantName    string `firestore:"plant_name" json:"plant_name"`
	Image        string `firestore:"image" json:"image"`
	Lat          string `firestore:"lat" json:"lat"`
	Lng          string `firestore:"lng" json:"lng"`
	Description  string `firestore:"description" json:"description"`
	InvasiveInfo string `firestore:"invasive_info" json:"invasive_info"`
	Removed      bool   `firestore:"removed" json:"removed"`
}

// PlantMarkerVars マーカー一覧APIで返す表示用ペイロード
type PlantMarkerVars struct {
	Lat   string  `json:"lat"`
	Lng   string  `json:"lng"`
	Image *string `json:"image"`
	Desc  *string `json:"desc"`
}

// PlantMarker 地図に描画する外来植物マーカー1件
// Key は植物名（表示ラベル）であり、グローバルに一意ではない
type PlantMarker struct {
	Key  string          `json:"key"`
	Vars PlantMarkerVars `json:"vars"`
}

// Position マーカーの座標を数値の LatLng で返す
func (m *PlantMarker) Position() (LatLng, error) {
	return ParseLatLngStrings(m.Vars.Lat, m.Vars.Lng)
}

// SelectedPlant 選択中マーカーの詳細カード用ペイロード
type SelectedPlant struct {
	Name        string `json:"name"`
	Image       string `json:"image"`
	Latitude    string `json:"latitude"`
	Longitude   string `json:"longitude"`
	Description string `json:"description"`
}

// SubmitReportRequest POST /reports のリクエスト
type SubmitReportRequest struct {
	UserEmail   string `json:"user_email" validate:"required,email"`
	PlantName   string `json:"plant_name" validate:"required"`
	Image       string `json:"image"`
	Latitude    string `json:"latitude" validate:"required"`
	Longitude   string `json:"longitude" validate:"required"`
	Description string `json:"description"`
}

// SubmitReportResponse POST /reports のレスポンス
type SubmitReportResponse struct {
	Status       string `json:"status"`
	ReportID     string `json:"report_id"`
	Invasive     bool   `json:"invasive"`
	InvasiveInfo string `json:"invasive_info"`
}

// RemoveMarkerRequest DELETE /markers のリクエスト（名前＋座標文字列で特定する）
type RemoveMarkerRequest struct {
	Name      string `json:"name" validate:"required"`
	Latitude  string `json:"latitude" validate:"required"`
	Longitude string `json:"longitude" validate:"required"`
}

package repository

import (
	"github.com/paulmach/orb"

	"TrailGuard-App/internal/domain/model"
)

// MapSurface 外部の地図描画面への能力インターフェース
// 具体的な地図プロバイダには依存せず、スタブ実装でテストできるようにする
// 描画面が存在する限り各操作は失敗しない前提（エラーを返さない）
type MapSurface interface {
	// CreateMarker 点オーバーレイを生成してハンドルを返す
	CreateMarker(opts model.MarkerOptions) model.OverlayHandle

	// CreatePolyline 線オーバーレイを生成してハンドルを返す（生成直後は非表示）
	CreatePolyline(path []model.LatLng, style model.PolylineStyle) model.OverlayHandle

	// SetMarkerIcon マーカーのアイコンを差し替える
	SetMarkerIcon(handle model.OverlayHandle, icon model.MarkerIcon)

	// SetPolylineVisible 線の表示／非表示を切り替える
	SetPolylineVisible(handle model.OverlayHandle, visible bool)

	// SetPolylineStyle 線のスタイルを差し替える
	SetPolylineStyle(handle model.OverlayHandle, style model.PolylineStyle)

	// OpenInfoWindow 指定マーカーに情報ポップアップを開く（既存のものは閉じる）
	OpenInfoWindow(anchor model.OverlayHandle, content string)

	// CloseInfoWindow 開いている情報ポップアップを閉じる
	CloseInfoWindow()

	// Remove オーバーレイを描画面から取り外す
	Remove(handle model.OverlayHandle)

	// FitBounds ビューポートを境界ボックスに合わせる
	FitBounds(bound orb.Bound)

	// Zoom 現在のズームレベルを返す
	Zoom() int

	// SetZoom ズームレベルを設定する
	SetZoom(level int)
}

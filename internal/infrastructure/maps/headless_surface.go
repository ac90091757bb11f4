package maps

import (
	"fmt"
	"sync"

	"github.com/paulmach/orb"

	"TrailGuard-App/internal/domain/model"
)

// HeadlessSurface 描画状態をメモリ上に保持する地図描画面の実装
// 具体的な地図プロバイダを持たないサーバー側で、クライアントに渡す
// 描画スナップショットの生成元になる。テストのスタブとしてもそのまま使える
//
// セッションの取得ゴルーチンが書き込み、スナップショット系のHTTPハンドラーが
// セッションのロック外から読むため、内部でRWMutexを持つ
type HeadlessSurface struct {
	mu     sync.RWMutex
	nextID int
	zoom   int

	markers   map[model.OverlayHandle]*RenderedMarker
	polylines map[model.OverlayHandle]*RenderedPolyline

	viewport       orb.Bound
	infoWindow     string
	infoWindowOpen bool
}

// RenderedMarker 描画済み点オーバーレイの状態
type RenderedMarker struct {
	Options model.MarkerOptions `json:"options"`
}

// RenderedPolyline 描画済み線オーバーレイの状態
type RenderedPolyline struct {
	Path    []model.LatLng      `json:"path"`
	Style   model.PolylineStyle `json:"style"`
	Visible bool                `json:"visible"`
}

// NewHeadlessSurface 新しいHeadlessSurfaceを作成する
func NewHeadlessSurface() *HeadlessSurface {
	return &HeadlessSurface{
		zoom:      model.DefaultZoom,
		markers:   make(map[model.OverlayHandle]*RenderedMarker),
		polylines: make(map[model.OverlayHandle]*RenderedPolyline),
		viewport:  model.DefaultBoundingBox.ToBound(),
	}
}

// CreateMarker 点オーバーレイを生成する
func (s *HeadlessSurface) CreateMarker(opts model.MarkerOptions) model.OverlayHandle {
	s.mu.Lock()
	defer s.mu.Unlock()
	handle := s.newHandle("marker")
	s.markers[handle] = &RenderedMarker{Options: opts}
	return handle
}

// CreatePolyline 線オーバーレイを生成する（生成直後は非表示）
func (s *HeadlessSurface) CreatePolyline(path []model.LatLng, style model.PolylineStyle) model.OverlayHandle {
	s.mu.Lock()
	defer s.mu.Unlock()
	handle := s.newHandle("polyline")
	s.polylines[handle] = &RenderedPolyline{Path: path, Style: style, Visible: false}
	return handle
}

// SetMarkerIcon マーカーのアイコンを差し替える
func (s *HeadlessSurface) SetMarkerIcon(handle model.OverlayHandle, icon model.MarkerIcon) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m, ok := s.markers[handle]; ok {
		m.Options.Icon = icon
	}
}

// SetPolylineVisible 線の表示状態を切り替える
func (s *HeadlessSurface) SetPolylineVisible(handle model.OverlayHandle, visible bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.polylines[handle]; ok {
		p.Visible = visible
	}
}

// SetPolylineStyle 線のスタイルを差し替える
func (s *HeadlessSurface) SetPolylineStyle(handle model.OverlayHandle, style model.PolylineStyle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.polylines[handle]; ok {
		p.Style = style
	}
}

// OpenInfoWindow 情報ポップアップを開く（既存のものは置き換える）
func (s *HeadlessSurface) OpenInfoWindow(anchor model.OverlayHandle, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.infoWindow = content
	s.infoWindowOpen = true
}

// CloseInfoWindow 情報ポップアップを閉じる
func (s *HeadlessSurface) CloseInfoWindow() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.infoWindow = ""
	s.infoWindowOpen = false
}

// Remove オーバーレイを取り外す
func (s *HeadlessSurface) Remove(handle model.OverlayHandle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.markers, handle)
	delete(s.polylines, handle)
}

// FitBounds ビューポートを境界ボックスに合わせる
// フィット結果のズームは簡易に最大値へ寄せる（上限制御は呼び出し側が行う）
func (s *HeadlessSurface) FitBounds(bound orb.Bound) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.viewport = bound
	s.zoom = 18
}

// Zoom 現在のズームレベル
func (s *HeadlessSurface) Zoom() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.zoom
}

// SetZoom ズームレベルを設定する
func (s *HeadlessSurface) SetZoom(level int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.zoom = level
}

// MarkerCount 描画中のマーカー数（スナップショット・テスト用）
func (s *HeadlessSurface) MarkerCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.markers)
}

// PolylineCount 描画中の線の数
func (s *HeadlessSurface) PolylineCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.polylines)
}

// VisiblePolylineCount 表示中の線の数
func (s *HeadlessSurface) VisiblePolylineCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, p := range s.polylines {
		if p.Visible {
			count++
		}
	}
	return count
}

// Marker ハンドルからマーカー状態を引く（見つからなければnil）
func (s *HeadlessSurface) Marker(handle model.OverlayHandle) *RenderedMarker {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.markers[handle]
}

// Viewport 現在のビューポート境界
func (s *HeadlessSurface) Viewport() orb.Bound {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.viewport
}

// InfoWindowContent 開いている情報ポップアップの内容（閉じていれば空文字）
func (s *HeadlessSurface) InfoWindowContent() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.infoWindowOpen {
		return ""
	}
	return s.infoWindow
}

// newHandle 連番ベースの不透明ハンドルを発行する。呼び出し側がロックを持つ
func (s *HeadlessSurface) newHandle(kind string) model.OverlayHandle {
	s.nextID++
	return model.OverlayHandle(fmt.Sprintf("%s-%d", kind, s.nextID))
}

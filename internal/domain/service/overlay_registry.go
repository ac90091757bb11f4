package service

import (
	"fmt"
	"math"

	"TrailGuard-App/internal/domain/helper"
	"TrailGuard-App/internal/domain/model"
	"TrailGuard-App/internal/domain/repository"
)

// OverlayRegistry ドメインエンティティと描画済みオーバーレイの対応を所有するレジストリ
// ハイライト状態のシングルトン（activeCluster / selectedPlant）もここで管理する
//
// スレッドセーフではない。呼び出し順序はセッション（usecase層）が直列化する
// 描画面が未設定（nil）の場合、全操作は防御的に no-op になる
type OverlayRegistry struct {
	surface repository.MapSurface

	clusters map[model.OverlayHandle]*clusterEntry
	plants   []*plantEntry

	active   *clusterEntry
	selected *model.SelectedPlant
}

// clusterEntry クラスタ1件分の描画ハンドル束
type clusterEntry struct {
	cluster *model.TrailCluster
	marker  model.OverlayHandle
	lines   []model.OverlayHandle // メンバートレイルごとの線（生成時は非表示）
}

// plantEntry 外来植物マーカー1件分のレコードとハンドル
type plantEntry struct {
	marker model.PlantMarker
	handle model.OverlayHandle
}

// NewOverlayRegistry 新しいOverlayRegistryを作成する
func NewOverlayRegistry(surface repository.MapSurface) *OverlayRegistry {
	return &OverlayRegistry{
		surface:  surface,
		clusters: make(map[model.OverlayHandle]*clusterEntry),
		plants:   make([]*plantEntry, 0),
	}
}

// RegisterCluster クラスタのマーカーとメンバー線を描画面に登録してハンドルを返す
func (r *OverlayRegistry) RegisterCluster(cluster *model.TrailCluster) model.OverlayHandle {
	if r.surface == nil || cluster == nil {
		return ""
	}

	lines := make([]model.OverlayHandle, len(cluster.Trails))
	for i, trail := range cluster.Trails {
		lines[i] = r.surface.CreatePolyline(trail.Path, trail.DefaultStyle())
	}

	marker := r.surface.CreateMarker(model.MarkerOptions{
		Position: cluster.Center,
		Title:    cluster.DisplayName,
		Icon:     hikingIcon(cluster.MemberCount()),
		ZIndex:   999,
	})

	r.clusters[marker] = &clusterEntry{
		cluster: cluster,
		marker:  marker,
		lines:   lines,
	}

	return marker
}

// HandleClusterClick クラスタマーカーのクリックイベントを処理する
// ハイライトをトグルし、情報ポップアップを開く
func (r *OverlayRegistry) HandleClusterClick(handle model.OverlayHandle) {
	if r.surface == nil {
		return
	}
	entry, ok := r.clusters[handle]
	if !ok {
		return
	}

	r.ToggleHighlight(entry.cluster)

	content := fmt.Sprintf("%s - %d trail segments", entry.cluster.DisplayName, entry.cluster.MemberCount())
	r.surface.OpenInfoWindow(entry.marker, content)
}

// ToggleHighlight クラスタのハイライト状態をトグルする
// 同じクラスタへの2回連続の呼び出しは非ハイライト状態に戻る（冪等なトグル）
// アクティブなクラスタは常に高々1つで、新しい選択は先に前のハイライトを解除する
func (r *OverlayRegistry) ToggleHighlight(cluster *model.TrailCluster) {
	if r.surface == nil || cluster == nil {
		return
	}
	entry := r.entryFor(cluster)
	if entry == nil {
		return
	}

	// すでにアクティブなら解除して終わり
	if r.active == entry {
		r.deactivate(entry)
		r.active = nil
		return
	}

	if r.active != nil {
		r.deactivate(r.active)
	}

	// メンバー線をハイライトスタイルで表示する
	for _, line := range entry.lines {
		r.surface.SetPolylineStyle(line, highlightStyle())
		r.surface.SetPolylineVisible(line, true)
	}
	r.surface.SetMarkerIcon(entry.marker, highlightedHikingIcon(entry.cluster.MemberCount()))

	// メンバー全経路を包含する範囲にビューポートを合わせる
	// 1点クラスタで寄りすぎないようズームに上限をかける
	r.surface.FitBounds(helper.TrailsBound(entry.cluster.Trails))
	if r.surface.Zoom() > model.MaxHighlightZoom {
		r.surface.SetZoom(model.MaxHighlightZoom)
	}

	r.active = entry
}

// deactivate ハイライトを解除してデフォルト表示に戻す
func (r *OverlayRegistry) deactivate(entry *clusterEntry) {
	for _, line := range entry.lines {
		r.surface.SetPolylineVisible(line, false)
	}
	r.surface.SetMarkerIcon(entry.marker, hikingIcon(entry.cluster.MemberCount()))
}

// RegisterPlantMarker 外来植物マーカーを描画面に登録してハンドルを返す
func (r *OverlayRegistry) RegisterPlantMarker(marker model.PlantMarker) model.OverlayHandle {
	if r.surface == nil {
		return ""
	}

	handle := r.surface.CreateMarker(model.MarkerOptions{
		Position: mustPosition(marker),
		Title:    marker.Key,
		Icon:     model.MarkerIcon{ImageURL: "http://maps.google.com/mapfiles/ms/icons/green-dot.png"},
	})

	r.plants = append(r.plants, &plantEntry{marker: marker, handle: handle})
	return handle
}

// HandlePlantMarkerClick マーカークリックで詳細カード用ペイロードを選択状態にする
// クラスタのハイライト状態には影響しない
func (r *OverlayRegistry) HandlePlantMarkerClick(handle model.OverlayHandle) {
	if r.surface == nil {
		return
	}
	for _, entry := range r.plants {
		if entry.handle != handle {
			continue
		}
		image := ""
		if entry.marker.Vars.Image != nil {
			image = *entry.marker.Vars.Image
		}
		desc := ""
		if entry.marker.Vars.Desc != nil {
			desc = *entry.marker.Vars.Desc
		}
		r.selected = &model.SelectedPlant{
			Name:        entry.marker.Key,
			Image:       image,
			Latitude:    entry.marker.Vars.Lat,
			Longitude:   entry.marker.Vars.Lng,
			Description: desc,
		}
		return
	}
}

// RemovePlantMarker 名前と座標文字列の完全一致でマーカーを取り外す
// 一致がなければ何もしない（削除は冪等）
func (r *OverlayRegistry) RemovePlantMarker(key, lat, lng string) {
	if r.surface == nil {
		return
	}
	for i, entry := range r.plants {
		if entry.marker.Key == key && entry.marker.Vars.Lat == lat && entry.marker.Vars.Lng == lng {
			r.surface.Remove(entry.handle)
			r.plants = append(r.plants[:i], r.plants[i+1:]...)
			if r.selected != nil && r.selected.Name == key && r.selected.Latitude == lat && r.selected.Longitude == lng {
				r.selected = nil
			}
			return
		}
	}
}

// ClearAll 登録済みオーバーレイを全て描画面から取り外し、対応表を空にする
// 再取得前やセッション終了時のリーク防止に必ず呼ぶ
func (r *OverlayRegistry) ClearAll() {
	if r.surface == nil {
		return
	}

	r.surface.CloseInfoWindow()
	for handle, entry := range r.clusters {
		for _, line := range entry.lines {
			r.surface.Remove(line)
		}
		r.surface.Remove(handle)
	}
	for _, entry := range r.plants {
		r.surface.Remove(entry.handle)
	}

	r.clusters = make(map[model.OverlayHandle]*clusterEntry)
	r.plants = make([]*plantEntry, 0)
	r.active = nil
	r.selected = nil
}

// ClearClusters クラスタ系のオーバーレイだけを取り外す（植物マーカーは保持）
// トレイル再取得時に使う。植物マーカー側のパイプラインとは互いに干渉しない
func (r *OverlayRegistry) ClearClusters() {
	if r.surface == nil {
		return
	}
	r.surface.CloseInfoWindow()
	for handle, entry := range r.clusters {
		for _, line := range entry.lines {
			r.surface.Remove(line)
		}
		r.surface.Remove(handle)
	}
	r.clusters = make(map[model.OverlayHandle]*clusterEntry)
	r.active = nil
}

// ClearPlantMarkers 植物マーカー系のオーバーレイだけを取り外す（クラスタは保持）
// マーカー再取得時に使う。ClearClustersと対になる部分集合クリア
func (r *OverlayRegistry) ClearPlantMarkers() {
	if r.surface == nil {
		return
	}
	for _, entry := range r.plants {
		r.surface.Remove(entry.handle)
	}
	r.plants = make([]*plantEntry, 0)
	r.selected = nil
}

// ActiveCluster 現在ハイライト中のクラスタを返す（なければnil）
func (r *OverlayRegistry) ActiveCluster() *model.TrailCluster {
	if r.active == nil {
		return nil
	}
	return r.active.cluster
}

// IsHighlighted クラスタがハイライト中かどうか
func (r *OverlayRegistry) IsHighlighted(cluster *model.TrailCluster) bool {
	return r.active != nil && r.active.cluster == cluster
}

// SelectedPlant 選択中マーカーの表示用ペイロードを返す（なければnil）
func (r *OverlayRegistry) SelectedPlant() *model.SelectedPlant {
	return r.selected
}

// ClearSelectedPlant 詳細カードを閉じたときに選択状態を解除する
func (r *OverlayRegistry) ClearSelectedPlant() {
	r.selected = nil
}

// ClusterCount 登録済みクラスタ数
func (r *OverlayRegistry) ClusterCount() int {
	return len(r.clusters)
}

// PlantMarkerCount 登録済み外来植物マーカー数
func (r *OverlayRegistry) PlantMarkerCount() int {
	return len(r.plants)
}

// entryFor クラスタ本体からエントリを逆引きする
func (r *OverlayRegistry) entryFor(cluster *model.TrailCluster) *clusterEntry {
	for _, entry := range r.clusters {
		if entry.cluster == cluster {
			return entry
		}
	}
	return nil
}

// hikingIcon クラスタのデフォルトアイコン
// スケール項の係数0は従来表示との互換のため維持している
func hikingIcon(count int) model.MarkerIcon {
	return model.MarkerIcon{
		Shape:        "circle",
		Scale:        15 + math.Log2(float64(count))*0,
		FillColor:    "#2d5b27",
		FillOpacity:  0.9,
		StrokeColor:  "#fff",
		StrokeWeight: 3,
	}
}

// highlightedHikingIcon ハイライト中クラスタのアイコン
func highlightedHikingIcon(count int) model.MarkerIcon {
	return model.MarkerIcon{
		Shape:        "circle",
		Scale:        18 + math.Log2(float64(count))*2,
		FillColor:    "#FF0000",
		FillOpacity:  0.9,
		StrokeColor:  "#fff",
		StrokeWeight: 3,
	}
}

// highlightStyle ハイライト中メンバー線のスタイル（描画順も引き上げる）
func highlightStyle() model.PolylineStyle {
	return model.PolylineStyle{
		StrokeColor:   "#FF0000",
		StrokeOpacity: 0.9,
		StrokeWeight:  6,
		ZIndex:        2,
	}
}

// mustPosition マーカー座標を数値化する。解析できない場合は原点を返す
// （保存時に文字列化しているため通常は失敗しない）
func mustPosition(marker model.PlantMarker) model.LatLng {
	pos, err := marker.Position()
	if err != nil {
		return model.LatLng{}
	}
	return pos
}

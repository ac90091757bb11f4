package service

import (
	"testing"

	"TrailGuard-App/internal/domain/model"
	"TrailGuard-App/internal/infrastructure/maps"
)

// makeCluster テスト用クラスタを作成
func makeCluster(name string, trails ...*model.Trail) *model.TrailCluster {
	return &model.TrailCluster{
		Center:      trails[0].MidPoint,
		Trails:      trails,
		DisplayName: name,
	}
}

// makePlantMarker テスト用の植物マーカーを作成
func makePlantMarker(key, lat, lng string) model.PlantMarker {
	return model.PlantMarker{
		Key: key,
		Vars: model.PlantMarkerVars{
			Lat: lat,
			Lng: lng,
		},
	}
}

func TestOverlayRegistry_RegisterCluster(t *testing.T) {
	surface := maps.NewHeadlessSurface()
	registry := NewOverlayRegistry(surface)

	cluster := makeCluster("Eno Trail",
		makeTrail("way/1", "Eno Trail", 36.00, -79.00),
		makeTrail("way/2", "Eno Trail", 36.002, -79.00),
	)

	handle := registry.RegisterCluster(cluster)
	if handle == "" {
		t.Fatal("ハンドルが発行されていません")
	}

	if surface.MarkerCount() != 1 {
		t.Errorf("マーカー数が一致しません: %d", surface.MarkerCount())
	}
	if surface.PolylineCount() != 2 {
		t.Errorf("メンバー線の数が一致しません: %d", surface.PolylineCount())
	}
	// メンバー線は生成時は非表示
	if surface.VisiblePolylineCount() != 0 {
		t.Errorf("生成直後に表示中の線があります: %d", surface.VisiblePolylineCount())
	}
	if registry.ClusterCount() != 1 {
		t.Errorf("登録クラスタ数が一致しません: %d", registry.ClusterCount())
	}
}

func TestOverlayRegistry_ToggleHighlight(t *testing.T) {
	surface := maps.NewHeadlessSurface()
	registry := NewOverlayRegistry(surface)

	clusterA := makeCluster("North", makeTrail("way/1", "North", 36.00, -79.00))
	clusterB := makeCluster("South", makeTrail("way/2", "South", 36.10, -79.00))
	registry.RegisterCluster(clusterA)
	registry.RegisterCluster(clusterB)

	t.Run("ハイライトでメンバー線が表示される", func(t *testing.T) {
		registry.ToggleHighlight(clusterA)

		if !registry.IsHighlighted(clusterA) {
			t.Error("クラスタAがハイライト状態になっていません")
		}
		if surface.VisiblePolylineCount() != 1 {
			t.Errorf("表示中の線の数が一致しません: %d", surface.VisiblePolylineCount())
		}
	})

	t.Run("ズームは上限で頭打ちになる", func(t *testing.T) {
		if surface.Zoom() != model.MaxHighlightZoom {
			t.Errorf("ズーム上限が適用されていません: %d", surface.Zoom())
		}
	})

	t.Run("同じクラスタの2回目のトグルで解除される", func(t *testing.T) {
		registry.ToggleHighlight(clusterA)

		if registry.IsHighlighted(clusterA) {
			t.Error("2回目のトグルで解除されていません")
		}
		if registry.ActiveCluster() != nil {
			t.Error("アクティブクラスタが残っています")
		}
		if surface.VisiblePolylineCount() != 0 {
			t.Errorf("解除後も表示中の線があります: %d", surface.VisiblePolylineCount())
		}
	})

	t.Run("別クラスタの選択は前のハイライトを解除する", func(t *testing.T) {
		registry.ToggleHighlight(clusterA)
		registry.ToggleHighlight(clusterB)

		if registry.IsHighlighted(clusterA) {
			t.Error("クラスタAのハイライトが解除されていません")
		}
		if !registry.IsHighlighted(clusterB) {
			t.Error("クラスタBがハイライト状態になっていません")
		}
		// アクティブなクラスタは常に高々1つ
		if surface.VisiblePolylineCount() != 1 {
			t.Errorf("表示中の線の数が一致しません: %d", surface.VisiblePolylineCount())
		}
	})
}

func TestOverlayRegistry_HandleClusterClick(t *testing.T) {
	surface := maps.NewHeadlessSurface()
	registry := NewOverlayRegistry(surface)

	cluster := makeCluster("Eno Trail",
		makeTrail("way/1", "Eno Trail", 36.00, -79.00),
		makeTrail("way/2", "Eno Trail", 36.002, -79.00),
	)
	handle := registry.RegisterCluster(cluster)

	registry.HandleClusterClick(handle)

	if !registry.IsHighlighted(cluster) {
		t.Error("クリックでハイライトされていません")
	}
	if surface.InfoWindowContent() != "Eno Trail - 2 trail segments" {
		t.Errorf("ポップアップの内容が一致しません: %q", surface.InfoWindowContent())
	}

	t.Run("未登録ハンドルのクリックは何もしない", func(t *testing.T) {
		registry.HandleClusterClick("marker-999")
		if !registry.IsHighlighted(cluster) {
			t.Error("未登録ハンドルのクリックで状態が変わりました")
		}
	})
}

func TestOverlayRegistry_PlantMarkers(t *testing.T) {
	surface := maps.NewHeadlessSurface()
	registry := NewOverlayRegistry(surface)

	marker := makePlantMarker("Kudzu", "36.0014", "-78.9382")
	handle := registry.RegisterPlantMarker(marker)

	t.Run("クリックで選択状態になる", func(t *testing.T) {
		registry.HandlePlantMarkerClick(handle)

		selected := registry.SelectedPlant()
		if selected == nil {
			t.Fatal("選択状態が設定されていません")
		}
		if selected.Name != "Kudzu" || selected.Latitude != "36.0014" {
			t.Errorf("選択ペイロードが一致しません: %+v", selected)
		}
		// 画像・説明がnilの場合は空文字になる
		if selected.Image != "" || selected.Description != "" {
			t.Errorf("nilフィールドが空文字に変換されていません: %+v", selected)
		}
	})

	t.Run("座標一致で削除される", func(t *testing.T) {
		registry.RemovePlantMarker("Kudzu", "36.0014", "-78.9382")

		if registry.PlantMarkerCount() != 0 {
			t.Errorf("マーカーが削除されていません: %d", registry.PlantMarkerCount())
		}
		if surface.MarkerCount() != 0 {
			t.Errorf("描画面にマーカーが残っています: %d", surface.MarkerCount())
		}
		if registry.SelectedPlant() != nil {
			t.Error("削除対象の選択状態が解除されていません")
		}
	})

	t.Run("削除は冪等", func(t *testing.T) {
		registry.RemovePlantMarker("Kudzu", "36.0014", "-78.9382")
		if registry.PlantMarkerCount() != 0 {
			t.Errorf("2回目の削除で状態が変わりました: %d", registry.PlantMarkerCount())
		}
	})

	t.Run("座標が一致しなければ削除しない", func(t *testing.T) {
		registry.RegisterPlantMarker(makePlantMarker("Kudzu", "36.0014", "-78.9382"))
		registry.RemovePlantMarker("Kudzu", "36.0015", "-78.9382")

		if registry.PlantMarkerCount() != 1 {
			t.Errorf("座標不一致なのに削除されています: %d", registry.PlantMarkerCount())
		}
	})
}

func TestOverlayRegistry_Clear(t *testing.T) {
	t.Run("ClearClustersは植物マーカーを保持する", func(t *testing.T) {
		surface := maps.NewHeadlessSurface()
		registry := NewOverlayRegistry(surface)

		cluster := makeCluster("Eno Trail", makeTrail("way/1", "Eno Trail", 36.00, -79.00))
		registry.RegisterCluster(cluster)
		registry.ToggleHighlight(cluster)
		registry.RegisterPlantMarker(makePlantMarker("Kudzu", "36.0", "-79.0"))

		registry.ClearClusters()

		if registry.ClusterCount() != 0 {
			t.Errorf("クラスタが残っています: %d", registry.ClusterCount())
		}
		if registry.ActiveCluster() != nil {
			t.Error("アクティブクラスタが残っています")
		}
		if registry.PlantMarkerCount() != 1 {
			t.Errorf("植物マーカーが消えています: %d", registry.PlantMarkerCount())
		}
		// 植物マーカー1つだけが描画面に残る
		if surface.MarkerCount() != 1 {
			t.Errorf("描画面のマーカー数が一致しません: %d", surface.MarkerCount())
		}
	})

	t.Run("ClearPlantMarkersはクラスタを保持する", func(t *testing.T) {
		surface := maps.NewHeadlessSurface()
		registry := NewOverlayRegistry(surface)

		registry.RegisterCluster(makeCluster("Eno Trail", makeTrail("way/1", "Eno Trail", 36.00, -79.00)))
		handle := registry.RegisterPlantMarker(makePlantMarker("Kudzu", "36.0", "-79.0"))
		registry.HandlePlantMarkerClick(handle)

		registry.ClearPlantMarkers()

		if registry.PlantMarkerCount() != 0 {
			t.Errorf("植物マーカーが残っています: %d", registry.PlantMarkerCount())
		}
		if registry.SelectedPlant() != nil {
			t.Error("選択状態が残っています")
		}
		if registry.ClusterCount() != 1 {
			t.Errorf("クラスタが消えています: %d", registry.ClusterCount())
		}
		// クラスタマーカー1つだけが描画面に残る
		if surface.MarkerCount() != 1 {
			t.Errorf("描画面のマーカー数が一致しません: %d", surface.MarkerCount())
		}
	})

	t.Run("ClearAllで描画面が空になる", func(t *testing.T) {
		surface := maps.NewHeadlessSurface()
		registry := NewOverlayRegistry(surface)

		cluster := makeCluster("Eno Trail", makeTrail("way/1", "Eno Trail", 36.00, -79.00))
		handle := registry.RegisterCluster(cluster)
		registry.HandleClusterClick(handle)
		registry.RegisterPlantMarker(makePlantMarker("Kudzu", "36.0", "-79.0"))

		registry.ClearAll()

		if surface.MarkerCount() != 0 || surface.PolylineCount() != 0 {
			t.Errorf("描画面にオーバーレイが残っています: markers=%d polylines=%d",
				surface.MarkerCount(), surface.PolylineCount())
		}
		if surface.InfoWindowContent() != "" {
			t.Error("ポップアップが閉じられていません")
		}
		if registry.ClusterCount() != 0 || registry.PlantMarkerCount() != 0 {
			t.Error("対応表が空になっていません")
		}
		if registry.ActiveCluster() != nil || registry.SelectedPlant() != nil {
			t.Error("ハイライト・選択状態が残っています")
		}
	})
}

func TestOverlayRegistry_NilSurface(t *testing.T) {
	registry := NewOverlayRegistry(nil)

	cluster := makeCluster("Eno Trail", makeTrail("way/1", "Eno Trail", 36.00, -79.00))

	// 描画面なしでは全操作がno-opで、パニックしない
	if handle := registry.RegisterCluster(cluster); handle != "" {
		t.Errorf("描画面なしでハンドルが発行されています: %s", handle)
	}
	registry.ToggleHighlight(cluster)
	registry.HandleClusterClick("marker-1")
	registry.RegisterPlantMarker(makePlantMarker("Kudzu", "36.0", "-79.0"))
	registry.RemovePlantMarker("Kudzu", "36.0", "-79.0")
	registry.ClearClusters()
	registry.ClearPlantMarkers()
	registry.ClearAll()

	if registry.ClusterCount() != 0 || registry.PlantMarkerCount() != 0 {
		t.Error("描画面なしで状態が変化しています")
	}
}

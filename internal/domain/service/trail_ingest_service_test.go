package service

import (
	"testing"

	"TrailGuard-App/internal/domain/model"
)

func TestTrailIngestService_NormalizeElements(t *testing.T) {
	ingest := NewTrailIngestService()

	t.Run("基本的な正規化", func(t *testing.T) {
		elements := []model.OverpassElement{
			{
				Type: "way",
				ID:   123,
				Tags: &model.OverpassElementTag{Name: "Eno Trail", Route: "hiking"},
				Geometry: []model.OverpassGeoPoint{
					{Lat: 36.00, Lon: -79.00},
					{Lat: 36.01, Lon: -79.01},
					{Lat: 36.02, Lon: -79.02},
				},
			},
		}

		trails := ingest.NormalizeElements(elements)
		if len(trails) != 1 {
			t.Fatalf("トレイル数が一致しません: %d", len(trails))
		}

		trail := trails[0]
		if trail.ID != "way/123" {
			t.Errorf("IDの形式が想定と異なります: %s", trail.ID)
		}
		if trail.Name != "Eno Trail" {
			t.Errorf("名前が一致しません: %s", trail.Name)
		}
		if trail.Category != model.TrailCategoryOfficialHiking {
			t.Errorf("route=hikingのカテゴリが公式ルートではありません: %s", trail.Category)
		}
		if len(trail.Path) != 3 {
			t.Errorf("経路点数が一致しません: %d", len(trail.Path))
		}
	})

	t.Run("中点は経路中央インデックスの点", func(t *testing.T) {
		elements := []model.OverpassElement{
			{
				Type: "way",
				ID:   1,
				Tags: &model.OverpassElementTag{Name: "Ridge Path", Highway: "path"},
				Geometry: []model.OverpassGeoPoint{
					{Lat: 1, Lon: 1},
					{Lat: 2, Lon: 2},
					{Lat: 3, Lon: 3},
					{Lat: 4, Lon: 4},
				},
			},
		}

		trails := ingest.NormalizeElements(elements)
		// 偶数長ではインデックス len/2 = 2 の点
		if trails[0].MidPoint.Lat != 3 || trails[0].MidPoint.Lng != 3 {
			t.Errorf("中点が中央インデックスの点ではありません: %+v", trails[0].MidPoint)
		}
	})

	t.Run("nameタグのないエレメントはスキップ", func(t *testing.T) {
		elements := []model.OverpassElement{
			{
				Type:     "way",
				ID:       1,
				Tags:     &model.OverpassElementTag{Highway: "path"},
				Geometry: []model.OverpassGeoPoint{{Lat: 36, Lon: -79}},
			},
			{
				Type:     "way",
				ID:       2,
				Tags:     nil,
				Geometry: []model.OverpassGeoPoint{{Lat: 36, Lon: -79}},
			},
		}

		trails := ingest.NormalizeElements(elements)
		if len(trails) != 0 {
			t.Errorf("無名エレメントがスキップされていません: %d件", len(trails))
		}
	})

	t.Run("ジオメトリのないエレメントはスキップ", func(t *testing.T) {
		elements := []model.OverpassElement{
			{
				Type: "relation",
				ID:   9,
				Tags: &model.OverpassElementTag{Name: "Ghost Route", Route: "hiking"},
			},
		}

		trails := ingest.NormalizeElements(elements)
		if len(trails) != 0 {
			t.Errorf("ジオメトリなしエレメントがスキップされていません: %d件", len(trails))
		}
	})

	t.Run("route=hiking以外は非公式パス", func(t *testing.T) {
		elements := []model.OverpassElement{
			{
				Type:     "way",
				ID:       5,
				Tags:     &model.OverpassElementTag{Name: "Creek Footway", Highway: "footway", Foot: "yes"},
				Geometry: []model.OverpassGeoPoint{{Lat: 36, Lon: -79}},
			},
		}

		trails := ingest.NormalizeElements(elements)
		if trails[0].Category != model.TrailCategoryInformalPath {
			t.Errorf("カテゴリが非公式パスではありません: %s", trails[0].Category)
		}
	})

	t.Run("入力順を保存する", func(t *testing.T) {
		elements := []model.OverpassElement{
			{Type: "way", ID: 1, Tags: &model.OverpassElementTag{Name: "A"}, Geometry: []model.OverpassGeoPoint{{Lat: 1, Lon: 1}}},
			{Type: "way", ID: 2, Tags: &model.OverpassElementTag{Name: "B"}, Geometry: []model.OverpassGeoPoint{{Lat: 2, Lon: 2}}},
			{Type: "way", ID: 3, Tags: &model.OverpassElementTag{Name: "C"}, Geometry: []model.OverpassGeoPoint{{Lat: 3, Lon: 3}}},
		}

		trails := ingest.NormalizeElements(elements)
		if trails[0].Name != "A" || trails[1].Name != "B" || trails[2].Name != "C" {
			t.Error("出力順が入力順と一致しません")
		}
	})
}

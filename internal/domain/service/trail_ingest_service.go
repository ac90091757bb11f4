package service

import (
	"fmt"

	"TrailGuard-App/internal/domain/model"
)

// TrailIngestService Overpassの生エレメントを正規化済み Trail に変換するサービス
// 決定的で、入力順を保存する純粋変換
type TrailIngestService interface {
	NormalizeElements(elements []model.OverpassElement) []*model.Trail
}

// trailIngestServiceImpl TrailIngestServiceの実装
type trailIngestServiceImpl struct{}

// NewTrailIngestService TrailIngestServiceの新しいインスタンスを作成
func NewTrailIngestService() TrailIngestService {
	return &trailIngestServiceImpl{}
}

// NormalizeElements 生エレメント列を Trail 列に変換する
// ジオメトリまたは name タグを欠くエレメントは表示対象にならないためスキップする
func (s *trailIngestServiceImpl) NormalizeElements(elements []model.OverpassElement) []*model.Trail {
	trails := make([]*model.Trail, 0, len(elements))

	for _, element := range elements {
		if len(element.Geometry) == 0 || element.Tags == nil || element.Tags.Name == "" {
			continue
		}

		path := make([]model.LatLng, len(element.Geometry))
		for i, p := range element.Geometry {
			path[i] = model.LatLng{Lat: p.Lat, Lng: p.Lon}
		}

		category := model.TrailCategoryInformalPath
		if element.Tags.Route == "hiking" {
			category = model.TrailCategoryOfficialHiking
		}

		// 経路中央のインデックスにある点をクラスタリングの基準点とする
		// （幾何学的な中点ではない近似）
		midPoint := path[len(path)/2]

		trails = append(trails, &model.Trail{
			ID:       fmt.Sprintf("%s/%d", element.Type, element.ID),
			Name:     element.Tags.Name,
			Path:     path,
			MidPoint: midPoint,
			Category: category,
		})
	}

	return trails
}

package repository

import (
	"context"

	"TrailGuard-App/internal/domain/model"
)

// TrailSourceRepository 上流の地理データソース（Overpass API等）からの生エレメント取得
type TrailSourceRepository interface {
	// FetchTrailElements 境界ボックス内のトレイル候補エレメントを取得する
	FetchTrailElements(ctx context.Context, bbox model.BoundingBox) ([]model.OverpassElement, error)
}

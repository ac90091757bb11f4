package repository

import (
	"context"

	"TrailGuard-App/internal/domain/model"
)

// TrailCacheRepository 正規化済みトレイルのキャッシュストア
// Overpassへの問い合わせ回数を抑えるため、bboxキー単位で保存する
type TrailCacheRepository interface {
	// GetTrails キャッシュ済みトレイルを取得する。未キャッシュなら空スライスを返す
	GetTrails(ctx context.Context, bboxKey string) ([]*model.Trail, error)

	// SaveTrails bboxキーのキャッシュを丸ごと置き換える
	SaveTrails(ctx context.Context, bboxKey string, trails []*model.Trail) error
}

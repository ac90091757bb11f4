package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"TrailGuard-App/internal/domain/model"
	"TrailGuard-App/internal/infrastructure/database"
)

// trailCacheRow trail_cacheテーブルの1行
type trailCacheRow struct {
	BboxKey string          `json:"bbox_key"`
	Trails  json.RawMessage `json:"trails"`
}

// SupabaseTrailCacheRepository Supabase REST経由のトレイルキャッシュ
// PostgreSQL直接接続版と同じ trail_cache テーブルを読み書きする
type SupabaseTrailCacheRepository struct {
	client *database.SupabaseClient
}

// NewSupabaseTrailCacheRepository 新しいSupabaseTrailCacheRepositoryインスタンスを作成
func NewSupabaseTrailCacheRepository(client *database.SupabaseClient) *SupabaseTrailCacheRepository {
	return &SupabaseTrailCacheRepository{
		client: client,
	}
}

// GetTrails キャッシュ済みトレイルを取得する。未キャッシュなら空スライスを返す
func (r *SupabaseTrailCacheRepository) GetTrails(ctx context.Context, bboxKey string) ([]*model.Trail, error) {
	data, _, err := r.client.GetClient().
		From("trail_cache").
		Select("*", "", false).
		Eq("bbox_key", bboxKey).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("トレイルキャッシュの取得失敗: %w", err)
	}

	var rows []trailCacheRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("トレイルキャッシュのJSONアンマーシャル失敗: %w", err)
	}

	if len(rows) == 0 {
		return []*model.Trail{}, nil
	}

	var trails []*model.Trail
	if err := json.Unmarshal(rows[0].Trails, &trails); err != nil {
		return nil, fmt.Errorf("トレイルデータのJSONアンマーシャル失敗: %w", err)
	}

	return trails, nil
}

// SaveTrails bboxキーのキャッシュを丸ごと置き換える（upsert）
func (r *SupabaseTrailCacheRepository) SaveTrails(ctx context.Context, bboxKey string, trails []*model.Trail) error {
	payload, err := json.Marshal(trails)
	if err != nil {
		return fmt.Errorf("トレイルのJSONマーシャル失敗: %w", err)
	}

	row := trailCacheRow{
		BboxKey: bboxKey,
		Trails:  payload,
	}

	_, _, err = r.client.GetClient().
		From("trail_cache").
		Insert(row, true, "bbox_key", "", "").
		Execute()
	if err != nil {
		return fmt.Errorf("トレイルキャッシュの保存に失敗: %w", err)
	}

	return nil
}

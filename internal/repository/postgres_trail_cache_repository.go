package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"TrailGuard-App/internal/domain/model"
	"TrailGuard-App/internal/infrastructure/database"
)

// PostgresTrailCacheRepository PostgreSQL直接接続によるトレイルキャッシュ
// スキーマ: trail_cache(bbox_key TEXT PRIMARY KEY, trails JSONB, updated_at TIMESTAMPTZ)
type PostgresTrailCacheRepository struct {
	client *database.PostgreSQLClient
}

// NewPostgresTrailCacheRepository 新しいPostgresTrailCacheRepositoryインスタンスを作成
func NewPostgresTrailCacheRepository(client *database.PostgreSQLClient) *PostgresTrailCacheRepository {
	return &PostgresTrailCacheRepository{
		client: client,
	}
}

// GetTrails キャッシュ済みトレイルを取得する。未キャッシュなら空スライスを返す
func (r *PostgresTrailCacheRepository) GetTrails(ctx context.Context, bboxKey string) ([]*model.Trail, error) {
	var payload []byte
	err := r.client.DB.QueryRowContext(ctx,
		`SELECT trails FROM trail_cache WHERE bbox_key = $1`, bboxKey,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return []*model.Trail{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("トレイルキャッシュの取得に失敗: %w", err)
	}

	var trails []*model.Trail
	if err := json.Unmarshal(payload, &trails); err != nil {
		return nil, fmt.Errorf("トレイルキャッシュのJSONアンマーシャル失敗: %w", err)
	}

	return trails, nil
}

// SaveTrails bboxキーのキャッシュを丸ごと置き換える
func (r *PostgresTrailCacheRepository) SaveTrails(ctx context.Context, bboxKey string, trails []*model.Trail) error {
	payload, err := json.Marshal(trails)
	if err != nil {
		return fmt.Errorf("トレイルのJSONマーシャル失敗: %w", err)
	}

	_, err = r.client.DB.ExecContext(ctx,
		`INSERT INTO trail_cache (bbox_key, trails, updated_at)
		 VALUES ($1, $2, now())
		 ON CONFLICT (bbox_key) DO UPDATE SET trails = EXCLUDED.trails, updated_at = now()`,
		bboxKey, payload,
	)
	if err != nil {
		return fmt.Errorf("トレイルキャッシュの保存に失敗: %w", err)
	}

	return nil
}

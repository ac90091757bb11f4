package usecase

import (
	"context"
	"fmt"
	"log"

	"TrailGuard-App/internal/domain/model"
	"TrailGuard-App/internal/domain/repository"
	"TrailGuard-App/internal/domain/service"
)

// TrailUseCase トレイルの取得・クラスタリングをHTTP APIとバッチから使うためのユースケース
type TrailUseCase interface {
	// GetClusters 境界ボックス内のトレイルをクラスタリングしてサマリを返す
	GetClusters(ctx context.Context, bbox model.BoundingBox, radiusMeters float64) ([]model.ClusterSummary, error)

	// RefreshCache ソースから取得し直してキャッシュを更新する。取り込んだ件数を返す
	RefreshCache(ctx context.Context, bbox model.BoundingBox) (int, error)
}

// trailUseCaseImpl TrailUseCaseの実装
type trailUseCaseImpl struct {
	trailSource repository.TrailSourceRepository
	trailCache  repository.TrailCacheRepository // nil可
	ingest      service.TrailIngestService
	clusterSvc  service.ClusterService
}

// NewTrailUseCase 新しいTrailUseCaseインスタンスを作成
func NewTrailUseCase(source repository.TrailSourceRepository, cache repository.TrailCacheRepository) TrailUseCase {
	return &trailUseCaseImpl{
		trailSource: source,
		trailCache:  cache,
		ingest:      service.NewTrailIngestService(),
		clusterSvc:  service.NewClusterService(),
	}
}

// GetClusters キャッシュ優先でトレイルを取得し、クラスタリング結果のサマリを返す
func (u *trailUseCaseImpl) GetClusters(ctx context.Context, bbox model.BoundingBox, radiusMeters float64) ([]model.ClusterSummary, error) {
	trails, err := u.loadTrails(ctx, bbox)
	if err != nil {
		return nil, err
	}
	if len(trails) == 0 {
		return nil, model.ErrNoTrailsFound
	}

	clusters := u.clusterSvc.BuildClusters(trails, radiusMeters)

	summaries := make([]model.ClusterSummary, len(clusters))
	for i, cluster := range clusters {
		summaries[i] = model.ClusterSummary{
			Center:      cluster.Center,
			DisplayName: cluster.DisplayName,
			MemberCount: cluster.MemberCount(),
		}
	}
	return summaries, nil
}

// RefreshCache ソースから取り直してキャッシュを丸ごと置き換える（cronから呼ばれる）
func (u *trailUseCaseImpl) RefreshCache(ctx context.Context, bbox model.BoundingBox) (int, error) {
	elements, err := u.trailSource.FetchTrailElements(ctx, bbox)
	if err != nil {
		return 0, fmt.Errorf("トレイルソースの取得に失敗: %w", err)
	}

	trails := u.ingest.NormalizeElements(elements)

	if u.trailCache != nil {
		if err := u.trailCache.SaveTrails(ctx, bbox.Key(), trails); err != nil {
			return 0, fmt.Errorf("トレイルキャッシュの更新に失敗: %w", err)
		}
	}

	log.Printf("✅ トレイルキャッシュを更新: %s (%d件)", bbox.Key(), len(trails))
	return len(trails), nil
}

// loadTrails キャッシュ優先の取得。ミス時はソースから取得して書き戻す
func (u *trailUseCaseImpl) loadTrails(ctx context.Context, bbox model.BoundingBox) ([]*model.Trail, error) {
	if u.trailCache != nil {
		cached, err := u.trailCache.GetTrails(ctx, bbox.Key())
		if err == nil && len(cached) > 0 {
			return cached, nil
		}
		if err != nil {
			log.Printf("⚠️ トレイルキャッシュの参照に失敗、ソースから取得します: %v", err)
		}
	}

	elements, err := u.trailSource.FetchTrailElements(ctx, bbox)
	if err != nil {
		return nil, fmt.Errorf("トレイルソースの取得に失敗: %w", err)
	}

	trails := u.ingest.NormalizeElements(elements)

	if u.trailCache != nil && len(trails) > 0 {
		if err := u.trailCache.SaveTrails(ctx, bbox.Key(), trails); err != nil {
			log.Printf("⚠️ トレイルキャッシュへの保存に失敗: %v", err)
		}
	}

	return trails, nil
}

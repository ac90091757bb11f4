package repository

import (
	"context"

	"TrailGuard-App/internal/domain/model"
)

// PlantReportRepository 外来植物報告の永続化（Firestore plant_info コレクション）
type PlantReportRepository interface {
	// Store 報告を保存してドキュメントIDを返す
	Store(ctx context.Context, report *model.PlantReport) (string, error)

	// ListActiveMarkers removed=false かつ invasive_info が空でない報告を
	// 地図表示用マーカーとして取得する
	ListActiveMarkers(ctx context.Context) ([]model.PlantMarker, error)

	// GetByUserEmail 指定ユーザーの報告一覧を取得する
	GetByUserEmail(ctx context.Context, email string) ([]*model.PlantReport, error)

	// GetMarkerInfo 植物名と座標文字列の完全一致で報告を検索する
	GetMarkerInfo(ctx context.Context, lat, lng, plantName string) ([]*model.PlantReport, error)

	// MarkRemoved 報告の removed フラグを更新する（ソフトデリート）
	MarkRemoved(ctx context.Context, reportID string, removed bool) error
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"TrailGuard-App/internal/domain/model"
)

const plantInfoCollection = "plant_info"

// FirestorePlantReportRepository Firestoreを使用した外来植物報告リポジトリ
type FirestorePlantReportRepository struct {
	client *firestore.Client
}

// NewFirestorePlantReportRepository 新しいFirestorePlantReportRepositoryインスタンスを作成
func NewFirestorePlantReportRepository(client *firestore.Client) *FirestorePlantReportRepository {
	return &FirestorePlantReportRepository{
		client: client,
	}
}

// Store 報告を保存してドキュメントIDを返す
func (r *FirestorePlantReportRepository) Store(ctx context.Context, report *model.PlantReport) (string, error) {
	reportID := uuid.New().String()

	_, err := r.client.Collection(plantInfoCollection).Doc(reportID).Set(ctx, report)
	if err != nil {
		log.Printf("❌ Failed to save plant report %s: %v", reportID, err)
		return "", fmt.Errorf("植物報告の保存に失敗しました: %w", err)
	}

	log.Printf("✅ Plant report saved: %s (%s)", reportID, report.PlantName)
	return reportID, nil
}

// ListActiveMarkers removed=false かつ invasive_info が空でない報告をマーカーとして返す
func (r *FirestorePlantReportRepository) ListActiveMarkers(ctx context.Context) ([]model.PlantMarker, error) {
	iter := r.client.Collection(plantInfoCollection).
		Where("removed", "==", false).
		Where("invasive_info", ">", "").
		Documents(ctx)
	defer iter.Stop()

	markers := make([]model.PlantMarker, 0)
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("マーカー一覧の取得に失敗しました: %w", err)
		}

		var report model.PlantReport
		if err := doc.DataTo(&report); err != nil {
			log.Printf("⚠️ Skipping malformed plant report %s: %v", doc.Ref.ID, err)
			continue
		}

		// 座標を欠くドキュメントは表示できないためスキップ
		if report.Lat == "" || report.Lng == "" {
			continue
		}

		key := report.PlantName
		if key == "" {
			key = doc.Ref.ID
		}

		markers = append(markers, model.PlantMarker{
			Key: key,
			Vars: model.PlantMarkerVars{
				Lat:   report.Lat,
				Lng:   report.Lng,
				Image: optionalString(report.Image),
				Desc:  optionalString(report.Description),
			},
		})
	}

	return markers, nil
}

// GetByUserEmail 指定ユーザーの報告一覧を取得する
func (r *FirestorePlantReportRepository) GetByUserEmail(ctx context.Context, email string) ([]*model.PlantReport, error) {
	iter := r.client.Collection(plantInfoCollection).
		Where("userEmail", "==", email).
		Documents(ctx)
	defer iter.Stop()

	return r.collectReports(iter)
}

// GetMarkerInfo 植物名と座標文字列の完全一致で報告を検索する
func (r *FirestorePlantReportRepository) GetMarkerInfo(ctx context.Context, lat, lng, plantName string) ([]*model.PlantReport, error) {
	iter := r.client.Collection(plantInfoCollection).
		Where("lat", "==", lat).
		Where("lng", "==", lng).
		Where("plant_name", "==", plantName).
		Documents(ctx)
	defer iter.Stop()

	return r.collectReports(iter)
}

// MarkRemoved 報告の removed フラグを更新する
func (r *FirestorePlantReportRepository) MarkRemoved(ctx context.Context, reportID string, removed bool) error {
	_, err := r.client.Collection(plantInfoCollection).Doc(reportID).Update(ctx, []firestore.Update{
		{Path: "removed", Value: removed},
	})
	if err != nil {
		return fmt.Errorf("報告 %s の更新に失敗しました: %w", reportID, err)
	}

	log.Printf("✅ Plant report %s marked removed=%t", reportID, removed)
	return nil
}

// collectReports イテレータから報告を読み切る
func (r *FirestorePlantReportRepository) collectReports(iter *firestore.DocumentIterator) ([]*model.PlantReport, error) {
	reports := make([]*model.PlantReport, 0)
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("報告の取得に失敗しました: %w", err)
		}

		var report model.PlantReport
		if err := doc.DataTo(&report); err != nil {
			return nil, fmt.Errorf("報告データの変換に失敗しました: %w", err)
		}
		report.ID = doc.Ref.ID
		reports = append(reports, &report)
	}
	return reports, nil
}

// optionalString 空文字列をnilに正規化する（APIのnullable契約に合わせる）
func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

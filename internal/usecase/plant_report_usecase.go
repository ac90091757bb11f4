package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"

	"TrailGuard-App/internal/domain/model"
	"TrailGuard-App/internal/domain/repository"
)

// PlantReportUseCase 外来植物報告のライフサイクル（投稿・一覧・詳細・削除）
type PlantReportUseCase interface {
	// SubmitReport 報告を受け付ける。外来種判定を行ってからFirestoreに保存する
	SubmitReport(ctx context.Context, req *model.SubmitReportRequest) (*model.SubmitReportResponse, error)

	// ListMarkers 地図表示対象のマーカー一覧を取得する
	ListMarkers(ctx context.Context) ([]model.PlantMarker, error)

	// GetUserReports ユーザーの報告一覧を取得する
	GetUserReports(ctx context.Context, email string) ([]*model.PlantReport, error)

	// GetMarkerInfo 植物名と座標で報告の詳細を検索する
	GetMarkerInfo(ctx context.Context, lat, lng, plantName string) ([]*model.PlantReport, error)

	// RemoveMarker 名前と座標の一致する報告をソフトデリートする
	RemoveMarker(ctx context.Context, req *model.RemoveMarkerRequest) error
}

// plantReportUseCaseImpl PlantReportUseCaseの実装
type plantReportUseCaseImpl struct {
	plantRepo       repository.PlantReportRepository
	invasiveChecker repository.InvasiveCheckRepository // nil可（判定なし運用）
}

// NewPlantReportUseCase 新しいPlantReportUseCaseインスタンスを作成
func NewPlantReportUseCase(plantRepo repository.PlantReportRepository, checker repository.InvasiveCheckRepository) PlantReportUseCase {
	return &plantReportUseCaseImpl{
		plantRepo:       plantRepo,
		invasiveChecker: checker,
	}
}

// SubmitReport 報告を受け付ける
// 外来種判定の失敗は報告自体を妨げない（invasive_infoが空のまま保存される）
func (u *plantReportUseCaseImpl) SubmitReport(ctx context.Context, req *model.SubmitReportRequest) (*model.SubmitReportResponse, error) {
	if err := validateSubmitReportRequest(req); err != nil {
		return nil, fmt.Errorf("リクエストの検証失敗: %w", err)
	}

	invasive := false
	invasiveInfo := ""
	if u.invasiveChecker != nil {
		result, err := u.invasiveChecker.CheckInvasive(ctx, req.PlantName)
		if err != nil {
			log.Printf("⚠️ 外来種判定に失敗、判定なしで保存します: %v", err)
		} else if result.Invasive {
			invasive = true
			invasiveInfo = result.HarmfulEffects
		}
	}

	report := &model.PlantReport{
		UserEmail:    req.UserEmail,
		PlantName:    req.PlantName,
		Image:        req.Image,
		Lat:          req.Latitude,
		Lng:          req.Longitude,
		Description:  req.Description,
		InvasiveInfo: invasiveInfo,
		Removed:      false,
	}

	reportID, err := u.plantRepo.Store(ctx, report)
	if err != nil {
		return nil, fmt.Errorf("報告の保存に失敗: %w", err)
	}

	log.Printf("✅ 植物報告を保存: %s (%s, invasive=%t)", reportID, req.PlantName, invasive)
	return &model.SubmitReportResponse{
		Status:       "created",
		ReportID:     reportID,
		Invasive:     invasive,
		InvasiveInfo: invasiveInfo,
	}, nil
}

// ListMarkers 表示対象マーカーの一覧
func (u *plantReportUseCaseImpl) ListMarkers(ctx context.Context) ([]model.PlantMarker, error) {
	return u.plantRepo.ListActiveMarkers(ctx)
}

// GetUserReports ユーザーの報告一覧
func (u *plantReportUseCaseImpl) GetUserReports(ctx context.Context, email string) ([]*model.PlantReport, error) {
	if email == "" {
		return nil, errors.New("emailが指定されていません")
	}
	return u.plantRepo.GetByUserEmail(ctx, email)
}

// GetMarkerInfo 報告の詳細検索
func (u *plantReportUseCaseImpl) GetMarkerInfo(ctx context.Context, lat, lng, plantName string) ([]*model.PlantReport, error) {
	reports, err := u.plantRepo.GetMarkerInfo(ctx, lat, lng, plantName)
	if err != nil {
		return nil, err
	}
	if len(reports) == 0 {
		return nil, model.ErrReportNotFound
	}
	return reports, nil
}

// RemoveMarker ソフトデリート。一致が0件でもエラーにしない（削除は冪等）
func (u *plantReportUseCaseImpl) RemoveMarker(ctx context.Context, req *model.RemoveMarkerRequest) error {
	reports, err := u.plantRepo.GetMarkerInfo(ctx, req.Latitude, req.Longitude, req.Name)
	if err != nil {
		return fmt.Errorf("報告の検索に失敗: %w", err)
	}

	for _, report := range reports {
		if err := u.plantRepo.MarkRemoved(ctx, report.ID, true); err != nil {
			return fmt.Errorf("報告の削除に失敗: %w", err)
		}
	}

	return nil
}

// validateSubmitReportRequest 投稿リクエストの入力バリデーション
func validateSubmitReportRequest(req *model.SubmitReportRequest) error {
	if req.UserEmail == "" {
		return errors.New("user_emailは必須です")
	}
	if req.PlantName == "" {
		return errors.New("plant_nameは必須です")
	}
	if _, err := model.ParseLatLngStrings(req.Latitude, req.Longitude); err != nil {
		return err
	}
	return nil
}

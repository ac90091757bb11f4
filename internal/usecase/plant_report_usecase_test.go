package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"TrailGuard-App/internal/domain/model"
	"TrailGuard-App/internal/domain/repository"
)

// fakeInvasiveChecker 固定の判定結果またはエラーを返すチェッカー
type fakeInvasiveChecker struct {
	result *repository.InvasiveCheckResult
	err    error
	calls  int
}

func (f *fakeInvasiveChecker) CheckInvasive(ctx context.Context, plantName string) (*repository.InvasiveCheckResult, error) {
	f.calls++
	return f.result, f.err
}

func validSubmitRequest() *model.SubmitReportRequest {
	return &model.SubmitReportRequest{
		UserEmail: "hiker@example.com",
		PlantName: "Kudzu",
		Latitude:  "36.0014",
		Longitude: "-78.9382",
	}
}

func TestPlantReportUseCase_SubmitReport(t *testing.T) {
	t.Run("外来種判定の結果が保存される", func(t *testing.T) {
		checker := &fakeInvasiveChecker{
			result: &repository.InvasiveCheckResult{
				Invasive:       true,
				HarmfulEffects: "在来植生を覆って枯死させる",
			},
		}
		reportUseCase := NewPlantReportUseCase(newFakePlantRepo(), checker)

		response, err := reportUseCase.SubmitReport(context.Background(), validSubmitRequest())
		assert.NoError(t, err)

		if response.Status != "created" {
			t.Errorf("ステータスが一致しません: %s", response.Status)
		}
		if !response.Invasive || response.InvasiveInfo == "" {
			t.Errorf("外来種判定が反映されていません: %+v", response)
		}
		if checker.calls != 1 {
			t.Errorf("判定の呼び出し回数が一致しません: %d", checker.calls)
		}
	})

	t.Run("非外来種はinvasive_infoが空", func(t *testing.T) {
		checker := &fakeInvasiveChecker{
			result: &repository.InvasiveCheckResult{Invasive: false},
		}
		reportUseCase := NewPlantReportUseCase(newFakePlantRepo(), checker)

		response, err := reportUseCase.SubmitReport(context.Background(), validSubmitRequest())
		assert.NoError(t, err)
		if response.Invasive || response.InvasiveInfo != "" {
			t.Errorf("非外来種なのに判定情報が入っています: %+v", response)
		}
	})

	t.Run("判定失敗でも報告は保存される", func(t *testing.T) {
		checker := &fakeInvasiveChecker{err: errors.New("openai unavailable")}
		reportUseCase := NewPlantReportUseCase(newFakePlantRepo(), checker)

		response, err := reportUseCase.SubmitReport(context.Background(), validSubmitRequest())
		assert.NoError(t, err)
		if response.Status != "created" {
			t.Errorf("判定失敗で保存まで失敗しています: %+v", response)
		}
		if response.Invasive {
			t.Error("判定失敗なのに外来種フラグが立っています")
		}
	})

	t.Run("チェッカーなしでも動作する", func(t *testing.T) {
		reportUseCase := NewPlantReportUseCase(newFakePlantRepo(), nil)

		response, err := reportUseCase.SubmitReport(context.Background(), validSubmitRequest())
		assert.NoError(t, err)
		if response.Invasive {
			t.Error("チェッカーなしで外来種フラグが立っています")
		}
	})

	t.Run("座標が数値として解析できなければ拒否", func(t *testing.T) {
		req := validSubmitRequest()
		req.Latitude = "not-a-number"
		reportUseCase := NewPlantReportUseCase(newFakePlantRepo(), nil)

		_, err := reportUseCase.SubmitReport(context.Background(), req)
		if err == nil {
			t.Error("不正な座標が拒否されていません")
		}
	})

	t.Run("必須フィールドの欠落は拒否", func(t *testing.T) {
		req := validSubmitRequest()
		req.UserEmail = ""
		reportUseCase := NewPlantReportUseCase(newFakePlantRepo(), nil)

		_, err := reportUseCase.SubmitReport(context.Background(), req)
		if err == nil {
			t.Error("user_email欠落が拒否されていません")
		}
	})
}

func TestPlantReportUseCase_GetMarkerInfo(t *testing.T) {
	plants := newFakePlantRepo()
	plants.reports = []*model.PlantReport{
		{ID: "doc-1", PlantName: "Kudzu", Lat: "36.0", Lng: "-79.0", InvasiveInfo: "invasive"},
	}
	reportUseCase := NewPlantReportUseCase(plants, nil)

	t.Run("一致する報告を返す", func(t *testing.T) {
		reports, err := reportUseCase.GetMarkerInfo(context.Background(), "36.0", "-79.0", "Kudzu")
		assert.NoError(t, err)
		if len(reports) != 1 || reports[0].ID != "doc-1" {
			t.Errorf("検索結果が一致しません: %+v", reports)
		}
	})

	t.Run("一致なしはErrReportNotFound", func(t *testing.T) {
		_, err := reportUseCase.GetMarkerInfo(context.Background(), "0.0", "0.0", "Unknown")
		if !errors.Is(err, model.ErrReportNotFound) {
			t.Errorf("一致なしのエラーが一致しません: %v", err)
		}
	})
}

func TestPlantReportUseCase_RemoveMarker(t *testing.T) {
	plants := newFakePlantRepo()
	plants.reports = []*model.PlantReport{
		{ID: "doc-1", PlantName: "Kudzu", Lat: "36.0", Lng: "-79.0"},
		{ID: "doc-2", PlantName: "Kudzu", Lat: "36.0", Lng: "-79.0"},
	}
	reportUseCase := NewPlantReportUseCase(plants, nil)

	req := &model.RemoveMarkerRequest{Name: "Kudzu", Latitude: "36.0", Longitude: "-79.0"}
	if err := reportUseCase.RemoveMarker(context.Background(), req); err != nil {
		t.Fatalf("削除でエラーが発生: %v", err)
	}

	if !plants.removed["doc-1"] || !plants.removed["doc-2"] {
		t.Errorf("一致した報告が全てソフトデリートされていません: %+v", plants.removed)
	}

	t.Run("一致なしでもエラーにならない", func(t *testing.T) {
		req := &model.RemoveMarkerRequest{Name: "Unknown", Latitude: "0.0", Longitude: "0.0"}
		if err := reportUseCase.RemoveMarker(context.Background(), req); err != nil {
			t.Errorf("冪等であるべき削除が失敗: %v", err)
		}
	})
}

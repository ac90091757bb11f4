package usecase

import (
	"context"
	"log"
	"sync"

	"TrailGuard-App/internal/domain/model"
	"TrailGuard-App/internal/domain/repository"
	"TrailGuard-App/internal/domain/service"
)

// MapSessionUseCase 地図ビュー1セッション分のオーケストレーション
// uninitialized → loading → ready の状態機械と、並行して到達しうるエラー条件を持つ
type MapSessionUseCase interface {
	// Start 描画面を確保し、トレイルと植物マーカーの取得を並行で開始する
	// 取得完了を待たずに ready に遷移する（オーバーレイは解決後に非同期で反映）
	Start(ctx context.Context)

	// Wait 進行中の取得処理の完了を待つ
	Wait()

	// Refresh 全オーバーレイを破棄してから取り込みパイプラインを最初から再実行する
	Refresh(ctx context.Context)

	// HandleClusterClick クラスタマーカーのクリックイベントを処理する
	HandleClusterClick(handle model.OverlayHandle)

	// HandlePlantMarkerClick 植物マーカーのクリックイベントを処理する
	HandlePlantMarkerClick(handle model.OverlayHandle)

	// DeleteMarker 報告をソフトデリートし、ライブのマーカーも取り外す
	DeleteMarker(ctx context.Context, name, lat, lng string) error

	// CloseDetailCard 詳細カードを閉じて選択状態を解除する
	CloseDetailCard()

	// Snapshot ページUIに公開する観測値を返す
	Snapshot() model.SessionSnapshot

	// Teardown セッション終了時に全オーバーレイハンドルを解放する
	Teardown()
}

// mapSessionUseCaseImpl MapSessionUseCaseの実装
//
// 1つのミューテックスで全ミューテーションを直列化する。取得処理自体は並行に走るが、
// 結果の反映はロック下で行い、トレイル側と植物マーカー側はそれぞれ自分の
// オーバーレイ部分集合だけを触るため、どちらの順序で解決しても安全
type mapSessionUseCaseImpl struct {
	registry   *service.OverlayRegistry
	ingest     service.TrailIngestService
	clusterSvc service.ClusterService

	trailSource repository.TrailSourceRepository
	trailCache  repository.TrailCacheRepository // nil可（キャッシュなし運用）
	plantRepo   repository.PlantReportRepository

	bbox         model.BoundingBox
	radiusMeters float64

	mu         sync.Mutex
	wg         sync.WaitGroup
	state      string
	isLoading  bool
	errMsg     string
	hasSurface bool
}

// NewMapSessionUseCase 新しいMapSessionUseCaseインスタンスを作成
// surface が nil の場合もセッションは生成され、全描画操作が no-op になる
func NewMapSessionUseCase(
	surface repository.MapSurface,
	trailSource repository.TrailSourceRepository,
	trailCache repository.TrailCacheRepository,
	plantRepo repository.PlantReportRepository,
	bbox model.BoundingBox,
	radiusMeters float64,
) MapSessionUseCase {
	return &mapSessionUseCaseImpl{
		registry:     service.NewOverlayRegistry(surface),
		ingest:       service.NewTrailIngestService(),
		clusterSvc:   service.NewClusterService(),
		trailSource:  trailSource,
		trailCache:   trailCache,
		plantRepo:    plantRepo,
		bbox:         bbox,
		radiusMeters: radiusMeters,
		state:        model.SessionStateUninitialized,
		hasSurface:   surface != nil,
	}
}

// Start セッションを開始する
func (s *mapSessionUseCaseImpl) Start(ctx context.Context) {
	s.mu.Lock()

	if !s.hasSurface {
		// 描画面がない場合はエラー条件を立てるだけで、ページは操作可能なまま
		s.errMsg = model.ErrSurfaceUnavailable.Error()
		s.mu.Unlock()
		return
	}

	s.state = model.SessionStateLoading
	s.isLoading = true
	s.mu.Unlock()

	// トレイルと植物マーカーは独立に取得し、どちらの失敗も他方を妨げない
	s.wg.Add(2)
	go s.loadTrails(ctx)
	go s.loadPlantMarkers(ctx)

	// 描画面の初期化が済んだ時点で ready（取得完了は待たない）
	s.mu.Lock()
	s.state = model.SessionStateReady
	s.isLoading = false
	s.mu.Unlock()
}

// Wait 進行中の取得処理の完了を待つ
func (s *mapSessionUseCaseImpl) Wait() {
	s.wg.Wait()
}

// Refresh 手動リフレッシュ。既存ハンドルの重複・孤児化を防ぐため必ず先に全消去する
func (s *mapSessionUseCaseImpl) Refresh(ctx context.Context) {
	s.mu.Lock()
	s.registry.ClearAll()
	s.errMsg = ""
	s.state = model.SessionStateUninitialized
	s.mu.Unlock()

	s.Start(ctx)
}

// loadTrails トレイル取得 → 正規化 → クラスタリング → オーバーレイ登録
func (s *mapSessionUseCaseImpl) loadTrails(ctx context.Context) {
	defer s.wg.Done()

	trails, err := s.fetchTrails(ctx)
	if err != nil {
		log.Printf("⚠️ トレイルデータの取得に失敗: %v", err)
		s.mu.Lock()
		s.errMsg = model.ErrTrailFetchFailed.Error()
		s.mu.Unlock()
		return
	}

	if len(trails) == 0 {
		s.mu.Lock()
		s.errMsg = model.ErrNoTrailsFound.Error()
		s.mu.Unlock()
		return
	}

	clusters := s.clusterSvc.BuildClusters(trails, s.radiusMeters)

	s.mu.Lock()
	defer s.mu.Unlock()

	// 前回分のクラスタ系オーバーレイを先に消してから描き直す
	s.registry.ClearClusters()
	for _, cluster := range clusters {
		s.registry.RegisterCluster(cluster)
	}
	log.Printf("✅ %d件のトレイルを%d個のクラスタとして登録", len(trails), len(clusters))
}

// fetchTrails キャッシュ優先でトレイルを取得する。キャッシュミス時はOverpassから取得し、
// 正規化結果をキャッシュへ書き戻す（書き戻し失敗は取得の成否に影響させない）
func (s *mapSessionUseCaseImpl) fetchTrails(ctx context.Context) ([]*model.Trail, error) {
	if s.trailCache != nil {
		cached, err := s.trailCache.GetTrails(ctx, s.bbox.Key())
		if err == nil && len(cached) > 0 {
			log.Printf("✅ トレイルキャッシュにヒット: %d件", len(cached))
			return cached, nil
		}
		if err != nil {
			log.Printf("⚠️ トレイルキャッシュの参照に失敗、ソースから取得します: %v", err)
		}
	}

	elements, err := s.trailSource.FetchTrailElements(ctx, s.bbox)
	if err != nil {
		return nil, err
	}

	trails := s.ingest.NormalizeElements(elements)

	if s.trailCache != nil && len(trails) > 0 {
		if err := s.trailCache.SaveTrails(ctx, s.bbox.Key(), trails); err != nil {
			log.Printf("⚠️ トレイルキャッシュへの保存に失敗: %v", err)
		}
	}

	return trails, nil
}

// loadPlantMarkers 植物マーカーの取得と登録。トレイル側の成否とは独立
func (s *mapSessionUseCaseImpl) loadPlantMarkers(ctx context.Context) {
	defer s.wg.Done()

	markers, err := s.plantRepo.ListActiveMarkers(ctx)
	if err != nil {
		log.Printf("⚠️ 植物マーカーの取得に失敗: %v", err)
		s.mu.Lock()
		s.errMsg = model.ErrMarkerFetchFailed.Error()
		s.mu.Unlock()
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// 前回分のマーカー系オーバーレイを先に消してから描き直す
	// （トレイル側のClearClustersと対になる部分集合クリア）
	s.registry.ClearPlantMarkers()
	for _, marker := range markers {
		s.registry.RegisterPlantMarker(marker)
	}
	log.Printf("✅ %d件の植物マーカーを登録", len(markers))
}

// HandleClusterClick クリックイベントをレジストリに委譲する
func (s *mapSessionUseCaseImpl) HandleClusterClick(handle model.OverlayHandle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registry.HandleClusterClick(handle)
}

// HandlePlantMarkerClick クリックイベントをレジストリに委譲する
func (s *mapSessionUseCaseImpl) HandlePlantMarkerClick(handle model.OverlayHandle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registry.HandlePlantMarkerClick(handle)
}

// DeleteMarker 報告のソフトデリートとライブマーカーの取り外し
// ストア側に一致がなくても、レジストリ側の取り外しは冪等に行う
func (s *mapSessionUseCaseImpl) DeleteMarker(ctx context.Context, name, lat, lng string) error {
	reports, err := s.plantRepo.GetMarkerInfo(ctx, lat, lng, name)
	if err != nil {
		return err
	}
	for _, report := range reports {
		if err := s.plantRepo.MarkRemoved(ctx, report.ID, true); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.registry.RemovePlantMarker(name, lat, lng)
	return nil
}

// CloseDetailCard 詳細カードを閉じる
func (s *mapSessionUseCaseImpl) CloseDetailCard() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registry.ClearSelectedPlant()
}

// Snapshot ページUIに公開する観測値を返す
func (s *mapSessionUseCaseImpl) Snapshot() model.SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := model.SessionSnapshot{
		State:            s.state,
		IsLoading:        s.isLoading,
		Error:            s.errMsg,
		SelectedPlant:    s.registry.SelectedPlant(),
		ClusterCount:     s.registry.ClusterCount(),
		PlantMarkerCount: s.registry.PlantMarkerCount(),
	}

	if active := s.registry.ActiveCluster(); active != nil {
		snapshot.ActiveCluster = &model.ClusterSummary{
			Center:      active.Center,
			DisplayName: active.DisplayName,
			MemberCount: active.MemberCount(),
		}
	}

	return snapshot
}

// Teardown セッション終了。全オーバーレイハンドルを解放する
func (s *mapSessionUseCaseImpl) Teardown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registry.ClearAll()
	s.state = model.SessionStateUninitialized
}

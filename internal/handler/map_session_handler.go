package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"TrailGuard-App/internal/domain/model"
	"TrailGuard-App/internal/infrastructure/maps"
	"TrailGuard-App/internal/usecase"
)

// MapSessionHandler 地図セッションの操作を提供するHTTPハンドラー
// セッションはサーバー側で1つ保持され、オーバーレイ状態はHeadlessSurfaceに描画される
type MapSessionHandler struct {
	sessionUseCase usecase.MapSessionUseCase
	surface        *maps.HeadlessSurface
}

// NewMapSessionHandler MapSessionHandlerの新しいインスタンスを作成
func NewMapSessionHandler(sessionUseCase usecase.MapSessionUseCase, surface *maps.HeadlessSurface) *MapSessionHandler {
	return &MapSessionHandler{
		sessionUseCase: sessionUseCase,
		surface:        surface,
	}
}

// Start POST /session/start - セッションを初期化し、トレイルとマーカーの読み込みを開始
func (h *MapSessionHandler) Start(c *gin.Context) {
	h.sessionUseCase.Start(c.Request.Context())
	c.JSON(http.StatusAccepted, h.sessionUseCase.Snapshot())
}

// GetSnapshot GET /session - セッションの現在状態を取得
func (h *MapSessionHandler) GetSnapshot(c *gin.Context) {
	c.JSON(http.StatusOK, h.sessionUseCase.Snapshot())
}

// Refresh POST /session/refresh - オーバーレイを全消去して再読み込み
func (h *MapSessionHandler) Refresh(c *gin.Context) {
	h.sessionUseCase.Refresh(c.Request.Context())
	c.JSON(http.StatusAccepted, h.sessionUseCase.Snapshot())
}

// ClickCluster POST /session/clusters/:handle/click - クラスターマーカーのクリックを処理
func (h *MapSessionHandler) ClickCluster(c *gin.Context) {
	handle := c.Param("handle")
	if handle == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "missing_parameter",
			"message": "handle parameter is required",
		})
		return
	}

	h.sessionUseCase.HandleClusterClick(model.OverlayHandle(handle))
	c.JSON(http.StatusOK, h.sessionUseCase.Snapshot())
}

// ClickPlantMarker POST /session/markers/:handle/click - 植物マーカーのクリックを処理
func (h *MapSessionHandler) ClickPlantMarker(c *gin.Context) {
	handle := c.Param("handle")
	if handle == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "missing_parameter",
			"message": "handle parameter is required",
		})
		return
	}

	h.sessionUseCase.HandlePlantMarkerClick(model.OverlayHandle(handle))
	c.JSON(http.StatusOK, h.sessionUseCase.Snapshot())
}

// DeleteMarker DELETE /session/markers - 選択中マーカーの報告を削除し、地図からも除去
func (h *MapSessionHandler) DeleteMarker(c *gin.Context) {
	var req model.RemoveMarkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "Invalid JSON format: " + err.Error(),
		})
		return
	}

	if err := h.sessionUseCase.DeleteMarker(c.Request.Context(), req.Name, req.Latitude, req.Longitude); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to delete marker: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, h.sessionUseCase.Snapshot())
}

// CloseDetailCard POST /session/close-card - 詳細カードを閉じる
func (h *MapSessionHandler) CloseDetailCard(c *gin.Context) {
	h.sessionUseCase.CloseDetailCard()
	c.JSON(http.StatusOK, h.sessionUseCase.Snapshot())
}

// Teardown POST /session/teardown - セッションを破棄してオーバーレイを全消去
func (h *MapSessionHandler) Teardown(c *gin.Context) {
	h.sessionUseCase.Teardown()
	c.Status(http.StatusNoContent)
}

// GetSurfaceState GET /session/surface - 描画中のオーバーレイ状態を取得
func (h *MapSessionHandler) GetSurfaceState(c *gin.Context) {
	if h.surface == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "surface_unavailable",
			"message": "Map surface is not available",
		})
		return
	}

	viewport := h.surface.Viewport()
	c.JSON(http.StatusOK, gin.H{
		"center":                 model.DefaultMapCenter,
		"marker_count":           h.surface.MarkerCount(),
		"polyline_count":         h.surface.PolylineCount(),
		"visible_polyline_count": h.surface.VisiblePolylineCount(),
		"zoom":                   h.surface.Zoom(),
		"info_window":            h.surface.InfoWindowContent(),
		"viewport": gin.H{
			"min_lng": viewport.Min[0],
			"min_lat": viewport.Min[1],
			"max_lng": viewport.Max[0],
			"max_lat": viewport.Max[1],
		},
	})
}

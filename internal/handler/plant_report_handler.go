package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"TrailGuard-App/internal/domain/model"
	"TrailGuard-App/internal/usecase"
)

// PlantReportHandler 外来植物報告に関するHTTPハンドラー
type PlantReportHandler struct {
	reportUseCase usecase.PlantReportUseCase
}

// NewPlantReportHandler PlantReportHandlerの新しいインスタンスを作成
func NewPlantReportHandler(reportUseCase usecase.PlantReportUseCase) *PlantReportHandler {
	return &PlantReportHandler{
		reportUseCase: reportUseCase,
	}
}

// SubmitReport POST /reports - 報告の投稿（外来種判定込み）
func (h *PlantReportHandler) SubmitReport(c *gin.Context) {
	var req model.SubmitReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "Invalid JSON format: " + err.Error(),
		})
		return
	}

	response, err := h.reportUseCase.SubmitReport(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to submit report: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, response)
}

// GetMarkers GET /markers - 地図表示対象のマーカー一覧を取得
// レスポンスは {key, vars:{lat,lng,image,desc}} の配列（地図ページの契約）
func (h *PlantReportHandler) GetMarkers(c *gin.Context) {
	markers, err := h.reportUseCase.ListMarkers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to get markers: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, markers)
}

// GetMarkerInfo GET /markers/info - 植物名と座標で報告の詳細を検索
func (h *PlantReportHandler) GetMarkerInfo(c *gin.Context) {
	lat := c.Query("lat")
	lng := c.Query("lng")
	name := c.Query("name")
	if lat == "" || lng == "" || name == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "missing_parameter",
			"message": "lat, lng and name parameters are required",
		})
		return
	}

	reports, err := h.reportUseCase.GetMarkerInfo(c.Request.Context(), lat, lng, name)
	if err != nil {
		if errors.Is(err, model.ErrReportNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "not_found",
				"message": "Marker not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to get marker info: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, reports)
}

// GetUserReports GET /reports - ユーザーの報告一覧を取得
func (h *PlantReportHandler) GetUserReports(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "missing_parameter",
			"message": "email parameter is required",
		})
		return
	}

	reports, err := h.reportUseCase.GetUserReports(c.Request.Context(), email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to get user reports: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, reports)
}

// RemoveMarker DELETE /markers - 名前と座標の一致する報告をソフトデリート
// 一致しない場合も204を返す（削除は冪等）
func (h *PlantReportHandler) RemoveMarker(c *gin.Context) {
	var req model.RemoveMarkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "Invalid JSON format: " + err.Error(),
		})
		return
	}

	if err := h.reportUseCase.RemoveMarker(c.Request.Context(), &req); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to remove marker: " + err.Error(),
		})
		return
	}

	c.Status(http.StatusNoContent)
}

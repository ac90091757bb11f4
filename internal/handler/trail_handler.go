package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"TrailGuard-App/internal/domain/model"
	"TrailGuard-App/internal/usecase"
)

// TrailHandler トレイルクラスタに関するHTTPハンドラー
type TrailHandler struct {
	trailUseCase usecase.TrailUseCase
}

// NewTrailHandler TrailHandlerの新しいインスタンスを作成
func NewTrailHandler(trailUseCase usecase.TrailUseCase) *TrailHandler {
	return &TrailHandler{
		trailUseCase: trailUseCase,
	}
}

// GetClusters GET /trails/clusters - 境界ボックス内のトレイルクラスタ一覧を取得
// bbox省略時はデフォルトの検索範囲、radius省略時はデフォルト半径を使う
func (h *TrailHandler) GetClusters(c *gin.Context) {
	bbox := model.DefaultBoundingBox
	if bboxParam := c.Query("bbox"); bboxParam != "" {
		parsed, err := parseBBoxParam(bboxParam)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "invalid_parameter",
				"message": err.Error(),
			})
			return
		}
		bbox = parsed
	}

	radius := float64(model.DefaultClusterRadiusMeters)
	if radiusParam := c.Query("radius"); radiusParam != "" {
		parsed, err := strconv.ParseFloat(radiusParam, 64)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "invalid_parameter",
				"message": "radius must be a positive number",
			})
			return
		}
		radius = parsed
	}

	clusters, err := h.trailUseCase.GetClusters(c.Request.Context(), bbox, radius)
	if err != nil {
		if errors.Is(err, model.ErrNoTrailsFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "no_trails_found",
				"message": "No hiking trails found in this area",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to load trail data: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, model.GetClustersResponse{Clusters: clusters})
}

// parseBBoxParam "min_lng,min_lat,max_lng,max_lat" 形式のbboxを解析する
func parseBBoxParam(bboxParam string) (model.BoundingBox, error) {
	coords := strings.Split(bboxParam, ",")
	if len(coords) != 4 {
		return model.BoundingBox{}, errors.New("bbox must contain 4 coordinates: min_lng,min_lat,max_lng,max_lat")
	}

	values := make([]float64, 4)
	for i, coord := range coords {
		v, err := strconv.ParseFloat(strings.TrimSpace(coord), 64)
		if err != nil {
			return model.BoundingBox{}, errors.New("bbox contains an invalid coordinate value")
		}
		values[i] = v
	}

	return model.BoundingBox{
		MinLng: values[0],
		MinLat: values[1],
		MaxLng: values[2],
		MaxLat: values[3],
	}, nil
}

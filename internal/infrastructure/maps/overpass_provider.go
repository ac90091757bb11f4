package maps

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"TrailGuard-App/internal/domain/model"
)

const defaultOverpassEndpoint = "https://overpass-api.de/api/interpreter"

// OverpassProvider Overpass APIを使用したトレイル生データ取得の実装
type OverpassProvider struct {
	endpoint   string
	httpClient *http.Client
}

// NewOverpassProvider 新しいプロバイダを生成する
func NewOverpassProvider() *OverpassProvider {
	return &OverpassProvider{
		endpoint:   defaultOverpassEndpoint,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// NewOverpassProviderWithEndpoint エンドポイント指定版（テストで使用）
func NewOverpassProviderWithEndpoint(endpoint string) *OverpassProvider {
	p := NewOverpassProvider()
	p.endpoint = endpoint
	return p
}

// FetchTrailElements 境界ボックス内のトレイル候補エレメントを取得する
// 対象: foot=yes の path/footway、および route=hiking の way/relation
func (p *OverpassProvider) FetchTrailElements(ctx context.Context, bbox model.BoundingBox) ([]model.OverpassElement, error) {
	// 1. Overpass QLクエリを構築
	query := p.buildQuery(bbox)

	// 2. HTTPリクエストを作成・実行
	reqURL := fmt.Sprintf("%s?data=%s", p.endpoint, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("リクエストの作成に失敗: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("Overpass APIリクエストに失敗: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Overpass APIからエラーステータスが返されました: %s", resp.Status)
	}

	// 3. JSONレスポンスをパース
	var apiResp model.OverpassResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("JSONのパースに失敗: %w", err)
	}

	return apiResp.Elements, nil
}

// buildQuery bboxを埋め込んだOverpass QLクエリを構築する
func (p *OverpassProvider) buildQuery(bbox model.BoundingBox) string {
	// Overpassのbboxは (south,west,north,east) の順
	box := fmt.Sprintf("(%g,%g,%g,%g)", bbox.MinLat, bbox.MinLng, bbox.MaxLat, bbox.MaxLng)
	return fmt.Sprintf(`[out:json];
(
  way["highway"~"path|footway"]["foot"="yes"]%s;
  way["route"="hiking"]%s;
  relation["route"="hiking"]%s;
);
out geom;`, box, box, box)
}

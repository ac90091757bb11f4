package model

import (
	"fmt"
	"strconv"
)

// クラスタリング・地図表示のチューニング定数
const (
	// DefaultClusterRadiusMeters クラスタ割り当ての距離閾値（ページ側で上書き可能）
	DefaultClusterRadiusMeters = 1000.0

	// DefaultZoom 地図の初期ズームレベル
	DefaultZoom = 13

	// MaxHighlightZoom ハイライト時のフィット後に許容する最大ズーム
	// 1点だけのクラスタに寄りすぎないための上限
	MaxHighlightZoom = 16
)

// DefaultBoundingBox デフォルトの検索範囲（ダーラム周辺。Overpassクエリのbboxに使用）
var DefaultBoundingBox = BoundingBox{
	MinLat: 35.8,
	MinLng: -79.4,
	MaxLat: 36.4,
	MaxLng: -78.6,
}

// DefaultMapCenter 地図の初期中心座標
var DefaultMapCenter = LatLng{Lat: 36.0014, Lng: -78.9382}

// ParseLatLngStrings 文字列の緯度経度を LatLng に変換する
// Firestoreには文字列で保存しているため、取得側はここを必ず通す
func ParseLatLngStrings(lat, lng string) (LatLng, error) {
	latF, err := strconv.ParseFloat(lat, 64)
	if err != nil {
		return LatLng{}, fmt.Errorf("緯度の解析に失敗: %w", err)
	}
	lngF, err := strconv.ParseFloat(lng, 64)
	if err != nil {
		return LatLng{}, fmt.Errorf("経度の解析に失敗: %w", err)
	}
	return LatLng{Lat: latF, Lng: lngF}, nil
}

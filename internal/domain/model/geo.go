package model

import (
	"strconv"

	"github.com/paulmach/orb"
)

// LatLng 緯度経度を表す基本的な型（クラスタリングや地図描画で使用）
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// ToPoint orb.Point に変換する（orbは [lng, lat] の順）
func (ll LatLng) ToPoint() orb.Point {
	return orb.Point{ll.Lng, ll.Lat}
}

// BoundingBox 検索範囲を表す境界ボックス（Overpass検索やキャッシュキーで使用）
type BoundingBox struct {
	MinLat float64 `json:"min_lat"`
	MinLng float64 `json:"min_lng"`
	MaxLat float64 `json:"max_lat"`
	MaxLng float64 `json:"max_lng"`
}

// ToBound orb.Bound に変換する
func (b BoundingBox) ToBound() orb.Bound {
	return orb.Bound{
		Min: orb.Point{b.MinLng, b.MinLat},
		Max: orb.Point{b.MaxLng, b.MaxLat},
	}
}

// Key キャッシュキーとして使える安定した文字列表現を返す
func (b BoundingBox) Key() string {
	return strconv.FormatFloat(b.MinLat, 'f', 4, 64) + "," +
		strconv.FormatFloat(b.MinLng, 'f', 4, 64) + "," +
		strconv.FormatFloat(b.MaxLat, 'f', 4, 64) + "," +
		strconv.FormatFloat(b.MaxLng, 'f', 4, 64)
}

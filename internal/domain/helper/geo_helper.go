package helper

import (
	"math"

	"github.com/paulmach/orb"

	"TrailGuard-App/internal/domain/model"
)

const earthRadiusMeters = 6371000.0

// HaversineDistance 2地点間の大圏距離を計算する (メートル)
// 純粋関数で失敗しない。範囲外の緯度経度には数値としては定義されるが
// 意味のない値を返す（入力の妥当性は呼び出し側の責務）
func HaversineDistance(p1, p2 model.LatLng) float64 {
	lat1 := p1.Lat * math.Pi / 180
	lat2 := p2.Lat * math.Pi / 180
	dLat := (p2.Lat - p1.Lat) * math.Pi / 180
	dLng := (p2.Lng - p1.Lng) * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusMeters * c
}

// TrailsBound クラスタメンバー全経路を包含する境界ボックスを計算する
// ハイライト時のビューポートフィットに使う
func TrailsBound(trails []*model.Trail) orb.Bound {
	var bound orb.Bound
	first := true
	for _, trail := range trails {
		for _, p := range trail.Path {
			pt := p.ToPoint()
			if first {
				bound = orb.Bound{Min: pt, Max: pt}
				first = false
				continue
			}
			bound = bound.Extend(pt)
		}
	}
	return bound
}

package service

import (
	"sort"

	"TrailGuard-App/internal/domain/helper"
	"TrailGuard-App/internal/domain/model"
)

// ClusterService トレイル列を地図表示用クラスタにまとめる純粋サービス
type ClusterService interface {
	// BuildClusters 入力順にトレイルを走査してクラスタに割り当てる
	// 空入力なら空スライスを返す
	BuildClusters(trails []*model.Trail, radiusMeters float64) []*model.TrailCluster
}

// clusterServiceImpl ClusterServiceの実装
type clusterServiceImpl struct{}

// NewClusterService ClusterServiceの新しいインスタンスを作成
func NewClusterService() ClusterService {
	return &clusterServiceImpl{}
}

// BuildClusters 単一パスの貪欲割り当てでクラスタを構築する
// 計算量は O(n*k)（k は現在のクラスタ数）
//
// 各トレイルについて、生成順に既存クラスタを走査し、中心が radiusMeters 未満の
// 最初のクラスタに割り当てる（first-fit。最近傍は選ばない）。割り当て時に中心を
// 「旧中心と新メンバー中点の2点平均」に更新するため、中心位置は挿入順に依存し
// 直近に追加されたメンバー側へ偏る。真の逐次平均への変更はクラスタリング結果を
// 変えるので、現状の挙動を維持している
func (s *clusterServiceImpl) BuildClusters(trails []*model.Trail, radiusMeters float64) []*model.TrailCluster {
	clusters := make([]*model.TrailCluster, 0)

	for _, trail := range trails {
		assigned := false

		for _, cluster := range clusters {
			distance := helper.HaversineDistance(trail.MidPoint, cluster.Center)
			if distance < radiusMeters {
				cluster.Trails = append(cluster.Trails, trail)
				cluster.Center = model.LatLng{
					Lat: (cluster.Center.Lat + trail.MidPoint.Lat) / 2,
					Lng: (cluster.Center.Lng + trail.MidPoint.Lng) / 2,
				}
				assigned = true
				break
			}
		}

		if !assigned {
			clusters = append(clusters, &model.TrailCluster{
				Center:      trail.MidPoint,
				Trails:      []*model.Trail{trail},
				DisplayName: trail.Name,
			})
		}
	}

	for _, cluster := range clusters {
		cluster.DisplayName = mostCommonTrailName(cluster.Trails)
	}

	return clusters
}

// mostCommonTrailName メンバー中で最頻出の名前を返す
// 同数の場合は、出現数降順の安定ソートで先頭に来るもの（＝先に登場した名前）を採用
func mostCommonTrailName(trails []*model.Trail) string {
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, trail := range trails {
		if counts[trail.Name] == 0 {
			order = append(order, trail.Name)
		}
		counts[trail.Name]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	return order[0]
}

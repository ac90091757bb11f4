package model

// SessionState 地図セッションの状態
const (
	SessionStateUninitialized = "uninitialized"
	SessionStateLoading       = "loading"
	SessionStateReady         = "ready"
)

// SessionSnapshot ページUIに公開するセッションの観測値
// error はどの状態からも到達しうる並行条件で、致命的ではない
type SessionSnapshot struct {
	State            string          `json:"state"`
	IsLoading        bool            `json:"is_loading"`
	Error            string          `json:"error,omitempty"`
	ActiveCluster    *ClusterSummary `json:"active_cluster,omitempty"`
	SelectedPlant    *SelectedPlant  `json:"selected_plant,omitempty"`
	ClusterCount     int             `json:"cluster_count"`
	PlantMarkerCount int             `json:"plant_marker_count"`
}

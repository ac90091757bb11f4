package model

import "errors"

// セッションが保持するエラー条件。いずれもプロセス致命ではなく、
// ユーザー操作（手動リフレッシュ）で回復する
var (
	ErrNoTrailsFound      = errors.New("対象エリアにハイキングトレイルが見つかりません")
	ErrTrailFetchFailed   = errors.New("トレイルデータの取得に失敗しました")
	ErrMarkerFetchFailed  = errors.New("外来植物マーカーの取得に失敗しました")
	ErrSurfaceUnavailable = errors.New("地図描画面が初期化されていません")
	ErrReportNotFound     = errors.New("報告が見つかりません")
)

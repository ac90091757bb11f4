package repository

import "context"

// InvasiveCheckResult 外来種判定の結果
type InvasiveCheckResult struct {
	Invasive       bool   // 外来種かどうか
	HarmfulEffects string // 外来種の場合の悪影響の説明（非外来種なら空）
}

// InvasiveCheckRepository 植物名から外来種かどうかを判定する外部サービス
type InvasiveCheckRepository interface {
	CheckInvasive(ctx context.Context, plantName string) (*InvasiveCheckResult, error)
}

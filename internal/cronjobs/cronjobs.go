package cronjobs

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"TrailGuard-App/internal/domain/model"
	"TrailGuard-App/internal/usecase"
)

// refreshTimeout Overpass APIの応答が遅い場合に備えた上限
const refreshTimeout = 2 * time.Minute

// InitCronJobs トレイルキャッシュの定期更新ジョブを起動する
func InitCronJobs(trailUseCase usecase.TrailUseCase) *cron.Cron {
	log.Println("🚀 Cronジョブを開始します")
	c := cron.New()

	// トレイルキャッシュ更新: 6時間ごと
	_, err := c.AddFunc("0 */6 * * *", func() {
		log.Println("CronJob: トレイルキャッシュ更新を実行")
		ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
		defer cancel()

		count, err := trailUseCase.RefreshCache(ctx, model.DefaultBoundingBox)
		if err != nil {
			log.Printf("⚠️ トレイルキャッシュ更新に失敗: %v", err)
			return
		}
		log.Printf("✅ トレイルキャッシュ更新完了: %d件", count)
	})
	if err != nil {
		log.Printf("❌ トレイルキャッシュ更新ジョブの登録に失敗: %v", err)
	}

	c.Start()
	return c
}

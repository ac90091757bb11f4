package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"TrailGuard-App/internal/cronjobs"
	"TrailGuard-App/internal/domain/model"
	domainrepo "TrailGuard-App/internal/domain/repository"
	"TrailGuard-App/internal/handler"
	"TrailGuard-App/internal/infrastructure/ai"
	"TrailGuard-App/internal/infrastructure/database"
	fsinfra "TrailGuard-App/internal/infrastructure/firestore"
	"TrailGuard-App/internal/infrastructure/maps"
	"TrailGuard-App/internal/repository"
	"TrailGuard-App/internal/usecase"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found, using system environment variables")
	}

	ctx := context.Background()

	projectID := os.Getenv("FIRESTORE_PROJECT_ID")
	if projectID == "" {
		projectID = os.Getenv("GOOGLE_CLOUD_PROJECT")
	}
	if projectID == "" {
		fmt.Println("⚠️  環境変数が設定されていません:")
		fmt.Println("必要な環境変数: FIRESTORE_PROJECT_ID (または GOOGLE_CLOUD_PROJECT)")
		fmt.Println("\n.envファイルを作成するか、環境変数を設定してください")
		log.Fatal("Environment variables not set")
	}

	fmt.Println("Initializing Firestore client...")
	firestoreClient, err := fsinfra.NewFirestoreClient(ctx, projectID)
	if err != nil {
		log.Fatalf("Firestoreクライアント初期化失敗: %v", err)
	}
	defer firestoreClient.Close()

	plantRepo := repository.NewFirestorePlantReportRepository(firestoreClient.GetClient())
	trailSource := maps.NewOverpassProvider()
	trailCache := newTrailCacheRepository()

	var checker domainrepo.InvasiveCheckRepository
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		checker = ai.NewOpenAIInvasiveChecker(apiKey)
		fmt.Println("✅ OpenAI invasive species checker enabled")
	} else {
		fmt.Println("⚠️ OPENAI_API_KEYが未設定のため、外来種判定なしで動作します")
	}

	surface := maps.NewHeadlessSurface()

	trailUseCase := usecase.NewTrailUseCase(trailSource, trailCache)
	reportUseCase := usecase.NewPlantReportUseCase(plantRepo, checker)
	sessionUseCase := usecase.NewMapSessionUseCase(
		surface,
		trailSource,
		trailCache,
		plantRepo,
		model.DefaultBoundingBox,
		model.DefaultClusterRadiusMeters,
	)

	if trailCache != nil {
		cronScheduler := cronjobs.InitCronJobs(trailUseCase)
		defer cronScheduler.Stop()
	}

	trailHandler := handler.NewTrailHandler(trailUseCase)
	reportHandler := handler.NewPlantReportHandler(reportUseCase)
	sessionHandler := handler.NewMapSessionHandler(sessionUseCase, surface)

	r := handler.SetupRouter(trailHandler, reportHandler, sessionHandler)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	fmt.Printf("TrailGuard-App server starting on :%s...\n", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("サーバー起動失敗: %v", err)
	}
}

// newTrailCacheRepository 環境変数に応じてトレイルキャッシュの実装を選ぶ
// PostgreSQL直接接続 → Supabase REST の順で試し、どちらも使えなければキャッシュなしで動作する
func newTrailCacheRepository() domainrepo.TrailCacheRepository {
	if os.Getenv("SUPABASE_DB_PASSWORD") != "" {
		client, err := database.NewPostgreSQLClientWithRetry(3, 2*time.Second)
		if err != nil {
			log.Printf("⚠️ PostgreSQL接続失敗、Supabase RESTにフォールバック: %v", err)
		} else {
			fmt.Println("✅ PostgreSQL trail cache enabled")
			return repository.NewPostgresTrailCacheRepository(client)
		}
	}

	if os.Getenv("SUPABASE_ANON_KEY") != "" {
		client, err := database.NewSupabaseClient()
		if err != nil {
			log.Printf("⚠️ Supabaseクライアント初期化失敗: %v", err)
		} else if err := client.HealthCheck(); err != nil {
			log.Printf("⚠️ Supabaseヘルスチェック失敗: %v", err)
		} else {
			fmt.Println("✅ Supabase REST trail cache enabled")
			return repository.NewSupabaseTrailCacheRepository(client)
		}
	}

	fmt.Println("⚠️ トレイルキャッシュなしで動作します（毎回Overpass APIに問い合わせます）")
	return nil
}

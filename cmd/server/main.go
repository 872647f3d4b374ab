package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"townkeeper/internal/account"
	"townkeeper/internal/auth"
	"townkeeper/internal/catalog"
	"townkeeper/internal/importer"
	"townkeeper/internal/media"
	"townkeeper/internal/upgrade"
	"townkeeper/internal/wall"
	"townkeeper/pkg/database"
	"townkeeper/pkg/middleware"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️ No .env file found, using environment variables")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("❌ JWT_SECRET is required")
	}

	db, err := database.Connect()
	if err != nil {
		log.Fatalf("❌ Database connection failed: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}
	log.Printf("✅ Database connected and migrated")

	redisClient := newRedisClient()

	// =============================================
	// SERVICE WIRING
	// =============================================

	guard := account.NewGuard(db)
	wallService := wall.NewService(db, guard)
	accountService := account.NewService(db, wallService)
	upgradeService := upgrade.NewService(db, guard)
	authService := auth.NewService(db, []byte(jwtSecret))

	provider := importer.NewHTTPProvider(
		os.Getenv("PROFILE_API_URL"),
		os.Getenv("PROFILE_API_TOKEN"),
	)
	pendingCache := importer.NewPendingCache(redisClient, importer.DefaultPendingTTL)
	importService := importer.NewService(provider, pendingCache, accountService)

	mediaHandler := newMediaHandler()

	authHandler := auth.NewHandler(authService)
	accountHandler := account.NewHandler(accountService)
	upgradeHandler := upgrade.NewHandler(upgradeService)
	wallHandler := wall.NewHandler(wallService)
	importHandler := importer.NewHandler(importService)
	catalogHandler := catalog.NewHandler()

	// =============================================
	// ROUTES
	// =============================================

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.CORS())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "time": time.Now().Unix()})
	})

	v1 := r.Group("/api/v1")

	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.Refresh)
	}

	catalogGroup := v1.Group("/catalog")
	{
		catalogGroup.GET("/:th", catalogHandler.GetTemplates)
		catalogGroup.GET("/:th/walls", catalogHandler.GetWallAllowance)
	}

	protected := v1.Group("")
	protected.Use(middleware.Auth([]byte(jwtSecret)))
	protected.Use(middleware.NewRateLimiter(redisClient, rateLimitPerMinute()).Limit())
	{
		protected.GET("/accounts", accountHandler.ListAccounts)
		protected.POST("/accounts", accountHandler.CreateAccount)
		protected.GET("/accounts/:id", accountHandler.GetAccount)
		protected.DELETE("/accounts/:id", accountHandler.DeleteAccount)
		protected.GET("/accounts/:id/entities", accountHandler.ListEntities)
		protected.GET("/accounts/:id/stats", accountHandler.GetAccountStats)
		protected.GET("/accounts/:id/walls", wallHandler.GetWallStats)
		protected.POST("/accounts/:id/walls/upgrade", wallHandler.UpgradeWalls)

		protected.POST("/entities/:id/upgrade/start", upgradeHandler.StartUpgrade)
		protected.POST("/entities/:id/upgrade/finish", upgradeHandler.FinishUpgrade)
		protected.POST("/entities/:id/upgrade/cancel", upgradeHandler.CancelUpgrade)
		protected.GET("/entities/:id/upgrade/status", upgradeHandler.GetUpgradeStatus)
		protected.GET("/entities/:id/upgrade/validate", upgradeHandler.ValidateUpgrade)
		protected.GET("/entities/:id", upgradeHandler.GetEntity)
		protected.PUT("/entities/:id/level", upgradeHandler.SetLevel)
		protected.DELETE("/entities/:id", upgradeHandler.DeleteEntity)

		protected.POST("/import/search", importHandler.Search)
		protected.POST("/import/commit", importHandler.Commit)
	}

	if mediaHandler != nil {
		mediaGroup := v1.Group("/media")
		{
			mediaGroup.GET("/entity/:category/:name", mediaHandler.GetEntityImage)
			mediaGroup.GET("/:filename", mediaHandler.GetImage)
		}
	} else {
		log.Printf("⚠️ Media storage not configured, artwork endpoints disabled")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("🏰 Townkeeper listening on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("❌ Server failed: %v", err)
	}
}

func newRedisClient() *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		log.Printf("⚠️ REDIS_ADDR not set, rate limiting and import cache degraded")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("⚠️ Redis ping failed: %v", err)
	}

	return client
}

func newMediaHandler() *media.Handler {
	bucket := os.Getenv("MEDIA_BUCKET")
	if bucket == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s3Client, err := media.NewS3Client(ctx, media.S3Config{
		Endpoint:        os.Getenv("MEDIA_ENDPOINT"),
		Region:          os.Getenv("MEDIA_REGION"),
		AccessKeyID:     os.Getenv("MEDIA_ACCESS_KEY_ID"),
		SecretAccessKey: os.Getenv("MEDIA_SECRET_ACCESS_KEY"),
		Bucket:          bucket,
	})
	if err != nil {
		log.Printf("⚠️ Media storage init failed: %v", err)
		return nil
	}

	return media.NewHandler(media.NewService(s3Client))
}

func rateLimitPerMinute() int {
	if v := os.Getenv("RATE_LIMIT_PER_MINUTE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return 120
}

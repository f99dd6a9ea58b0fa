package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"quiz-platform/handlers"
	"quiz-platform/middleware"
	"quiz-platform/models"
	"quiz-platform/services"
	"quiz-platform/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024, // 10MB, quiz images at most
	})

	// 🔐 GLOBAL: only Gateway requests allowed
	app.Use(middleware.GatewayAuthMiddleware())

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		log.Println("⚠️  ALLOWED_ORIGINS environment variable not set, using default: http://localhost:3000")
		allowedOrigins = "http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-Request-ID, X-User-ID, X-User-Role",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Quiz{},
		&models.Question{},
		&models.QuestionOption{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	// Optional: R2 for quiz cover images
	if os.Getenv("CLOUDFLARE_ACCOUNT_ID") != "" {
		if err := utils.InitR2(); err != nil {
			log.Fatal("failed to initialize R2 client:", err)
		}
	} else {
		log.Println("⚠️  CLOUDFLARE_ACCOUNT_ID not set — quiz image upload disabled")
	}

	// Optional: Redis for the per-category quiz listing cache
	var quizCache *services.QuizCache
	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     redisAddr,
			Password: os.Getenv("REDIS_PASSWORD"),
		})
		quizCache = services.NewQuizCache(redisClient, 10*time.Minute)
	} else {
		log.Println("⚠️  REDIS_ADDR not set — quiz listing cache disabled")
	}

	leaderboardURL := os.Getenv("LEADERBOARD_SERVICE_URL")
	if leaderboardURL == "" {
		log.Fatal("LEADERBOARD_SERVICE_URL environment variable not set")
	}
	leaderboard := services.NewLeaderboardClient(
		strings.TrimSuffix(leaderboardURL, "/"),
		os.Getenv("LEADERBOARD_SERVICE_TOKEN"),
	)

	rules := scoreRulesFromEnv()
	progressionService := services.NewProgressionService(db, rules)
	quizService := services.NewQuizService(db, progressionService, leaderboard, quizCache)
	userService := services.NewUserService(db)

	bonusJob := services.NewDailyBonusJob(db, progressionService, leaderboard)
	sched, err := bonusJob.Start()
	if err != nil {
		log.Fatal("failed to start daily bonus scheduler:", err)
	}

	handlers.SetupQuizRoutes(app, quizService)
	handlers.SetupLeaderboardRoutes(app, leaderboard)
	handlers.SetupUserRoutes(app, userService, quizService)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	port := os.Getenv("PORT")
	if port == "" {
		port = "5300"
	}
	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("✅ Server running on http://localhost:%s", port)
	log.Printf("✅ Daily bonus job scheduled every %s (threshold=%d, bonus=%d)",
		bonusJob.Interval, rules.PromotionThreshold, rules.DailyBonusPoints)
	log.Println("✅ GatewayAuthMiddleware enforced globally — all requests must come from Gateway")

	<-ctx.Done()
	log.Println("Shutting down server...")
	_ = sched.Shutdown()
	_ = app.ShutdownWithTimeout(10 * time.Second)
}

// scoreRulesFromEnv centralizes the progression tunables; every literal has
// an env override.
func scoreRulesFromEnv() services.ScoreRules {
	rules := services.DefaultScoreRules
	if v, err := strconv.Atoi(os.Getenv("PROMOTION_THRESHOLD")); err == nil && v > 0 {
		rules.PromotionThreshold = v
	}
	if v, err := strconv.Atoi(os.Getenv("DAILY_BONUS_POINTS")); err == nil && v > 0 {
		rules.DailyBonusPoints = v
	}
	if v, err := strconv.Atoi(os.Getenv("POINTS_PER_LEVEL")); err == nil && v > 0 {
		rules.PointsPerLevel = v
	}
	return rules
}

package main

import (
	"log"
	"strings"

	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/j-h-711/MongMongVillage-BE/internal/bootstrap"
	"github.com/j-h-711/MongMongVillage-BE/internal/config"
	"github.com/j-h-711/MongMongVillage-BE/internal/handler"
	"github.com/j-h-711/MongMongVillage-BE/internal/middleware"
	"github.com/j-h-711/MongMongVillage-BE/internal/model"
	"github.com/j-h-711/MongMongVillage-BE/internal/repository"
	"github.com/j-h-711/MongMongVillage-BE/internal/server"
	"github.com/j-h-711/MongMongVillage-BE/internal/service"
	"github.com/j-h-711/MongMongVillage-BE/pkg/database"
	"github.com/j-h-711/MongMongVillage-BE/pkg/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := database.Connect(database.Config{
		Host:     cfg.DBHost,
		User:     cfg.DBUser,
		Password: cfg.DBPass,
		Name:     cfg.DBName,
		Port:     cfg.DBPort,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	if err := migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	if cfg.AppEnv == "development" {
		if err := bootstrap.SeedAdminUser(db); err != nil {
			log.Fatalf("failed to seed admin user: %v", err)
		}
	}

	redisClient := newRedisClient(cfg.RedisURL)
	searchSvc := newSearchService(cfg)

	imageStorage, err := storage.NewCloudinaryStorage()
	if err != nil {
		log.Fatalf("failed to initialize cloudinary storage: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	boardRepo := repository.NewBoardRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	cafeRepo := repository.NewCafeRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	aggregator := service.NewAggregator(boardRepo, cafeRepo, likeRepo, reviewRepo)

	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL)
	userSvc := service.NewUserService(userRepo, boardRepo, commentRepo, likeRepo, reviewRepo, aggregator, imageStorage, searchSvc)
	boardSvc := service.NewBoardService(boardRepo, commentRepo, likeRepo, imageStorage, searchSvc, redisClient, cfg.RateLimitBoard)
	likeSvc := service.NewLikeService(likeRepo, boardRepo, aggregator)
	commentSvc := service.NewCommentService(commentRepo, boardRepo, userRepo)
	cafeSvc := service.NewCafeService(cafeRepo, reviewRepo, imageStorage, searchSvc, redisClient)
	reviewSvc := service.NewReviewService(reviewRepo, cafeRepo, userRepo, aggregator, imageStorage, redisClient, cfg.RateLimitReview)

	handlers := server.Handlers{
		Auth:    handler.NewAuthHandler(authSvc),
		User:    handler.NewUserHandler(userSvc),
		Board:   handler.NewBoardHandler(boardSvc, likeSvc),
		Comment: handler.NewCommentHandler(commentSvc),
		Cafe:    handler.NewCafeHandler(cafeSvc),
		Review:  handler.NewReviewHandler(reviewSvc),
	}

	authMiddleware := middleware.NewAuthMiddleware(userRepo, cfg.JWTSecret)

	srv := server.New(cfg, handlers, authMiddleware)

	if err := srv.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Board{},
		&model.Comment{},
		&model.Like{},
		&model.Cafe{},
		&model.Review{},
	)
}

// newRedisClient returns nil when no REDIS_URL is configured; rate
// limiting and caching degrade gracefully without it.
func newRedisClient(redisURL string) *redis.Client {
	if redisURL == "" {
		return nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("invalid REDIS_URL, running without redis: %v", err)
		return nil
	}

	return redis.NewClient(opts)
}

// newSearchService returns nil when no Meilisearch host is configured;
// indexing becomes a no-op.
func newSearchService(cfg *config.Config) service.SearchService {
	if cfg.MeiliSearchHost == "" {
		return nil
	}

	host := cfg.MeiliSearchHost
	if !strings.HasPrefix(host, "http") {
		host = "http://" + host + ":7700"
	}

	client := meilisearch.New(host, meilisearch.WithAPIKey(cfg.MeiliMasterKey))
	return service.NewSearchService(client)
}

package api

import (
	"github.com/campusboard/board-service/config"
	"github.com/campusboard/board-service/infra/queue"
	"github.com/campusboard/board-service/internal/api/rest/handlers"
	"github.com/campusboard/board-service/internal/api/rest/middleware"
	"github.com/campusboard/board-service/internal/domain"
	"github.com/campusboard/board-service/internal/helper"
	"github.com/campusboard/board-service/internal/repository"
	"github.com/campusboard/board-service/internal/services"
	"github.com/campusboard/board-service/pkg/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Single fixed id shared by every instance so only one runs the migration.
const migrateLockID int64 = 20260901

func StartServer(cfg config.Config) {
	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowOrigins,
		AllowHeaders: "Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	// ---------- DB ----------
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DatabaseDSN,
		PreferSimpleProtocol: true,
	}), &gorm.Config{TranslateError: true})
	if err != nil {
		logger.S().Fatalw("database connection error", "error", err)
	}
	logger.S().Info("database connected")

	// ---------- Migration (guarded by advisory lock) ----------
	if err := db.Exec("SELECT pg_advisory_lock(?)", migrateLockID).Error; err != nil {
		logger.S().Fatalw("migration lock error", "error", err)
	}
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Post{},
		&domain.Comment{},
	); err != nil {
		logger.S().Fatalw("migration error", "error", err)
	}
	if err := db.Exec("SELECT pg_advisory_unlock(?)", migrateLockID).Error; err != nil {
		logger.S().Warnw("migration unlock error", "error", err)
	}
	logger.S().Info("migration successful")

	// ---------- Infra ----------
	kafkaProducer := queue.NewProducer(
		cfg.KafkaBroker,
		cfg.KafkaTopic,
		cfg.KafkaUsername,
		cfg.KafkaPassword,
	)
	mailPublisher := queue.NewMailPublisher(kafkaProducer)
	authHelper := helper.SetupAuth(cfg.AccessSecret, cfg.RefreshSecret)

	// ---------- Repositories ----------
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	// ---------- Services ----------
	authSvc := services.NewAuthService(userRepo, mailPublisher, authHelper)
	commentSvc := services.NewCommentService(commentRepo)
	carouselSvc := services.NewCarouselService(postRepo)

	// ---------- Routes ----------
	api := app.Group("/api")
	guard := middleware.AuthMiddleware(authHelper)

	handlers.NewAuthHandler(authSvc).SetupRoutes(api)
	handlers.NewCommentHandler(commentSvc).SetupRoutes(api, guard)
	handlers.NewCarouselHandler(carouselSvc).SetupRoutes(api, guard)

	// ---------- Health ----------
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	logger.S().Infow("listening", "addr", cfg.ServerPort)
	logger.S().Fatal(app.Listen(cfg.ServerPort))
}

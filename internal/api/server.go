package api

import (
	"context"
	"log"

	"github.com/SehaTech/auth_service/config"
	"github.com/SehaTech/auth_service/infra/queue"
	"github.com/SehaTech/auth_service/internal/api/rest/handlers"
	"github.com/SehaTech/auth_service/internal/cleanup"
	"github.com/SehaTech/auth_service/internal/domain"
	"github.com/SehaTech/auth_service/internal/helper"
	"github.com/SehaTech/auth_service/internal/repository"
	"github.com/SehaTech/auth_service/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func StartServer(cfg config.Config) {
	app := fiber.New()

	// ---------- CORS ----------
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.BaseURL,
		AllowHeaders: "Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, OPTIONS",
	}))

	// ---------- DB ----------
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DatabaseDSN,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	if err != nil {
		log.Fatalf("database connection error: %v", err)
	}
	log.Println("database connected")

	// ---------- MIGRATION (guarded by advisory lock) ----------
	const migrateLockID int64 = 20260831

	if err := db.Exec("SELECT pg_advisory_lock(?)", migrateLockID).Error; err != nil {
		log.Fatalf("migration lock error: %v", err)
	}
	defer func() {
		_ = db.Exec("SELECT pg_advisory_unlock(?)", migrateLockID).Error
	}()

	if err := db.AutoMigrate(
		&domain.User{},
		&domain.OtpChallenge{},
		&domain.AttemptCounter{},
	); err != nil {
		log.Fatalf("migration error: %v", err)
	}
	log.Println("migration successful")

	// ---------- Infra ----------
	kafkaProducer := queue.NewProducer(
		cfg.KafkaBroker,
		cfg.KafkaTopic,
		cfg.KafkaUsername,
		cfg.KafkaPassword,
	)

	authHelper := helper.SetupAuth(cfg.AccessSecret, cfg.AccessTokenTTL, cfg.GuestTokenTTL)

	// ---------- Repositories ----------
	userRepo := repository.NewUserRepository(db)
	otpRepo := repository.NewOTPRepository(db)
	attemptRepo := repository.NewAttemptRepository(db)

	// ---------- Service ----------
	authSvc := services.NewAuthService(
		userRepo,
		otpRepo,
		attemptRepo,
		authHelper,
		kafkaProducer,
		cfg,
	)

	// ---------- Expired challenge sweep ----------
	sweeper := cleanup.NewSweeper(otpRepo, cfg.SweepInterval)
	go sweeper.Run(context.Background())

	// ---------- Handler ----------
	authHandler := handlers.NewAuthHandler(authSvc, authHelper)
	authHandler.SetupRoutes(app)

	// ---------- Health ----------
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// ---------- Listen ----------
	addr := cfg.ServerPort
	log.Println("listening on", addr)
	log.Fatal(app.Listen(addr))
}

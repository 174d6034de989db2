package main

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/example/communityhub/internal/config"
	"github.com/example/communityhub/internal/database"
	"github.com/example/communityhub/internal/handlers"
	"github.com/example/communityhub/internal/logger"
	"github.com/example/communityhub/internal/mail"
	"github.com/example/communityhub/internal/middleware"
	"github.com/example/communityhub/internal/routes"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	db := database.Connect(cfg.DatabaseURL)
	mailer := mail.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)

	app := fiber.New(fiber.Config{
		AppName:      "Community Hub Backend",
		ErrorHandler: handlers.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(middleware.RequestLogger())

	routes.Register(app, db, cfg, mailer)

	logger.Logger.Info().Str("port", cfg.AppPort).Msg("starting server")
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		logger.Logger.Fatal().Err(err).Msg("server stopped")
	}
}

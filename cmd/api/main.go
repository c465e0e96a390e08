package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/dverdu/albaranes-api/internal/application/auth"
	"github.com/dverdu/albaranes-api/internal/application/notes"
	"github.com/dverdu/albaranes-api/internal/application/records"
	"github.com/dverdu/albaranes-api/internal/infrastructure/email"
	infrapdf "github.com/dverdu/albaranes-api/internal/infrastructure/pdf"
	"github.com/dverdu/albaranes-api/internal/infrastructure/postgres"
	"github.com/dverdu/albaranes-api/internal/infrastructure/slack"
	"github.com/dverdu/albaranes-api/internal/infrastructure/storage"
	httpRouter "github.com/dverdu/albaranes-api/internal/interfaces/http"
	"github.com/dverdu/albaranes-api/pkg/config"
	"github.com/dverdu/albaranes-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	companyRepo := postgres.NewCompanyRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	projectRepo := postgres.NewProjectRepository(pool)
	noteRepo := postgres.NewDeliveryNoteRepository(pool)

	store, err := storage.NewLocalStore(cfg.Uploads.Dir)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento local")
	}
	mailer := email.NewSendGridMailer(cfg.Mail, log)
	notifier := slack.NewNotifier(cfg.Slack.WebhookURL, log)
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()

	authUC := auth.NewAuthUseCase(userRepo, companyRepo, mailer,
		auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		},
		auth.CodePolicy{
			AllowPendingDuplicates: cfg.Auth.AllowPendingDuplicates,
			VerificationTTL:        time.Duration(cfg.Auth.VerificationTTLHours) * time.Hour,
			ResetTTL:               time.Duration(cfg.Auth.ResetTTLMinutes) * time.Minute,
			Attempts:               cfg.Auth.CodeAttempts,
		},
	)
	clientUC := records.NewClientUseCase(clientRepo)
	projectUC := records.NewProjectUseCase(projectRepo, clientRepo)
	noteUC := notes.NewNoteUseCase(noteRepo, projectRepo, clientRepo, userRepo, companyRepo, pdfGenerator, store)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    10 << 20, // imágenes de firma y logo
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Albaranes API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	// Artefactos subidos y PDFs generados
	app.Static("/uploads", store.Root())

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:    authUC,
		ClientUC:  clientUC,
		ProjectUC: projectUC,
		NoteUC:    noteUC,
		UserRepo:  userRepo,
		Store:     store,
		JWTSecret: cfg.JWT.Secret,
		Log:       log,
		Slack:     notifier,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

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
	"github.com/jhoicas/Paqueteria-api/internal/application/auth"
	"github.com/jhoicas/Paqueteria-api/internal/application/grn"
	"github.com/jhoicas/Paqueteria-api/internal/application/otp"
	"github.com/jhoicas/Paqueteria-api/internal/application/ports"
	"github.com/jhoicas/Paqueteria-api/internal/application/usecase"
	"github.com/jhoicas/Paqueteria-api/internal/application/warehouse"
	infraemail "github.com/jhoicas/Paqueteria-api/internal/infrastructure/email"
	infrapdf "github.com/jhoicas/Paqueteria-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Paqueteria-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Paqueteria-api/internal/interfaces/http"
	"github.com/jhoicas/Paqueteria-api/pkg/config"
	"github.com/jhoicas/Paqueteria-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	locationRepo := postgres.NewLocationRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	grnRepo := postgres.NewGRNRepository(pool)
	lineRepo := postgres.NewLineRepository(pool)
	dnRepo := postgres.NewDNRepository(pool)
	inwardRepo := postgres.NewWarehouseInwardRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Notificaciones: SES en ambientes con remitente configurado; en
	// desarrollo se descartan.
	var notifier ports.Notifier
	if cfg.SES.FromEmail != "" {
		sesNotifier, err := infraemail.NewSESNotifier(ctx, cfg.SES)
		if err != nil {
			log.Fatal().Err(err).Msg("cliente SES")
		}
		notifier = sesNotifier
		log.Info().Str("from", cfg.SES.FromEmail).Msg("notificaciones vía AWS SES")
	} else {
		notifier = infraemail.NewDiscard()
		log.Warn().Msg("SES_FROM_EMAIL vacío: las notificaciones se descartan")
	}

	authUC := auth.NewAuthUseCase(userRepo, locationRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	locationUC := usecase.NewLocationUseCase(locationRepo)
	grnUC := grn.NewUseCase(txRunner, userRepo, locationRepo, grnRepo, lineRepo, dnRepo, inwardRepo, notifier, log)
	manifestUC := grn.NewManifestUseCase(grnUC, infrapdf.NewMarotoManifestGenerator())
	otpUC := otp.NewUseCase(txRunner, userRepo, locationRepo, notifier, log)
	warehouseUC := warehouse.NewUseCase(txRunner, userRepo, locationRepo, grnRepo, inwardRepo, notifier, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Paquetería GRN API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		LocationUC:  locationUC,
		GRNUC:       grnUC,
		ManifestUC:  manifestUC,
		OTPUC:       otpUC,
		WarehouseUC: warehouseUC,
		UserRepo:    userRepo,
		JWTSecret:   cfg.JWT.Secret,
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

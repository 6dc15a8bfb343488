package main

import (
	"consultly/internal/bookings/handler"
	"consultly/internal/bookings/repository"
	"consultly/internal/bookings/service"
	"consultly/internal/bookings/validator"
	"consultly/internal/notifications"
	"consultly/pkg/app"
	"consultly/pkg/config"
	"consultly/pkg/events"
	"consultly/pkg/sealer"
)

const ServiceName = "bookings"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Bookings service")
	bookingService := initServices(cfg)
	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewBookingHandler(bookingService, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config) service.BookingService {
	codec, err := sealer.NewCodec(cfg.Mode, cfg.SealerKey)
	if err != nil {
		cfg.Log.Fatal("Failed to build payload codec", "error", err)
	}

	mailer := notifications.NewMailer(
		cfg.BrevoAPIKey,
		cfg.BrevoSenderEmail,
		cfg.BrevoSenderName,
		cfg.AdminEmail,
		cfg.BrevoSandbox,
	)
	if !mailer.Enabled() {
		cfg.Log.Warn("Email notifications disabled: Brevo is not configured")
	}

	publisher := events.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, ServiceName)
	if !publisher.Enabled() {
		cfg.Log.Info("Event publishing disabled: no Kafka brokers configured")
	}

	bookingValidator := validator.NewBookingValidator(cfg.Log)
	bookingRepo := repository.NewMongoBookingRepository(cfg)
	bookingService := service.NewBookingService(
		bookingRepo,
		bookingValidator,
		codec,
		mailer,
		publisher,
		cfg,
	)

	cfg.Log.Info("Bookings service initialized",
		"database", cfg.MongoDatabaseName,
		"mode", cfg.Mode,
	)
	return bookingService
}

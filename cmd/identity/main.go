package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"eventrewards/config"
	"eventrewards/internal/adapters/auth"
	"eventrewards/internal/adapters/email"
	"eventrewards/internal/app"
	delivery "eventrewards/internal/delivery/http"
	"eventrewards/internal/delivery/http/controllers"
	"eventrewards/internal/delivery/http/middleware"
	"eventrewards/internal/repository/postgres"
	"eventrewards/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := config.NewLogger("identity")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := app.OpenDB(ctx, cfg.DBUrl, postgres.IdentityMigrations())
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Mail.Provider,
		FromAddress: cfg.Mail.FromAddress,
		FromName:    cfg.Mail.FromName,
		SES: email.SESConfig{
			Region:             cfg.Mail.AWSRegion,
			AccessKeyID:        cfg.Mail.AWSAccessKeyID,
			SecretAccessKey:    cfg.Mail.AWSSecretAccessKey,
			InsecureSkipVerify: cfg.Mail.InsecureSkipVerify,
		},
	}, logger)
	if err != nil {
		log.Fatalf("mailer: %v", err)
	}
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer(), logger)
	userRepo := postgres.NewUserRepository(db)
	creditService := services.NewCreditService(userRepo, emailService, logger, cfg.RequestTimeout)
	userService := services.NewUserService(userRepo, cfg.RequestTimeout)

	// /internal routes take event-service tokens signed with SERVICE_SECRET; /users routes take gateway user tokens.
	mux := delivery.NewIdentityRouter(
		controllers.NewIdentityController(logger, creditService),
		controllers.NewUserController(logger, userService),
		auth.NewJWTVerifier(cfg.ServiceSecret),
		auth.NewJWTVerifier(cfg.JWTSecret),
		logger,
	)
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: middleware.LoggingMiddleware(logger, mux),
	}
	if err := app.Serve(ctx, srv, logger); err != nil {
		log.Fatalf("serve: %v", err)
	}
}

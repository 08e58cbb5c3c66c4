package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Ggirassol/myIntake-API/config"
	"github.com/Ggirassol/myIntake-API/controllers"
	"github.com/Ggirassol/myIntake-API/repository"
	"github.com/Ggirassol/myIntake-API/routes"
	"github.com/Ggirassol/myIntake-API/services"
	"github.com/Ggirassol/myIntake-API/utils"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	db, err := config.OpenDB(cfg)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mailer, err := utils.NewSESMailer(ctx, cfg.AWSRegion, cfg.SESSource)
	if err != nil {
		return err
	}

	userRepo := repository.NewGormUserRepository(db)
	intakeRepo := repository.NewGormIntakeRepository(db)

	tokenSvc := services.NewTokenService(userRepo, cfg.JWTSecret,
		cfg.AccessTokenTTL, cfg.RefreshTokenTTL, cfg.VerificationTokenTTL)
	userSvc := services.NewUserService(userRepo, tokenSvc, mailer, cfg.BaseURL)
	intakeSvc := services.NewIntakeService(intakeRepo, userRepo)

	authCtrl := controllers.NewAuthController(userSvc, tokenSvc)
	intakeCtrl := controllers.NewIntakeController(intakeSvc)

	r := routes.SetupRouter(logger, db, tokenSvc, authCtrl, intakeCtrl)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// /cmd/web/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ericoliveiras/avalia-loja/internal/auth"
	"github.com/ericoliveiras/avalia-loja/internal/config"
	"github.com/ericoliveiras/avalia-loja/internal/database"
	"github.com/ericoliveiras/avalia-loja/internal/handler"
	"github.com/ericoliveiras/avalia-loja/internal/middleware"
	"github.com/ericoliveiras/avalia-loja/internal/repository"
	"github.com/ericoliveiras/avalia-loja/internal/service"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("Erro ao carregar a configuração")
	}
	if lvl, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(lvl)
	} else {
		log.WithField("level", cfg.LogLevel).Warn("LOG_LEVEL inválido, usando info")
	}
	if lvl := log.GetLevel(); lvl < logrus.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg.DatabaseURL, log)
	if err != nil {
		log.WithError(err).Fatal("Erro ao conectar ao banco de dados")
	}
	if err := database.Migrate(db, log); err != nil {
		log.WithError(err).Fatal("Erro ao migrar o banco de dados")
	}

	hasher := auth.NewPasswordHasher(cfg.BcryptCost)
	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = database.SeedAdmin(ctx, db, hasher, database.AdminSeed{
		Name:     cfg.AdminName,
		Email:    service.NormalizeEmail(cfg.AdminEmail),
		Password: cfg.AdminPassword,
	}, log)
	if err != nil {
		log.WithError(err).Fatal("Erro ao criar o administrador inicial")
	}

	users := repository.NewUserRepo(db)
	stores := repository.NewStoreRepo(db)
	ratings := repository.NewRatingRepo(db)

	ratingSvc := service.NewRatingService(ratings, stores)
	directory := service.NewDirectoryService(users, stores, ratings, ratingSvc)

	limiter := middleware.NewRateLimiter(cfg.LoginRatePerSec, cfg.LoginBurst, log)
	limiter.StartCleanup(ctx.Done(), 10*time.Minute)

	router := handler.NewRouter(handler.RouterConfig{
		DB:  db,
		Log: log,
		Auth: &handler.AuthHandler{
			Accounts: service.NewAccountService(users, hasher, tokens),
			Cookie:   handler.CookieConfig{Name: cfg.CookieName, Secure: cfg.CookieSecure, TTL: tokens.TTL()},
			Log:      log,
		},
		Stores: &handler.StoreHandler{Directory: directory, Ratings: ratingSvc, Log: log},
		Admin: &handler.AdminHandler{
			Admin:     service.NewAdminService(users, stores, ratings, hasher),
			Directory: directory,
			Log:       log,
		},
		LoginLimit:     limiter,
		CORSOrigins:    cfg.CORSOrigins,
		TrustedProxies: cfg.TrustedProxies,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("Servidor rodando na porta %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("Erro ao iniciar o servidor")
		}
	}()

	<-ctx.Done()
	log.Info("Encerrando o servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Erro ao encerrar o servidor")
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}

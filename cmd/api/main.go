package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/mmttc/workshop-registration/internal/http/handlers"
	imw "github.com/mmttc/workshop-registration/internal/http/middleware"
	"github.com/mmttc/workshop-registration/internal/platform/mailer"
	"github.com/mmttc/workshop-registration/internal/platform/session"
	"github.com/mmttc/workshop-registration/internal/repo/postgres"
	"github.com/mmttc/workshop-registration/internal/service"
	"github.com/mmttc/workshop-registration/pkg/config"
	"github.com/mmttc/workshop-registration/pkg/database"
	"github.com/mmttc/workshop-registration/pkg/events"
	"github.com/mmttc/workshop-registration/pkg/logger"
	mw "github.com/mmttc/workshop-registration/pkg/middleware"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	ctx := context.Background()
	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	sessions, err := session.NewRedisStore(cfg.Redis.URL)
	if err != nil {
		logger.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	defer sessions.Close()

	var bus events.Publisher
	natsBus, err := events.NewNATSEventBus(cfg.NATS.URL)
	if err != nil {
		logger.Warn("NATS unavailable, events disabled", "error", err)
		bus = events.NoopBus{}
	} else {
		bus = natsBus
		defer natsBus.Close()
	}

	emailSvc := mailer.FromConfig(cfg.Email)

	regRepo := postgres.NewRegistrationsRepo(pool)
	adminsRepo := postgres.NewAdminsRepo(pool)

	regSvc := service.NewRegistrationService(regRepo, emailSvc, bus, cfg.Workshop)
	authSvc := service.NewAuthService(adminsRepo, sessions, cfg.Auth.SessionTTL)

	regHandler := handlers.NewRegistrationHandler(regSvc, cfg.Workshop)
	authHandler := handlers.NewAuthHandler(authSvc)
	adminHandler := handlers.NewAdminHandler(regSvc, cfg.Workshop)

	r := chi.NewRouter()
	r.Use(mw.RequestID)
	r.Use(mw.ServiceName("api"))
	r.Use(mw.Logging)
	r.Use(mw.Health)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	// Public registration surface
	r.Post("/registrations", regHandler.Submit)
	r.Get("/seats", regHandler.Seats)
	r.Get("/workshop", regHandler.Workshop)

	// Admin surface
	r.Route("/admin", func(r chi.Router) {
		r.Post("/login", authHandler.Login)
		r.Post("/logout", authHandler.Logout)
		r.Get("/me", authHandler.Me)

		r.Route("/registrations", func(r chi.Router) {
			r.Use(imw.RequireSession(sessions))
			r.Get("/", adminHandler.List)
			r.Get("/export", adminHandler.ExportCSV)
			r.Delete("/{id}", adminHandler.Delete)
		})
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("API listening", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}

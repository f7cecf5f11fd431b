// cmd/api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"time"

	"github.com/beatbookhq/beatbook/internal/audit"
	"github.com/beatbookhq/beatbook/internal/auth"
	"github.com/beatbookhq/beatbook/internal/config"
	"github.com/beatbookhq/beatbook/internal/email"
	"github.com/beatbookhq/beatbook/internal/email/mailer"
	"github.com/beatbookhq/beatbook/internal/handler"
	"github.com/beatbookhq/beatbook/internal/middleware"
	"github.com/beatbookhq/beatbook/internal/obs"
	"github.com/beatbookhq/beatbook/internal/repository"
	"github.com/beatbookhq/beatbook/internal/service"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "startup error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Initialize structured logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:     slog.LevelInfo,
		AddSource: true,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{
					Key:   a.Key,
					Value: slog.StringValue(a.Value.Time().Format(time.RFC3339)),
				}
			}
			return a
		},
	}))
	slog.SetDefault(log)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	// Initialize database
	db, err := setupDatabase(cfg)
	if err != nil {
		return fmt.Errorf("setting up database: %w", err)
	}

	// Initialize repositories
	identityRepo := repository.NewIdentityRepository(db)
	credentialRepo := repository.NewCredentialRepository(db)
	userRepo := repository.NewUserRepository(db)
	orgRepo := repository.NewOrganizationRepository(db)
	eventRepo := repository.NewEventRepository(db)
	tagRepo := repository.NewTagRepository(db)
	invitationRepo := repository.NewInvitationRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)

	// Initialize auth services
	passwordHasher := auth.NewPasswordHasher()
	tokenManager := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.ExpiryPeriod)

	// Initialize email service
	emailService, err := email.NewEmailService(cfg, email.ProviderSendgrid)
	if err != nil {
		return fmt.Errorf("initializing email service: %w", err)
	}

	// Initialize cache service
	cacheService := service.NewCacheService(service.CacheConfig{
		TTL:         5 * time.Minute,
		CleanupFreq: 1 * time.Minute,
	})
	defer cacheService.Close()

	auditLog := audit.NewDBLogger(auditRepo, log)

	// Initialize services
	userService := service.NewUserService(
		identityRepo,
		credentialRepo,
		userRepo,
		orgRepo,
		passwordHasher,
		tokenManager,
		cacheService,
		auditLog,
		cfg,
	)
	eventService := service.NewEventService(eventRepo, tagRepo, auditLog)
	tagService := service.NewTagService(tagRepo, auditLog)
	invitationService := service.NewInvitationService(
		invitationRepo,
		userRepo,
		identityRepo,
		orgRepo,
		mailer.NewEmailSender(emailService),
		auditLog,
		cfg,
	)
	orgService := service.NewOrganizationService(orgRepo, auditLog)
	auditService := service.NewAuditService(auditRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(userService, cacheService, cfg.DebugErrors)
	profileHandler := handler.NewProfileHandler(userService, cfg.DebugErrors)
	eventHandler := handler.NewEventHandler(eventService, userService, cfg.DebugErrors)
	tagHandler := handler.NewTagHandler(tagService, userService, cfg.DebugErrors)
	invitationHandler := handler.NewInvitationHandler(invitationService, userService, cfg.DebugErrors)
	userHandler := handler.NewUserHandler(userService, cfg.DebugErrors)
	orgHandler := handler.NewOrganizationHandler(orgService, userService, cfg.DebugErrors)
	auditHandler := handler.NewAuditHandler(auditService, userService, cfg.DebugErrors)

	// Register metrics
	obs.Init()

	// Create router
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(loggingMiddleware(log))
	r.Use(recoveryMiddleware(log))
	r.Use(obs.Instrument)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})
	r.Handle("/metrics", obs.Handler())

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Public routes
		r.Route("/auth", func(r chi.Router) {
			r.Use(middleware.RateLimit(cfg.RateLimit.Burst, cfg.RateLimit.PerSecond))

			r.Get("/signup", authHandler.SignupHandler)
			r.Group(func(r chi.Router) {
				r.Use(chimw.AllowContentType("application/json"))

				r.Post("/signup", authHandler.SignupHandler)
				r.Post("/login", authHandler.LoginHandler)
			})
		})

		// Invitation preview is public: the token is the credential
		r.Get("/invitations/accept/{token}", invitationHandler.PreviewHandler)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(tokenManager))

			r.Get("/auth/check-profile", authHandler.CheckProfileHandler)
			r.With(chimw.AllowContentType("application/json")).
				Post("/auth/setup-profile", authHandler.SetupProfileHandler)

			r.Get("/profile", profileHandler.GetProfileHandler)
			r.Patch("/profile", profileHandler.UpdateProfileHandler)

			r.Route("/events", func(r chi.Router) {
				r.Get("/", eventHandler.ListHandler)
				r.Post("/", eventHandler.CreateHandler)
				r.Post("/bulk-delete", eventHandler.BulkDeleteHandler)
				r.Get("/{id}", eventHandler.GetHandler)
				r.Patch("/{id}", eventHandler.UpdateHandler)
				r.Delete("/{id}", eventHandler.DeleteHandler)
			})

			r.Route("/tags", func(r chi.Router) {
				r.Get("/", tagHandler.ListHandler)
				r.Post("/", tagHandler.CreateHandler)
				r.Patch("/{id}", tagHandler.UpdateHandler)
				r.Delete("/{id}", tagHandler.DeleteHandler)
			})

			r.Route("/invitations", func(r chi.Router) {
				r.Get("/", invitationHandler.ListHandler)
				r.Post("/", invitationHandler.SendHandler)
				r.Post("/accept/{token}", invitationHandler.AcceptHandler)
				r.Post("/{id}/resend", invitationHandler.ResendHandler)
				r.Delete("/{id}", invitationHandler.RevokeHandler)
			})

			r.Route("/users", func(r chi.Router) {
				r.Get("/", userHandler.ListHandler)
				r.Patch("/{id}/role", userHandler.ChangeRoleHandler)
				r.Delete("/{id}", userHandler.RemoveHandler)
			})

			r.Get("/organization", orgHandler.GetHandler)
			r.Patch("/organization", orgHandler.RenameHandler)

			r.Get("/audit/list", auditHandler.ListHandler)
		})
	})

	// Background invitation expiry sweep
	reconcilerCtx, stopReconciler := context.WithCancel(context.Background())
	defer stopReconciler()
	reconciler := service.NewInvitationReconciler(invitationRepo, cfg.Invitations.ReconcileInterval, log)
	go reconciler.Run(reconcilerCtx)

	// Create server
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Server error channel
	serverErrors := make(chan error, 1)

	// Start server
	go func() {
		log.Info("server starting", "port", cfg.Server.Port)
		serverErrors <- srv.ListenAndServe()
	}()

	// Shutdown channel
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt)

	// Wait for shutdown or error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		log.Info("shutdown started", "signal", sig)
		stopReconciler()

		// Give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		// Gracefully shutdown the server
		if err := srv.Shutdown(ctx); err != nil {
			// If shutdown times out, forcefully close
			srv.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	return nil
}

func setupDatabase(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s search_path=%s",
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Name,
		cfg.Database.SSLMode,
		cfg.Database.SearchPath,
	)

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	db, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting database instance: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return db, nil
}

func loggingMiddleware(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				log.Info("request completed",
					"method", r.Method,
					"path", r.URL.Path,
					"duration", time.Since(start),
					"status", ww.Status(),
					"size", ww.BytesWritten(),
					"requestID", chimw.GetReqID(r.Context()),
				)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}

func recoveryMiddleware(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					err := errors.New("panic recovered")
					log.Error("panic recovered",
						"error", err,
						"panic", rvr,
						"stack", string(debug.Stack()),
						"requestID", chimw.GetReqID(r.Context()),
					)

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					w.Write([]byte(`{"error":"error encountered"}`))
					return
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

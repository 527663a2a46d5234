// Command api serves the volunteer event API and the single-page client.
//
// @title						VolunteerHub API
// @version					1.0
// @description				Volunteer sign-up, event rosters and completed-hours tracking.
// @BasePath					/api
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
// @description				Bearer token returned by /auth/login, sent as "Bearer <token>".
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"volunteerhub/config"
	_ "volunteerhub/docs"
	"volunteerhub/internal/adapters/auth"
	"volunteerhub/internal/adapters/email"
	httpdelivery "volunteerhub/internal/delivery/http"
	"volunteerhub/internal/delivery/http/controllers"
	"volunteerhub/internal/domain"
	"volunteerhub/internal/repository/memory"
	mongorepo "volunteerhub/internal/repository/mongo"
	"volunteerhub/internal/repository/postgres"
	"volunteerhub/internal/scheduler"
	"volunteerhub/internal/services"
)

const shutdownTimeout = 15 * time.Second

type repositories struct {
	users  domain.UserRepository
	events domain.EventRepository
	close  func(ctx context.Context) error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger := config.NewLogger(cfg)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, err := openRepositories(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to open store", "driver", cfg.StoreDriver, "err", err)
		os.Exit(1)
	}

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFromAddress,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:             cfg.AWSRegion,
			AccessKeyID:        cfg.AWSAccessKeyID,
			SecretAccessKey:    cfg.AWSSecretAccessKey,
			InsecureSkipVerify: cfg.SESInsecureSkipVerify,
		},
		Logger: logger,
	})
	if err != nil {
		logger.Error("failed to create mailer", "err", err)
		os.Exit(1)
	}
	emails := services.NewEmailService(mailer, email.NewTemplateRenderer(), logger)

	tokens := auth.NewJWTService(cfg.JWTSecret, cfg.TokenTTL, nil)
	creds := services.NewCredentialStore(repos.users, auth.NewBcryptHasher(cfg.BcryptCost))
	authService := services.NewAuthService(creds, repos.users, tokens, tokens, emails, logger)
	eventService := services.NewEventService(repos.events, repos.users)
	userService := services.NewUserService(repos.users, repos.events)
	registrations := services.NewRegistrationService(repos.users, repos.events, logger, cfg.StoreTimeout)
	completion := services.NewCompletionService(repos.users, repos.events, logger,
		services.WithCompletionEmails(emails),
		services.WithWriteTimeout(cfg.StoreTimeout),
	)

	handler := httpdelivery.NewRouter(httpdelivery.RouterConfig{
		Logger:         logger,
		Authenticator:  authService,
		Auth:           controllers.NewAuthController(logger, authService),
		Events:         controllers.NewEventController(logger, eventService, registrations, completion, cfg.StrictIdentity),
		Users:          controllers.NewUserController(logger, userService, cfg.StrictIdentity),
		StaticDir:      cfg.StaticDir,
		AllowedOrigins: cfg.CORSAllowedOrigins,
	})

	var sched *scheduler.Scheduler
	if cfg.ReconcileSchedule != "" {
		sched = scheduler.New(services.NewReconciler(repos.users, repos.events, logger), logger)
		if err := sched.Start(cfg.ReconcileSchedule); err != nil {
			logger.Error("failed to start scheduler", "err", err)
			os.Exit(1)
		}
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr, "env", cfg.Environment, "store", cfg.StoreDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err := <-errCh:
		if err != nil {
			logger.Error("server failed", "err", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "err", err)
	}
	if sched != nil {
		sched.Stop()
	}
	if err := repos.close(shutdownCtx); err != nil {
		logger.Error("store close", "err", err)
	}
}

func openRepositories(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*repositories, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	switch cfg.StoreDriver {
	case config.StoreMongo:
		store, err := mongorepo.Connect(connectCtx, mongorepo.Config{
			URI:              cfg.MongoConnectionURI(),
			Database:         cfg.DBName,
			UsersCollection:  cfg.UsersCollection,
			EventsCollection: cfg.EventsCollection,
			Timeout:          cfg.StoreTimeout,
		})
		if err != nil {
			return nil, err
		}
		if err := store.EnsureIndexes(connectCtx); err != nil {
			_ = store.Close(context.Background())
			return nil, err
		}
		logger.Info("connected to mongo", "database", cfg.DBName)
		return &repositories{
			users:  mongorepo.NewUserRepository(store.Users),
			events: mongorepo.NewEventRepository(store.Events),
			close:  store.Close,
		}, nil
	case config.StorePostgres:
		db, err := postgres.Open(connectCtx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := postgres.Migrate(connectCtx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
		logger.Info("connected to postgres")
		return &repositories{
			users:  postgres.NewUserRepository(db),
			events: postgres.NewEventRepository(db),
			close:  func(context.Context) error { return db.Close() },
		}, nil
	default:
		logger.Warn("using in-memory store, data is lost on restart")
		store := memory.NewStore()
		return &repositories{
			users:  store.Users(),
			events: store.Events(),
			close:  func(context.Context) error { return nil },
		}, nil
	}
}

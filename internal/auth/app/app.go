package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/greenpepperchocolate/english-phrase/internal/auth/http"
	"github.com/greenpepperchocolate/english-phrase/internal/auth/mail"
	"github.com/greenpepperchocolate/english-phrase/internal/auth/ratelimit"
	"github.com/greenpepperchocolate/english-phrase/internal/auth/service"
	"github.com/greenpepperchocolate/english-phrase/internal/auth/store"
	"github.com/greenpepperchocolate/english-phrase/internal/auth/store/drivers/sqlite"
	"github.com/greenpepperchocolate/english-phrase/pkg/jwtx"
	"github.com/greenpepperchocolate/english-phrase/pkg/mediasign"
	"github.com/greenpepperchocolate/english-phrase/pkg/slogx"
)

// BuildVersion should be set at build time via ldflags.
const BuildVersion = "v0.1.0"

// Application encapsulates the auth service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db           store.Store
	signer       *jwtx.HS256
	redisCounter *ratelimit.RedisCounter // nil without Redis

	signupService       *service.SignupService
	verificationService *service.VerificationService
	sessionService      *service.SessionService
	anonymousService    *service.AnonymousService
	resetService        *service.ResetService
	mediaService        *service.MediaService
	accountService      *service.AccountService
	housekeepingService *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

// New creates an Application with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "english-phrase-auth",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	signer, err := jwtx.NewHS256(cfg.JWTSecret, cfg.Issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token signer: %w", err)
	}
	app.signer = signer

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.initServices(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initHTTP()
	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("auth service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)
		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown drains the server, stops housekeeping, and closes connections.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down auth service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if app.redisCounter != nil {
		if err := app.redisCounter.Close(); err != nil {
			app.logger.Error("error closing redis", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("auth service stopped")
	return nil
}

func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

func (app *Application) initServices() error {
	app.sessionService = &service.SessionService{
		Signer:     app.signer,
		Store:      app.db,
		Issuer:     app.cfg.Issuer,
		AccessTTL:  app.cfg.AccessTTL,
		RefreshTTL: app.cfg.RefreshTTL,
	}

	dispatcher := app.initMail()

	app.signupService = &service.SignupService{Store: app.db, Mail: dispatcher}
	app.verificationService = &service.VerificationService{Store: app.db}
	app.anonymousService = &service.AnonymousService{Store: app.db}
	app.resetService = &service.ResetService{Store: app.db, Mail: dispatcher}

	var engine *mediasign.Engine
	if app.cfg.MediaSigningSecret != "" {
		var err error
		engine, err = mediasign.New(app.cfg.MediaSigningSecret)
		if err != nil {
			return fmt.Errorf("failed to initialize media signing: %w", err)
		}
	} else {
		app.logger.Warn("media signing secret unset; serving unsigned local media URLs")
	}

	app.mediaService = &service.MediaService{
		Engine:      engine,
		Store:       app.db,
		AccessKeyID: app.cfg.MediaAccessKeyID,
		PublicBase:  app.cfg.MediaPublicBase,
		LocalBase:   app.cfg.MediaLocalBase,
		DefaultTTL:  app.cfg.MediaSignedURLTTL,
	}

	counter, err := app.initCounter()
	if err != nil {
		return err
	}

	app.accountService = &service.AccountService{
		Store:         app.db,
		Mail:          dispatcher,
		Limiter:       ratelimit.NewLimiter(counter),
		ContactLimit:  app.cfg.ContactLimit,
		ContactWindow: app.cfg.ContactWindow,
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)

	return nil
}

func (app *Application) initMail() mail.Dispatcher {
	smtpCfg := mail.SMTPConfig{
		Host:     app.cfg.SMTPHost,
		Port:     app.cfg.SMTPPort,
		Username: app.cfg.SMTPUsername,
		Password: app.cfg.SMTPPassword,
		From:     app.cfg.MailFrom,
		Support:  app.cfg.MailSupport,
	}
	if smtpCfg.Configured() {
		app.logger.Info("mail dispatch via smtp", "host", smtpCfg.Host)
		return mail.NewSMTPDispatcher(smtpCfg)
	}

	app.logger.Warn("smtp unconfigured; mail will be logged, not sent")
	return mail.NewLogDispatcher(app.logger)
}

func (app *Application) initCounter() (ratelimit.Counter, error) {
	if app.cfg.RedisURI == "" {
		app.logger.Warn("redis unconfigured; rate-limit counters are in-process only")
		return ratelimit.NewMemoryCounter(), nil
	}

	counter, err := ratelimit.NewRedisCounter(app.cfg.RedisURI)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	app.redisCounter = counter
	app.logger.Info("rate-limit counters backed by redis")
	return counter, nil
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.signer,
		BuildVersion,
		app.db,
		app.logger,
	)

	router.SignupService = app.signupService
	router.VerificationService = app.verificationService
	router.SessionService = app.sessionService
	router.AnonymousService = app.anonymousService
	router.ResetService = app.resetService
	router.MediaService = app.mediaService
	router.AccountService = app.accountService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-hclog"

	"github.com/coursecatalog/catalog/authenticator"
	"github.com/coursecatalog/catalog/config"
	"github.com/coursecatalog/catalog/controllers"
	"github.com/coursecatalog/catalog/cookies"
	"github.com/coursecatalog/catalog/database"
	authmiddleware "github.com/coursecatalog/catalog/middleware"
	"github.com/coursecatalog/catalog/repositories"
	"github.com/coursecatalog/catalog/services"
)

func main() {
	logger := hclog.New(&hclog.LoggerOptions{
		Name:  "catalog",
		Level: hclog.Info,
	})

	if err := run(logger); err != nil {
		logger.Error("catalog stopped", "error", err)
		os.Exit(1)
	}
}

func run(logger hclog.Logger) error {
	// Load configuration from .env and the environment
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg.Debug {
		logger.SetLevel(hclog.Debug)
	}

	// Initialize database
	db, err := database.InitializeDatabase(cfg.DatabasePath, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	// Initialize repositories and services
	repos := repositories.NewRepositories(db)
	srvs := services.NewServices(repos, services.SessionOptions{
		MaxAge:    cfg.SessionMaxAge,
		UpdateAge: cfg.SessionUpdateAge,
	}, logger)

	purged, err := srvs.Sessions.PurgeExpired(context.Background())
	if err != nil {
		return fmt.Errorf("failed to purge expired sessions: %w", err)
	}
	logger.Debug("purged expired sessions", "count", purged)

	// Initialize the SURFconext provider
	httpClient := cleanhttp.DefaultPooledClient()
	httpClient.Timeout = cfg.HTTPTimeout

	surf, err := authenticator.NewSurfConextProvider(
		oidcConfig(cfg.SurfConext, cfg.CallbackURL(authenticator.SurfConextID), httpClient),
		logger,
	)
	if err != nil {
		return fmt.Errorf("failed to initialize SURFconext provider: %w", err)
	}

	registry, err := authenticator.NewRegistry(surf)
	if err != nil {
		return fmt.Errorf("failed to register providers: %w", err)
	}
	logger.Debug("providers registered", "ids", registry.IDs())

	signer, err := cookies.NewSigner(cfg.AuthSecret, cfg.UseHTTPS)
	if err != nil {
		return fmt.Errorf("failed to initialize cookie signer: %w", err)
	}

	// Initialize controllers
	ctrl := controllers.NewControllers(srvs, controllers.AuthConfig{
		Providers: registry,
		Signer:    signer,
		BaseURL:   cfg.AppURL,
		Logger:    logger,
	})

	r := setupRouter(ctrl, registry, signer, srvs, logger)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("catalog starting", "port", cfg.Port, "url", cfg.AppURL, "database", cfg.DatabasePath)
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case sig := <-shutdown:
		logger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(ctx)
}

// oidcConfig maps the provider settings onto the authenticator configuration
func oidcConfig(pc config.ProviderConfig, callbackURL string, client *http.Client) authenticator.OIDCConfig {
	return authenticator.OIDCConfig{
		Issuer:                            pc.Issuer,
		WellKnown:                         pc.WellKnown,
		ClientID:                          pc.ClientID,
		ClientSecret:                      pc.ClientSecret,
		CallbackURL:                       callbackURL,
		AllowDangerousEmailAccountLinking: pc.AllowDangerousEmailAccountLinking,
		HTTPClient:                        client,
	}
}

// setupRouter configures all routes
func setupRouter(ctrl *controllers.Controllers, registry *authenticator.Registry, signer *cookies.Signer, srvs *services.Services, logger hclog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second)) // 60 second timeout for OIDC callbacks
	r.Use(authmiddleware.LoadSession(signer, srvs.Sessions, logger.Named("middleware")))

	signInPath := "/auth/signin/" + authenticator.SurfConextID
	if p, ok := registry.Default(); ok {
		signInPath = "/auth/signin/" + p.ID()
	}

	// PUBLIC ROUTES (no authentication required)
	r.Mount("/auth", ctrl.Auth.Handle())
	r.Get("/", ctrl.Dashboard.Index)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status": "healthy", "service": "catalog"}`)
	})

	// PROTECTED ROUTES (authentication required)
	r.Group(func(r chi.Router) {
		r.Use(authmiddleware.RequireAuth(signInPath))
		r.Get("/me", ctrl.Dashboard.Me)
	})

	return r
}

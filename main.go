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

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tripwise/config"
	"tripwise/database"
	"tripwise/handlers"
	"tripwise/metrics"
	"tripwise/middleware"
	"tripwise/services"
	"tripwise/utils"
)

func main() {
	if err := rootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:          "tripwise",
		Short:        "Travel planning backend",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), envFile)
		},
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), envFile)
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "resolve <name>...",
		Short: "Print the airport code each place name resolves to",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			resolver := services.NewAirportResolver(nil)
			for _, name := range args {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", name, resolver.Resolve(name))
			}
		},
	})
	return root
}

func serve(ctx context.Context, envFile string) error {
	cfg, err := config.Load(envFile)
	if err != nil {
		return err
	}

	logger, err := utils.NewLogger(cfg.IsProduction())
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := database.NewStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to open saved plan store", zap.String("driver", cfg.StoreDriver), zap.Error(err))
		return err
	}
	defer store.Close()

	model, backend, closeModel := newGenerator(ctx, cfg, logger)
	defer closeModel()

	timeout := cfg.HTTPTimeout()
	resolver := services.NewAirportResolver(logger)
	serp := services.NewSerpAPIClient(cfg.SerpAPIURL, cfg.SerpAPIKey, timeout, logger)

	deps := handlers.Deps{
		Itinerary:    services.NewItineraryClient(cfg.ItineraryAPIURL, resolver, timeout, logger),
		Email:        services.NewEmailClient(cfg.EmailAPIURL, timeout, logger),
		Flights:      serp,
		Store:        store,
		Sessions:     services.NewSessions(),
		Logger:       logger,
		StoreDriver:  cfg.StoreDriver,
		ModelBackend: backend,
	}
	if model != nil {
		var flights services.FlightSearcher
		if cfg.SerpAPIKey != "" {
			flights = serp
		}
		deps.Advisor = services.NewAdviceClient(model, resolver, flights, logger)
	}

	switch cfg.GinMode {
	case gin.ReleaseMode, gin.DebugMode, gin.TestMode:
		gin.SetMode(cfg.GinMode)
	default:
		if cfg.IsProduction() {
			gin.SetMode(gin.ReleaseMode)
		}
	}

	r := gin.New()
	r.Use(utils.ErrorHandler(), middleware.RequestLogger(logger))

	// Client IPs feed the rate limiter, so forwarded headers are only
	// honoured from TRUSTED_PROXIES. None trusted means RemoteAddr is used.
	if err := r.SetTrustedProxies(cfg.TrustedProxies()); err != nil {
		logger.Warn("Failed to set trusted proxies", zap.Error(err))
	}

	apiCORS := cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins(),
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", handlers.SessionHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	})
	limiter := middleware.NewRateLimiter(cfg.RateLimitPerMin)

	handlers.New(deps).Register(r,
		[]gin.HandlerFunc{apiCORS},
		[]gin.HandlerFunc{limiter.Middleware()},
		middleware.FlightSearchCORS(),
	)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Tripwise backend starting",
			zap.String("port", cfg.Port),
			zap.String("store", cfg.StoreDriver),
			zap.String("model", backend))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Failed to start server", zap.Error(err))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newGenerator picks the language model backend from LLM_PROVIDER, falling
// back to the other provider when only its key is configured. A nil
// Generator means advice and model plans are unavailable.
func newGenerator(ctx context.Context, cfg config.Config, logger *zap.Logger) (services.Generator, string, func()) {
	noop := func() {}

	useGemini := func() (services.Generator, string, func()) {
		model := cfg.GeminiModel
		if model == "" {
			model = services.DefaultGeminiModel
		}
		client, err := services.NewGeminiClient(ctx, cfg.GeminiAPIKey, model)
		if err != nil {
			logger.Error("Failed to create Gemini client", zap.Error(err))
			return nil, "none", noop
		}
		logger.Info("Using Gemini", zap.String("model", model))
		return client, "gemini", func() { _ = client.Close() }
	}
	useHF := func() (services.Generator, string, func()) {
		model := cfg.HFModel
		if model == "" {
			model = services.DefaultHFModel
		}
		logger.Info("Using HuggingFace", zap.String("model", model))
		return services.NewHuggingFaceClient(cfg.HuggingFaceAPIKey, model, cfg.HTTPTimeout()), "huggingface", noop
	}

	switch {
	case cfg.LLMProvider == "huggingface" && cfg.HuggingFaceAPIKey != "":
		return useHF()
	case cfg.GeminiAPIKey != "":
		return useGemini()
	case cfg.HuggingFaceAPIKey != "":
		return useHF()
	}
	logger.Warn("No language model key configured, advice and model plans are disabled",
		zap.String("provider", cfg.LLMProvider))
	return nil, "none", noop
}

package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/venturemap/venturemap/internal/ai"
	"github.com/venturemap/venturemap/internal/ai/gemini"
	"github.com/venturemap/venturemap/internal/api"
	"github.com/venturemap/venturemap/internal/logger"
	"github.com/venturemap/venturemap/internal/matching"
	"github.com/venturemap/venturemap/internal/secrets"
	"github.com/venturemap/venturemap/internal/store"
	"github.com/venturemap/venturemap/internal/urlqueue"
	"github.com/venturemap/venturemap/internal/webhook"
)

const (
	defaultAddress         = ":8080"
	shutdownTimeout        = 10 * time.Second
	storeAPIKeyEnv         = "VENTUREMAP_STORE_API_KEY"
	geminiAPIKeyEnv        = "GEMINI_API_KEY"
	defaultMatchLogLength  = 200
	defaultMatchMaxRetries = 2
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the venturemap HTTP API",
	Run: func(cmd *cobra.Command, _ []string) {
		serve(cmd)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("address", "a", "", "listen address, overrides server.address")
	viper.BindPFlag("server.address", serveCmd.Flags().Lookup("address"))
}

func serve(_ *cobra.Command) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting venturemap", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	if config == nil {
		logger.Fatal("config is required")
	}

	storeClient, err := buildStoreClient(config, logger)
	if err != nil {
		logger.Fatal("building store client", zap.Error(err))
	}

	matcher, err := buildAIMatcher(ctx, config.AI, logger)
	if err != nil {
		logger.Warn("AI matching disabled", zap.Error(err))
	}

	notifier := buildNotifier(config.Webhook, logger)

	weights := matching.DefaultWeights()
	if config.Matching != nil {
		weights = config.Matching.Weights
	}

	service := api.NewService(logger, storeClient, storeClient, notifier, matcher, weights)
	router := api.NewRouter(logger, service)

	address := defaultAddress
	if config.Server != nil && config.Server.Address != "" {
		address = config.Server.Address
	}

	server := &http.Server{
		Addr:              address,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("listening", zap.String("address", address))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown did not finish cleanly", zap.Error(err))
	}
}

func buildStoreClient(config *Config, logger *zap.Logger) (*store.Client, error) {
	if config.Store == nil || strings.TrimSpace(config.Store.URL) == "" {
		return nil, errors.New("store.url is required")
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "store api key",
		Value: config.Store.APIKey,
		Env:   storeAPIKeyEnv,
		File:  config.Store.APIKeyFile,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set store.api-key, store.api-key-file or %s)", err, storeAPIKeyEnv)
	}

	return store.New(logger, config.Store.URL, apiKey), nil
}

func buildAIMatcher(ctx context.Context, cfg *AIConfig, logger *zap.Logger) (ai.Matcher, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("ai matching is not enabled in the config")
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	gcfg := cfg.Gemini
	if gcfg == nil {
		gcfg = &GeminiConfig{}
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: gcfg.APIKey,
		Env:   geminiAPIKeyEnv,
		File:  gcfg.APIKeyFile,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or %s)", err, geminiAPIKeyEnv)
	}

	maxRetries := gcfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMatchMaxRetries
	}

	genLogger := logger.With(
		zap.String("provider", "gemini"),
		zap.String("model", gcfg.Model),
		zap.Int("ai_retry_attempts", maxRetries),
	)

	generator, err := gemini.NewGenerator(ctx, apiKey, gcfg.Model, maxRetries, genLogger)
	if err != nil {
		return nil, err
	}

	maxLogLength := gcfg.MaxLogLength
	if maxLogLength <= 0 {
		maxLogLength = defaultMatchLogLength
	}

	matcherLogger := logger.With(
		zap.String("provider", "gemini"),
		zap.String("model", generator.Model()),
	)

	return gemini.NewMatcher(generator, maxLogLength, matcherLogger), nil
}

func buildNotifier(cfg *WebhookConfig, logger *zap.Logger) *webhook.Notifier {
	if cfg == nil {
		logger.Warn("no webhook endpoints configured, scrape triggers disabled")
		return webhook.New(logger, nil, "", "")
	}

	endpoints := map[urlqueue.Type]string{
		urlqueue.TypeStartup: cfg.StartupURLs,
		urlqueue.TypeVC:      cfg.VCURLs,
	}

	return webhook.New(logger, endpoints, cfg.TriggeredFrom, cfg.UserID)
}

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

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mirageweb/mirage/internal/app"
	"github.com/mirageweb/mirage/internal/cache"
	"github.com/mirageweb/mirage/internal/config"
	"github.com/mirageweb/mirage/internal/llm"
	"github.com/mirageweb/mirage/internal/metrics"
	"github.com/mirageweb/mirage/internal/postprocess"
	"github.com/mirageweb/mirage/internal/server"
	"github.com/mirageweb/mirage/internal/utils"
	"github.com/mirageweb/mirage/pkg/version"
)

var (
	cfgFile string
	verbose bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "mirage",
	Short: "Serve web pages reconstructed from a model's memory",
	Long: `Mirage is an on-demand content-reconstruction proxy. A request for a URL
asks a generative backend to synthesize the page from memory, rewrites the
document so all navigation stays inside the proxy, and caches the result
on disk so repeat requests never regenerate.

No real outbound fetch is ever performed on behalf of a reconstructed page.`,
	Version: version.Short(),
	RunE:    serve,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.mirage/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	rootCmd.Flags().StringP("addr", "a", config.DefaultAddr, "Listen address")
	rootCmd.Flags().String("cache-dir", "", "Page store directory")
	rootCmd.Flags().String("backend-url", config.DefaultBackendBaseURL, "Generative backend base URL")
	rootCmd.Flags().StringP("model", "m", config.DefaultModel, "Model identifier")

	_ = viper.BindPFlag("server.addr", rootCmd.Flags().Lookup("addr"))
	_ = viper.BindPFlag("cache.directory", rootCmd.Flags().Lookup("cache-dir"))
	_ = viper.BindPFlag("backend.base_url", rootCmd.Flags().Lookup("backend-url"))
	_ = viper.BindPFlag("backend.model", rootCmd.Flags().Lookup("model"))

	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.Full())
	},
}

func serve(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logLevel := cfg.Logging.Level
	if verbose {
		logLevel = "debug"
	}
	logger := utils.NewLogger(utils.LoggerOptions{
		Level:   logLevel,
		Format:  cfg.Logging.Format,
		Verbose: verbose,
	})

	metrics.Register()

	store, err := cache.NewFileStore(cache.Options{
		Directory: cfg.Cache.Directory,
		Model:     cfg.Backend.Model,
		Logger:    logger,
	})
	if err != nil {
		return fmt.Errorf("failed to open page store: %w", err)
	}

	client, err := llm.NewClient(llm.ClientConfig{
		BaseURL:     cfg.Backend.BaseURL,
		APIKey:      cfg.Backend.APIKey,
		Model:       cfg.Backend.Model,
		MaxTokens:   cfg.Backend.MaxTokens,
		Temperature: cfg.Backend.Temperature,
	}, &http.Client{Timeout: cfg.Backend.Timeout})
	if err != nil {
		return fmt.Errorf("failed to create backend client: %w", err)
	}

	backend := llm.WithRetry(client, llm.RetryConfig{
		Enabled:         cfg.Backend.Retry.Enabled,
		MaxRetries:      cfg.Backend.Retry.MaxRetries,
		InitialInterval: cfg.Backend.Retry.InitialInterval,
		MaxInterval:     cfg.Backend.Retry.MaxInterval,
		Multiplier:      cfg.Backend.Retry.Multiplier,
	})

	generator := app.NewGenerator(app.GeneratorOptions{
		Store:   store,
		Backend: backend,
		Processor: postprocess.NewProcessor(postprocess.ProcessorOptions{
			ViewPath:        postprocess.DefaultViewPath,
			PlaceholderPath: postprocess.DefaultPlaceholderPath,
			GuardAssets:     cfg.Postprocess.GuardAssets,
		}),
		Logger: logger,
	})

	handler := server.NewHandler(generator, logger)
	router := server.NewRouter(handler, logger)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().
			Str("addr", cfg.Server.Addr).
			Str("model", cfg.Backend.Model).
			Str("store", store.Directory()).
			Msg("Starting mirage")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-sigCh:
		logger.Info().Msg("Shutting down gracefully...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(ctx)
}

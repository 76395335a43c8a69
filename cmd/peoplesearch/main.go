// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the peoplesearch CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/peoplesearch/internal/logger"
	"github.com/pdiddy/peoplesearch/internal/metrics"
	"github.com/pdiddy/peoplesearch/internal/secrets"
	"github.com/pdiddy/peoplesearch/pkg/search"
	"github.com/pdiddy/peoplesearch/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// app holds what PersistentPreRunE prepares for the subcommands.
var app struct {
	cfg     types.ClientConfig
	log     *zap.Logger
	metrics *metrics.Metrics
}

// rootCmd is the base command for the peoplesearch CLI.
var rootCmd = &cobra.Command{
	Use:   "peoplesearch",
	Short: "Search the Pipl person-search API",
	Long: `peoplesearch sends person searches to the Pipl search API and prints
what comes back: the matched person, the possible persons and their sources.

Queries come from flags or from YAML query files. Responses can be cached in
memory or Redis, and every sent search can be kept in a local SQLite history.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log, err := logger.New(cfg.Logging.Env, cfg.Logging.Level)
		if err != nil {
			return err
		}
		ctx := logger.ContextWithLogger(cmd.Context(), log)
		cmd.SetContext(ctx)

		s, err := secrets.Load(ctx, secrets.DefaultDir)
		if err != nil {
			return err
		}
		if len(s) > 0 {
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", s.Names())
		}
		if os.Getenv(search.APIKeyEnv) == "" {
			cfg.Search.APIKey = s.Or(secrets.APIKeyFile, cfg.Search.APIKey)
		}
		cfg.Cache.RedisPassword = s.Or(secrets.RedisPasswordFile, cfg.Cache.RedisPassword)

		app.cfg = cfg
		app.log = log

		if addr, _ := cmd.Flags().GetString("metrics-addr"); addr != "" {
			m, err := serveMetrics(ctx, addr)
			if err != nil {
				return err
			}
			app.metrics = m
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if app.log != nil {
			app.log.Sync()
		}
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./peoplesearch.yaml or ~/.config/peoplesearch/config.yaml)")
	pf.String("api-key", "", "search API key (default: $PIPL_API_KEY or .secrets/pipl-api-key)")
	pf.String("log-level", "", "log level: debug, info, warn, error")
	pf.String("metrics-addr", "", "serve prometheus metrics on this address, e.g. :9090")
	pf.StringP("output", "o", "table", "output format: table, json, yaml or raw")
	pf.Bool("raw", false, "print the raw response body (same as -o raw)")

	viper.BindPFlag("search.api_key", pf.Lookup("api-key"))
	viper.BindPFlag("logging.level", pf.Lookup("log-level"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("peoplesearch")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "peoplesearch"))
		}
	}

	viper.SetEnvPrefix("PEOPLESEARCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	setDefaults(types.DefaultClientConfig())

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// setDefaults registers every default so AutomaticEnv can override keys that
// appear in no config file.
func setDefaults(d types.ClientConfig) {
	viper.SetDefault("search.strict", d.Search.Strict)
	viper.SetDefault("search.api_key", "")
	viper.SetDefault("search.show_sources", "")
	viper.SetDefault("search.endpoint", "")
	viper.SetDefault("search.insecure", false)
	viper.SetDefault("http.timeout", d.HTTP.Timeout)
	viper.SetDefault("http.user_agent", d.HTTP.UserAgent)
	viper.SetDefault("http.max_retries", d.HTTP.MaxRetries)
	viper.SetDefault("http.qps", d.HTTP.QPS)
	viper.SetDefault("http.concurrency", d.HTTP.Concurrency)
	viper.SetDefault("cache.backend", string(d.Cache.Backend))
	viper.SetDefault("cache.ttl", d.Cache.TTL)
	viper.SetDefault("cache.redis_addr", "")
	viper.SetDefault("cache.redis_password", "")
	viper.SetDefault("cache.redis_db", 0)
	viper.SetDefault("history.enabled", d.History.Enabled)
	viper.SetDefault("history.path", d.History.Path)
	viper.SetDefault("logging.env", d.Logging.Env)
	viper.SetDefault("logging.level", d.Logging.Level)
}

func loadConfig() (types.ClientConfig, error) {
	cfg := types.DefaultClientConfig()
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding configuration: %w", err)
	}
	return cfg, nil
}

// serveMetrics exposes a fresh registry on addr until ctx ends.
func serveMetrics(ctx context.Context, addr string) (*metrics.Metrics, error) {
	reg := prometheus.NewRegistry()
	m, err := metrics.New(reg)
	if err != nil {
		return nil, err
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	log := logger.FromContext(ctx)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics listener stopped", zap.Error(err))
		}
	}()
	go func() {
		<-ctx.Done()
		srv.Close()
	}()
	log.Info("serving metrics", zap.String("addr", addr))
	return m, nil
}

// outputFormat resolves --output and --raw.
func outputFormat(cmd *cobra.Command) string {
	if raw, _ := cmd.Flags().GetBool("raw"); raw {
		return "raw"
	}
	f, _ := cmd.Flags().GetString("output")
	return f
}

func main() {
	ctx, cancel := signalContext()
	defer cancel()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

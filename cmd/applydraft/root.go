package main

import (
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/applydraft/applydraft/internal/ai"
	"github.com/applydraft/applydraft/internal/config"
	"github.com/applydraft/applydraft/internal/store"
)

var (
	cfgPath string
	dbPath  string
	userID  string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:          "applydraft",
	Short:        "AI drafting assistant for job applications",
	Long:         "applydraft keeps your candidate profile locally and drafts cover letters, application answers, and resume feedback through the LLM backend of your choice.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: APPLYDRAFT_CONFIG env var or ./applydraft.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "path to the local database (default: from config, or ./applydraft.db)")
	rootCmd.PersistentFlags().StringVarP(&userID, "user", "u", "default", "profile/config namespace to operate in")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// loadConfig resolves the config path and parses it.
// Priority: explicit path arg > APPLYDRAFT_CONFIG env var > "./applydraft.yaml".
// A missing file at the default path is not an error; server fallbacks
// then come from the environment alone.
func loadConfig(path string) (*config.Config, error) {
	explicit := path != ""
	if path == "" {
		if env := os.Getenv("APPLYDRAFT_CONFIG"); env != "" {
			path = env
			explicit = true
		} else {
			path = "applydraft.yaml"
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return config.Default(), nil
		}
		return nil, err
	}
	return cfg, nil
}

func setupLogger(dbg bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if dbg {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}

// app bundles the wired dependencies shared by every subcommand.
type app struct {
	cfg      *config.Config
	store    *store.SQLiteStore
	resolver *ai.Resolver
	registry *ai.Registry
	service  *ai.Service
	logger   *slog.Logger
}

func newApp() (*app, error) {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return nil, err
	}

	path := dbPath
	if path == "" {
		path = cfg.DBPath
	}
	if path == "" {
		path = "applydraft.db"
	}

	st, err := store.NewSQLiteStore(path)
	if err != nil {
		return nil, err
	}

	httpClient := &http.Client{Timeout: 60 * time.Second}
	resolver := ai.NewResolver(st, cfg.Fallbacks)
	registry := ai.NewRegistry(httpClient)

	return &app{
		cfg:      cfg,
		store:    st,
		resolver: resolver,
		registry: registry,
		service:  ai.NewService(resolver, registry, st, logger),
		logger:   logger,
	}, nil
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.logger.Warn("closing store", "error", err)
	}
}

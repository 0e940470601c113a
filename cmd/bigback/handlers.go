package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/chrislg212/bigbackliving-sub000/internal/config"
	"github.com/chrislg212/bigbackliving-sub000/internal/porter"
	"github.com/chrislg212/bigbackliving-sub000/internal/scheduler"
	"github.com/chrislg212/bigbackliving-sub000/internal/staticdata"
	"github.com/chrislg212/bigbackliving-sub000/internal/store"
	"github.com/chrislg212/bigbackliving-sub000/pkg/notify"
	"github.com/chrislg212/bigbackliving-sub000/pkg/server"
)

func loadConfig() (*config.Config, error) {
	path := cfgFile
	if path == "" {
		if _, err := os.Stat("config.yaml"); err == nil {
			path = "config.yaml"
		}
	}
	return config.Load(path)
}

func newLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Logging.Level))
	if err != nil {
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if cfg.Logging.Format == "json" {
		logger = zerolog.New(os.Stderr)
	} else {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
	return logger.Level(level).With().Timestamp().Logger()
}

func runServe(port int) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := newLogger(cfg)

	if port == 0 {
		port = cfg.Server.Port
	}

	db, err := store.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	catalog, err := staticdata.Open(context.Background(), db, cfg.StaticData.Mode, cfg.StaticData.Path)
	if err != nil {
		return fmt.Errorf("open static data: %w", err)
	}

	srv := server.New(db, catalog, logger, server.Options{
		Port:        port,
		AdminToken:  cfg.Server.AdminToken,
		CORSOrigins: cfg.Server.CORSOrigins,
		Notify:      newNotifyManager(cfg),
	})

	if refresh := cfg.StaticData.ParseRefresh(); refresh > 0 && cfg.StaticData.Mode != staticdata.ModeSnapshot {
		sched := scheduler.New(db, refresh, logger, srv.SetCatalog)
		go func() {
			if err := sched.Run(context.Background()); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error().Err(err).Msg("catalog refresh exited")
			}
		}()
	}

	return srv.ListenAndServe()
}

// newNotifyManager builds contact form notifiers from config.
func newNotifyManager(cfg *config.Config) *notify.Manager {
	var notifiers []notify.Notifier
	if cfg.Notify.SlackWebhook != "" {
		notifiers = append(notifiers, notify.NewSlack(cfg.Notify.SlackWebhook))
	}
	if cfg.Notify.DiscordWebhook != "" {
		notifiers = append(notifiers, notify.NewDiscord(cfg.Notify.DiscordWebhook))
	}
	if cfg.Notify.WebhookURL != "" {
		notifiers = append(notifiers, notify.NewWebhook(cfg.Notify.WebhookURL, cfg.Notify.WebhookSecret))
	}
	return notify.NewManager(notifiers)
}

func runExport(out string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := store.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	doc, err := porter.New(db).Export(context.Background())
	if err != nil {
		return err
	}

	w := os.Stdout
	if out != "" {
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("create %s: %w", out, err)
		}
		defer f.Close()
		w = f
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func runImport(path string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	// Accept either a bare array or an export document with a reviews field.
	raw := json.RawMessage(data)
	var doc struct {
		Reviews json.RawMessage `json:"reviews"`
	}
	if err := json.Unmarshal(data, &doc); err == nil && len(doc.Reviews) > 0 {
		raw = doc.Reviews
	}

	db, err := store.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	res, err := porter.New(db).Import(context.Background(), raw)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "imported %d, skipped %d\n", res.Imported, res.Skipped)
	for _, s := range res.Slugs {
		fmt.Fprintf(os.Stderr, "  skipped %q: %s\n", s.Slug, s.Reason)
	}
	return nil
}

func runSnapshot(out string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if out == "" {
		out = cfg.StaticData.Path
	}

	db, err := store.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	catalog, err := staticdata.Build(context.Background(), db)
	if err != nil {
		return err
	}
	if err := catalog.WriteFile(out); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "wrote %s (%d reviews, %d lists)\n", out, len(catalog.Reviews), len(catalog.Lists))
	return nil
}

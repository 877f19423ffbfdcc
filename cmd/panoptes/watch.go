package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rloyola/panoptes/internal/config"
	"github.com/rloyola/panoptes/internal/model"
	"github.com/rloyola/panoptes/internal/notify"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run periodic searches and notify about new postings",
	Long: `Loads the profile from watch.profile_file, searches every
watch.interval_hours and delivers only the postings not seen before.
Results always go to the console; Telegram and Discord are used when
their credentials are configured.`,
	Run: func(_ *cobra.Command, _ []string) {
		watch()
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func watch() {
	logg := mustLogger()
	defer logg.Sync()

	cfg, err := config.Load()
	if err != nil {
		logg.Fatal("loading configuration", zap.Error(err))
	}

	profile, err := loadProfile(cfg.Watch.ProfileFile)
	if err != nil {
		logg.Fatal("loading profile", zap.String("file", cfg.Watch.ProfileFile), zap.Error(err))
	}

	svc, cleanup := buildService(cfg, logg)
	defer cleanup()

	writers := []notify.ResultWriter{notify.NewConsolePrinter()}
	if cfg.Watch.TelegramToken != "" && cfg.Watch.TelegramChatID != "" {
		writers = append(writers, notify.NewTelegramWriter(cfg.Watch.TelegramToken, cfg.Watch.TelegramChatID))
		logg.Info("telegram notifications enabled")
	}
	if cfg.Watch.DiscordWebhook != "" {
		writers = append(writers, notify.NewDiscordWriter(cfg.Watch.DiscordWebhook))
		logg.Info("discord notifications enabled")
	}

	prefs := model.Preferences{
		Location:   cfg.Watch.Location,
		RemoteOnly: cfg.Watch.RemoteOnly,
	}

	// Postings already delivered in this process, keyed by Posting.Key.
	var mu sync.Mutex
	seen := make(map[string]bool)

	runOnce := func() {
		results, err := svc.Search(context.Background(), profile, prefs)
		if err != nil {
			logg.Error("watch search failed", zap.Error(err))
			return
		}

		mu.Lock()
		var fresh []model.ScoredPosting
		for _, r := range results {
			key := r.Key()
			if seen[key] {
				continue
			}
			seen[key] = true
			fresh = append(fresh, r)
		}
		mu.Unlock()

		if len(fresh) == 0 {
			logg.Info("no new postings")
			return
		}
		logg.Info("new postings found", zap.Int("count", len(fresh)))

		for _, w := range writers {
			if err := w.WriteJobs(fresh); err != nil {
				logg.Warn("notifier failed", zap.Error(err))
			}
		}
	}

	c := cron.New()
	if _, err := c.AddFunc(fmt.Sprintf("@every %dh", cfg.Watch.IntervalHours), runOnce); err != nil {
		logg.Fatal("scheduling watch", zap.Error(err))
	}
	c.Start()
	logg.Info("watch mode started",
		zap.Int("interval_hours", cfg.Watch.IntervalHours),
		zap.String("profile", cfg.Watch.ProfileFile),
	)

	// First run right away; the cron entry covers the rest.
	go runOnce()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logg.Info("stopping watch mode")
	<-c.Stop().Done()
}

func loadProfile(path string) (model.Profile, error) {
	var profile model.Profile

	f, err := os.Open(path)
	if err != nil {
		return profile, err
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(&profile); err != nil {
		return profile, fmt.Errorf("parsing %s: %w", path, err)
	}
	if profile.IsEmpty() {
		return profile, fmt.Errorf("%s has no title or searchKeywords", path)
	}
	return profile, nil
}

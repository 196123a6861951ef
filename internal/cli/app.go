package cli

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"clubvenue/internal/adapters/discord"
	"clubvenue/internal/adapters/scheduler"
	"clubvenue/internal/application"
	"clubvenue/internal/config"
	"clubvenue/internal/infrastructure/clock"
	"clubvenue/internal/infrastructure/database"
	"clubvenue/internal/infrastructure/i18n"
	"clubvenue/internal/infrastructure/lock"
	"clubvenue/internal/infrastructure/metrics"
	"clubvenue/internal/infrastructure/notify"
	"clubvenue/internal/infrastructure/storage"
	"clubvenue/internal/ports/output"
	"clubvenue/pkg/tz"
)

// app is the wired process: every adapter and service built from one Config.
type app struct {
	cfg        *config.Config
	pool       *pgxpool.Pool
	redis      *redis.Client
	bot        *discord.Bot
	translator *i18n.Translator
	inbox      *database.NotificationRepository
	posters    *storage.LocalPosterStore

	venues    *application.VenueService
	approvals *application.ApprovalService
	actors    *application.ActorService
	scheduler *scheduler.Scheduler
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := tz.Init(cfg.Timezone); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newApp connects the stores and builds the services. Close releases them.
func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	if cfg.MigrateOnStart {
		if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
			return nil, err
		}
	}

	pool, err := database.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	a := &app{cfg: cfg, pool: pool, translator: i18n.NewTranslator(cfg.DefaultLocale)}

	var sweepLock output.SweepLock = lock.NewLocalLock()
	if cfg.RedisURL != "" {
		if a.redis, err = lock.NewRedisClient(ctx, cfg.RedisURL); err != nil {
			a.Close()
			return nil, err
		}
		sweepLock = lock.NewRedisLock(a.redis)
		log.Println("✅ Redis connected, sweep lock is shared.")
	}

	m := metrics.New(prometheus.DefaultRegisterer)
	events := database.NewEventRepository(pool)
	venueRepo := database.NewVenueRepository(pool)
	directory := database.NewDirectory(pool)
	a.inbox = database.NewNotificationRepository(pool)
	a.posters = storage.NewLocalPosterStore(cfg.PosterDir, cfg.PosterBaseURL)
	a.venues = application.NewVenueService(venueRepo, m)
	a.actors = application.NewActorService(directory)

	var mirror output.Notifier
	if cfg.DiscordEnabled() {
		handler := discord.NewHandler(a.venues, a.translator, tz.Campus, cfg.DefaultLocale)
		if a.bot, err = discord.NewBot(cfg.DiscordToken, handler); err != nil {
			a.Close()
			return nil, err
		}
		mirror = discord.NewNotifier(a.bot.Session(), cfg.DiscordNotifyChannelID)
	}
	notifier := notify.NewFanout(a.inbox, mirror)

	a.approvals = application.NewApprovalService(application.ApprovalDeps{
		Events:     events,
		Venues:     venueRepo,
		Clubs:      directory,
		Locker:     database.NewLocker(pool),
		Selector:   a.venues,
		Posters:    a.posters,
		Notifier:   notifier,
		Translator: a.translator,
		Clock:      clock.System{},
		Metrics:    m,
		Location:   tz.Campus,
		Locale:     cfg.DefaultLocale,
	})

	sweeper := application.NewSweepService(application.SweepDeps{
		Events:      events,
		Topics:      database.NewTopicRepository(pool),
		Notifier:    notifier,
		Translator:  a.translator,
		Clock:       clock.System{},
		Metrics:     m,
		Locale:      cfg.DefaultLocale,
		ItemTimeout: cfg.SweepItemTimeout,
	})
	a.scheduler = scheduler.New(sweeper, sweepLock, cfg.SweepInterval)

	return a, nil
}

func (a *app) Close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			log.Printf("⚠️ close redis: %v", err)
		}
	}
	a.pool.Close()
}

const shutdownTimeout = 10 * time.Second

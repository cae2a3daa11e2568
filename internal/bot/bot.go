package bot

import (
	"context"
	"fmt"
	"time"

	"jobsearch/internal/bot/handlers"
	"jobsearch/internal/bot/middleware"
	"jobsearch/internal/config"
	"jobsearch/internal/search"
	"jobsearch/internal/storage/postgres"
	"jobsearch/internal/storage/redis"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const pollTimeout = 10 * time.Second

// Bot is the Telegram front end of the job search.
type Bot struct {
	bot    *tele.Bot
	deps   *handlers.Context
	logger *zap.Logger
}

func New(
	cfg *config.Config,
	store *postgres.Store,
	cache *redis.Cache,
	service *search.Service,
	logger *zap.Logger,
) (*Bot, error) {
	b, err := tele.NewBot(tele.Settings{
		Token:  cfg.TelegramToken,
		Poller: &tele.LongPoller{Timeout: pollTimeout},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	logger = logger.Named("bot")

	bot := &Bot{
		bot: b,
		deps: &handlers.Context{
			Store:  store,
			Cache:  cache,
			Search: service,
			Config: cfg,
			Logger: logger,
		},
		logger: logger,
	}

	bot.setupMiddleware(cache)
	bot.registerHandlers()

	logger.Info("bot initialized", zap.String("username", b.Me.Username))

	return bot, nil
}

func (b *Bot) setupMiddleware(cache *redis.Cache) {
	b.bot.Use(middleware.Recovery(b.logger))
	b.bot.Use(middleware.Logger(b.logger))
	b.bot.Use(middleware.RateLimit(cache, b.logger))
}

func (b *Bot) registerHandlers() {
	ctx := b.deps

	b.bot.Handle("/start", handlers.HandleStart(ctx))
	b.bot.Handle("/help", handlers.HandleHelp(ctx))
	b.bot.Handle("/search", handlers.HandleSearch(ctx))
	b.bot.Handle("/subscribe", handlers.HandleSubscribe(ctx))
	b.bot.Handle("/filters", handlers.HandleFilters(ctx))
	b.bot.Handle("/clear", handlers.HandleClear(ctx))
	b.bot.Handle("/notify", handlers.HandleNotify(ctx))

	b.bot.Handle(tele.OnText, handlers.HandleText(ctx))
	b.bot.Handle(tele.OnCallback, handlers.HandleCallback(ctx))
}

// Start polls for updates until ctx is done.
func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info("starting bot")

	go b.bot.Start()

	<-ctx.Done()

	b.logger.Info("stopping bot")
	b.bot.Stop()

	return nil
}

// Telebot exposes the underlying client for outbound notifications.
func (b *Bot) Telebot() *tele.Bot {
	return b.bot
}

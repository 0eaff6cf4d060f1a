package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/cinedexbot/cinedex/internal/bot"
	"github.com/cinedexbot/cinedex/internal/catalog"
	"github.com/cinedexbot/cinedex/internal/config"
	"github.com/cinedexbot/cinedex/internal/handlers"
	"github.com/cinedexbot/cinedex/internal/logger"
	"github.com/cinedexbot/cinedex/internal/server"
	"github.com/cinedexbot/cinedex/internal/sheets"
	"github.com/cinedexbot/cinedex/internal/version"
)

func runServe() {
	fx.New(
		fx.Provide(
			provideConfig,
			provideLogger,
			provideBotAPI,
			provideMessenger,
			provideSheetsStore,
			provideOrchestrator,
			provideServerHandler(handlers.NewPingHandler),
			provideServerHandler(provideWebhookHandler),
			provideServer,
		),
		fx.Invoke(startServer),
		fx.WithLogger(func(log *slog.Logger) fxevent.Logger {
			return &fxevent.SlogLogger{Logger: log.With(slog.String("component", "fx"))}
		}),
	).Run()
}

func provideServerHandler(fn any) any {
	return fx.Annotate(
		fn,
		fx.As(new(server.Handler)),
		fx.ResultTags(`group:"server_handlers"`),
	)
}

func provideConfig() (config.Config, error) {
	cfgPath := os.Getenv("CONFIG_PATH")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func provideLogger(cfg config.Config) *slog.Logger {
	logger.Init(cfg.Log.Level, cfg.Log.Format)
	return logger.L
}

func provideBotAPI(cfg config.Config) (*tgbotapi.BotAPI, error) {
	botAPI, err := tgbotapi.NewBotAPI(cfg.Telegram.BotToken)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}
	return botAPI, nil
}

func provideMessenger(botAPI *tgbotapi.BotAPI) bot.Messenger {
	return bot.NewTelegramMessenger(botAPI)
}

func provideSheetsStore(log *slog.Logger, cfg config.Config) (catalog.Store, error) {
	return sheets.NewClient(context.Background(), log, cfg.Sheets)
}

func provideOrchestrator(log *slog.Logger, store catalog.Store, messenger bot.Messenger) *bot.Orchestrator {
	return bot.NewOrchestrator(log, store, messenger)
}

func provideWebhookHandler(log *slog.Logger, orchestrator *bot.Orchestrator, cfg config.Config) *handlers.TelegramWebhookHandler {
	return handlers.NewTelegramWebhookHandler(log, orchestrator, cfg)
}

type serverParams struct {
	fx.In

	Handlers []server.Handler `group:"server_handlers"`
}

func provideServer(log *slog.Logger, cfg config.Config, p serverParams) *server.Server {
	return server.NewServer(log, cfg.Server.Addr, p.Handlers...)
}

func startServer(lc fx.Lifecycle, log *slog.Logger, srv *server.Server, shutdowner fx.Shutdowner) {
	fmt.Printf("Starting cinedex %s\n", version.GetInfo())
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("server failed", slog.Any("error", err))
					_ = shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if err := srv.Stop(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server stop: %w", err)
			}
			return nil
		},
	})
}

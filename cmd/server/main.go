package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bookchatai/bookchat/internal/assistant"
	"github.com/bookchatai/bookchat/internal/books"
	"github.com/bookchatai/bookchat/internal/chat"
	"github.com/bookchatai/bookchat/internal/config"
	"github.com/bookchatai/bookchat/internal/db"
	dbsqlc "github.com/bookchatai/bookchat/internal/db/sqlc"
	"github.com/bookchatai/bookchat/internal/favorites"
	"github.com/bookchatai/bookchat/internal/handlers"
	"github.com/bookchatai/bookchat/internal/logger"
	"github.com/bookchatai/bookchat/internal/server"
	"github.com/bookchatai/bookchat/internal/users"
	"github.com/bookchatai/bookchat/internal/version"
)

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

func main() {
	fx.New(
		fx.Provide(
			provideConfig,
			provideLogger,

			provideDBConn,
			provideDBQueries,

			provideBooksClient,
			provideAssistantClient,
			provideResolver,

			users.NewService,
			favorites.NewService,
			provideChatService,

			provideServerHandler(handlers.NewPingHandler),
			provideServerHandler(provideAuthHandler),
			provideServerHandler(handlers.NewUsersHandler),
			provideServerHandler(handlers.NewChatHandler),
			provideServerHandler(handlers.NewBooksHandler),

			provideServer,
		),
		fx.Invoke(
			startServer,
		),
		fx.WithLogger(func(logger *slog.Logger) fxevent.Logger {
			return &fxevent.SlogLogger{Logger: logger.With(slog.String("component", "fx"))}
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

func provideDBConn(lc fx.Lifecycle, cfg config.Config) (*pgxpool.Pool, error) {
	conn, err := db.Open(context.Background(), cfg.Postgres)
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			conn.Close()
			return nil
		},
	})
	return conn, nil
}

func provideDBQueries(conn *pgxpool.Pool) *dbsqlc.Queries {
	return dbsqlc.New(conn)
}

func provideBooksClient(log *slog.Logger, cfg config.Config) *books.Client {
	return books.NewClient(log, cfg.Books)
}

func provideAssistantClient(log *slog.Logger, cfg config.Config) *assistant.Client {
	return assistant.NewClient(log, cfg.OpenAI)
}

func provideResolver(log *slog.Logger, booksClient *books.Client, assistantClient *assistant.Client) *chat.Resolver {
	return chat.NewResolver(log, booksClient, assistantClient)
}

func provideChatService(log *slog.Logger, queries *dbsqlc.Queries, resolver *chat.Resolver) *chat.Service {
	return chat.NewService(log, queries, resolver)
}

func provideAuthHandler(log *slog.Logger, userService *users.Service, cfg config.Config) *handlers.AuthHandler {
	return handlers.NewAuthHandler(log, userService, cfg.Auth)
}

type serverParams struct {
	fx.In

	Logger         *slog.Logger
	Config         config.Config
	ServerHandlers []server.Handler `group:"server_handlers"`
}

func provideServer(params serverParams) *server.Server {
	return server.NewServer(params.Logger, params.Config, params.ServerHandlers...)
}

func startServer(
	lc fx.Lifecycle,
	logger *slog.Logger,
	srv *server.Server,
	shutdowner fx.Shutdowner,
) {
	fmt.Printf("Starting BookChat %s\n", version.GetInfo())

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.Start(); err != nil { // block until server is stopped
					logger.Error("server failed", slog.Any("error", err))
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

package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/ledgerly/ledgerly/internal/app"
	"github.com/ledgerly/ledgerly/internal/auth"
	"github.com/ledgerly/ledgerly/internal/expense"
	"github.com/ledgerly/ledgerly/internal/observability"
	"github.com/ledgerly/ledgerly/internal/platform/cache"
	"github.com/ledgerly/ledgerly/internal/platform/db"
	"github.com/ledgerly/ledgerly/internal/platform/httpx"
	"github.com/ledgerly/ledgerly/internal/salary"
	"github.com/ledgerly/ledgerly/internal/summary"
	"github.com/ledgerly/ledgerly/internal/todo"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)
	httpx.SetDevMode(!cfg.IsProduction())

	dbpool, err := db.Connect(ctx, cfg.PGDSN, cfg.PGConnectRetry, logger)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	if err := db.Migrate(cfg.PGDSN); err != nil {
		logger.Error("run migrations", slog.Any("error", err))
		os.Exit(1)
	}

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis unavailable, summaries are uncached", slog.Any("error", err))
		redisClient = nil
	}
	defer func() {
		if redisClient != nil {
			if err := redisClient.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}
	}()

	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL)
	requireAuth := auth.RequireAuth(tokens)

	authRepo := auth.NewRepository(dbpool)
	authService := auth.NewService(authRepo, tokens)
	authHandler := auth.NewHandler(logger, authService, requireAuth)

	summaryCache := summary.NewCache(redisClient, cfg.SummaryCacheTTL)

	expenseRepo := expense.NewRepository(dbpool)
	expenseService := expense.NewService(expenseRepo, summaryCache, logger)
	expenseHandler := expense.NewHandler(logger, expenseService, requireAuth)

	salaryRepo := salary.NewRepository(dbpool)
	salaryService := salary.NewService(salaryRepo, summaryCache, logger)
	salaryHandler := salary.NewHandler(logger, salaryService, requireAuth)

	summaryService := summary.NewService(expenseService, salaryService, summaryCache)
	summaryHandler := summary.NewHandler(logger, summaryService, requireAuth)

	todoRepo := todo.NewRepository(dbpool)
	todoService := todo.NewService(todoRepo)
	todoHandler := todo.NewHandler(logger, todoService)

	metrics := observability.NewMetrics()

	router := app.NewRouter(app.RouterParams{
		Logger:         logger,
		Config:         cfg,
		AuthHandler:    authHandler,
		ExpenseHandler: expenseHandler,
		SalaryHandler:  salaryHandler,
		SummaryHandler: summaryHandler,
		TodoHandler:    todoHandler,
		Metrics:        metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}

package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	httpAdapter "github.com/walletsavior/walletsavior/internal/adapter/http"
	"github.com/walletsavior/walletsavior/internal/adapter/http/handler"
	"github.com/walletsavior/walletsavior/internal/adapter/idgen"
	"github.com/walletsavior/walletsavior/internal/adapter/repository/instrumented"
	memoryRepo "github.com/walletsavior/walletsavior/internal/adapter/repository/memory"
	postgresRepo "github.com/walletsavior/walletsavior/internal/adapter/repository/postgres"
	redisRepo "github.com/walletsavior/walletsavior/internal/adapter/repository/redis"
	sqliteRepo "github.com/walletsavior/walletsavior/internal/adapter/repository/sqlite"
	"github.com/walletsavior/walletsavior/internal/infrastructure/auth"
	"github.com/walletsavior/walletsavior/internal/infrastructure/config"
	"github.com/walletsavior/walletsavior/internal/infrastructure/metrics"
	"github.com/walletsavior/walletsavior/internal/infrastructure/postgres"
	"github.com/walletsavior/walletsavior/internal/infrastructure/redis"
	"github.com/walletsavior/walletsavior/internal/infrastructure/sqlite"
	"github.com/walletsavior/walletsavior/internal/usecase"
)

// app is the wired HTTP service and the resources it owns.
type app struct {
	handler http.Handler
	closers []func()
}

// Close releases resources in reverse order of acquisition.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// storage is the backend selected by LEDGER_BACKEND.
type storage struct {
	ledger   usecase.TransactionLedger
	accounts usecase.BankAccountRepository
	checks   []handler.HealthCheck
}

// newApp connects to the configured backends and builds the router.
func newApp(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (_ *app, err error) {
	a := &app{}
	defer func() {
		if err != nil {
			a.Close()
		}
	}()

	store, err := openStorage(ctx, cfg, logger, a)
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	accounts := store.accounts
	var idempotency usecase.IdempotencyStore

	if cfg.RedisURL != "" {
		client, err := redis.NewClient(ctx, cfg.RedisURL, cfg.DatabaseTimeout)
		if err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		a.closers = append(a.closers, func() { _ = client.Close() })
		logger.Info().Msg("connected to redis")

		idempotency = redisRepo.NewIdempotencyStore(client)
		accounts = redisRepo.NewCachedBankAccountRepository(accounts, redisRepo.NewCache(client), cfg.AccountCacheTTL)
		store.checks = append(store.checks, handler.HealthCheck{Name: "redis", Check: pingRedis(client)})
	}

	ids := idgen.NewUUIDGenerator()
	ledger := instrumented.NewLedger(store.ledger, m)

	accountUC := usecase.NewBankAccountUseCase(accounts, ids)
	transactionUC := usecase.NewTransactionUseCase(ledger, ids, accountUC)
	savingsUC := usecase.NewSavingsUseCase(ledger, accountUC, cfg.Location())

	routerCfg := httpAdapter.RouterConfig{
		BankAccountHandler: handler.NewBankAccountHandler(accountUC, m.BankAccountsCreated.Inc),
		TransactionHandler: handler.NewTransactionHandler(transactionUC),
		SavingsHandler:     handler.NewSavingsHandler(savingsUC, m.SavingsComputed.Inc),
		HealthHandler:      handler.NewHealthHandler(cfg.Environment, store.checks...),
		IdempotencyStore:   idempotency,
		IdempotencyTTL:     cfg.IdempotencyTTL,
		Logger:             logger,
		Metrics:            m,
		MetricsHandler:     promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	}

	if cfg.AuthEnabled {
		routerCfg.Authenticator = auth.NewJWTManager(cfg.JWTSecret, time.Hour)
	}

	a.handler = httpAdapter.NewRouter(routerCfg)
	return a, nil
}

func openStorage(ctx context.Context, cfg *config.Config, logger zerolog.Logger, a *app) (*storage, error) {
	switch cfg.LedgerBackend {
	case config.BackendPostgres:
		if cfg.MigrateOnStart {
			if err := postgres.RunMigrations(cfg.DatabaseURL); err != nil {
				return nil, fmt.Errorf("migrate postgres: %w", err)
			}
		}

		pool, err := postgres.NewPoolWithConfig(ctx, postgres.PoolConfig{
			DatabaseURL: cfg.DatabaseURL,
			MaxConns:    cfg.DatabaseMaxConns,
			MinConns:    cfg.DatabaseMinConns,
		})
		if err != nil {
			return nil, fmt.Errorf("connect to postgres: %w", err)
		}
		a.closers = append(a.closers, pool.Close)
		logger.Info().Msg("connected to postgres")

		retrier := postgresRepo.NewRetrier(logger)
		return &storage{
			ledger:   postgresRepo.NewLedgerRepository(pool, retrier),
			accounts: postgresRepo.NewBankAccountRepository(pool, retrier),
			checks:   []handler.HealthCheck{{Name: "postgres", Check: pool.Ping}},
		}, nil

	case config.BackendSQLite:
		if cfg.MigrateOnStart {
			if err := sqlite.RunMigrations(cfg.SQLitePath); err != nil {
				return nil, fmt.Errorf("migrate sqlite: %w", err)
			}
		}

		db, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() { _ = db.Close() })
		logger.Info().Str("path", cfg.SQLitePath).Msg("opened sqlite database")

		return &storage{
			ledger:   sqliteRepo.NewLedgerRepository(db),
			accounts: sqliteRepo.NewBankAccountRepository(db),
			checks:   []handler.HealthCheck{{Name: "sqlite", Check: pingSQL(db)}},
		}, nil

	default:
		logger.Warn().Msg("using in-memory storage; data is lost on restart")
		return &storage{
			ledger:   memoryRepo.NewLedger(),
			accounts: memoryRepo.NewBankAccountRepository(),
		}, nil
	}
}

func pingRedis(client *goredis.Client) func(context.Context) error {
	return func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	}
}

func pingSQL(db *sql.DB) func(context.Context) error {
	return db.PingContext
}

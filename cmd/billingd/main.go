package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/text/language"

	"github.com/dmitrymomot/billingkit/internal/api"
	"github.com/dmitrymomot/billingkit/pkg/billing"
	"github.com/dmitrymomot/billingkit/pkg/checkout"
	"github.com/dmitrymomot/billingkit/pkg/config"
	"github.com/dmitrymomot/billingkit/pkg/httpserver"
	"github.com/dmitrymomot/billingkit/pkg/ledger"
	"github.com/dmitrymomot/billingkit/pkg/logger"
	"github.com/dmitrymomot/billingkit/pkg/payment"
	"github.com/dmitrymomot/billingkit/pkg/pg"
	"github.com/dmitrymomot/billingkit/pkg/promo"
	"github.com/dmitrymomot/billingkit/pkg/ratelimiter"
	"github.com/dmitrymomot/billingkit/pkg/redis"
	"github.com/dmitrymomot/billingkit/pkg/requestid"
)

const (
	serviceName        = "billingd"
	limitSweepInterval = 10 * time.Minute
)

type appConfig struct {
	Env          string        `env:"APP_ENV" envDefault:"development"`
	RedisEnabled bool          `env:"REDIS_ENABLED" envDefault:"false"` // shared guards and promo counters
	GuardTTL     time.Duration `env:"CHECKOUT_GUARD_TTL" envDefault:"1m"`
	UPIPayeeVPA  string        `env:"UPI_PAYEE_VPA"`
	UPIPayeeName string        `env:"UPI_PAYEE_NAME"`
	CORSOrigins  []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
}

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		app        appConfig
		billingCfg billing.Config
		paymentCfg payment.Config
		ledgerCfg  ledger.Config
		promoCfg   promo.Config
		httpCfg    httpserver.Config
		limitCfg   ratelimiter.Config
	)
	for _, load := range []func() error{
		func() error { return config.Load(&app) },
		func() error { return config.Load(&billingCfg) },
		func() error { return config.Load(&paymentCfg) },
		func() error { return config.Load(&ledgerCfg) },
		func() error { return config.Load(&promoCfg) },
		func() error { return config.Load(&httpCfg) },
		func() error { return config.Load(&limitCfg) },
	} {
		if err := load(); err != nil {
			return err
		}
	}

	log := logger.New(
		logger.WithEnvironment(app.Env, serviceName),
		logger.WithContextExtractors(requestid.LoggerExtractor(), logger.SessionExtractor()),
	)
	logger.SetAsDefault(log)

	var stopHooks []httpserver.Option
	checks := map[string]httpserver.Check{}

	var redisClient *goredis.Client
	if app.RedisEnabled || ledgerCfg.Driver == ledger.DriverRedis {
		var redisCfg redis.Config
		if err := config.Load(&redisCfg); err != nil {
			return err
		}
		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			return err
		}
		redisClient = client
		checks["redis"] = redis.Healthcheck(client)
		stopHooks = append(stopHooks, httpserver.WithStopHook(func(context.Context) { _ = client.Close() }))
	}

	var pool *pgxpool.Pool
	if ledgerCfg.Driver == ledger.DriverPostgres {
		var pgCfg pg.Config
		if err := config.Load(&pgCfg); err != nil {
			return err
		}
		p, err := pg.Connect(ctx, pgCfg)
		if err != nil {
			return err
		}
		if err := ledger.Migrate(ctx, p, pgCfg.MigrationsTable, log); err != nil {
			p.Close()
			return err
		}
		pool = p
		checks["postgres"] = pg.Healthcheck(p)
		stopHooks = append(stopHooks, httpserver.WithStopHook(func(context.Context) { p.Close() }))
	}

	store, err := newLedgerStore(ledgerCfg, redisClient, pool)
	if err != nil {
		return err
	}

	factory, err := billing.NewFactoryFromConfig(ctx, billingCfg)
	if err != nil {
		return err
	}
	formatter, err := newFormatter(billingCfg.Locale, factory.Currency())
	if err != nil {
		return err
	}

	linker, err := ledger.NewInvoiceLinkerFromConfig(ctx, ledgerCfg)
	if err != nil {
		return err
	}
	builder := ledger.NewBuilder(ledger.WithClock(factory.Clock()), ledger.WithInvoiceLinker(linker))

	processor, err := payment.NewSimulatorFromConfig(paymentCfg, log)
	if err != nil {
		return err
	}

	catalog, err := promo.NewCatalogFromConfig(ctx, promoCfg)
	if err != nil {
		return err
	}
	promoOpts := []promo.Option{promo.WithLogger(log), promo.WithClock(factory.Clock())}
	guard := checkout.NewMemoryGuard()
	var limitStore ratelimiter.Store
	if redisClient != nil {
		limitStore = ratelimiter.NewRedisStore(redisClient, "")
		promoOpts = append(promoOpts, promo.WithRedemptions(promo.NewRedisRedemptions(redisClient, promoCfg.RedisKeyPrefix)))
		guard = checkout.NewRedisGuard(redisClient, app.GuardTTL)
	} else {
		mem := ratelimiter.NewMemoryStore()
		go sweepLimits(ctx, mem, limitSweepInterval)
		limitStore = mem
	}
	promos := promo.NewValidator(catalog, promoOpts...)

	limiter, err := ratelimiter.NewBucket(limitStore, limitCfg)
	if err != nil {
		return err
	}

	svc := checkout.New(factory, processor, builder, store,
		checkout.WithGuard(guard),
		checkout.WithPromoValidator(promos),
		checkout.WithPaymentTimeout(paymentCfg.Timeout),
		checkout.WithFormatter(formatter),
		checkout.WithLogger(log),
	)

	handler := api.New(svc, api.NewMemoryUsers(),
		api.WithLogger(log),
		api.WithPromoValidator(promos),
		api.WithUPIPayee(app.UPIPayeeVPA, app.UPIPayeeName),
		api.WithReadinessChecks(checks),
		api.WithAllowedOrigins(app.CORSOrigins...),
		api.WithRateLimiter(limiter),
	)

	log.InfoContext(ctx, "billingd starting",
		slog.String("ledger_driver", ledgerCfg.Driver),
		slog.Bool("redis", redisClient != nil),
		slog.String("currency", factory.Currency()),
	)

	srv := httpserver.NewFromConfig(httpCfg, append(stopHooks, httpserver.WithLogger(log))...)
	return srv.Run(ctx, handler.Router())
}

// sweepLimits drops idle in-memory rate limit buckets until ctx ends.
func sweepLimits(ctx context.Context, store *ratelimiter.MemoryStore, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			store.Sweep(every)
		}
	}
}

func newLedgerStore(cfg ledger.Config, client goredis.UniversalClient, pool *pgxpool.Pool) (ledger.Store, error) {
	switch cfg.Driver {
	case ledger.DriverMemory:
		return ledger.NewMemoryStore(), nil
	case ledger.DriverRedis:
		return ledger.NewRedisStore(client, cfg.RedisKeyPrefix), nil
	case ledger.DriverPostgres:
		return ledger.NewPostgresStore(pool), nil
	default:
		return nil, errors.Join(ledger.ErrUnknownDriver, fmt.Errorf("driver %q", cfg.Driver))
	}
}

func newFormatter(locale, currency string) (*billing.Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("billing locale %q: %w", locale, err)
	}
	return billing.NewFormatter(tag, currency)
}

package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"os"
	"runtime"
	"strconv"
	"time"

	"bazaar/internal/auth"
	"bazaar/internal/cache"
	"bazaar/internal/db"
	"bazaar/internal/domain/orders"
	"bazaar/internal/domain/pushtokens"
	"bazaar/internal/domain/storage"
	"bazaar/internal/engine"
	"bazaar/internal/mailer"
	"bazaar/internal/memstore"
	"bazaar/internal/metrics"
	"bazaar/internal/notify"
	"bazaar/internal/ratelimiter"

	"github.com/9ssi7/exponent"
	"github.com/joho/godotenv"
	"github.com/nats-io/nats.go"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger creates a new zap logger with color.
func NewLogger() (*zap.SugaredLogger, error) {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder

	consoleEncoder := zapcore.NewConsoleEncoder(encoderCfg)

	level := zapcore.InfoLevel
	if lvl, ok := os.LookupEnv("LOG_LEVEL"); ok {
		if err := level.Set(lvl); err != nil {
			return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", lvl, err)
		}
	}

	core := zapcore.NewCore(consoleEncoder, zapcore.AddSync(os.Stdout), level)
	return zap.New(core).Sugar(), nil
}

func envOr(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		fmt.Printf("Invalid %s, defaulting to %d\n", key, def)
	}
	return def
}

func envBool(key string, def bool) bool {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
		fmt.Printf("Invalid %s, defaulting to %t\n", key, def)
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		fmt.Printf("Invalid %s, defaulting to %s\n", key, def)
	}
	return def
}

func loadConfig() config {
	return config{
		addr:    envOr("ADDR", ":8080"),
		env:     envOr("ENV", "development"),
		apiURL:  envOr("EXTERNAL_URL", "localhost:8080"),
		storage: envOr("STORAGE", "postgres"),
		db: dbConfig{
			addr:         os.Getenv("DB_ADDR"),
			maxOpenConns: envInt("DB_MAX_OPEN_CONNS", 30),
			maxIdleTime:  envOr("DB_MAX_IDLE_TIME", "15m"),
		},
		auth: authConfig{
			basic: basicConfig{
				user: os.Getenv("AUTH_BASIC_USER"),
				pass: os.Getenv("AUTH_BASIC_PASS"),
			},
			token: tokenConfig{
				secret:        os.Getenv("AUTH_TOKEN_SECRET"),
				refreshSecret: os.Getenv("AUTH_TOKEN_REFRESH_SECRET"),
				aud:           "bazaar",
				iss:           "bazaar-api",
			},
		},
		engine: engineConfig{
			opTimeout:       envDuration("ENGINE_OP_TIMEOUT", engine.DefaultOpTimeout),
			bulkConcurrency: envInt("ENGINE_BULK_CONCURRENCY", engine.DefaultBulkConcurrency),
			notifyTimeout:   envDuration("NOTIFY_TIMEOUT", 10*time.Second),
			orderSalt:       envOr("ORDER_NUMBER_SALT", "bazaar"),
			orderPrefix:     envOr("ORDER_NUMBER_PREFIX", "BZ"),
		},
		redis: redisConfig{
			addr:     os.Getenv("REDIS_ADDR"),
			password: os.Getenv("REDIS_PASSWORD"),
			db:       envInt("REDIS_DB", 0),
			cacheTTL: envDuration("LISTING_CACHE_TTL", 5*time.Minute),
		},
		events: eventsConfig{
			natsURL:       os.Getenv("NATS_URL"),
			natsPrefix:    envOr("NATS_SUBJECT_PREFIX", "bazaar"),
			amqpURL:       os.Getenv("AMQP_URL"),
			amqpExchange:  envOr("AMQP_EXCHANGE", "bazaar.events"),
			expoEnabled:   envBool("EXPO_PUSH_ENABLED", false),
			expoToken:     os.Getenv("EXPO_ACCESS_TOKEN"),
			pushTokenTTL:  envDuration("PUSH_TOKEN_TTL", 70*24*time.Hour),
			pruneInterval: envDuration("PUSH_TOKEN_PRUNE_INTERVAL", 24*time.Hour),
		},
		mail: mailConfig{
			host:      os.Getenv("SMTP_HOST"),
			port:      envInt("SMTP_PORT", 587),
			username:  os.Getenv("SMTP_USERNAME"),
			password:  os.Getenv("SMTP_PASSWORD"),
			fromEmail: envOr("SMTP_FROM_EMAIL", "noreply@bazaar.local"),
		},
		rateLimiter: ratelimiter.Config{
			RequestsPerTimeFrame: envInt("RATELIMITER_REQUESTS_COUNT", 200),
			TimeFrame:            envDuration("RATELIMITER_TIME_FRAME", 5*time.Second),
			Enabled:              envBool("RATE_LIMITER_ENABLED", false),
		},
	}
}

var version = "0.3.0"

//	@title			Bazaar API
//	@description	Listing moderation, carts, checkout and order fulfilment for a multi-seller marketplace.

//	@contact.name	API Support
//	@contact.url	http://www.swagger.io/support
//	@contact.email	support@swagger.io

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

//	@BasePath					/v1
//	@securityDefinitions.apikey	ApiKeyAuth
//	@in							header
//	@name						Authorization
//	@description

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}
	cfg := loadConfig()

	logger, err := NewLogger()
	if err != nil {
		log.Fatalf("Error creating logger: %v", err)
	}
	defer logger.Sync()

	if cfg.auth.token.secret == "" || cfg.auth.token.refreshSecret == "" {
		logger.Fatal("AUTH_TOKEN_SECRET and AUTH_TOKEN_REFRESH_SECRET must be set")
	}

	ctx := context.Background()
	var notifiers notify.Multi

	var store storage.Store
	var tokens pushtokens.Store
	switch cfg.storage {
	case "memory":
		store = memstore.New()
		logger.Warn("using in-memory storage, data is lost on restart")
	case "postgres":
		pool, err := db.New(ctx, cfg.db.addr, int32(cfg.db.maxOpenConns), cfg.db.maxIdleTime)
		if err != nil {
			logger.Fatal(err)
		}
		defer pool.Close()
		logger.Info("database connection pool established")

		store = storage.NewContainer(pool)
		tokens = pushtokens.NewRepository(pool)

		expvar.Publish("database", expvar.Func(func() any {
			return pool.Stat().TotalConns()
		}))
	default:
		logger.Fatalf("unknown STORAGE %q", cfg.storage)
	}

	if cfg.events.expoEnabled && tokens != nil {
		client := exponent.NewClient(exponent.WithAccessToken(cfg.events.expoToken))
		notifiers = append(notifiers, notify.NewExpo(client, tokens))
		logger.Info("expo push notifications enabled")
	}

	if cfg.events.natsURL != "" {
		nc, err := nats.Connect(cfg.events.natsURL, nats.Name("bazaar-api"))
		if err != nil {
			logger.Fatal(err)
		}
		n := notify.NewNATS(nc, cfg.events.natsPrefix)
		defer n.Close()
		notifiers = append(notifiers, n)
		logger.Infow("publishing events to nats", "url", cfg.events.natsURL)
	}

	if cfg.events.amqpURL != "" {
		conn, err := amqp.Dial(cfg.events.amqpURL)
		if err != nil {
			logger.Fatal(err)
		}
		defer conn.Close()
		q, err := notify.NewAMQP(conn, cfg.events.amqpExchange)
		if err != nil {
			logger.Fatal(err)
		}
		defer q.Close()
		notifiers = append(notifiers, q)
		logger.Infow("publishing events to amqp", "exchange", cfg.events.amqpExchange)
	}

	if cfg.mail.host != "" {
		smtp, err := mailer.NewSMTPMailer(mailer.SMTPConfig{
			Host:      cfg.mail.host,
			Port:      cfg.mail.port,
			Username:  cfg.mail.username,
			Password:  cfg.mail.password,
			FromEmail: cfg.mail.fromEmail,
		})
		if err != nil {
			logger.Fatal(err)
		}
		notifiers = append(notifiers, notify.NewMail(smtp, engine.NewDirectory(store)))
		logger.Infow("email notifications enabled", "smtp_host", cfg.mail.host)
	}

	async := notify.NewAsync(notifiers, logger, cfg.engine.notifyTimeout)
	defer async.Wait()

	numbers, err := orders.NewNumberGenerator(cfg.engine.orderSalt, cfg.engine.orderPrefix)
	if err != nil {
		logger.Fatal(err)
	}

	m := metrics.New("bazaar")
	opts := []engine.Option{
		engine.WithNotifier(async),
		engine.WithObserver(m),
		engine.WithOpTimeout(cfg.engine.opTimeout),
		engine.WithBulkConcurrency(cfg.engine.bulkConcurrency),
	}

	var limiter ratelimiter.Limiter
	if cfg.redis.addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.redis.addr,
			Password: cfg.redis.password,
			DB:       cfg.redis.db,
		})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Fatal(err)
		}
		opts = append(opts, engine.WithListingCache(cache.NewListings(rdb, cfg.redis.cacheTTL)))
		limiter = ratelimiter.NewTokenBucket(rdb, ratelimiter.TokenBucketConfig{
			Prefix:         "bazaar:ratelimit",
			Capacity:       cfg.rateLimiter.RequestsPerTimeFrame,
			RefillTokens:   cfg.rateLimiter.RequestsPerTimeFrame,
			RefillInterval: cfg.rateLimiter.TimeFrame,
		})
		logger.Infow("redis connected", "addr", cfg.redis.addr)
	} else {
		fw := ratelimiter.NewFixedWindowLimiter(cfg.rateLimiter.RequestsPerTimeFrame, cfg.rateLimiter.TimeFrame)
		defer fw.Close()
		limiter = fw
	}

	app := &application{
		config:        cfg,
		logger:        logger,
		engine:        engine.New(store, numbers, logger, opts...),
		pushTokens:    tokens,
		authenticator: auth.NewJWTAuthenticator(cfg.auth.token.secret, cfg.auth.token.refreshSecret, cfg.auth.token.aud, cfg.auth.token.iss),
		rateLimiter:   limiter,
		metrics:       m,
	}

	//Metrics collected http://localhost:8080/v1/debug/vars
	expvar.NewString("version").Set(version)
	expvar.Publish("goroutines", expvar.Func(func() any {
		return runtime.NumGoroutine()
	}))

	if tokens != nil {
		stop := app.prunePushTokensEvery(cfg.events.pruneInterval, cfg.events.pushTokenTTL)
		defer stop()
	}

	mux := app.mount()

	if err := app.run(mux); err != nil {
		logger.Error(err)
	}
}

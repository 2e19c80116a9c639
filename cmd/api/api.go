package main

import (
	"context"
	"errors"
	"expvar"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bazaar/docs" //this is required to generate swagger docs
	"bazaar/internal/auth"
	"bazaar/internal/domain/pushtokens"
	"bazaar/internal/engine"
	"bazaar/internal/metrics"
	"bazaar/internal/ratelimiter"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
)

type application struct {
	config        config
	logger        *zap.SugaredLogger
	engine        *engine.Service
	pushTokens    pushtokens.Store
	authenticator auth.Authenticator
	rateLimiter   ratelimiter.Limiter
	metrics       *metrics.Engine
}

type config struct {
	addr        string
	env         string
	apiURL      string
	storage     string
	db          dbConfig
	auth        authConfig
	engine      engineConfig
	redis       redisConfig
	events      eventsConfig
	mail        mailConfig
	rateLimiter ratelimiter.Config
}

type authConfig struct {
	basic basicConfig
	token tokenConfig
}

type tokenConfig struct {
	secret        string
	refreshSecret string
	aud           string
	iss           string
}

type basicConfig struct {
	user string
	pass string
}

type dbConfig struct {
	addr         string
	maxOpenConns int
	maxIdleTime  string
}

type engineConfig struct {
	opTimeout       time.Duration
	bulkConcurrency int
	notifyTimeout   time.Duration
	orderSalt       string
	orderPrefix     string
}

type redisConfig struct {
	addr     string
	password string
	db       int
	cacheTTL time.Duration
}

type eventsConfig struct {
	natsURL       string
	natsPrefix    string
	amqpURL       string
	amqpExchange  string
	expoEnabled   bool
	expoToken     string
	pushTokenTTL  time.Duration
	pruneInterval time.Duration
}

type mailConfig struct {
	host      string
	port      int
	username  string
	password  string
	fromEmail string
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	if app.config.rateLimiter.Enabled {
		r.Use(app.RateLimiterMiddleware)
	}

	//Set a timeout value on the request context (ctx), that will signal through ctx.Done() that the request has timed out and further processing should be stopped
	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/v1", func(r chi.Router) {
		r.With(app.BasicAuthMiddleware()).Get("/health", app.healthCheckHandler)
		r.With(app.BasicAuthMiddleware()).Get("/debug/vars", expvar.Handler().ServeHTTP)
		if app.metrics != nil {
			r.With(app.BasicAuthMiddleware()).Handle("/metrics", app.metrics.Handler())
		}

		docsURL := fmt.Sprintf("%s/swagger/doc.json", app.config.addr)
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL(docsURL)))

		// Public routes
		r.Route("/authentication", func(r chi.Router) {
			r.Post("/user", app.registerUserHandler)
			r.Post("/token", app.createTokenHandler)
			r.Post("/refresh", app.refreshTokenHandler)
		})

		r.Route("/listings", func(r chi.Router) {
			r.With(app.OptionalAuthMiddleware).Get("/", app.listListingsHandler)
			r.With(app.OptionalAuthMiddleware).Get("/{listingID}", app.getListingHandler)

			r.Group(func(r chi.Router) {
				r.Use(app.AuthTokenMiddleware)
				r.Post("/", app.createListingHandler)
				r.Patch("/{listingID}", app.updateListingHandler)
				r.Delete("/{listingID}", app.deleteListingHandler)
			})
		})

		r.Route("/cart", func(r chi.Router) {
			r.Use(app.AuthTokenMiddleware)
			r.Get("/", app.getCartHandler)
			r.Post("/items", app.addCartItemHandler)
			r.Patch("/items/{itemID}", app.updateCartItemHandler)
			r.Delete("/items/{itemID}", app.removeCartItemHandler)
			r.Post("/checkout", app.checkoutHandler)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Use(app.AuthTokenMiddleware)
			r.Get("/", app.listOrdersHandler)
			r.Get("/{orderID}", app.getOrderHandler)
			r.Patch("/{orderID}/status", app.updateOrderStatusHandler)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(app.AuthTokenMiddleware)
			r.Post("/listings/{listingID}/moderation", app.moderateListingHandler)
			r.Get("/listings/moderation-log", app.moderationLogHandler)

			r.Get("/users", app.listUsersHandler)
			r.Put("/users/{userID}/ban", app.banUserHandler)
			r.Put("/users/{userID}/unban", app.unbanUserHandler)
			r.Delete("/users/{userID}", app.deleteUserHandler)

			r.Post("/bulk", app.bulkActionHandler)

			if app.pushTokens != nil {
				r.Post("/push-tokens/bulk-remove", app.bulkRemoveTokensHandler)
				r.Post("/push-tokens/prune", app.pruneStaleTokensHandler)
			}
		})

		if app.pushTokens != nil {
			r.Route("/users/push-tokens", func(r chi.Router) {
				r.Use(app.AuthTokenMiddleware)
				r.Post("/", app.savePushTokenHandler)
				r.Delete("/", app.removePushTokenHandler)
			})

		}
	})
	return r
}

func (app *application) run(mux http.Handler) error {
	// Docs
	docs.SwaggerInfo.Version = version
	docs.SwaggerInfo.Host = app.config.apiURL
	docs.SwaggerInfo.BasePath = "/v1"

	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	// Implementing graceful shutdown
	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Infow("server has started", "addr", app.config.addr, "env", app.config.env, "storage", app.config.storage)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Infow("server has stopped", "addr", app.config.addr, "env", app.config.env)

	return nil
}

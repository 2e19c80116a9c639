package main

import (
	"context"
	"encoding/base64"
	"fmt"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"

	"bazaar/internal/apperr"
	"bazaar/internal/domain/rolegate"
)

type actorKey string

const actorCtx actorKey = "actor"

func (app *application) BasicAuthMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// read the auth header
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				app.unauthorizedBasicErrorResponse(w, r, fmt.Errorf("authorization header is missing"))
				return
			}

			// parse it -> get the base64
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Basic" {
				app.unauthorizedBasicErrorResponse(w, r, fmt.Errorf("authorization header is malformed"))
				return
			}

			decoded, err := base64.StdEncoding.DecodeString(parts[1])
			if err != nil {
				app.unauthorizedBasicErrorResponse(w, r, err)
				return
			}

			username := app.config.auth.basic.user
			pass := app.config.auth.basic.pass

			creds := strings.SplitN(string(decoded), ":", 2)
			if username == "" || len(creds) != 2 || creds[0] != username || creds[1] != pass {
				app.unauthorizedBasicErrorResponse(w, r, fmt.Errorf("invalid credentials"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (app *application) AuthTokenMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			app.unauthorizedErrorResponse(w, r, fmt.Errorf("authorization header is missing"))
			return
		}
		app.serveAs(w, r, next)
	})
}

// OptionalAuthMiddleware lets anonymous requests through as the zero Actor,
// which only ever sees public data.
func (app *application) OptionalAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			next.ServeHTTP(w, r)
			return
		}
		app.serveAs(w, r, next)
	})
}

// serveAs resolves the bearer token into an Actor. The token's role claim is
// not trusted on its own: the user is reloaded so that a ban takes effect
// immediately.
func (app *application) serveAs(w http.ResponseWriter, r *http.Request, next http.Handler) {
	parts := strings.Split(r.Header.Get("Authorization"), " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		app.unauthorizedErrorResponse(w, r, fmt.Errorf("authorization header is malformed"))
		return
	}

	sub, err := app.authenticator.ParseAccessToken(parts[1])
	if err != nil {
		app.unauthorizedErrorResponse(w, r, err)
		return
	}

	actor, err := app.engine.Authenticate(r.Context(), sub.UserID)
	if err != nil {
		switch apperr.KindOf(err) {
		case apperr.KindDenied, apperr.KindNotFound:
			app.unauthorizedErrorResponse(w, r, err)
		default:
			app.engineError(w, r, err)
		}
		return
	}

	ctx := context.WithValue(r.Context(), actorCtx, actor)
	next.ServeHTTP(w, r.WithContext(ctx))
}

func getActorFromContext(r *http.Request) rolegate.Actor {
	actor, _ := r.Context().Value(actorCtx).(rolegate.Actor)
	return actor
}

func (app *application) RateLimiterMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.RemoteAddr
		if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
			key = host
		}

		allow, retryAfter, err := app.rateLimiter.Allow(r.Context(), key)
		if err != nil {
			app.logger.Warnw("rate limiter unavailable", "key", key, "error", err)
			next.ServeHTTP(w, r)
			return
		}
		if !allow {
			secs := int(math.Ceil(retryAfter.Seconds()))
			app.rateLimitExceededResponse(w, r, strconv.Itoa(secs))
			return
		}

		next.ServeHTTP(w, r)
	})
}

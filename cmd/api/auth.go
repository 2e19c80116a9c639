package main

import (
	"fmt"
	"net/http"

	"bazaar/internal/apperr"
	"bazaar/internal/domain/businesses"
	"bazaar/internal/domain/rolegate"
	"bazaar/internal/domain/users"
	"bazaar/internal/engine"
)

type BusinessPayload struct {
	Name             string `json:"name" validate:"required,max=120"`
	ContactEmail     string `json:"contact_email" validate:"omitempty,email,max=255"`
	ContactPhone     string `json:"contact_phone" validate:"omitempty,max=30"`
	SubscriptionPlan string `json:"subscription_plan" validate:"omitempty,oneof=basic pro enterprise"`
}

type RegisterUserPayload struct {
	Name     string           `json:"name" validate:"required,max=100"`
	Email    string           `json:"email" validate:"required,email,max=255"`
	Password string           `json:"password" validate:"required,min=8,max=72"`
	Role     string           `json:"role" validate:"required,signup_role" example:"customer"`
	Business *BusinessPayload `json:"business,omitempty" validate:"required_if=Role business"`
}

// registerUserHandler godoc
//
//	@Summary		Registers a user
//	@Description	Signs up a customer, or a business together with its seller profile.
//	@Tags			authentication
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		RegisterUserPayload	true	"User details"
//	@Success		201		{object}	envelope{data=users.User}
//	@Failure		400		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse	"Email already registered"
//	@Failure		500		{object}	ErrorResponse
//	@Router			/authentication/user [post]
func (app *application) registerUserHandler(w http.ResponseWriter, r *http.Request) {
	var payload RegisterUserPayload
	if err := readValid(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	in := engine.RegisterInput{
		Email:    payload.Email,
		Name:     payload.Name,
		Password: payload.Password,
		Role:     rolegate.Role(payload.Role),
	}
	if payload.Business != nil && in.Role == rolegate.Business {
		plan := payload.Business.SubscriptionPlan
		if plan == "" {
			plan = "basic"
		}
		in.Business = &businesses.Business{
			Name:             payload.Business.Name,
			ContactEmail:     payload.Business.ContactEmail,
			ContactPhone:     payload.Business.ContactPhone,
			SubscriptionPlan: plan,
		}
	}

	user, err := app.engine.Register(r.Context(), in)
	if err != nil {
		app.engineError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, user); err != nil {
		app.internalServerError(w, r, err)
	}
}

type CreateUserTokenPayload struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=1,max=72"`
}

type RefreshTokenPayload struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// TokenResponse represents the structure of the tokens in the response.
type TokenResponse struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	UserID       int64         `json:"user_id"`
	Role         rolegate.Role `json:"role"`
}

func (app *application) issueTokens(w http.ResponseWriter, r *http.Request, u *users.User) {
	access, refresh, err := app.authenticator.GenerateTokens(u.ID, u.Role)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		UserID:       u.ID,
		Role:         u.Role,
	}); err != nil {
		app.internalServerError(w, r, err)
	}
}

// createTokenHandler godoc
//
//	@Summary		Login to get Token
//	@Description	Exchanges email and password for an access and a refresh token.
//	@Tags			authentication
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		CreateUserTokenPayload	true	"User credentials"
//	@Success		200		{object}	envelope{data=TokenResponse}
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Router			/authentication/token [post]
func (app *application) createTokenHandler(w http.ResponseWriter, r *http.Request) {
	var payload CreateUserTokenPayload
	if err := readValid(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	user, err := app.engine.Login(r.Context(), payload.Email, payload.Password)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindDenied {
			app.unauthorizedErrorResponse(w, r, err)
			return
		}
		app.engineError(w, r, err)
		return
	}

	app.issueTokens(w, r, user)
}

// refreshTokenHandler godoc
//
//	@Summary		Refresh tokens
//	@Description	Issues a new token pair for a valid refresh token. The user's current role and standing are re-read.
//	@Tags			authentication
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		RefreshTokenPayload	true	"Refresh token"
//	@Success		200		{object}	envelope{data=TokenResponse}
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Router			/authentication/refresh [post]
func (app *application) refreshTokenHandler(w http.ResponseWriter, r *http.Request) {
	var payload RefreshTokenPayload
	if err := readValid(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	sub, err := app.authenticator.ParseRefreshToken(payload.RefreshToken)
	if err != nil {
		app.unauthorizedErrorResponse(w, r, err)
		return
	}

	actor, err := app.engine.Authenticate(r.Context(), sub.UserID)
	if err != nil {
		app.unauthorizedErrorResponse(w, r, fmt.Errorf("refresh for user %d: %w", sub.UserID, err))
		return
	}

	app.issueTokens(w, r, &users.User{ID: actor.ID, Role: actor.Role})
}

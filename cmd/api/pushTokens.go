package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"bazaar/internal/apperr"
	"bazaar/internal/domain/rolegate"
)

// SavePushTokenRequest represents the payload for saving/updating a push token
type SavePushTokenRequest struct {
	Token      string          `json:"token" validate:"required,startswith=ExponentPushToken"`
	DeviceInfo json.RawMessage `json:"device_info,omitempty" swaggertype:"object"`
}

// RemovePushTokenRequest represents the payload for removing a push token
type RemovePushTokenRequest struct {
	Token string `json:"token" validate:"required"`
}

// savePushTokenHandler godoc
//
//	@Summary		Save or update a push notification token
//	@Description	Stores or updates the caller's Expo push token. Order and moderation events are pushed to it.
//	@Tags			notifications
//	@Accept			json
//	@Param			payload	body	SavePushTokenRequest	true	"Push token data"
//	@Success		204
//	@Failure		400	{object}	ErrorResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		500	{object}	ErrorResponse
//	@Security		ApiKeyAuth
//	@Router			/users/push-tokens [post]
func (app *application) savePushTokenHandler(w http.ResponseWriter, r *http.Request) {
	actor := getActorFromContext(r)

	var payload SavePushTokenRequest
	if err := readValid(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.pushTokens.Save(r.Context(), actor.ID, payload.Token, payload.DeviceInfo); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// removePushTokenHandler godoc
//
//	@Summary		Remove a push notification token
//	@Tags			notifications
//	@Accept			json
//	@Param			payload	body	RemovePushTokenRequest	true	"Token to remove"
//	@Success		204
//	@Failure		400	{object}	ErrorResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		500	{object}	ErrorResponse
//	@Security		ApiKeyAuth
//	@Router			/users/push-tokens [delete]
func (app *application) removePushTokenHandler(w http.ResponseWriter, r *http.Request) {
	actor := getActorFromContext(r)

	var payload RemovePushTokenRequest
	if err := readValid(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.pushTokens.Remove(r.Context(), actor.ID, payload.Token); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// BulkRemoveTokensRequest represents the payload for bulk token removal
type BulkRemoveTokensRequest struct {
	Tokens []string `json:"tokens" validate:"required,min=1,dive,required"`
}

// PruneStaleTokensRequest represents the payload for pruning stale tokens,
// e.g. {"older_than": "1680h"} for 70 days.
type PruneStaleTokensRequest struct {
	OlderThan string `json:"older_than" validate:"required"`
}

func (app *application) requireAdmin(w http.ResponseWriter, r *http.Request, action rolegate.Action) bool {
	d, err := rolegate.CanPerform(getActorFromContext(r), action, rolegate.Target{})
	if err != nil {
		app.internalServerError(w, r, err)
		return false
	}
	if !d.Allowed {
		app.engineError(w, r, apperr.New(apperr.KindDenied, string(action), string(d.Reason)))
		return false
	}
	return true
}

// bulkRemoveTokensHandler godoc
//
//	@Summary		Bulk remove push notification tokens (admin)
//	@Tags			notifications
//	@Accept			json
//	@Param			payload	body	BulkRemoveTokensRequest	true	"Tokens to remove"
//	@Success		204
//	@Failure		400	{object}	ErrorResponse
//	@Failure		403	{object}	ErrorResponse
//	@Security		ApiKeyAuth
//	@Router			/admin/push-tokens/bulk-remove [post]
func (app *application) bulkRemoveTokensHandler(w http.ResponseWriter, r *http.Request) {
	if !app.requireAdmin(w, r, rolegate.PushTokensManage) {
		return
	}

	var payload BulkRemoveTokensRequest
	if err := readValid(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.pushTokens.RemoveTokens(r.Context(), payload.Tokens); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// pruneStaleTokensHandler godoc
//
//	@Summary		Prune stale push tokens (admin)
//	@Tags			notifications
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		PruneStaleTokensRequest	true	"Age threshold"
//	@Success		200		{object}	envelope
//	@Failure		400		{object}	ErrorResponse
//	@Failure		403		{object}	ErrorResponse
//	@Security		ApiKeyAuth
//	@Router			/admin/push-tokens/prune [post]
func (app *application) pruneStaleTokensHandler(w http.ResponseWriter, r *http.Request) {
	if !app.requireAdmin(w, r, rolegate.PushTokensManage) {
		return
	}

	var payload PruneStaleTokensRequest
	if err := readValid(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	olderThan, err := time.ParseDuration(payload.OlderThan)
	if err != nil || olderThan <= 0 {
		app.badRequestResponse(w, r, fmt.Errorf("invalid older_than %q", payload.OlderThan))
		return
	}

	n, err := app.pushTokens.PruneStale(r.Context(), olderThan)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, map[string]int64{"removed": n}); err != nil {
		app.internalServerError(w, r, err)
	}
}

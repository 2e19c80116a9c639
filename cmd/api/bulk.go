package main

import (
	"net/http"

	"bazaar/internal/domain/rolegate"
)

type BulkActionPayload struct {
	Action    string  `json:"action" validate:"required" example:"listing.approve"`
	TargetIDs []int64 `json:"target_ids" validate:"required,min=1,max=500,dive,gt=0"`
}

// bulkActionHandler godoc
//
//	@Summary		Apply an action to many targets (admin)
//	@Description	Best effort: each target succeeds or fails on its own and is reported in order. Supported actions: listing.approve, listing.reject, listing.hide, listing.unhide, listing.delete, user.ban, user.unban, user.delete.
//	@Tags			admin
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		BulkActionPayload	true	"Action and targets"
//	@Success		200		{object}	envelope{data=engine.BulkResult}
//	@Failure		400		{object}	ErrorResponse	"Unknown or unsupported action"
//	@Security		ApiKeyAuth
//	@Router			/admin/bulk [post]
func (app *application) bulkActionHandler(w http.ResponseWriter, r *http.Request) {
	var payload BulkActionPayload
	if err := readValid(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	res, err := app.engine.ApplyBulk(r.Context(), getActorFromContext(r), rolegate.Action(payload.Action), payload.TargetIDs)
	if err != nil {
		app.engineError(w, r, err)
		return
	}
	if err := app.jsonResponse(w, http.StatusOK, res); err != nil {
		app.internalServerError(w, r, err)
	}
}

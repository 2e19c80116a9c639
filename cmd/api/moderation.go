package main

import (
	"net/http"

	"bazaar/internal/domain/listings"
	"bazaar/internal/params"

	"github.com/go-chi/chi/v5"
)

type ModerateListingPayload struct {
	Action string `json:"action" validate:"required,moderation_action" example:"approve"`
}

// moderateListingHandler godoc
//
//	@Summary		Moderate a listing (admin)
//	@Description	Applies approve, reject, hide, unhide or delete. Repeating an action whose state already holds succeeds with changed=false.
//	@Tags			admin
//	@Accept			json
//	@Produce		json
//	@Param			listingID	path		int						true	"Listing ID"
//	@Param			payload		body		ModerateListingPayload	true	"Moderation action"
//	@Success		200			{object}	envelope{data=engine.ModerationResult}
//	@Failure		400			{object}	ErrorResponse
//	@Failure		403			{object}	ErrorResponse
//	@Failure		404			{object}	ErrorResponse
//	@Failure		409			{object}	ErrorResponse
//	@Security		ApiKeyAuth
//	@Router			/admin/listings/{listingID}/moderation [post]
func (app *application) moderateListingHandler(w http.ResponseWriter, r *http.Request) {
	id, err := params.ParseID("listingID", chi.URLParam(r, "listingID"))
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var payload ModerateListingPayload
	if err := readValid(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	res, err := app.engine.ModerateListing(r.Context(), getActorFromContext(r), id, listings.Action(payload.Action))
	if err != nil {
		app.engineError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, res); err != nil {
		app.internalServerError(w, r, err)
	}
}

// moderationLogHandler godoc
//
//	@Summary		Moderation audit log (admin)
//	@Tags			admin
//	@Produce		json
//	@Param			listing_id	query		int	false	"Only records for this listing"
//	@Param			page		query		int	false	"Page number (default: 1)"
//	@Param			limit		query		int	false	"Items per page (default: 20, max: 100)"
//	@Success		200			{object}	envelope{data=[]listings.ModerationRecord}
//	@Failure		403			{object}	ErrorResponse
//	@Security		ApiKeyAuth
//	@Router			/admin/listings/moderation-log [get]
func (app *application) moderationLogHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	p := params.ParsePagination(q)

	var listingID int64
	if s := q.Get("listing_id"); s != "" {
		id, err := params.ParseID("listing_id", s)
		if err != nil {
			app.badRequestResponse(w, r, err)
			return
		}
		listingID = id
	}

	records, err := app.engine.ModerationLog(r.Context(), getActorFromContext(r), listingID, p.Limit, p.Offset)
	if err != nil {
		app.engineError(w, r, err)
		return
	}
	if records == nil {
		records = []listings.ModerationRecord{}
	}

	if err := app.jsonResponse(w, http.StatusOK, records); err != nil {
		app.internalServerError(w, r, err)
	}
}

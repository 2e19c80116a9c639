package main

import (
	"net/http"
	"strings"

	"bazaar/internal/domain/listings"
	"bazaar/internal/engine"
	"bazaar/internal/params"

	"github.com/go-chi/chi/v5"
)

type CreateListingPayload struct {
	SellerID    int64  `json:"seller_id,omitempty" validate:"omitempty,gt=0"`
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"max=5000"`
	PriceCents  int64  `json:"price_cents" validate:"gte=0"`
	Stock       int    `json:"stock" validate:"gte=0"`
}

type UpdateListingPayload struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,max=200"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=5000"`
	PriceCents  *int64  `json:"price_cents,omitempty" validate:"omitempty,gte=0"`
	Stock       *int    `json:"stock,omitempty" validate:"omitempty,gte=0"`
	Version     int64   `json:"version,omitempty" validate:"gte=0"`
}

type ListingListResponse struct {
	Listings   []listings.Listing `json:"listings"`
	Pagination params.Pagination  `json:"pagination"`
}

// createListingHandler godoc
//
//	@Summary		Create a listing
//	@Description	Creates a pending listing for the calling business. Admins may create on behalf of a seller_id.
//	@Tags			listings
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		CreateListingPayload	true	"Listing"
//	@Success		201		{object}	envelope{data=listings.Listing}
//	@Failure		400		{object}	ErrorResponse
//	@Failure		403		{object}	ErrorResponse
//	@Security		ApiKeyAuth
//	@Router			/listings [post]
func (app *application) createListingHandler(w http.ResponseWriter, r *http.Request) {
	var payload CreateListingPayload
	if err := readValid(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	l, err := app.engine.CreateListing(r.Context(), getActorFromContext(r), engine.CreateListingInput{
		SellerID:    payload.SellerID,
		Title:       payload.Title,
		Description: payload.Description,
		PriceCents:  payload.PriceCents,
		Stock:       payload.Stock,
	})
	if err != nil {
		app.engineError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, l); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listListingsHandler godoc
//
//	@Summary		List listings
//	@Description	Public callers see approved, visible listings. A seller filtering on itself, or an admin, sees every state.
//	@Tags			listings
//	@Produce		json
//	@Param			seller_id	query		int		false	"Seller user id"
//	@Param			status		query		string	false	"Approval status"	Enums(pending,approved,rejected)
//	@Param			page		query		int		false	"Page number (default: 1)"
//	@Param			limit		query		int		false	"Items per page (default: 20, max: 100)"
//	@Success		200			{object}	envelope{data=ListingListResponse}
//	@Failure		400			{object}	ErrorResponse
//	@Router			/listings [get]
func (app *application) listListingsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	p := params.ParsePagination(q)

	query := engine.ListingQuery{Limit: p.Limit, Offset: p.Offset}
	if s := q.Get("seller_id"); s != "" {
		id, err := params.ParseID("seller_id", s)
		if err != nil {
			app.badRequestResponse(w, r, err)
			return
		}
		query.SellerID = id
	}
	if s := strings.TrimSpace(q.Get("status")); s != "" {
		status, err := listings.ParseStatus(s)
		if err != nil {
			app.badRequestResponse(w, r, err)
			return
		}
		query.Status = status
	}

	list, err := app.engine.ListListings(r.Context(), getActorFromContext(r), query)
	if err != nil {
		app.engineError(w, r, err)
		return
	}
	if list == nil {
		list = []listings.Listing{}
	}
	p.Observe(len(list))

	if err := app.jsonResponse(w, http.StatusOK, ListingListResponse{Listings: list, Pagination: p}); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getListingHandler godoc
//
//	@Summary		Get a listing
//	@Tags			listings
//	@Produce		json
//	@Param			listingID	path		int	true	"Listing ID"
//	@Success		200			{object}	envelope{data=listings.Listing}
//	@Failure		404			{object}	ErrorResponse
//	@Router			/listings/{listingID} [get]
func (app *application) getListingHandler(w http.ResponseWriter, r *http.Request) {
	id, err := params.ParseID("listingID", chi.URLParam(r, "listingID"))
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	l, err := app.engine.GetListing(r.Context(), getActorFromContext(r), id)
	if err != nil {
		app.engineError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, l); err != nil {
		app.internalServerError(w, r, err)
	}
}

// updateListingHandler godoc
//
//	@Summary		Update a listing
//	@Description	Edits content and stock. Pass the version you read to guard against concurrent edits.
//	@Tags			listings
//	@Accept			json
//	@Produce		json
//	@Param			listingID	path		int						true	"Listing ID"
//	@Param			payload		body		UpdateListingPayload	true	"Changed fields"
//	@Success		200			{object}	envelope{data=listings.Listing}
//	@Failure		400			{object}	ErrorResponse
//	@Failure		403			{object}	ErrorResponse
//	@Failure		404			{object}	ErrorResponse
//	@Failure		409			{object}	ErrorResponse
//	@Security		ApiKeyAuth
//	@Router			/listings/{listingID} [patch]
func (app *application) updateListingHandler(w http.ResponseWriter, r *http.Request) {
	id, err := params.ParseID("listingID", chi.URLParam(r, "listingID"))
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var payload UpdateListingPayload
	if err := readValid(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	l, err := app.engine.UpdateListing(r.Context(), getActorFromContext(r), id, engine.UpdateListingInput{
		Title:       payload.Title,
		Description: payload.Description,
		PriceCents:  payload.PriceCents,
		Stock:       payload.Stock,
		Version:     payload.Version,
	})
	if err != nil {
		app.engineError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, l); err != nil {
		app.internalServerError(w, r, err)
	}
}

// deleteListingHandler godoc
//
//	@Summary		Delete own listing
//	@Tags			listings
//	@Param			listingID	path	int	true	"Listing ID"
//	@Success		204
//	@Failure		403	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Security		ApiKeyAuth
//	@Router			/listings/{listingID} [delete]
func (app *application) deleteListingHandler(w http.ResponseWriter, r *http.Request) {
	id, err := params.ParseID("listingID", chi.URLParam(r, "listingID"))
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.engine.DeleteOwnListing(r.Context(), getActorFromContext(r), id); err != nil {
		app.engineError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

package main

import (
	"errors"
	"io"
	"net/http"

	"bazaar/internal/params"

	"github.com/go-chi/chi/v5"
)

type AddCartItemPayload struct {
	ListingID int64 `json:"listing_id" validate:"required,gt=0"`
	Quantity  int   `json:"quantity" validate:"required,gte=1,lte=1000"`
}

type UpdateCartItemPayload struct {
	Quantity int `json:"quantity" validate:"required,gte=1,lte=1000"`
}

type CheckoutPayload struct {
	// SellerIDs limits checkout to these sellers' groups. Empty checks out the whole cart.
	SellerIDs []int64 `json:"seller_ids,omitempty" validate:"omitempty,dive,gt=0"`
}

// getCartHandler godoc
//
//	@Summary		View cart
//	@Description	Returns the cart grouped by seller with subtotals and a grand total.
//	@Tags			cart
//	@Produce		json
//	@Success		200	{object}	envelope{data=engine.CartView}
//	@Security		ApiKeyAuth
//	@Router			/cart [get]
func (app *application) getCartHandler(w http.ResponseWriter, r *http.Request) {
	view, err := app.engine.GetCart(r.Context(), getActorFromContext(r))
	if err != nil {
		app.engineError(w, r, err)
		return
	}
	if err := app.jsonResponse(w, http.StatusOK, view); err != nil {
		app.internalServerError(w, r, err)
	}
}

// addCartItemHandler godoc
//
//	@Summary		Add to cart
//	@Description	Adds a public listing, snapshotting its price. Adding the same listing again raises the quantity.
//	@Tags			cart
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		AddCartItemPayload	true	"Item"
//	@Success		200		{object}	envelope{data=engine.CartView}
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse	"Insufficient stock"
//	@Security		ApiKeyAuth
//	@Router			/cart/items [post]
func (app *application) addCartItemHandler(w http.ResponseWriter, r *http.Request) {
	var payload AddCartItemPayload
	if err := readValid(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	view, err := app.engine.AddCartItem(r.Context(), getActorFromContext(r), payload.ListingID, payload.Quantity)
	if err != nil {
		app.engineError(w, r, err)
		return
	}
	if err := app.jsonResponse(w, http.StatusOK, view); err != nil {
		app.internalServerError(w, r, err)
	}
}

// updateCartItemHandler godoc
//
//	@Summary		Change cart item quantity
//	@Tags			cart
//	@Accept			json
//	@Produce		json
//	@Param			itemID	path		int						true	"Cart item ID"
//	@Param			payload	body		UpdateCartItemPayload	true	"Quantity"
//	@Success		200		{object}	envelope{data=engine.CartView}
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Security		ApiKeyAuth
//	@Router			/cart/items/{itemID} [patch]
func (app *application) updateCartItemHandler(w http.ResponseWriter, r *http.Request) {
	itemID, err := params.ParseID("itemID", chi.URLParam(r, "itemID"))
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var payload UpdateCartItemPayload
	if err := readValid(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	view, err := app.engine.SetCartItemQuantity(r.Context(), getActorFromContext(r), itemID, payload.Quantity)
	if err != nil {
		app.engineError(w, r, err)
		return
	}
	if err := app.jsonResponse(w, http.StatusOK, view); err != nil {
		app.internalServerError(w, r, err)
	}
}

// removeCartItemHandler godoc
//
//	@Summary		Remove cart item
//	@Description	Idempotent: removing an item that is not in the cart succeeds.
//	@Tags			cart
//	@Produce		json
//	@Param			itemID	path		int	true	"Cart item ID"
//	@Success		200		{object}	envelope{data=engine.CartView}
//	@Security		ApiKeyAuth
//	@Router			/cart/items/{itemID} [delete]
func (app *application) removeCartItemHandler(w http.ResponseWriter, r *http.Request) {
	itemID, err := params.ParseID("itemID", chi.URLParam(r, "itemID"))
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	view, err := app.engine.RemoveCartItem(r.Context(), getActorFromContext(r), itemID)
	if err != nil {
		app.engineError(w, r, err)
		return
	}
	if err := app.jsonResponse(w, http.StatusOK, view); err != nil {
		app.internalServerError(w, r, err)
	}
}

// checkoutHandler godoc
//
//	@Summary		Checkout
//	@Description	Turns the cart into one pending order per seller. All or nothing: if any line fails nothing is reserved.
//	@Tags			cart
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		CheckoutPayload	false	"Optional seller subset"
//	@Success		201		{object}	envelope{data=engine.CheckoutResult}
//	@Failure		400		{object}	ErrorResponse	"Empty cart"
//	@Failure		404		{object}	ErrorResponse	"A listing is no longer available"
//	@Failure		409		{object}	ErrorResponse	"Insufficient stock"
//	@Security		ApiKeyAuth
//	@Router			/cart/checkout [post]
func (app *application) checkoutHandler(w http.ResponseWriter, r *http.Request) {
	var payload CheckoutPayload
	if err := readValid(w, r, &payload); err != nil && !errors.Is(err, io.EOF) {
		app.badRequestResponse(w, r, err)
		return
	}

	res, err := app.engine.Checkout(r.Context(), getActorFromContext(r), payload.SellerIDs...)
	if err != nil {
		app.engineError(w, r, err)
		return
	}
	if err := app.jsonResponse(w, http.StatusCreated, res); err != nil {
		app.internalServerError(w, r, err)
	}
}

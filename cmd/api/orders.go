package main

import (
	"net/http"
	"strings"

	"bazaar/internal/domain/orders"
	"bazaar/internal/engine"
	"bazaar/internal/params"

	"github.com/go-chi/chi/v5"
)

type UpdateOrderStatusPayload struct {
	Status          string  `json:"status" validate:"required,order_status" example:"shipped"`
	CancelledReason *string `json:"cancelled_reason,omitempty" validate:"omitempty,max=500" example:"Customer requested"`
	Version         int64   `json:"version,omitempty" validate:"gte=0"`
}

type OrderListResponse struct {
	Orders     []orders.Order    `json:"orders"`
	Pagination params.Pagination `json:"pagination"`
	Scope      engine.OrderScope `json:"scope"`
}

// listOrdersHandler godoc
//
//	@Summary		List orders
//	@Description	scope=buyer lists orders you placed, scope=seller orders placed with you, scope=all every order (admin).
//	@Tags			orders
//	@Produce		json
//	@Param			scope	query		string	false	"Whose orders"	Enums(buyer,seller,all)
//	@Param			status	query		string	false	"Filter by status"	Enums(pending,paid,shipped,delivered,cancelled)
//	@Param			page	query		int		false	"Page number (default: 1)"
//	@Param			limit	query		int		false	"Items per page (default: 20, max: 100)"
//	@Success		200		{object}	envelope{data=OrderListResponse}
//	@Failure		400		{object}	ErrorResponse
//	@Failure		403		{object}	ErrorResponse
//	@Security		ApiKeyAuth
//	@Router			/orders [get]
func (app *application) listOrdersHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	p := params.ParsePagination(q)

	query := engine.OrderQuery{
		Scope:  engine.OrderScope(strings.TrimSpace(q.Get("scope"))),
		Limit:  p.Limit,
		Offset: p.Offset,
	}
	if query.Scope == "" {
		query.Scope = engine.ScopeBuyer
	}
	if s := strings.TrimSpace(q.Get("status")); s != "" {
		status, err := orders.ParseStatus(s)
		if err != nil {
			app.badRequestResponse(w, r, err)
			return
		}
		query.Status = status
	}

	list, err := app.engine.ListOrders(r.Context(), getActorFromContext(r), query)
	if err != nil {
		app.engineError(w, r, err)
		return
	}
	if list == nil {
		list = []orders.Order{}
	}
	p.Observe(len(list))

	if err := app.jsonResponse(w, http.StatusOK, OrderListResponse{Orders: list, Pagination: p, Scope: query.Scope}); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getOrderHandler godoc
//
//	@Summary		Get order detail
//	@Description	Visible to the buyer, the seller and admins.
//	@Tags			orders
//	@Produce		json
//	@Param			orderID	path		int	true	"Order ID"
//	@Success		200		{object}	envelope{data=orders.Order}
//	@Failure		403		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Security		ApiKeyAuth
//	@Router			/orders/{orderID} [get]
func (app *application) getOrderHandler(w http.ResponseWriter, r *http.Request) {
	id, err := params.ParseID("orderID", chi.URLParam(r, "orderID"))
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	o, err := app.engine.GetOrder(r.Context(), getActorFromContext(r), id)
	if err != nil {
		app.engineError(w, r, err)
		return
	}
	if err := app.jsonResponse(w, http.StatusOK, o); err != nil {
		app.internalServerError(w, r, err)
	}
}

// updateOrderStatusHandler godoc
//
//	@Summary		Update order status
//	@Description	Sellers move their orders pending→paid→shipped→delivered, buyers cancel while pending or paid, admins may take any legal edge.
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			orderID	path		int							true	"Order ID"
//	@Param			payload	body		UpdateOrderStatusPayload	true	"Target status"
//	@Success		200		{object}	envelope{data=orders.Order}
//	@Failure		400		{object}	ErrorResponse
//	@Failure		403		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse	"Invalid transition"
//	@Security		ApiKeyAuth
//	@Router			/orders/{orderID}/status [patch]
func (app *application) updateOrderStatusHandler(w http.ResponseWriter, r *http.Request) {
	id, err := params.ParseID("orderID", chi.URLParam(r, "orderID"))
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var payload UpdateOrderStatusPayload
	if err := readValid(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	o, err := app.engine.UpdateOrderStatus(r.Context(), getActorFromContext(r), id, engine.StatusChange{
		To:      orders.Status(payload.Status),
		Reason:  payload.CancelledReason,
		Version: payload.Version,
	})
	if err != nil {
		app.engineError(w, r, err)
		return
	}
	if err := app.jsonResponse(w, http.StatusOK, o); err != nil {
		app.internalServerError(w, r, err)
	}
}

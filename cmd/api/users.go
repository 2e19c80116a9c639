package main

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"bazaar/internal/domain/rolegate"
	"bazaar/internal/domain/users"
	"bazaar/internal/engine"
	"bazaar/internal/params"

	"github.com/go-chi/chi/v5"
)

type userActionFunc func(ctx context.Context, actor rolegate.Actor, id int64) (*users.User, error)

func (app *application) userActionHandler(w http.ResponseWriter, r *http.Request, fn userActionFunc) {
	id, err := params.ParseID("userID", chi.URLParam(r, "userID"))
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	u, err := fn(r.Context(), getActorFromContext(r), id)
	if err != nil {
		app.engineError(w, r, err)
		return
	}
	if err := app.jsonResponse(w, http.StatusOK, u); err != nil {
		app.internalServerError(w, r, err)
	}
}

// banUserHandler godoc
//
//	@Summary		Ban a user (admin)
//	@Description	Idempotent. Admin accounts cannot be banned.
//	@Tags			admin
//	@Produce		json
//	@Param			userID	path		int	true	"User ID"
//	@Success		200		{object}	envelope{data=users.User}
//	@Failure		403		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Security		ApiKeyAuth
//	@Router			/admin/users/{userID}/ban [put]
func (app *application) banUserHandler(w http.ResponseWriter, r *http.Request) {
	app.userActionHandler(w, r, app.engine.BanUser)
}

// unbanUserHandler godoc
//
//	@Summary		Unban a user (admin)
//	@Tags			admin
//	@Produce		json
//	@Param			userID	path		int	true	"User ID"
//	@Success		200		{object}	envelope{data=users.User}
//	@Failure		403		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Security		ApiKeyAuth
//	@Router			/admin/users/{userID}/unban [put]
func (app *application) unbanUserHandler(w http.ResponseWriter, r *http.Request) {
	app.userActionHandler(w, r, app.engine.UnbanUser)
}

// deleteUserHandler godoc
//
//	@Summary		Delete a user (admin)
//	@Description	Tombstones the account. Repeating the delete succeeds.
//	@Tags			admin
//	@Produce		json
//	@Param			userID	path		int	true	"User ID"
//	@Success		200		{object}	envelope{data=users.User}
//	@Failure		403		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Security		ApiKeyAuth
//	@Router			/admin/users/{userID} [delete]
func (app *application) deleteUserHandler(w http.ResponseWriter, r *http.Request) {
	app.userActionHandler(w, r, app.engine.DeleteUser)
}

// listUsersHandler godoc
//
//	@Summary		List users (admin)
//	@Tags			admin
//	@Produce		json
//	@Param			role			query		string	false	"Role"	Enums(customer,business,admin)
//	@Param			active			query		bool	false	"Only active (true) or banned (false) users"
//	@Param			include_deleted	query		bool	false	"Include tombstoned users"
//	@Param			page			query		int		false	"Page number (default: 1)"
//	@Param			limit			query		int		false	"Items per page (default: 20, max: 100)"
//	@Success		200				{object}	envelope{data=[]users.User}
//	@Failure		400				{object}	ErrorResponse
//	@Failure		403				{object}	ErrorResponse
//	@Security		ApiKeyAuth
//	@Router			/admin/users [get]
func (app *application) listUsersHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	p := params.ParsePagination(q)

	query := engine.UserQuery{Limit: p.Limit, Offset: p.Offset}
	if s := strings.TrimSpace(q.Get("role")); s != "" {
		role, err := rolegate.ParseRole(s)
		if err != nil {
			app.badRequestResponse(w, r, err)
			return
		}
		query.Role = role
	}
	if s := q.Get("active"); s != "" {
		active, err := strconv.ParseBool(s)
		if err != nil {
			app.badRequestResponse(w, r, err)
			return
		}
		query.Active = &active
	}
	if s := q.Get("include_deleted"); s != "" {
		include, err := strconv.ParseBool(s)
		if err != nil {
			app.badRequestResponse(w, r, err)
			return
		}
		query.IncludeDeleted = include
	}

	list, err := app.engine.ListUsers(r.Context(), getActorFromContext(r), query)
	if err != nil {
		app.engineError(w, r, err)
		return
	}
	if list == nil {
		list = []users.User{}
	}
	if err := app.jsonResponse(w, http.StatusOK, list); err != nil {
		app.internalServerError(w, r, err)
	}
}

package main

import (
	"errors"
	"net/http"

	"bazaar/internal/apperr"
)

// ErrorResponse is the envelope every failed request gets.
//
//	@name			ErrorResponse
//	@description	Standard error response format returned by all API endpoints
type ErrorResponse struct {
	Success bool        `json:"success" example:"false"`
	Message string      `json:"message" example:"authorization-denied: not-owner"`
	Status  int         `json:"status" example:"403"`
	Kind    apperr.Kind `json:"kind,omitempty" example:"authorization-denied"`
}

var kindStatus = map[apperr.Kind]int{
	apperr.KindDenied:            http.StatusForbidden,
	apperr.KindNotFound:          http.StatusNotFound,
	apperr.KindInvalidTransition: http.StatusUnprocessableEntity,
	apperr.KindConflict:          http.StatusConflict,
	apperr.KindInsufficientStock: http.StatusConflict,
	apperr.KindTimeout:           http.StatusGatewayTimeout,
	apperr.KindInvalidInput:      http.StatusBadRequest,
	apperr.KindCancelled:         http.StatusRequestTimeout,
	apperr.KindInternal:          http.StatusInternalServerError,
}

// publicMessage is what the caller may see: the kind plus the reason the
// engine attached. Internal detail stays in the logs.
func publicMessage(err error) string {
	kind := apperr.KindOf(err)
	if kind == apperr.KindInternal {
		return "the server encountered a problem"
	}
	msg := string(kind)
	var e *apperr.Error
	if errors.As(err, &e) {
		switch {
		case e.Reason != "":
			msg += ": " + e.Reason
		case e.Err != nil && apperr.KindOf(e.Err) == apperr.KindInternal:
			msg += ": " + e.Err.Error()
		}
	}
	return msg
}

// engineError maps an engine error onto the response status for its kind.
func (app *application) engineError(w http.ResponseWriter, r *http.Request, err error) {
	kind := apperr.KindOf(err)
	status, ok := kindStatus[kind]
	if !ok {
		status = http.StatusInternalServerError
	}

	switch {
	case status >= 500:
		app.logger.Errorw("engine error", "method", r.Method, "path", r.URL.Path, "kind", kind, "error", err.Error())
	default:
		app.logger.Infow("request refused", "method", r.Method, "path", r.URL.Path, "kind", kind, "error", err.Error())
	}

	writeJSON(w, status, &ErrorResponse{
		Success: false,
		Message: publicMessage(err),
		Status:  status,
		Kind:    kind,
	})
}

func (app *application) internalServerError(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Errorw("internal error", "method", r.Method, "path", r.URL.Path, "error", err.Error())
	writeJSONError(w, http.StatusInternalServerError, "the server encountered a problem")
}

func (app *application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("bad request", "method", r.Method, "path", r.URL.Path, "error", err.Error())
	writeJSONError(w, http.StatusBadRequest, err.Error())
}

func (app *application) unauthorizedErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("unauthorized error", "method", r.Method, "path", r.URL.Path, "error", err.Error())
	writeJSONError(w, http.StatusUnauthorized, "unauthorized")
}

func (app *application) unauthorizedBasicErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("unauthorized basic error", "method", r.Method, "path", r.URL.Path, "error", err.Error())
	w.Header().Set("WWW-Authenticate", `Basic realm="restricted", charset="UTF-8"`)
	writeJSONError(w, http.StatusUnauthorized, "unauthorized")
}

func (app *application) rateLimitExceededResponse(w http.ResponseWriter, r *http.Request, retryAfter string) {
	app.logger.Warnw("rate limit exceeded", "method", r.Method, "path", r.URL.Path)
	w.Header().Set("Retry-After", retryAfter)
	writeJSONError(w, http.StatusTooManyRequests, "rate limit exceeded, retry after: "+retryAfter)
}

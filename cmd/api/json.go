package main

import (
	"encoding/json"
	"net/http"

	"bazaar/internal/domain/listings"
	"bazaar/internal/domain/orders"
	"bazaar/internal/domain/rolegate"

	"github.com/go-playground/validator/v10"
)

var Validate *validator.Validate

func init() {
	Validate = validator.New(validator.WithRequiredStructEnabled())

	Validate.RegisterValidation("order_status", func(fl validator.FieldLevel) bool {
		_, err := orders.ParseStatus(fl.Field().String())
		return err == nil
	})
	Validate.RegisterValidation("moderation_action", func(fl validator.FieldLevel) bool {
		_, err := listings.ParseAction(fl.Field().String())
		return err == nil
	})
	Validate.RegisterValidation("signup_role", func(fl validator.FieldLevel) bool {
		role := rolegate.Role(fl.Field().String())
		return role == rolegate.Customer || role == rolegate.Business
	})
}

func writeJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// it parses body into Go struct.
func readJSON(w http.ResponseWriter, r *http.Request, data any) error {
	maxBytes := 1_048_578 //1mb
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(data)
}

// readValid reads the body into data and runs the struct validator on it.
func readValid(w http.ResponseWriter, r *http.Request, data any) error {
	if err := readJSON(w, r, data); err != nil {
		return err
	}
	return Validate.Struct(data)
}

func writeJSONError(w http.ResponseWriter, status int, message string) error {
	return writeJSON(w, status, &ErrorResponse{
		Success: false,
		Message: message,
		Status:  status,
	})
}

type envelope struct {
	Data any `json:"data"`
}

func (app *application) jsonResponse(w http.ResponseWriter, status int, data any) error {
	return writeJSON(w, status, &envelope{Data: data})
}

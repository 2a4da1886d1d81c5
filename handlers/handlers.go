// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/danielhkuo/quickly-judge/auth"
	"github.com/danielhkuo/quickly-judge/judging"
	"github.com/danielhkuo/quickly-judge/middleware"
	"github.com/danielhkuo/quickly-judge/phase"
	"github.com/danielhkuo/quickly-judge/store"
)

var validate = newValidator()

// newValidator reports fields by their JSON names
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

var errWrongPhase = errors.New("not available in the current phase")

// decodeRequest parses and validates a JSON body, writing a 400 on failure
func decodeRequest(w http.ResponseWriter, r *http.Request, entity string, v any) bool {
	if err := middleware.ParseJSONBody(r, v); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return false
	}

	if err := validate.Struct(v); err != nil {
		writeError(w, &judging.ValidationError{Entity: entity, Err: err}, "validate "+entity)
		return false
	}
	return true
}

// validationMessage turns validator output into "field: rule" pairs
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s: %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		} else {
			parts = append(parts, fmt.Sprintf("%s: %s", fe.Field(), fe.Tag()))
		}
	}
	return strings.Join(parts, "; ")
}

// writeError maps domain errors to HTTP statuses. Anything unrecognised is
// logged and reported as a 500 "Failed to <action>".
func writeError(w http.ResponseWriter, err error, action string) {
	var verr *judging.ValidationError

	switch {
	case errors.As(err, &verr):
		middleware.ErrorResponse(w, http.StatusBadRequest, validationMessage(verr.Err))
	case errors.Is(err, judging.ErrSameProject),
		errors.Is(err, judging.ErrInvalidWinner),
		errors.Is(err, judging.ErrScoreOutOfRange),
		errors.Is(err, phase.ErrUnknownPhase):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, err.Error())
	case errors.Is(err, store.ErrDuplicateEmail),
		errors.Is(err, judging.ErrNotFinalist),
		errors.Is(err, errWrongPhase):
		middleware.ErrorResponse(w, http.StatusConflict, err.Error())
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrInvalidAdminKey):
		middleware.ErrorResponse(w, http.StatusUnauthorized, err.Error())
	default:
		slog.Error("failed to "+action, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to "+action)
	}
}

// judgeID returns the judge authenticated by middleware.RequireJudge
func judgeID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := middleware.JudgeIDFromContext(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Judge session required")
	}
	return id, ok
}

package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"service-lastmile/internal/apperr"
	"service-lastmile/internal/logx"
)

const (
	bodyLimit = 1 << 20
)

// Error codes returned in the "code" field.
const (
	codeInvalidInput       = "INVALID_INPUT"
	codeNotFound           = "DELIVERY_NOT_FOUND"
	codeInvalidTransition  = "INVALID_STATUS_TRANSITION"
	codeAlreadyCompleted   = "DELIVERY_ALREADY_COMPLETED"
	codeAlreadyCanceled    = "DELIVERY_ALREADY_CANCELED"
	codeAlreadyAssigned    = "DRIVER_ALREADY_ASSIGNED"
	codeAlreadyExists      = "DELIVERY_ALREADY_EXISTS"
	codeDriverNotFound     = "DRIVER_NOT_FOUND"
	codeDriverAssignFailed = "DRIVER_ASSIGN_FAILED"
	codeExternalDown       = "EXTERNAL_SERVICE_UNAVAILABLE"
	codeExternalError      = "EXTERNAL_SERVICE_ERROR"
	codeRouteNotFound      = "ROUTE_NOT_FOUND"
	codeInternal           = "INTERNAL_ERROR"
)

func reqID(ctx context.Context) string {
	if id := middleware.GetReqID(ctx); id != "" {
		return id
	}
	return "-"
}

func writeJSON(logger logx.Logger, w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		logger.Error("json encode failed",
			logx.String("req_id", reqID(r.Context())),
			logx.Err(err),
		)
	}
}

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(logger logx.Logger, w http.ResponseWriter, r *http.Request, status int, code, msg string) {
	fields := []logx.Field{
		logx.String("req_id", reqID(r.Context())),
		logx.Int("status", status),
		logx.String("code", code),
		logx.String("msg", msg),
	}
	if status >= http.StatusInternalServerError {
		logger.Error("http error", fields...)
	} else {
		logger.Debug("http error", fields...)
	}
	writeJSON(logger, w, r, status, ErrorResponse{Error: msg, Code: code})
}

// writeServiceError maps an orchestrator error to the HTTP reply.
func writeServiceError(logger logx.Logger, w http.ResponseWriter, r *http.Request, err error) {
	if kind, ok := apperr.GatewayKindOf(err); ok {
		switch kind {
		case apperr.GatewayNotFound:
			writeError(logger, w, r, http.StatusNotFound, codeDriverNotFound, "driver not found")
		case apperr.GatewayRejected:
			writeError(logger, w, r, http.StatusBadRequest, codeDriverAssignFailed, "driver assignment failed")
		case apperr.GatewayUnavailable:
			writeError(logger, w, r, http.StatusServiceUnavailable, codeExternalDown, "driver service unavailable")
		default:
			logger.Error("driver service error", logx.String("req_id", reqID(r.Context())), logx.Err(err))
			writeError(logger, w, r, http.StatusInternalServerError, codeExternalError, "driver service error")
		}
		return
	}

	switch {
	case errors.Is(err, apperr.ErrInvalid):
		writeError(logger, w, r, http.StatusBadRequest, codeInvalidInput, err.Error())
	case errors.Is(err, apperr.ErrNotFound):
		writeError(logger, w, r, http.StatusNotFound, codeNotFound, "delivery not found")
	case errors.Is(err, apperr.ErrInvalidTransition):
		writeError(logger, w, r, http.StatusBadRequest, codeInvalidTransition, err.Error())
	case errors.Is(err, apperr.ErrAlreadyCompleted):
		writeError(logger, w, r, http.StatusBadRequest, codeAlreadyCompleted, "delivery already completed")
	case errors.Is(err, apperr.ErrAlreadyCanceled):
		writeError(logger, w, r, http.StatusBadRequest, codeAlreadyCanceled, "delivery already canceled")
	case errors.Is(err, apperr.ErrAlreadyAssigned):
		writeError(logger, w, r, http.StatusBadRequest, codeAlreadyAssigned, "driver already assigned")
	case errors.Is(err, apperr.ErrAlreadyExists):
		writeError(logger, w, r, http.StatusConflict, codeAlreadyExists, "delivery already exists")
	default:
		logger.Error("unhandled service error", logx.String("req_id", reqID(r.Context())), logx.Err(err))
		writeError(logger, w, r, http.StatusInternalServerError, codeInternal, "internal error")
	}
}

func decodeJSON[T any](logger logx.Logger, w http.ResponseWriter, r *http.Request, dst *T) bool {
	r.Body = http.MaxBytesReader(w, r.Body, bodyLimit)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		writeError(logger, w, r, http.StatusBadRequest, codeInvalidInput, "invalid json")
		return false
	}
	if err := dec.Decode(new(struct{})); err != io.EOF {
		writeError(logger, w, r, http.StatusBadRequest, codeInvalidInput, "invalid json: trailing data")
		return false
	}
	return true
}

// idFromURL returns the trimmed path parameter or "" when it is blank.
func idFromURL(r *http.Request, name string) string {
	return strings.TrimSpace(chi.URLParam(r, name))
}

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package respond provides HTTP response helpers used by all API handlers.
//
// # Architecture
//
// This package centralizes the presentation logic for HTTP responses. It owns the
// only mapping from [apperr.Kind] to HTTP status, so every handler reports the
// same failure the same way.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/taibuivan/yomira-auth/internal/platform/apperr"
	"github.com/taibuivan/yomira-auth/internal/platform/constants"
	"github.com/taibuivan/yomira-auth/internal/platform/ctxutil"
)

// # Status Mapping

// statusByKind is the closed Kind -> HTTP status table.
var statusByKind = map[apperr.Kind]int{
	apperr.KindInvalidValue:    http.StatusBadRequest,
	apperr.KindDuplicateEntity: http.StatusConflict,
	apperr.KindNotFound:        http.StatusNotFound,
	apperr.KindUnauthorized:    http.StatusUnauthorized,
	apperr.KindTransientIO:     http.StatusServiceUnavailable,
	apperr.KindInternal:        http.StatusInternalServerError,
}

// Status returns the HTTP status for kind. Unknown kinds map to 500.
func Status(kind apperr.Kind) int {
	if status, ok := statusByKind[kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// # Success Responses

// JSON writes a JSON response with the given status code.
func JSON(writer http.ResponseWriter, statusCode int, payload any) {
	writer.Header().Set(constants.HeaderContentType, constants.ContentTypeJSON)
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(payload)
}

// OK writes a 200 OK response with payload as the body.
func OK(writer http.ResponseWriter, payload any) {
	JSON(writer, http.StatusOK, payload)
}

// Created writes a 201 Created response with payload as the body.
func Created(writer http.ResponseWriter, payload any) {
	JSON(writer, http.StatusCreated, payload)
}

// # Error Responses

/*
Error converts any Go error into a JSON API error response.

Description: Foreign errors become INTERNAL_ERROR. The cause of a 5xx response
is logged and never written to the client.

Parameters:
  - writer: http.ResponseWriter
  - request: *http.Request
  - err: error
*/
func Error(writer http.ResponseWriter, request *http.Request, err error) {
	logger := ctxutil.GetLogger(request.Context())

	appError := apperr.As(err)
	if appError == nil {
		logger.ErrorContext(request.Context(), "unhandled_error_swallowed", slog.String("error", err.Error()))
		appError = apperr.Internal(err)
	}

	status := Status(appError.Kind)

	// Always log 5xx errors as they indicate server-side issues.
	if status >= http.StatusInternalServerError {
		logger.ErrorContext(request.Context(), "api_server_error",
			slog.String("code", string(appError.Kind)),
			slog.Any("cause", appError.Cause),
		)
	}

	JSON(writer, status, appError)
}

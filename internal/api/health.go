// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/taibuivan/yomira-auth/internal/platform/constants"
	"github.com/taibuivan/yomira-auth/internal/platform/respond"
)

// readinessTimeout bounds all dependency checks of one /ready call.
const readinessTimeout = 3 * time.Second

// Readiness states reported in the /ready body.
const (
	statusReady       = "ready"
	statusDegraded    = "degraded"
	statusUnavailable = "unavailable"
)

// HealthDependencies holds the injectable dependency checkers for the /ready endpoint.
// A nil checker is skipped, so a deployment without Redis is still ready.
type HealthDependencies struct {
	// CheckDatabase pings the PostgreSQL pool. A failure makes the instance unready.
	CheckDatabase func(ctx context.Context) error

	// CheckCache pings the Redis client. A failure only marks the instance degraded.
	CheckCache func(ctx context.Context) error
}

// checkResult is the public outcome of one probe. Error details stay in the log.
type checkResult struct {
	Name string `json:"name"`
	IsOK bool   `json:"ok"`
}

type healthHandler struct {
	dependencies HealthDependencies
	logger       *slog.Logger
}

// NewHealthHandlers creates the /health and /ready http.HandlerFuncs.
func NewHealthHandlers(deps HealthDependencies, logger *slog.Logger) (liveness, readiness http.HandlerFunc) {
	handler := &healthHandler{dependencies: deps, logger: logger}
	return handler.liveness, handler.readiness
}

// liveness handles GET /health (Liveness probe).
func (handler *healthHandler) liveness(writer http.ResponseWriter, _ *http.Request) {
	respond.OK(writer, map[string]string{
		constants.FieldStatus:  "ok",
		constants.FieldApp:     constants.AppName,
		constants.FieldVersion: constants.AppVersion,
	})
}

// readiness handles GET /ready (Readiness probe).
func (handler *healthHandler) readiness(writer http.ResponseWriter, request *http.Request) {
	ctx, cancel := context.WithTimeout(request.Context(), readinessTimeout)
	defer cancel()

	results := make([]checkResult, 0, 2)

	check := func(name string, probe func(context.Context) error) bool {
		if probe == nil {
			return true
		}
		err := probe(ctx)
		if err != nil {
			handler.logger.Error("readiness_check_failed", slog.String("dependency", name), slog.Any("error", err))
		}
		results = append(results, checkResult{Name: name, IsOK: err == nil})
		return err == nil
	}

	databaseOK := check("postgres", handler.dependencies.CheckDatabase)
	cacheOK := check("redis", handler.dependencies.CheckCache)

	responseStatus, httpStatus := statusReady, http.StatusOK
	switch {
	case !databaseOK:
		responseStatus, httpStatus = statusUnavailable, http.StatusServiceUnavailable
	case !cacheOK:
		responseStatus = statusDegraded
	}

	respond.JSON(writer, httpStatus, map[string]any{
		constants.FieldStatus: responseStatus,
		constants.FieldChecks: results,
	})
}

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"net/http"

	"github.com/taibuivan/yomira-auth/internal/platform/ctxutil"
	requestutil "github.com/taibuivan/yomira-auth/internal/platform/request"
	"github.com/taibuivan/yomira-auth/internal/platform/respond"
)

// RequireBearer extracts the token from the Authorization header.
//
// # Flow
//  1. Require an 'Authorization: Bearer <token>' header.
//  2. If absent or malformed, abort with HTTP 401 Unauthorized.
//  3. Otherwise attach the raw token to the context for [ctxutil.GetBearerToken].
//
// Verification is left to the handler's service; this only checks the header shape.
func RequireBearer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		token, err := requestutil.BearerToken(request)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		ctx := ctxutil.WithBearerToken(request.Context(), token)
		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

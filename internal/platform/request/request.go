// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away common body decoding and header parsing patterns, ensuring
consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/taibuivan/yomira-auth/internal/platform/apperr"
	"github.com/taibuivan/yomira-auth/internal/platform/constants"
	"github.com/taibuivan/yomira-auth/internal/platform/validate"
)

// bearerScheme is the Authorization scheme accepted by [BearerToken].
const bearerScheme = "bearer"

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - writer: http.ResponseWriter (used to cap the body size)
  - request: *http.Request
  - target: any (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(writer http.ResponseWriter, request *http.Request, target any) error {
	body := http.MaxBytesReader(writer, request.Body, constants.MaxRequestBodyBytes)
	if err := json.NewDecoder(body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

// DecodeAndValidate decodes the JSON body into target and checks its `validate` tags.
func DecodeAndValidate(writer http.ResponseWriter, request *http.Request, target any) error {
	if err := DecodeJSON(writer, request, target); err != nil {
		return err
	}
	return validate.Struct(target)
}

/*
BearerToken extracts the token from an `Authorization: Bearer <token>` header.

The scheme is matched case-insensitively.

Returns:
  - string: The raw token
  - error: apperr.Unauthorized if the header is missing or malformed
*/
func BearerToken(request *http.Request) (string, error) {
	header := strings.TrimSpace(request.Header.Get(constants.HeaderAuthorization))
	if header == "" {
		return "", apperr.Unauthorized("Authentication required")
	}

	scheme, token, found := strings.Cut(header, " ")
	token = strings.TrimSpace(token)
	if !found || !strings.EqualFold(scheme, bearerScheme) || token == "" || strings.ContainsAny(token, " \t") {
		return "", apperr.Unauthorized("Invalid authorization format")
	}

	return token, nil
}

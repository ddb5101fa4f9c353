// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-finance-tracker/internal/service"
)

// Sentinel errors used by the authentication middleware when parsing the
// "Authorization" HTTP header. Callers can match against them with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// incoming request does not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader is returned when the "Authorization"
	// header is present but cannot be split into at least two space-separated
	// parts (i.e. the token value is missing entirely).
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrEmptyToken is returned when the "Authorization" header contains the
	// expected scheme prefix but the token value itself is an empty string.
	ErrEmptyToken = errors.New("empty token in `Authorization` header")
)

// ErrInvalidJSON is returned when a request body is not valid JSON for the
// expected payload.
var ErrInvalidJSON = errors.New("invalid JSON was passed")

// errNoUserInContext is reported when a protected handler runs without the
// user id the auth middleware stores.
var errNoUserInContext = fmt.Errorf("%w: missing in request context", service.ErrNoUserID)

// ErrInvalidQuery is returned when a query parameter cannot be parsed.
var ErrInvalidQuery = errors.New("invalid query parameter")

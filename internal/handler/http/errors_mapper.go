// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The PiVault Authors

package http

import (
	"errors"
	"net/http"

	"github.com/pivault/pivault/internal/service"
	"github.com/pivault/pivault/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:    http.StatusBadRequest,
	service.ErrInvalidLanguage:        http.StatusBadRequest,
	service.ErrInvalidAutoLockMinutes: http.StatusBadRequest,
	service.ErrInvalidCategoryName:    http.StatusBadRequest,
	service.ErrInvalidExportBundle:    http.StatusBadRequest,
	service.ErrTOTPCodeRequired:       http.StatusBadRequest,
	service.ErrTOTPNotConfigured:      http.StatusBadRequest,

	service.ErrInvalidCredentials:      http.StatusUnauthorized,
	service.ErrTOTPCodeInvalid:         http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrTooManyLoginAttempts:    http.StatusTooManyRequests,

	store.ErrEmailAlreadyExists: http.StatusConflict,
	store.ErrNoUserWasFound:     http.StatusNotFound,
	store.ErrEntryNotFound:      http.StatusNotFound,
	store.ErrCategoryNotFound:   http.StatusNotFound,

	store.ErrEntryNotSaved:        http.StatusInternalServerError,
	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrPreparingStatement:   http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
}

// statusFromError resolves the HTTP status code for a service or store error.
// Unknown errors fall through to 500 so that internals never leak as
// client-attributable statuses.
func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// writeError logs the error against the request-scoped logger inside the
// caller and answers with the mapped status. 5xx responses carry a generic
// message; the concrete error text is reserved for 4xx.
func writeError(w http.ResponseWriter, err error) {
	status := statusFromError(err)
	if status >= http.StatusInternalServerError {
		http.Error(w, http.StatusText(status), status)
		return
	}
	http.Error(w, err.Error(), status)
}

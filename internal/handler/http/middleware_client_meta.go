// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The PiVault Authors

package http

import (
	"net/http"

	"github.com/pivault/pivault/internal/utils"
)

// withClientMeta captures the request origin (IP address and user agent) into
// the context so that the audit log and the login throttle can attribute
// events to a caller without touching transport types.
func withClientMeta(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		meta := utils.ClientMeta{
			IPAddress: utils.ClientIP(r),
			UserAgent: r.UserAgent(),
		}
		next.ServeHTTP(w, r.WithContext(utils.WithClientMeta(r.Context(), meta)))
	})
}

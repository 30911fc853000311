// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// CheckHTTPMethod is registered as the router's MethodNotAllowed handler.
//
// Chi answers 405 when a path matches a route but the method does not.
// That leaks which paths exist; this handler answers 404 for unregistered
// methods instead, so a wrong-method probe is indistinguishable from an
// unknown path. Requests whose method IS registered go through the normal
// ServeHTTP pipeline.
//
// Only exact pattern matches against the raw request path are considered.
func CheckHTTPMethod(router *chi.Mux) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		var matched chi.Route
		for _, route := range router.Routes() {
			if route.Pattern == r.URL.Path {
				matched = route
				break
			}
		}

		if _, ok := matched.Handlers[r.Method]; !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		router.ServeHTTP(w, r)
	}
}

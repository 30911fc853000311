// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "net/http"

// responseWriter decorates [http.ResponseWriter] so the logging middleware
// can observe the status code and body size after the downstream handler
// returns, without buffering the response.
type responseWriter struct {
	http.ResponseWriter

	// status is the code recorded on the first WriteHeader call; zero
	// until a header is written.
	status int

	// wroteHeader guards against forwarding a second WriteHeader to the
	// underlying writer.
	wroteHeader bool

	// size accumulates bytes written across all Write calls.
	size int

	// body references the slice passed to the most recent Write call,
	// not a concatenation of all writes.
	body []byte
}

// WriteHeader records the status and forwards it exactly once; later calls
// are ignored, per the [http.ResponseWriter] contract.
func (w *responseWriter) WriteHeader(statusCode int) {
	if w.wroteHeader {
		return
	}
	w.status = statusCode
	w.wroteHeader = true
	w.ResponseWriter.WriteHeader(statusCode)
}

// Write forwards b to the underlying writer, implicitly writing a 200
// header first when none was written, and tracks the bytes written.
func (w *responseWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(b)
	w.size += n
	w.body = b
	return n, err
}

package http

import "net/http"

// getServerVersion reports the build version as plain text. Public: the
// console shows it before login.
func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	version := h.services.AppInfoService.GetAppVersion(r.Context())

	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte(version))
}

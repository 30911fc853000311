package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/opsboard/internal/logger"
	"github.com/MKhiriev/opsboard/internal/utils"
	"github.com/MKhiriev/opsboard/models"
)

// domainFromRequest resolves the {domain} URL segment into a known dashboard
// domain. An unknown segment answers 404 and reports false.
func domainFromRequest(w http.ResponseWriter, r *http.Request) (models.Domain, bool) {
	domain, err := models.ParseDomain(chi.URLParam(r, "domain"))
	if err != nil {
		logger.FromRequest(r).Err(err).Msg("unknown assistant domain")
		http.Error(w, "unknown assistant domain", http.StatusNotFound)
		return "", false
	}
	return domain, true
}

func (h *Handler) ask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	domain, ok := domainFromRequest(w, r)
	if !ok {
		return
	}

	var req models.AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.ask").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	reply, err := h.services.AssistantService.Ask(ctx, domain, req)
	if err != nil {
		log.Err(err).Str("func", "*Handler.ask").Str("domain", string(domain)).Msg("error asking assistant")
		http.Error(w, "error asking assistant", statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.AskResponse{Reply: reply}, http.StatusOK)
}

func (h *Handler) history(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	domain, ok := domainFromRequest(w, r)
	if !ok {
		return
	}

	turns, err := h.services.AssistantService.History(ctx, domain)
	if err != nil {
		log.Err(err).Str("func", "*Handler.history").Str("domain", string(domain)).Msg("error reading chat history")
		http.Error(w, "error reading chat history", statusFromError(err))
		return
	}

	utils.WriteJSON(w, turns, http.StatusOK)
}

func (h *Handler) clearHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	domain, ok := domainFromRequest(w, r)
	if !ok {
		return
	}

	if err := h.services.AssistantService.ClearHistory(ctx, domain); err != nil {
		log.Err(err).Str("func", "*Handler.clearHistory").Str("domain", string(domain)).Msg("error clearing chat history")
		http.Error(w, "error clearing chat history", statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

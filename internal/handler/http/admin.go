package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/opsboard/internal/logger"
	"github.com/MKhiriev/opsboard/internal/utils"
	"github.com/MKhiriev/opsboard/models"
)

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	users, err := h.services.AdminService.ListUsers(ctx)
	if err != nil {
		log.Err(err).Str("func", "*Handler.listUsers").Msg("error listing users")
		http.Error(w, "error listing users", statusFromError(err))
		return
	}

	utils.WriteJSON(w, users, http.StatusOK)
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		log.Err(err).Str("func", "*Handler.createUser").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	created, err := h.services.AdminService.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("func", "*Handler.createUser").Msg("error creating user")
		http.Error(w, "error creating user", statusFromError(err))
		return
	}

	utils.WriteJSON(w, created, http.StatusCreated)
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	username := chi.URLParam(r, "username")
	if err := h.services.AdminService.DeleteUser(ctx, username); err != nil {
		log.Err(err).Str("func", "*Handler.deleteUser").Str("username", username).Msg("error deleting user")
		http.Error(w, "error deleting user", statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.resetPassword").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	username := chi.URLParam(r, "username")
	if err := h.services.AdminService.ResetPassword(ctx, username, req.Password); err != nil {
		log.Err(err).Str("func", "*Handler.resetPassword").Str("username", username).Msg("error resetting password")
		http.Error(w, "error resetting password", statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusOK)
}

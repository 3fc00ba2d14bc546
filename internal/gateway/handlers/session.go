package handlers

import (
	"net/http"

	"github.com/pribylovaa/nutricare-client/internal/gateway/apierrors"
	"github.com/pribylovaa/nutricare-client/internal/models"
)

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var in models.LoginRequest
	if err := decodeStrict(w, r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	u, err := h.API.Auth.Login(r.Context(), in.Email, in.Password)
	respond(w, r, http.StatusOK, u, err)
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var in models.RegisterRequest
	if err := decodeStrict(w, r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	u, err := h.API.Auth.Register(r.Context(), in)
	respond(w, r, http.StatusCreated, u, err)
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.API.Auth.Logout(r.Context()); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SessionStatus — локальное состояние сессии, бэкенд не вызывается.
func (h *Handlers) SessionStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.API.Auth.Status(r.Context(), h.Now()))
}

func (h *Handlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.API.Dashboard(r.Context())
	respond(w, r, http.StatusOK, d, err)
}

func (h *Handlers) CurrentUser(w http.ResponseWriter, r *http.Request) {
	u, err := h.API.Auth.CurrentUser(r.Context())
	respond(w, r, http.StatusOK, u, err)
}

func (h *Handlers) Profile(w http.ResponseWriter, r *http.Request) {
	p, err := h.API.Auth.Profile(r.Context())
	respond(w, r, http.StatusOK, p, err)
}

func (h *Handlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var in models.ProfileUpdate
	if err := decodeStrict(w, r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	p, err := h.API.Auth.UpdateProfile(r.Context(), in)
	respond(w, r, http.StatusOK, p, err)
}

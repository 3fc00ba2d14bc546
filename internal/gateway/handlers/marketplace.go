package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/nutricare-client/internal/gateway/apierrors"
	"github.com/pribylovaa/nutricare-client/internal/models"
)

func (h *Handlers) Cart(w http.ResponseWriter, r *http.Request) {
	items, err := h.API.Marketplace.Cart(r.Context())
	respond(w, r, http.StatusOK, items, err)
}

func (h *Handlers) AddToCart(w http.ResponseWriter, r *http.Request) {
	in := models.AddToCartRequest{Quantity: 1}
	if err := decodeStrict(w, r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	item, err := h.API.Marketplace.AddToCart(r.Context(), in.FoodID, in.Quantity)
	respond(w, r, http.StatusCreated, item, err)
}

func (h *Handlers) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	var in models.UpdateCartItemRequest
	if err := decodeStrict(w, r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	item, err := h.API.Marketplace.UpdateCartItem(r.Context(), chi.URLParam(r, "id"), in.Quantity)
	respond(w, r, http.StatusOK, item, err)
}

func (h *Handlers) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	if err := h.API.Marketplace.RemoveCartItem(r.Context(), chi.URLParam(r, "id")); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) Orders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.API.Marketplace.Orders(r.Context())
	respond(w, r, http.StatusOK, orders, err)
}

func (h *Handlers) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var in models.CreateOrderRequest
	if err := decodeStrict(w, r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	o, err := h.API.Marketplace.CreateOrder(r.Context(), in)
	respond(w, r, http.StatusCreated, o, err)
}

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/nutricare-client/internal/gateway/apierrors"
	"github.com/pribylovaa/nutricare-client/internal/models"
)

func (h *Handlers) ListFoods(w http.ResponseWriter, r *http.Request) {
	foods, err := h.API.Nutrition.Foods(r.Context())
	respond(w, r, http.StatusOK, foods, err)
}

func (h *Handlers) GetFood(w http.ResponseWriter, r *http.Request) {
	f, err := h.API.Nutrition.Food(r.Context(), chi.URLParam(r, "id"))
	respond(w, r, http.StatusOK, f, err)
}

func (h *Handlers) SeasonalFoods(w http.ResponseWriter, r *http.Request) {
	foods, err := h.API.Nutrition.SeasonalFoods(r.Context(), chi.URLParam(r, "season"))
	respond(w, r, http.StatusOK, foods, err)
}

func (h *Handlers) ListRecommendations(w http.ResponseWriter, r *http.Request) {
	meals, err := h.API.Nutrition.Recommendations(r.Context())
	respond(w, r, http.StatusOK, meals, err)
}

func (h *Handlers) GenerateRecommendation(w http.ResponseWriter, r *http.Request) {
	var in models.GenerateRecommendationRequest
	if err := decodeStrict(w, r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	m, err := h.API.Nutrition.GenerateRecommendation(r.Context(), in)
	respond(w, r, http.StatusCreated, m, err)
}

func (h *Handlers) ListPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := h.API.Nutrition.Plans(r.Context())
	respond(w, r, http.StatusOK, plans, err)
}

func (h *Handlers) CreatePlan(w http.ResponseWriter, r *http.Request) {
	in := models.CreatePlanRequest{DurationDays: 7}
	if err := decodeStrict(w, r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	p, err := h.API.Nutrition.CreatePlan(r.Context(), in.DurationDays)
	respond(w, r, http.StatusCreated, p, err)
}

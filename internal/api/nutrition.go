package api

import (
	"context"
	"net/http"

	"github.com/pribylovaa/nutricare-client/internal/models"
)

// Nutrition — каталог продуктов, рекомендации приёмов пищи и планы питания.
type Nutrition struct {
	doer Doer
}

func (n *Nutrition) Foods(ctx context.Context) ([]models.Food, error) {
	return list[models.Food](ctx, n.doer, "/nutrition/foods/")
}

func (n *Nutrition) Food(ctx context.Context, id string) (models.Food, error) {
	if err := validID("food_id", id); err != nil {
		return models.Food{}, err
	}

	var f models.Food
	err := call(ctx, n.doer, http.MethodGet, "/nutrition/foods/"+id+"/", nil, &f)
	return f, err
}

// SeasonalFoods — продукты сезона; "all" — весь каталог.
func (n *Nutrition) SeasonalFoods(ctx context.Context, season string) ([]models.Food, error) {
	if err := oneOf("season", season, Seasons); err != nil {
		return nil, err
	}
	if season == "all" {
		return n.Foods(ctx)
	}

	return list[models.Food](ctx, n.doer, "/nutrition/foods/season/"+season+"/")
}

func (n *Nutrition) Recommendations(ctx context.Context) ([]models.MealRecommendation, error) {
	return list[models.MealRecommendation](ctx, n.doer, "/nutrition/recommendations/")
}

// GenerateRecommendation просит бэкенд подобрать приём пищи.
func (n *Nutrition) GenerateRecommendation(ctx context.Context, in models.GenerateRecommendationRequest) (models.MealRecommendation, error) {
	if err := oneOf("meal_type", in.MealType, MealTypes); err != nil {
		return models.MealRecommendation{}, err
	}
	if err := validDate("date", in.Date); err != nil {
		return models.MealRecommendation{}, err
	}

	var m models.MealRecommendation
	err := call(ctx, n.doer, http.MethodPost, "/nutrition/recommendations/generate/", in, &m)
	return m, err
}

func (n *Nutrition) Plans(ctx context.Context) ([]models.NutritionPlan, error) {
	return list[models.NutritionPlan](ctx, n.doer, "/nutrition/plans/")
}

// CreatePlan создаёт план на days дней (SPA всегда просит 7).
func (n *Nutrition) CreatePlan(ctx context.Context, days int) (models.NutritionPlan, error) {
	if days < 1 || days > maxPlanDays {
		return models.NutritionPlan{}, invalid("duration_days", "must be between 1 and 365")
	}

	var p models.NutritionPlan
	err := call(ctx, n.doer, http.MethodPost, "/nutrition/plans/create/", models.CreatePlanRequest{DurationDays: days}, &p)
	return p, err
}

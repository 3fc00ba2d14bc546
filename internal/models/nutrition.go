package models

import "time"

// Food — продукт каталога (значения на 100 г).
type Food struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	NameNepali     string    `json:"name_nepali"`
	Description    string    `json:"description"`
	Category       string    `json:"category"`
	Season         string    `json:"season"`
	Calories       float64   `json:"calories"`
	Protein        float64   `json:"protein"`
	Carbohydrates  float64   `json:"carbohydrates"`
	Fat            float64   `json:"fat"`
	Fiber          float64   `json:"fiber"`
	VitaminA       float64   `json:"vitamin_a"`
	VitaminC       float64   `json:"vitamin_c"`
	Calcium        float64   `json:"calcium"`
	Iron           float64   `json:"iron"`
	HealthBenefits string    `json:"health_benefits"`
	SuitableFor    string    `json:"suitable_for"`
	AvoidIn        string    `json:"avoid_in"`
	IsAvailable    bool      `json:"is_available"`
	ImageURL       string    `json:"image_url"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// MealRecommendation — рекомендация приёма пищи.
type MealRecommendation struct {
	ID            string    `json:"id"`
	Foods         []Food    `json:"foods"`
	MealType      string    `json:"meal_type"`
	Date          string    `json:"date"`
	MealName      string    `json:"meal_name"`
	Instructions  string    `json:"instructions"`
	PortionSize   string    `json:"portion_size"`
	TotalCalories float64   `json:"total_calories"`
	TotalProtein  float64   `json:"total_protein"`
	TotalCarbs    float64   `json:"total_carbs"`
	TotalFat      float64   `json:"total_fat"`
	AISummary     string    `json:"ai_summary"`
	AIReasoning   string    `json:"ai_reasoning"`
	CreatedAt     time.Time `json:"created_at"`
}

// GenerateRecommendationRequest — POST /nutrition/recommendations/generate/.
// Date в формате YYYY-MM-DD; пустая — сегодня (решает бэкенд).
type GenerateRecommendationRequest struct {
	MealType string `json:"meal_type"`
	Date     string `json:"date,omitempty"`
}

// NutritionPlan — план питания на период.
type NutritionPlan struct {
	ID                  string               `json:"id"`
	StartDate           string               `json:"start_date"`
	EndDate             string               `json:"end_date"`
	DailyCalorieTarget  float64              `json:"daily_calorie_target"`
	DailyProteinTarget  float64              `json:"daily_protein_target"`
	DailyCarbsTarget    float64              `json:"daily_carbs_target"`
	DailyFatTarget      float64              `json:"daily_fat_target"`
	PlanDescription     string               `json:"plan_description"`
	HealthFocus         string               `json:"health_focus"`
	IsActive            bool                 `json:"is_active"`
	CreatedAt           time.Time            `json:"created_at"`
	UpdatedAt           time.Time            `json:"updated_at"`
	MealRecommendations []MealRecommendation `json:"meal_recommendations,omitempty"`
}

// CreatePlanRequest — POST /nutrition/plans/create/.
type CreatePlanRequest struct {
	DurationDays int `json:"duration_days"`
}

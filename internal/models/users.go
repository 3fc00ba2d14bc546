package models

import "time"

// User — GET /users/me/.
type User struct {
	ID         string       `json:"id"`
	Email      string       `json:"email"`
	FirstName  string       `json:"first_name"`
	LastName   string       `json:"last_name"`
	DateJoined time.Time    `json:"date_joined"`
	Profile    *UserProfile `json:"profile,omitempty"`
}

// UserProfile — GET /users/profile/. BMI/BMR/DailyCalories считает бэкенд,
// nil — не хватает данных для расчёта.
type UserProfile struct {
	ID                 string    `json:"id"`
	Age                *int      `json:"age"`
	Gender             *string   `json:"gender"`
	Weight             *float64  `json:"weight"`
	Height             *float64  `json:"height"`
	ActivityLevel      string    `json:"activity_level"`
	Goal               string    `json:"goal"`
	Diseases           string    `json:"diseases"`
	Allergies          string    `json:"allergies"`
	DietaryPreferences string    `json:"dietary_preferences"`
	BMI                *float64  `json:"bmi"`
	BMR                *float64  `json:"bmr"`
	DailyCalories      *float64  `json:"daily_calories"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// ProfileUpdate — PATCH /users/profile/update/. Передаются только заданные поля.
type ProfileUpdate struct {
	Age                *int     `json:"age,omitempty"`
	Gender             *string  `json:"gender,omitempty"`
	Weight             *float64 `json:"weight,omitempty"`
	Height             *float64 `json:"height,omitempty"`
	ActivityLevel      *string  `json:"activity_level,omitempty"`
	Goal               *string  `json:"goal,omitempty"`
	Diseases           *string  `json:"diseases,omitempty"`
	Allergies          *string  `json:"allergies,omitempty"`
	DietaryPreferences *string  `json:"dietary_preferences,omitempty"`
}

// Empty — ни одно поле не задано.
func (p ProfileUpdate) Empty() bool {
	return p == ProfileUpdate{}
}

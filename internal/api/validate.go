package api

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrValidation — входные данные отклонены до отправки запроса.
var ErrValidation = errors.New("validation failed")

// ValidationError описывает конкретное поле.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// Допустимые значения справочников бэкенда.
var (
	Seasons       = []string{"spring", "summer", "autumn", "winter", "all"}
	MealTypes     = []string{"breakfast", "lunch", "dinner", "snack"}
	ReportTypes   = []string{"blood_test", "prescription", "diagnosis", "other"}
	Genders       = []string{"M", "F", "O"}
	ActivityLevel = []string{"sedentary", "light", "moderate", "very", "extra"}
	Goals         = []string{"lose", "maintain", "gain", "health"}
)

const maxPlanDays = 365

func oneOf(field, v string, allowed []string) error {
	if !slices.Contains(allowed, v) {
		return invalid(field, fmt.Sprintf("%q is not one of %s", v, strings.Join(allowed, ", ")))
	}

	return nil
}

// validID — идентификаторы бэкенда это UUID; заодно гарантирует безопасный путь.
func validID(field, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return invalid(field, "must be a uuid")
	}

	return nil
}

func validDate(field, v string) error {
	if v == "" {
		return nil
	}
	if _, err := time.Parse(time.DateOnly, v); err != nil {
		return invalid(field, "must be YYYY-MM-DD")
	}

	return nil
}

func required(field, v string) error {
	if strings.TrimSpace(v) == "" {
		return invalid(field, "required")
	}

	return nil
}

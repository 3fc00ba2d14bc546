package api

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/pribylovaa/nutricare-client/internal/models"
)

const dashboardRecent = 3

// Dashboard — сводка главной страницы: профиль и последние записи.
type Dashboard struct {
	Profile       models.UserProfile          `json:"profile"`
	RecentMeals   []models.MealRecommendation `json:"recent_meals"`
	RecentReports []models.MedicalReport      `json:"recent_reports"`
}

// Dashboard загружает профиль, рекомендации и отчёты параллельно.
// Первая ошибка отменяет остальные запросы.
func (a *API) Dashboard(ctx context.Context) (Dashboard, error) {
	var d Dashboard

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := a.Auth.Profile(gctx)
		d.Profile = p
		return err
	})
	g.Go(func() error {
		meals, err := a.Nutrition.Recommendations(gctx)
		d.RecentMeals = head(meals, dashboardRecent)
		return err
	})
	g.Go(func() error {
		reports, err := a.Medical.Reports(gctx)
		d.RecentReports = head(reports, dashboardRecent)
		return err
	})

	if err := g.Wait(); err != nil {
		return Dashboard{}, err
	}

	return d, nil
}

func head[T any](xs []T, n int) []T {
	if len(xs) > n {
		return xs[:n]
	}

	return xs
}

// gateway — локальный backend-for-frontend: держит сессию на своей стороне
// и отдаёт SPA те же эндпоинты, что и бэкенд.
package gateway

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/pribylovaa/nutricare-client/internal/api"
	"github.com/pribylovaa/nutricare-client/internal/client/interceptors"
	"github.com/pribylovaa/nutricare-client/internal/gateway/apierrors"
	"github.com/pribylovaa/nutricare-client/internal/gateway/handlers"
	"github.com/pribylovaa/nutricare-client/internal/gateway/middleware"
)

// Options — параметры сборки HTTP-роутера.
type Options struct {
	Logger   *slog.Logger
	Timeout  time.Duration
	BasePath string // например, "/api"; если пустой — роуты регистрируются на корне.
	// Now — источник времени для статуса сессии; nil — time.Now.
	Now func() time.Time
	// AllowedOrigins — origin'ы SPA, которым разрешены кросс-доменные запросы.
	// Изменяющие запросы с любого другого Origin/Referer получают 403.
	AllowedOrigins []string
}

// NewRouter собирает http.Handler с chi и подключёнными middleware/роутами.
func NewRouter(a *api.API, opts Options) http.Handler {
	root := chi.NewRouter()

	// CORS снаружи: preflight отвечается до роутинга и логирования.
	if len(opts.AllowedOrigins) > 0 {
		root.Use(cors.Handler(cors.Options{
			AllowedOrigins: opts.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type", interceptors.HeaderRequestID},
			ExposedHeaders: []string{interceptors.HeaderRequestID},
			MaxAge:         300,
		}))
	}

	// Middleware (внешний -> внутренний).
	root.Use(
		middleware.Recover(),
		middleware.RequestID(),
		middleware.Logging(opts.Logger),
		middleware.SameOrigin(opts.AllowedOrigins),
		middleware.Timeout(opts.Timeout),
	)

	root.NotFound(func(w http.ResponseWriter, r *http.Request) {
		apierrors.WriteError(w, r, apierrors.ErrNotFound)
	})

	h := handlers.New(a)
	if opts.Now != nil {
		h.Now = opts.Now
	}

	if opts.BasePath != "" {
		sub := chi.NewRouter()
		registerRoutes(sub, h)
		root.Mount(opts.BasePath, sub)
		return root
	}

	registerRoutes(root, h)
	return root
}

// registerRoutes — единая точка регистрации всех REST-эндпойнтов.
func registerRoutes(r chi.Router, h *handlers.Handlers) {
	// локальная сессия
	r.Get("/session", h.SessionStatus)
	r.Post("/session/login", h.Login)
	r.Post("/session/register", h.Register)
	r.Post("/session/logout", h.Logout)
	r.Get("/dashboard", h.Dashboard)

	// users
	r.Get("/users/me/", h.CurrentUser)
	r.Get("/users/profile/", h.Profile)
	r.Patch("/users/profile/update/", h.UpdateProfile)

	// nutrition
	r.Get("/nutrition/foods/", h.ListFoods)
	r.Get("/nutrition/foods/season/{season}/", h.SeasonalFoods)
	r.Get("/nutrition/foods/{id}/", h.GetFood)
	r.Get("/nutrition/recommendations/", h.ListRecommendations)
	r.Post("/nutrition/recommendations/generate/", h.GenerateRecommendation)
	r.Get("/nutrition/plans/", h.ListPlans)
	r.Post("/nutrition/plans/create/", h.CreatePlan)

	// medical
	r.Get("/medical/reports/", h.ListReports)
	r.Post("/medical/reports/upload/", h.UploadReport)
	r.Get("/medical/reports/{id}/", h.GetReport)
	r.Post("/medical/reports/{id}/analyze/", h.AnalyzeReport)
	r.Get("/medical/diseases/", h.ListDiseases)

	// marketplace
	r.Get("/marketplace/cart/", h.Cart)
	r.Post("/marketplace/cart/add/", h.AddToCart)
	r.Patch("/marketplace/cart/{id}/update/", h.UpdateCartItem)
	r.Delete("/marketplace/cart/{id}/delete/", h.RemoveCartItem)
	r.Get("/marketplace/orders/", h.Orders)
	r.Post("/marketplace/orders/create/", h.CreateOrder)
}

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/smartbudget/api/internal/config"
	"github.com/smartbudget/api/internal/transport/http/handler"
	appmiddleware "github.com/smartbudget/api/internal/transport/http/middleware"
	"golang.org/x/time/rate"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	actionsH := handler.NewActionHandler(deps.OTPService, deps.BudgetService, deps.BillsService)

	// 1 email/second, burst of 3 per IP — the email channel is the only part
	// worth throttling; verifyOTP and the data actions pass straight through.
	sendRL := appmiddleware.NewRateLimiter(rate.Limit(1), 3)

	r.With(sendRL.LimitAction("sendOTP")).Get("/api", actionsH.Get)
	r.Post("/api", actionsH.Post)

	return r
}

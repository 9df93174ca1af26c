package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"

	"github.com/arjav-14/cost-console/internal/auth"
	"github.com/arjav-14/cost-console/internal/expense"
	"github.com/arjav-14/cost-console/internal/transport/middleware"
	"github.com/arjav-14/cost-console/internal/transport/swagger"
	"github.com/arjav-14/cost-console/internal/user"
)

// RegisterAllRoutes wires every HTTP route. Everything under /api/v1 except
// auth and health requires a valid access token; ownership and role checks
// live in the services, not here.
func RegisterAllRoutes(router *chi.Mux, db *sql.DB, authHandler *auth.Handler, userHandler *user.Handler, expenseHandler *expense.Handler, allowedOrigins string, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS(allowedOrigins))
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/register", authHandler.Register)
			sr.Post("/login", authHandler.Login)
			sr.Post("/refresh", authHandler.RefreshToken)
			sr.Post("/logout", authHandler.Logout)
		})

		r.Group(func(pr chi.Router) {
			pr.Use(authHandler.AuthMiddleware)

			pr.Get("/users/me", userHandler.GetCurrentUser)

			pr.Route("/expenses", func(er chi.Router) {
				er.Post("/", expenseHandler.CreateExpense)
				er.Get("/", expenseHandler.ListExpenses)
				er.Get("/{id}", expenseHandler.GetExpense)
				er.Put("/{id}/status", expenseHandler.UpdateStatus)
			})
		})
	})
}

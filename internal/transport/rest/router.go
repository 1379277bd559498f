package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/finance-dashboard/internal/auth"
	"github.com/frahmantamala/finance-dashboard/internal/category"
	"github.com/frahmantamala/finance-dashboard/internal/transaction"
	"github.com/frahmantamala/finance-dashboard/internal/transport/middleware"
	"github.com/frahmantamala/finance-dashboard/internal/transport/swagger"
	"github.com/frahmantamala/finance-dashboard/internal/user"
	"github.com/go-chi/chi"
)

// RegisterAllRoutes wires every endpoint onto the router. The session
// middleware runs on the whole /api subtree but never rejects; handlers
// that need a user check the request context themselves.
func RegisterAllRoutes(router *chi.Mux, db *sql.DB, authHandler *auth.Handler, userHandler *user.Handler, categoryHandler *category.Handler, transactionHandler *transaction.Handler, allowedOrigins string, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.CORS(allowedOrigins))

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api", func(r chi.Router) {
		r.Use(authHandler.SessionMiddleware)

		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/register", authHandler.Register)
			sr.Post("/login", authHandler.Login)
			sr.Post("/logout", authHandler.Logout)
			sr.Get("/me", authHandler.Me)
		})

		r.Route("/categories", func(cr chi.Router) {
			cr.Get("/", categoryHandler.GetCategories)
			cr.Post("/", categoryHandler.CreateCategory)
			cr.Post("/seed", categoryHandler.SeedCategories)
			cr.Put("/{id}", categoryHandler.UpdateCategory)
			cr.Delete("/{id}", categoryHandler.DeleteCategory)
		})

		r.Get("/shared/{code}", userHandler.GetSharedUser)

		r.Route("/transactions", func(tr chi.Router) {
			tr.Get("/", transactionHandler.ListTransactions)
			tr.Post("/", transactionHandler.CreateTransaction)
			tr.Get("/{id}", transactionHandler.GetTransaction)
			tr.Put("/{id}", transactionHandler.UpdateTransaction)
			tr.Delete("/{id}", transactionHandler.DeleteTransaction)
		})
	})
}

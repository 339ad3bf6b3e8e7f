package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"

	"github.com/spendwise/expense-tracker/internal/audit"
	"github.com/spendwise/expense-tracker/internal/auth"
	"github.com/spendwise/expense-tracker/internal/expense"
	"github.com/spendwise/expense-tracker/internal/report"
	"github.com/spendwise/expense-tracker/internal/transport/middleware"
	"github.com/spendwise/expense-tracker/internal/transport/swagger"
	"github.com/spendwise/expense-tracker/internal/user"
)

// RegisterAllRoutes mounts the whole API surface under /api/v1.
func RegisterAllRoutes(
	router *chi.Mux,
	db *sql.DB,
	authHandler *auth.Handler,
	userHandler *user.Handler,
	expenseHandler *expense.Handler,
	reportHandler *report.Handler,
	auditHandler *audit.Handler,
	logger *slog.Logger,
) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestLogger)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	// OpenAPI spec and swagger UI live outside the API prefix
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		if authHandler != nil {
			r.Route("/auth", func(sr chi.Router) {
				sr.Post("/login", authHandler.Login)
				sr.Post("/refresh", authHandler.RefreshToken)
			})

			r.Group(func(pr chi.Router) {
				pr.Use(authHandler.AuthMiddleware)

				if userHandler != nil {
					pr.Get("/users/me", userHandler.GetCurrentUser)
				}

				if expenseHandler != nil {
					pr.Route("/expenses", func(er chi.Router) {
						er.Post("/", expenseHandler.CreateExpense)
						er.Get("/", expenseHandler.ListExpenses)
						er.Get("/{id}", expenseHandler.GetExpense)
						er.Patch("/{id}", expenseHandler.UpdateExpense)
						er.Delete("/{id}", expenseHandler.DeleteExpense)
					})
				}

				if reportHandler != nil {
					pr.Route("/reports", func(rr chi.Router) {
						rr.Get("/summary", reportHandler.QuickSummary)
						rr.Get("/categories", reportHandler.CategoryBreakdown)
						rr.Get("/timeline", reportHandler.TimeBasedReport)
						rr.Get("/top", reportHandler.TopExpenses)
						rr.Get("/detailed", reportHandler.DetailedReport)
					})
				}

				if auditHandler != nil {
					pr.Get("/audit/logs", auditHandler.GetLogs)
				}
			})
		}
	})
}

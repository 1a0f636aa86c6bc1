package app

import (
	"github.com/gorilla/mux"
	"github.com/moneta-app/moneta/internal/config"
	"github.com/moneta-app/moneta/pkg/google"
)

// RegisterRoutes registers all endpoints. Routes outside of the /api subrouter are not
// subject to the user middleware.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Scheduler trigger, authorized by the cron secret
	r.HandleFunc("/jobs/recurring", deps.RecurringJobHandler.Run).Methods("GET", "POST")

	// Called by Google, the user is identified by the OAuth state
	r.HandleFunc(google.CallbackPath, deps.GoogleAuth.OAuthCallback).Methods("GET")

	// Registration behind an authenticating proxy
	if cfg.Auth.Mode == config.AuthModeHeader {
		r.HandleFunc("/api/user", deps.UserHandler.CreateUser).Methods("POST")
	}

	api := r.PathPrefix("/api").Subrouter()
	SetupMiddleware(api, deps, cfg)

	// User management
	api.HandleFunc("/user/current", deps.UserHandler.CurrentUser).Methods("GET")
	api.HandleFunc("/user/current", deps.UserHandler.UpdateUser).Methods("PUT")
	api.HandleFunc("/user/current", deps.UserHandler.DeleteUser).Methods("DELETE")

	// Categories
	api.HandleFunc("/categories", deps.CategoryHandler.List).Methods("GET")
	api.HandleFunc("/categories", deps.CategoryHandler.Create).Methods("POST")
	api.HandleFunc("/categories/{id}", deps.CategoryHandler.Update).Methods("PUT")
	api.HandleFunc("/categories/{id}", deps.CategoryHandler.Delete).Methods("DELETE")

	// Transactions
	api.HandleFunc("/transactions", deps.TransactionHandler.List).Methods("GET")
	api.HandleFunc("/transactions", deps.TransactionHandler.Create).Methods("POST")
	api.HandleFunc("/transactions/installments", deps.TransactionHandler.CreateInstallments).Methods("POST")
	api.HandleFunc("/transactions/{id}", deps.TransactionHandler.Get).Methods("GET")
	api.HandleFunc("/transactions/{id}", deps.TransactionHandler.Update).Methods("PUT")
	api.HandleFunc("/transactions/{id}", deps.TransactionHandler.Delete).Methods("DELETE")

	// Cards
	api.HandleFunc("/cards", deps.CardHandler.List).Methods("GET")
	api.HandleFunc("/cards", deps.CardHandler.Create).Methods("POST")
	api.HandleFunc("/cards/bills", deps.CardHandler.Bills).Methods("GET")
	api.HandleFunc("/cards/bills/chart.png", deps.CardHandler.BillsChart).Methods("GET")
	api.HandleFunc("/cards/{cardId}", deps.CardHandler.Get).Methods("GET")
	api.HandleFunc("/cards/{cardId}", deps.CardHandler.Update).Methods("PUT")
	api.HandleFunc("/cards/{cardId}", deps.CardHandler.Delete).Methods("DELETE")
	api.HandleFunc("/cards/{cardId}/usage", deps.CardHandler.Usage).Methods("GET")

	// Recurring expenses
	api.HandleFunc("/recurring", deps.RecurringHandler.List).Methods("GET")
	api.HandleFunc("/recurring", deps.RecurringHandler.Create).Methods("POST")
	api.HandleFunc("/recurring/{id}", deps.RecurringHandler.Get).Methods("GET")
	api.HandleFunc("/recurring/{id}", deps.RecurringHandler.Update).Methods("PUT")
	api.HandleFunc("/recurring/{id}", deps.RecurringHandler.Delete).Methods("DELETE")

	// Goals
	api.HandleFunc("/goals", deps.GoalHandler.List).Methods("GET")
	api.HandleFunc("/goals", deps.GoalHandler.Create).Methods("POST")
	api.HandleFunc("/goals/{id}", deps.GoalHandler.Get).Methods("GET")
	api.HandleFunc("/goals/{id}", deps.GoalHandler.Update).Methods("PUT")
	api.HandleFunc("/goals/{id}", deps.GoalHandler.Delete).Methods("DELETE")
	api.HandleFunc("/goals/{id}/progress", deps.GoalHandler.AddProgress).Methods("POST")

	// Summary
	api.HandleFunc("/summary", deps.SummaryHandler.GetSummary).Methods("GET")
	api.HandleFunc("/summary/export.csv", deps.SummaryHandler.ExportCsv).Methods("GET")

	// Advisor
	api.HandleFunc("/advisor/categorize", deps.AdvisorHandler.Categorize).Methods("POST")
	api.HandleFunc("/advisor/insight", deps.AdvisorHandler.Insight).Methods("POST")
	api.HandleFunc("/advisor/chat", deps.AdvisorHandler.Chat).Methods("POST")

	// Google integration
	api.HandleFunc("/integrations/google/auth/login", deps.GoogleAuth.OAuthLogin).Methods("GET")
	api.HandleFunc("/integrations/google/auth/logout", deps.GoogleAuth.OAuthLogout).Methods("DELETE")
	api.HandleFunc("/integrations/google/calendars", deps.GoogleHandler.ListCalendars).Methods("GET")
	api.HandleFunc("/integrations/google/bills", deps.GoogleHandler.ExportBills).Methods("POST")
}

package app

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/moneta-app/moneta/internal/ai"
	"github.com/moneta-app/moneta/internal/auth"
	"github.com/moneta-app/moneta/internal/config"
	"github.com/moneta-app/moneta/internal/event_bus"
	"github.com/moneta-app/moneta/internal/utils"
	"github.com/moneta-app/moneta/pkg/advisor"
	"github.com/moneta-app/moneta/pkg/card"
	"github.com/moneta-app/moneta/pkg/category"
	"github.com/moneta-app/moneta/pkg/goal"
	"github.com/moneta-app/moneta/pkg/google"
	"github.com/moneta-app/moneta/pkg/recurring"
	"github.com/moneta-app/moneta/pkg/summary"
	"github.com/moneta-app/moneta/pkg/transaction"
	"github.com/moneta-app/moneta/pkg/user"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	// nil in header auth mode
	AuthTokenValidator auth.TokenValidator

	EventBus *event_bus.EventBus
	Clock    utils.Clock

	UserService user.Service
	UserHandler *user.Handler

	CategoryService *category.ServiceImpl
	CategoryHandler *category.Handler

	TransactionService *transaction.ServiceImpl
	TransactionHandler *transaction.Handler

	CardService *card.ServiceImpl
	CardHandler *card.Handler

	RecurringService    *recurring.ServiceImpl
	RecurringHandler    *recurring.Handler
	RecurringJobHandler *recurring.JobHandler

	GoalService *goal.ServiceImpl
	GoalHandler *goal.Handler

	SummaryService *summary.SummaryServiceImpl
	CsvRenderer    *summary.CsvSummaryRendererImpl
	SummaryHandler *summary.SummaryHandler

	AdvisorService *advisor.ServiceImpl
	AdvisorHandler *advisor.Handler

	GoogleAuth    *google.GoogleAuth
	GoogleService google.Service
	GoogleHandler *google.Handler
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *pgxpool.Pool, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	if cfg.Auth.Mode == config.AuthModeGoogle {
		deps.AuthTokenValidator = auth.NewGoogleTokenValidator(cfg.Auth.Audience)
	}

	deps.EventBus = event_bus.NewEventBus()
	deps.Clock = &utils.SystemClock{}

	deps.UserService = user.NewService(user.NewRepository(db))
	deps.UserHandler = user.NewHandler(deps.UserService)

	// subscribers of category events are registered in the constructors below
	deps.CategoryService = category.NewService(category.NewRepository(db), deps.EventBus)
	deps.CategoryHandler = category.NewHandler(deps.CategoryService)

	deps.TransactionService = transaction.NewService(transaction.NewRepository(db), deps.EventBus)
	deps.TransactionHandler = transaction.NewHandler(deps.TransactionService, deps.CategoryService)

	deps.CardService = card.NewService(card.NewRepository(db), deps.TransactionService, deps.Clock)
	deps.CardHandler = card.NewHandler(deps.CardService)

	deps.RecurringService = recurring.NewService(recurring.NewRepository(db), deps.EventBus, deps.Clock)
	deps.RecurringHandler = recurring.NewHandler(deps.RecurringService, deps.CategoryService)
	deps.RecurringJobHandler = recurring.NewJobHandler(deps.RecurringService, cfg.Jobs.CronSecret)

	deps.GoalService = goal.NewService(goal.NewRepository(db))
	deps.GoalHandler = goal.NewHandler(deps.GoalService)

	deps.SummaryService = summary.NewSummaryServiceImpl(deps.TransactionService, deps.CardService, deps.Clock)
	deps.CsvRenderer = summary.NewCsvSummaryRenderer()
	deps.SummaryHandler = summary.NewSummaryHandler(deps.SummaryService, deps.CsvRenderer, deps.Clock)

	deps.AdvisorService = advisor.NewService(ai.New(cfg.AI.ApiKey, cfg.AI.BaseUrl, cfg.AI.Model), deps.SummaryService)
	deps.AdvisorHandler = advisor.NewHandler(deps.AdvisorService)

	deps.GoogleAuth = google.NewGoogleAuth(google.NewAuthRepository(db), cfg)
	deps.GoogleService = google.NewService(deps.GoogleAuth, deps.CardService)
	deps.GoogleHandler = google.NewHandler(deps.GoogleService)

	return deps
}

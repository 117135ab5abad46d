// Package dependency provides dependency injection for the application.
package dependency

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/budget-planner/backend/config"
	"github.com/budget-planner/backend/internal/application/adapter"
	"github.com/budget-planner/backend/internal/application/usecase/alert"
	"github.com/budget-planner/backend/internal/application/usecase/auth"
	"github.com/budget-planner/backend/internal/application/usecase/budget"
	"github.com/budget-planner/backend/internal/application/usecase/category"
	"github.com/budget-planner/backend/internal/application/usecase/categorybudget"
	"github.com/budget-planner/backend/internal/application/usecase/transaction"
	"github.com/budget-planner/backend/internal/infra/server/router"
	"github.com/budget-planner/backend/internal/integration/adapters"
	"github.com/budget-planner/backend/internal/integration/email"
	"github.com/budget-planner/backend/internal/integration/email/templates"
	"github.com/budget-planner/backend/internal/integration/entrypoint/controller"
	"github.com/budget-planner/backend/internal/integration/entrypoint/middleware"
	"github.com/budget-planner/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config      *config.Config
	DB          *gorm.DB
	Router      *router.Router
	EmailWorker *email.Worker
}

// NewInjector creates a new dependency injector with all dependencies wired.
// aiService may be nil (plan generation falls back to the baseline), and
// emailSender may be nil (emails stay queued, the worker is not created).
func NewInjector(
	cfg *config.Config,
	db *gorm.DB,
	redisClient *redis.Client,
	aiService adapter.AIBudgetService,
	emailSender adapter.EmailSender,
) (*Injector, error) {
	// Create repositories
	userRepo := persistence.NewUserRepository(db)
	tokenRepo := persistence.NewTokenRepository(db)
	categoryRepo := persistence.NewCategoryRepository(db)
	transactionRepo := persistence.NewTransactionRepository(db)
	planRepo := persistence.NewPlanRepository(db)
	categoryBudgetRepo := persistence.NewCategoryBudgetRepository(db)
	suggestionRepo := persistence.NewBudgetSuggestionRepository(db)
	emailQueueRepo := persistence.NewEmailQueueRepository(db)

	// Create adapters/services
	passwordService := adapters.NewPasswordService()
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, tokenRepo)
	resetTokenService := adapters.NewPasswordResetTokenService(tokenRepo)
	emailService := email.NewService(emailQueueRepo, cfg.Email.AppBaseURL)

	// Create email worker when a sender is configured
	var emailWorker *email.Worker
	if emailSender != nil {
		renderer, err := templates.NewRenderer()
		if err != nil {
			return nil, err
		}
		emailWorker = email.NewWorker(emailQueueRepo, emailSender, renderer, email.WorkerConfig{
			PollInterval: cfg.Email.PollInterval,
			BatchSize:    cfg.Email.BatchSize,
		})
	}

	// Create auth use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)
	refreshTokenUseCase := auth.NewRefreshTokenUseCase(tokenService)
	logoutUseCase := auth.NewLogoutUserUseCase(tokenService)
	forgotPasswordUseCase := auth.NewForgotPasswordUseCase(userRepo, resetTokenService, emailService, cfg.Email.AppBaseURL)
	resetPasswordUseCase := auth.NewResetPasswordUseCase(userRepo, passwordService, resetTokenService)

	// Create category use cases
	listCategoriesUseCase := category.NewListCategoriesUseCase(categoryRepo)
	createCategoryUseCase := category.NewCreateCategoryUseCase(categoryRepo)
	updateCategoryUseCase := category.NewUpdateCategoryUseCase(categoryRepo)
	deleteCategoryUseCase := category.NewDeleteCategoryUseCase(categoryRepo)

	// Create transaction use cases
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo)
	createTransactionUseCase := transaction.NewCreateTransactionUseCase(transactionRepo, categoryRepo)
	updateTransactionUseCase := transaction.NewUpdateTransactionUseCase(transactionRepo, categoryRepo)
	deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(transactionRepo)

	// Create budget plan use cases
	generatePlanUseCase := budget.NewGeneratePlanUseCase(categoryRepo, transactionRepo, aiService, suggestionRepo)
	savePlanUseCase := budget.NewSavePlanUseCase(planRepo, userRepo, emailService)
	currentPlanUseCase := budget.NewGetCurrentPlanUseCase(planRepo, transactionRepo)
	planHistoryUseCase := budget.NewPlanHistoryUseCase(planRepo)
	recommendChangesUseCase := budget.NewRecommendChangesUseCase(transactionRepo, aiService)

	// Create category budget use cases
	upsertCategoryBudgetUseCase := categorybudget.NewUpsertCategoryBudgetUseCase(categoryBudgetRepo, categoryRepo)
	listCategoryBudgetsUseCase := categorybudget.NewListCategoryBudgetsUseCase(categoryBudgetRepo)
	deleteCategoryBudgetUseCase := categorybudget.NewDeleteCategoryBudgetUseCase(categoryBudgetRepo)

	// Create alert use case
	listAlertsUseCase := alert.NewListAlertsUseCase(categoryBudgetRepo, planRepo, transactionRepo)

	// Create controllers
	healthController := controller.NewHealthController(func() bool {
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	})

	authController := controller.NewAuthController(
		registerUseCase,
		loginUseCase,
		refreshTokenUseCase,
		logoutUseCase,
		forgotPasswordUseCase,
		resetPasswordUseCase,
	)

	categoryController := controller.NewCategoryController(
		listCategoriesUseCase,
		createCategoryUseCase,
		updateCategoryUseCase,
		deleteCategoryUseCase,
	)

	transactionController := controller.NewTransactionController(
		listTransactionsUseCase,
		createTransactionUseCase,
		updateTransactionUseCase,
		deleteTransactionUseCase,
	)

	budgetController := controller.NewBudgetController(
		generatePlanUseCase,
		savePlanUseCase,
		currentPlanUseCase,
		planHistoryUseCase,
		recommendChangesUseCase,
	)

	categoryBudgetController := controller.NewCategoryBudgetController(
		upsertCategoryBudgetUseCase,
		listCategoryBudgetsUseCase,
		deleteCategoryBudgetUseCase,
	)

	alertController := controller.NewAlertController(listAlertsUseCase)

	// Create middleware
	// Use higher rate limits for E2E/test environments to prevent flaky tests
	rateLimiter := adapters.NewRedisRateLimiter(redisClient)
	var loginRateLimiter *middleware.RateLimiter
	if cfg.Server.Environment == "e2e" || cfg.Server.Environment == "test" {
		loginRateLimiter = middleware.NewRateLimiterWithConfig(rateLimiter, 1000, 1*time.Minute)
	} else {
		loginRateLimiter = middleware.NewRateLimiter(rateLimiter)
	}
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Create router
	r := router.NewRouter(
		healthController,
		authController,
		categoryController,
		transactionController,
		budgetController,
		categoryBudgetController,
		alertController,
		loginRateLimiter,
		authMiddleware,
	)

	return &Injector{
		Config:      cfg,
		DB:          db,
		Router:      r,
		EmailWorker: emailWorker,
	}, nil
}

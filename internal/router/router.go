package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fintrack-be/internal/controllers"
	applog "fintrack-be/internal/log"
	"fintrack-be/internal/middleware"
	"fintrack-be/internal/service"
)

// Dependencies carries everything the HTTP surface is built from.
// Nil rate limiters disable limiting.
type Dependencies struct {
	Logger *applog.Logger
	Tokens middleware.TokenValidator

	Categories     service.CategoryService
	PaymentMethods service.PaymentMethodService
	Expenses       service.ExpenseService
	Incomes        service.IncomeService
	Profiles       service.UserProfileService
	Feedback       service.FeedbackService

	GeneralLimiter *middleware.RateLimiter
	WriteLimiter   *middleware.RateLimiter
}

// New builds the gin engine serving /health and the /api/v1 routes
func New(deps Dependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(deps.Logger))

	// Health check endpoint (no rate limiting)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	categoryController := controllers.NewCategoryController(deps.Categories)
	paymentMethodController := controllers.NewPaymentMethodController(deps.PaymentMethods)
	expenseController := controllers.NewExpenseController(deps.Expenses)
	incomeController := controllers.NewIncomeController(deps.Incomes)
	profileController := controllers.NewUserProfileController(deps.Profiles)
	feedbackController := controllers.NewFeedbackController(deps.Feedback)

	api := router.Group("/api/v1")
	if deps.GeneralLimiter != nil {
		api.Use(deps.GeneralLimiter.LimitMiddleware())
	}
	if deps.WriteLimiter != nil {
		api.Use(middleware.WritesOnly(deps.WriteLimiter.LimitMiddleware()))
	}

	// Feedback may be submitted anonymously
	api.POST("/feedback", middleware.OptionalAuth(deps.Tokens), feedbackController.AddFeedback)

	// Protected routes - require JWT authentication; roles are checked by the services
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Tokens))
	{
		categories := protected.Group("/categories")
		categories.GET("", categoryController.GetCategories)
		categories.POST("", categoryController.AddCategory)
		categories.GET("/:id", categoryController.GetCategory)
		categories.PUT("/:id", categoryController.UpdateCategory)
		categories.DELETE("/:id", categoryController.DeleteCategory)

		paymentMethods := protected.Group("/payment-methods")
		paymentMethods.GET("", paymentMethodController.GetPaymentMethods)
		paymentMethods.POST("", paymentMethodController.AddPaymentMethod)
		paymentMethods.GET("/:id", paymentMethodController.GetPaymentMethod)
		paymentMethods.PUT("/:id", paymentMethodController.UpdatePaymentMethod)
		paymentMethods.DELETE("/:id", paymentMethodController.DeletePaymentMethod)

		expenses := protected.Group("/expenses")
		expenses.GET("", expenseController.GetExpenses)
		expenses.POST("", expenseController.AddExpense)
		expenses.GET("/:id", expenseController.GetExpense)
		expenses.PUT("/:id", expenseController.UpdateExpense)
		expenses.DELETE("/:id", expenseController.DeleteExpense)

		incomes := protected.Group("/incomes")
		incomes.GET("", incomeController.GetIncomes)
		incomes.POST("", incomeController.AddIncome)
		incomes.GET("/:id", incomeController.GetIncome)
		incomes.PUT("/:id", incomeController.UpdateIncome)
		incomes.DELETE("/:id", incomeController.DeleteIncome)

		profile := protected.Group("/profile")
		profile.GET("", profileController.GetProfile)
		profile.POST("", profileController.AddProfile)
		profile.PUT("/:id", profileController.UpdateProfile)
		profile.DELETE("/:id", profileController.DeleteProfile)

		protected.GET("/feedback", feedbackController.GetFeedbacks)
		protected.GET("/feedback/:id", feedbackController.GetFeedback)
	}

	return router
}

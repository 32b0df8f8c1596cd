package routes

import (
	"errors"

	"github.com/Govind-619/MarketSphere/controllers"
	"github.com/Govind-619/MarketSphere/middleware"
	"github.com/Govind-619/MarketSphere/utils"
	"github.com/gin-gonic/gin"
)

func initAdminRoutes(api *gin.RouterGroup, deps Dependencies) {
	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(deps.Config.JWTSecret), middleware.AdminMiddleware())

	if deps.Attempts == nil {
		journalDisabled := func(c *gin.Context) {
			utils.ErrorFrom(c, utils.ServiceUnavailableError(utils.ErrServiceUnavailable, errors.New("payment attempt journal is not configured")))
		}
		admin.GET("/payment-attempts", journalDisabled)
		admin.GET("/payment-attempts/export", journalDisabled)
		admin.GET("/payment-attempts/:id", journalDisabled)
		return
	}

	attempts := &controllers.AdminPaymentAttemptsController{Attempts: deps.Attempts}
	{
		admin.GET("/payment-attempts", attempts.ListPaymentAttempts)
		admin.GET("/payment-attempts/export", attempts.ExportPaymentAttempts)
		admin.GET("/payment-attempts/:id", attempts.GetPaymentAttempt)
	}
}

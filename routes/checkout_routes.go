package routes

import (
	"github.com/Govind-619/MarketSphere/controllers"
	"github.com/Govind-619/MarketSphere/middleware"
	"github.com/gin-gonic/gin"
)

func initCheckoutRoutes(api *gin.RouterGroup, deps Dependencies) {
	payment := controllers.NewCheckoutPaymentController(deps.Registry)

	checkoutGroup := api.Group("/checkout")
	checkoutGroup.Use(middleware.AuthMiddleware(deps.Config.JWTSecret))
	{
		checkoutGroup.PUT("/payment", payment.SelectPaymentTarget)
		checkoutGroup.GET("/payment", payment.GetPaymentSession)
		checkoutGroup.DELETE("/payment", payment.DiscardPaymentSession)
		checkoutGroup.GET("/payment/slip", payment.DownloadTransferSlip)
	}
}

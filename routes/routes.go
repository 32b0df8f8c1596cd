package routes

import (
	"github.com/Govind-619/MarketSphere/checkout"
	"github.com/Govind-619/MarketSphere/config"
	"github.com/Govind-619/MarketSphere/controllers"
	"github.com/Govind-619/MarketSphere/utils"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Dependencies are the collaborators the HTTP surface needs.
type Dependencies struct {
	Config   *config.Config
	Registry *checkout.Registry
	// Attempts is nil when the journal database is not configured.
	Attempts controllers.AttemptLister
	DB       *gorm.DB
}

// SetupRouter initializes and returns the Gin router with all routes
func SetupRouter(deps Dependencies) *gin.Engine {
	if deps.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(
		utils.RequestIDMiddleware(),
		utils.LoggerMiddleware(),
		utils.RecoveryMiddleware(),
		utils.CORSMiddleware(),
		utils.SecurityHeadersMiddleware(),
	)

	// Session cookie carries the checkout session id
	store := cookie.NewStore([]byte(deps.Config.SessionSecret))
	store.Options(sessions.Options{
		MaxAge:   60 * 60 * 24, // 1 day
		Path:     "/",
		Secure:   deps.Config.Env == "production",
		HttpOnly: true,
	})
	router.Use(sessions.Sessions("marketsphere", store))

	router.GET("/health", controllers.HealthCheck(deps.Registry, deps.DB))

	// API version group
	api := router.Group("/" + utils.APIVersion)
	{
		initCheckoutRoutes(api, deps)
		initAdminRoutes(api, deps)
	}

	return router
}

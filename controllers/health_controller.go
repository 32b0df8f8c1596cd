package controllers

import (
	"net/http"

	"github.com/Govind-619/MarketSphere/checkout"
	"github.com/Govind-619/MarketSphere/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// HealthCheck reports liveness plus the state of the journal database. db may
// be nil when the journal is disabled.
func HealthCheck(registry *checkout.Registry, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := http.StatusOK
		database := "disabled"
		if db != nil {
			database = "up"
			sqlDB, err := db.DB()
			if err == nil {
				err = sqlDB.PingContext(c.Request.Context())
			}
			if err != nil {
				utils.LogError("Health check: database unreachable: %v", err)
				database = "down"
				status = http.StatusServiceUnavailable
			}
		}

		sessionStore := "up"
		if err := utils.CheckSessionStore(c); err != nil {
			utils.LogError("Health check: %v", err)
			sessionStore = "down"
			status = http.StatusServiceUnavailable
		}

		c.JSON(status, gin.H{
			"status":            http.StatusText(status),
			"database":          database,
			"session_store":     sessionStore,
			"checkout_sessions": registry.Len(),
		})
	}
}

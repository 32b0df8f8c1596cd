package middleware

import (
	"net/http"
	"testing"

	"github.com/Govind-619/MarketSphere/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

const testSecret = "test-secret"

func testRouter() *gin.Engine {
	router := utils.NewTestRouter()
	router.GET("/me", AuthMiddleware(testSecret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": c.GetString(utils.ContextUserID),
			"token":   c.GetString(utils.ContextToken),
		})
	})
	router.GET("/admin", AuthMiddleware(testSecret), AdminMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return router
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

func TestAuthMiddleware(t *testing.T) {
	router := testRouter()
	token := utils.GetTestToken(t, testSecret, "user-1", utils.RoleCustomer)

	tests := []struct {
		name    string
		headers map[string]string
		status  int
	}{
		{"missing header", nil, http.StatusUnauthorized},
		{"not bearer", map[string]string{"Authorization": token}, http.StatusUnauthorized},
		{"wrong secret", bearer(utils.GetTestToken(t, "other", "user-1", utils.RoleCustomer)), http.StatusUnauthorized},
		{"valid", bearer(token), http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := utils.MakeTestRequest(t, router, utils.TestRequest{Method: http.MethodGet, Path: "/me", Headers: tt.headers})
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}

	resp := utils.MakeTestRequest(t, router, utils.TestRequest{Method: http.MethodGet, Path: "/me", Headers: bearer(token)})
	assert.Equal(t, "user-1", resp.Body["user_id"])
	assert.Equal(t, token, resp.Body["token"])
}

func TestAdminMiddleware(t *testing.T) {
	router := testRouter()

	customer := utils.GetTestToken(t, testSecret, "user-1", utils.RoleCustomer)
	resp := utils.MakeTestRequest(t, router, utils.TestRequest{Method: http.MethodGet, Path: "/admin", Headers: bearer(customer)})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	admin := utils.GetTestToken(t, testSecret, "admin-1", utils.RoleAdmin)
	resp = utils.MakeTestRequest(t, router, utils.TestRequest{Method: http.MethodGet, Path: "/admin", Headers: bearer(admin)})
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

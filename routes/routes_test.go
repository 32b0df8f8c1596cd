package routes

import (
	"context"
	"net/http"
	"testing"

	"github.com/Govind-619/MarketSphere/checkout"
	"github.com/Govind-619/MarketSphere/config"
	"github.com/Govind-619/MarketSphere/models"
	"github.com/Govind-619/MarketSphere/store"
	"github.com/Govind-619/MarketSphere/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jwtSecret = "jwt-secret"

type emptyLister struct{}

func (emptyLister) List(context.Context, store.AttemptFilter) ([]models.PaymentAttempt, int64, error) {
	return nil, 0, nil
}

func (emptyLister) Get(context.Context, uint) (*models.PaymentAttempt, error) {
	return nil, store.ErrAttemptNotFound
}

func testDeps(t *testing.T) Dependencies {
	t.Helper()
	registry, err := checkout.NewRegistry(4, func(id, token string) *checkout.Session {
		return checkout.NewSession(checkout.Options{ID: id})
	})
	require.NoError(t, err)
	t.Cleanup(registry.Close)
	return Dependencies{
		Config:   &config.Config{Env: "test", JWTSecret: jwtSecret, SessionSecret: "session-secret"},
		Registry: registry,
	}
}

func auth(t *testing.T, role string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + utils.GetTestToken(t, jwtSecret, "user-1", role)}
}

func TestHealth(t *testing.T) {
	router := SetupRouter(testDeps(t))
	resp := utils.MakeTestRequest(t, router, utils.TestRequest{Method: http.MethodGet, Path: "/health"})

	utils.AssertResponse(t, resp, http.StatusOK, map[string]interface{}{
		"status":            "OK",
		"database":          "disabled",
		"session_store":     "up",
		"checkout_sessions": float64(0),
	})
	assert.NotEmpty(t, resp.Header.Get(utils.RequestIDHeader))
}

func TestCheckoutRoutesRequireAuth(t *testing.T) {
	router := SetupRouter(testDeps(t))

	resp := utils.MakeTestRequest(t, router, utils.TestRequest{Method: http.MethodGet, Path: "/v1/checkout/payment"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = utils.MakeTestRequest(t, router, utils.TestRequest{Method: http.MethodGet, Path: "/v1/checkout/payment", Headers: auth(t, utils.RoleCustomer)})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAdminRoutes(t *testing.T) {
	deps := testDeps(t)
	router := SetupRouter(deps)

	resp := utils.MakeTestRequest(t, router, utils.TestRequest{Method: http.MethodGet, Path: "/v1/admin/payment-attempts", Headers: auth(t, utils.RoleCustomer)})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = utils.MakeTestRequest(t, router, utils.TestRequest{Method: http.MethodGet, Path: "/v1/admin/payment-attempts", Headers: auth(t, utils.RoleAdmin)})
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	deps.Attempts = emptyLister{}
	router = SetupRouter(deps)
	resp = utils.MakeTestRequest(t, router, utils.TestRequest{Method: http.MethodGet, Path: "/v1/admin/payment-attempts", Headers: auth(t, utils.RoleAdmin)})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = utils.MakeTestRequest(t, router, utils.TestRequest{Method: http.MethodGet, Path: "/v1/admin/payment-attempts/3", Headers: auth(t, utils.RoleAdmin)})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

package utils

import (
	"fmt"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const checkoutSessionKey = "checkout_session_id"

func CheckSessionStore(c *gin.Context) error {
	session := sessions.Default(c)
	session.Set("test", "test")
	if err := session.Save(); err != nil {
		return fmt.Errorf("session store check failed: %v", err)
	}
	session.Delete("test")
	return session.Save()
}

// CheckoutSessionID returns the checkout session id of the browser, issuing one
// when create is set and none exists yet.
func CheckoutSessionID(c *gin.Context, create bool) (string, error) {
	session := sessions.Default(c)
	if id, ok := session.Get(checkoutSessionKey).(string); ok && id != "" {
		return id, nil
	}
	if !create {
		return "", nil
	}
	id := uuid.New().String()
	session.Set(checkoutSessionKey, id)
	if err := session.Save(); err != nil {
		return "", fmt.Errorf("failed to save checkout session: %v", err)
	}
	LogDebug("Issued checkout session %s", id)
	return id, nil
}

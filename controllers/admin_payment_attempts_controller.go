package controllers

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Govind-619/MarketSphere/models"
	"github.com/Govind-619/MarketSphere/reports"
	"github.com/Govind-619/MarketSphere/store"
	"github.com/Govind-619/MarketSphere/utils"
	"github.com/gin-gonic/gin"
)

// AttemptLister reads the payment-attempt journal.
type AttemptLister interface {
	List(ctx context.Context, filter store.AttemptFilter) ([]models.PaymentAttempt, int64, error)
	Get(ctx context.Context, id uint) (*models.PaymentAttempt, error)
}

type AdminPaymentAttemptsController struct {
	Attempts AttemptLister
}

func attemptFilter(c *gin.Context) (store.AttemptFilter, error) {
	filter := store.AttemptFilter{
		OrderID:   c.Query("order_id"),
		SessionID: c.Query("session_id"),
		Outcome:   c.Query("outcome"),
	}
	if filter.SessionID != "" {
		if err := utils.ValidateStringLength(filter.SessionID, 1, utils.MaxIdentifierLength); err != nil {
			return filter, fmt.Errorf("session_id %v", err)
		}
	}
	switch filter.Outcome {
	case "", models.AttemptOutcomeCommitted, models.AttemptOutcomeAbandoned, models.AttemptOutcomeFailed:
	default:
		return filter, fmt.Errorf("unknown outcome %q", filter.Outcome)
	}
	return filter, nil
}

// GET /v1/admin/payment-attempts
func (ctl *AdminPaymentAttemptsController) ListPaymentAttempts(c *gin.Context) {
	filter, err := attemptFilter(c)
	if err != nil {
		utils.BadRequest(c, "Invalid filter", err.Error())
		return
	}
	pagination := utils.NewPagination(c)
	filter.Limit = pagination.Limit
	filter.Offset = pagination.Offset

	attempts, total, err := ctl.Attempts.List(c.Request.Context(), filter)
	if err != nil {
		utils.LogError("Failed to list payment attempts: %v", err)
		utils.InternalServerError(c, "Failed to fetch payment attempts", err.Error())
		return
	}
	pagination.SetTotal(total)
	if attempts == nil {
		attempts = []models.PaymentAttempt{}
	}
	utils.SuccessWithPagination(c, utils.MsgAttemptsFetched, attempts, pagination)
}

// GET /v1/admin/payment-attempts/:id
func (ctl *AdminPaymentAttemptsController) GetPaymentAttempt(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		utils.BadRequest(c, "Invalid payment attempt ID", nil)
		return
	}

	attempt, err := ctl.Attempts.Get(c.Request.Context(), uint(id))
	if errors.Is(err, store.ErrAttemptNotFound) {
		utils.ErrorFrom(c, utils.NotFoundError("Payment attempt not found", err))
		return
	}
	if err != nil {
		utils.LogError("Failed to fetch payment attempt %d: %v", id, err)
		utils.InternalServerError(c, "Failed to fetch payment attempt", err.Error())
		return
	}
	utils.Success(c, "Payment attempt retrieved", attempt)
}

// GET /v1/admin/payment-attempts/export
func (ctl *AdminPaymentAttemptsController) ExportPaymentAttempts(c *gin.Context) {
	filter, err := attemptFilter(c)
	if err != nil {
		utils.BadRequest(c, "Invalid filter", err.Error())
		return
	}

	attempts, _, err := ctl.Attempts.List(c.Request.Context(), filter)
	if err != nil {
		utils.LogError("Failed to list payment attempts for export: %v", err)
		utils.InternalServerError(c, "Failed to fetch payment attempts", err.Error())
		return
	}

	now := time.Now()
	file, err := reports.AttemptsWorkbook(attempts, now)
	if err != nil {
		utils.LogError("Failed to create attempts workbook: %v", err)
		utils.InternalServerError(c, "Failed to create Excel sheet", err.Error())
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=payment_attempts_%s.xlsx", now.Format("20060102_150405")))
	if err := file.Write(c.Writer); err != nil {
		utils.LogError("Failed to write Excel file: %v", err)
		return
	}
	utils.LogInfo("Exported %d payment attempts", len(attempts))
}

package controllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Govind-619/MarketSphere/checkout"
	"github.com/Govind-619/MarketSphere/models"
	"github.com/Govind-619/MarketSphere/reports"
	"github.com/Govind-619/MarketSphere/utils"
	"github.com/gin-gonic/gin"
)

// DefaultWaitTimeout bounds GET ?wait=1.
const DefaultWaitTimeout = 30 * time.Second

// CheckoutPaymentController serves the payment step of checkout. Each browser
// gets one checkout.Session, found through the session cookie.
type CheckoutPaymentController struct {
	Registry    *checkout.Registry
	WaitTimeout time.Duration
}

func NewCheckoutPaymentController(registry *checkout.Registry) *CheckoutPaymentController {
	return &CheckoutPaymentController{Registry: registry, WaitTimeout: DefaultWaitTimeout}
}

type selectPaymentRequest struct {
	OrderID string `json:"order_id" binding:"required"`
	Method  string `json:"method" binding:"required"`
}

// PUT /v1/checkout/payment
func (ctl *CheckoutPaymentController) SelectPaymentTarget(c *gin.Context) {
	var req selectPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid payment selection request: %v", err)
		utils.BadRequest(c, "Invalid request. order_id and method are required", err.Error())
		return
	}

	var problems utils.FieldValidationErrors
	if ok, msg := utils.ValidateIdentifier(req.OrderID); !ok {
		problems = append(problems, utils.FieldValidationError{Field: "order_id", Message: utils.ErrInvalidOrderID + ": " + msg})
	}
	method, err := models.ParsePaymentMethod(req.Method)
	if err != nil {
		problems = append(problems, utils.FieldValidationError{Field: "method", Message: utils.ErrInvalidMethod + ": " + err.Error()})
	}
	if len(problems) > 0 {
		utils.LogError("Rejected payment selection: %v", problems)
		utils.BadRequest(c, "Invalid payment selection", problems)
		return
	}

	sessionID, err := utils.CheckoutSessionID(c, true)
	if err != nil {
		utils.LogError("Failed to issue checkout session: %v", err)
		utils.InternalServerError(c, utils.ErrInternalServer, nil)
		return
	}

	session := ctl.Registry.Acquire(sessionID, c.GetString(utils.ContextToken))
	gen, err := session.Select(req.OrderID, method)
	if err != nil {
		if errors.Is(err, checkout.ErrSessionClosed) {
			utils.Conflict(c, "Checkout session was closed, please retry", nil)
			return
		}
		utils.BadRequest(c, "Invalid payment selection", err.Error())
		return
	}
	utils.LogInfo("User %s selected %s for order %s (session %s, generation %d)",
		c.GetString(utils.ContextUserID), method, req.OrderID, sessionID, gen.Seq())

	utils.Accepted(c, utils.MsgPaymentSelected, session.Snapshot())
}

// GET /v1/checkout/payment[?wait=1]
func (ctl *CheckoutPaymentController) GetPaymentSession(c *gin.Context) {
	session, ok := ctl.lookup(c)
	if !ok {
		utils.NotFound(c, utils.ErrNoPaymentSession)
		return
	}

	snap := session.Snapshot()
	if wantsWait(c) {
		snap = ctl.wait(c.Request.Context(), session)
	}
	utils.Success(c, utils.MsgPaymentSession, snap)
}

// DELETE /v1/checkout/payment
func (ctl *CheckoutPaymentController) DiscardPaymentSession(c *gin.Context) {
	sessionID, err := utils.CheckoutSessionID(c, false)
	if err == nil && sessionID != "" && ctl.Registry.Remove(sessionID) {
		utils.LogInfo("Discarded checkout session %s", sessionID)
	}
	utils.Success(c, utils.MsgPaymentDiscarded, nil)
}

// GET /v1/checkout/payment/slip
func (ctl *CheckoutPaymentController) DownloadTransferSlip(c *gin.Context) {
	session, ok := ctl.lookup(c)
	if !ok {
		utils.NotFound(c, utils.ErrNoPaymentSession)
		return
	}

	snap := session.Snapshot()
	switch snap.Status {
	case checkout.StatusError:
		utils.ErrorFrom(c, snapshotError(snap))
		return
	case checkout.StatusReady:
	default:
		utils.Conflict(c, utils.ErrPaymentNotReady, gin.H{"status": snap.Status, "phase": snap.Phase})
		return
	}
	if snap.View.Method != models.PaymentMethodBankTransfer {
		utils.Conflict(c, "Transfer slips are only available for bank transfers", nil)
		return
	}

	pdf, err := reports.TransferSlipPDF(*snap.Order, *snap.View, time.Now())
	if err != nil {
		utils.LogError("Failed to render transfer slip for order %s: %v", snap.OrderID, err)
		utils.InternalServerError(c, "Failed to generate transfer slip", err.Error())
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=transfer_slip_%s.pdf", snap.OrderID))
	c.Data(http.StatusOK, "application/pdf", pdf)
	utils.LogInfo("Transfer slip for order %s downloaded", snap.OrderID)
}

func (ctl *CheckoutPaymentController) lookup(c *gin.Context) (*checkout.Session, bool) {
	sessionID, err := utils.CheckoutSessionID(c, false)
	if err != nil || sessionID == "" {
		return nil, false
	}
	return ctl.Registry.Get(sessionID)
}

// wait blocks until the current generation settles. A generation replaced
// while waiting is followed to its successor.
func (ctl *CheckoutPaymentController) wait(ctx context.Context, session *checkout.Session) checkout.Snapshot {
	timeout := ctl.WaitTimeout
	if timeout <= 0 {
		timeout = DefaultWaitTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	for {
		gen, ok := session.Current()
		if !ok {
			return session.Snapshot()
		}
		snap, err := session.Wait(ctx, gen)
		if errors.Is(err, checkout.ErrSuperseded) && ctx.Err() == nil {
			continue
		}
		return snap
	}
}

func wantsWait(c *gin.Context) bool {
	switch c.Query("wait") {
	case "1", "true", "yes":
		return true
	}
	return false
}

// snapshotError turns the failure of a snapshot into an HTTP error. Every kind
// is an upstream API failure from the client's point of view.
func snapshotError(snap checkout.Snapshot) error {
	if snap.Error == nil {
		return utils.NewAppError(http.StatusInternalServerError, utils.ErrInternalServer, nil)
	}
	message := "Payment details could not be prepared"
	switch snap.Error.Kind {
	case checkout.KindOrderFetch, checkout.KindOrderIDMismatch:
		message = "Order could not be loaded"
	case checkout.KindPaymentFetch:
		message = "Payments could not be loaded"
	case checkout.KindPaymentCreation:
		message = "Bank transfer could not be created"
	}
	return utils.BadGatewayError(message, fmt.Errorf("%s: %s", snap.Error.Kind, snap.Error.Message))
}

package httpapi

import (
	"errors"
	"net/http"

	"collections-center/internal/accounts"
	"collections-center/internal/flow"
	"collections-center/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Portal sessions track a verified customer through the self-service flow:
// idle after verification, then either on a call or in the payment form,
// never both at once.

func (h Handlers) CreatePortalSession(c *gin.Context) {
	var req accounts.VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	account, err := h.Accounts.Verify(c.Request.Context(), req)
	switch {
	case errors.Is(err, accounts.ErrNotFound):
		h.countVerification("not_found")
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		return
	case errors.Is(err, accounts.ErrInvalidArgument):
		h.countVerification("invalid")
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Date of birth required for verification"})
		return
	case err != nil:
		logger.FromGin(c).Error("verification failed", "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Verification failed"})
		return
	}

	h.countVerification("verified")
	c.JSON(http.StatusCreated, h.Flow.Create(account))
}

func (h Handlers) GetPortalSession(c *gin.Context) {
	sess, err := h.Flow.Get(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}
	c.JSON(http.StatusOK, sess)
}

func (h Handlers) PortalStartCall(c *gin.Context) {
	h.portalTransition(c, h.Flow.StartCall)
}

func (h Handlers) PortalEndCall(c *gin.Context) {
	h.portalTransition(c, h.Flow.EndCall)
}

func (h Handlers) PortalStartPayment(c *gin.Context) {
	h.portalTransition(c, h.Flow.StartPayment)
}

func (h Handlers) PortalCancelPayment(c *gin.Context) {
	h.portalTransition(c, h.Flow.CancelPayment)
}

type completePaymentRequest struct {
	Amount float64 `json:"amount"`
}

// PortalCompletePayment applies a confirmed payment to the session's
// account snapshot. The charge itself goes through the payment simulator
// first; this endpoint only records the outcome and returns to idle.
func (h Handlers) PortalCompletePayment(c *gin.Context) {
	var req completePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	sess, err := h.Flow.CompletePayment(c.Param("id"), req.Amount)
	switch {
	case errors.Is(err, flow.ErrSessionNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	case errors.Is(err, flow.ErrInvalidAmount):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "A positive amount is required"})
		return
	case errors.Is(err, flow.ErrAmountExceedsBalance):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "Amount exceeds the outstanding balance"})
		return
	case errors.Is(err, flow.ErrInvalidTransition):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "No payment in progress"})
		return
	case err != nil:
		logger.FromGin(c).Error("payment completion failed", "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Payment completion failed"})
		return
	}
	c.JSON(http.StatusOK, sess)
}

func (h Handlers) portalTransition(c *gin.Context, fn func(string) (flow.Session, error)) {
	sess, err := fn(c.Param("id"))
	switch {
	case errors.Is(err, flow.ErrSessionNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	case errors.Is(err, flow.ErrInvalidTransition):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "Action not allowed in the current state"})
		return
	case err != nil:
		logger.FromGin(c).Error("session transition failed", "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Session update failed"})
		return
	}
	c.JSON(http.StatusOK, sess)
}

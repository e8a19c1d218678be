package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"collections-center/internal/accounts"
	"collections-center/internal/calls"
	"collections-center/internal/flow"
	"collections-center/internal/media"
	"collections-center/internal/payments"
	"collections-center/pkg/logger"
	"collections-center/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// Handlers groups HTTP handlers for dependency injection.
// Keep these thin: parse/validate input, call internal services, return JSON.
type Handlers struct {
	Accounts *accounts.Service
	Calls    *calls.Service
	Payments *payments.Simulator
	Flow     *flow.Store

	// Tokens is nil when media credentials are unconfigured; only token
	// issuance and room management fail in that case.
	Tokens   *media.TokenIssuer
	MediaURL string

	Metrics *metrics.Metrics

	// Now is injectable for deterministic tests. Defaults to time.Now.
	Now func() time.Time
}

func (h Handlers) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// --- Verification ---

func (h Handlers) Verify(c *gin.Context) {
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
	c.JSON(http.StatusOK, gin.H{"verified": true, "account": account})
}

// --- Call sessions ---

func (h Handlers) InitiateCall(c *gin.Context) {
	var req calls.InitiateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	sess, err := h.Calls.Initiate(c.Request.Context(), req)
	switch {
	case errors.Is(err, calls.ErrInvalidArgument):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Phone number, customer name, and amount are required"})
		return
	case errors.Is(err, calls.ErrCapReached):
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "A call for this number is already in progress"})
		return
	case errors.Is(err, media.ErrNotConfigured):
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "LiveKit credentials not configured"})
		return
	case err != nil:
		logger.FromGin(c).Error("call initiation failed", "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to initiate call"})
		return
	}

	if h.Metrics != nil {
		h.Metrics.CallsInitiated.Inc()
	}
	c.JSON(http.StatusOK, sess)
}

func (h Handlers) CallStatus(c *gin.Context) {
	room := c.Query("room")
	if room == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Room name is required"})
		return
	}

	res, err := h.Calls.Status(c.Request.Context(), room)
	switch {
	case errors.Is(err, media.ErrNotConfigured):
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "LiveKit credentials not configured"})
		return
	case err != nil:
		logger.FromGin(c).Error("status query failed", "room", room, "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to get call status"})
		return
	}

	if h.Metrics != nil {
		h.Metrics.StatusQueries.WithLabelValues(string(res.Status)).Inc()
	}
	c.JSON(http.StatusOK, res)
}

func (h Handlers) EndCall(c *gin.Context) {
	room := c.Query("room")
	if room == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Room name is required"})
		return
	}

	err := h.Calls.End(c.Request.Context(), room)
	switch {
	case errors.Is(err, media.ErrRoomNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Call not found or has ended"})
		return
	case errors.Is(err, media.ErrNotConfigured):
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "LiveKit credentials not configured"})
		return
	case err != nil:
		logger.FromGin(c).Error("call teardown failed", "room", room, "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to end call"})
		return
	}

	if h.Metrics != nil {
		h.Metrics.CallsEnded.Inc()
	}
	c.JSON(http.StatusOK, gin.H{"status": "ended", "room": room})
}

// --- Token issuance ---

type tokenRequest struct {
	Room     string          `json:"room"`
	Username string          `json:"username"`
	Metadata json.RawMessage `json:"metadata,omitempty"`
}

func (h Handlers) IssueToken(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if req.Room == "" || req.Username == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Room and username are required"})
		return
	}
	if h.Tokens == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "LiveKit credentials not configured"})
		return
	}

	metadata := "{}"
	if len(req.Metadata) > 0 {
		metadata = string(req.Metadata)
	}

	token, err := h.Tokens.MintParticipant(h.now(), req.Room, req.Username, metadata)
	if err != nil {
		logger.FromGin(c).Error("token issuance failed", "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to create access token"})
		return
	}

	if h.Metrics != nil {
		h.Metrics.TokensIssued.Inc()
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "url": h.MediaURL})
}

// --- Payments ---

func (h Handlers) SubmitPayment(c *gin.Context) {
	var req payments.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	res, err := h.Payments.Submit(c.Request.Context(), req)
	switch {
	case errors.Is(err, payments.ErrInvalidArgument):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Amount and a valid payment method are required"})
		return
	case err != nil:
		logger.FromGin(c).Error("payment simulation failed", "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Payment failed"})
		return
	}

	if h.Metrics != nil {
		h.Metrics.Payments.WithLabelValues(string(res.Method)).Inc()
	}
	c.JSON(http.StatusOK, res)
}

func (h Handlers) PaymentOptions(c *gin.Context) {
	balance, err := strconv.ParseFloat(c.Query("balance"), 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "A numeric balance is required"})
		return
	}

	opts, err := payments.PlanOptions(balance)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "A positive balance is required"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"options": opts})
}

func (h Handlers) countVerification(outcome string) {
	if h.Metrics != nil {
		h.Metrics.Verifications.WithLabelValues(outcome).Inc()
	}
}

package payments

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"collections-center/internal/journal"

	"github.com/google/uuid"
)

var ErrInvalidArgument = errors.New("payments: invalid argument")

const phonePaymentLine = "1-800-PAY-DEBT"

// Simulator fakes payment settlement: card/bank payments wait a fixed delay
// and return a synthetic confirmation. There is no gateway, no idempotency
// key and no ledger update. Explicitly non-production.
type Simulator struct {
	delay   time.Duration
	journal *journal.Service

	clock   func() time.Time
	newCode func() string
}

func NewSimulator(delay time.Duration, jrnl *journal.Service) *Simulator {
	if delay < 0 {
		delay = 0
	}
	return &Simulator{
		delay:   delay,
		journal: jrnl,
		clock:   time.Now,
		newCode: randomConfirmationCode,
	}
}

type SubmitRequest struct {
	Amount float64 `json:"amount"`
	Method string  `json:"method"`
}

// Submit processes a simulated payment. The amount-vs-balance bound is a
// portal-session concern; this endpoint deliberately does not re-check it.
func (s *Simulator) Submit(ctx context.Context, req SubmitRequest) (Result, error) {
	method, ok := ParseMethod(req.Method)
	if !ok {
		return Result{}, fmt.Errorf("%w: unknown method %q", ErrInvalidArgument, req.Method)
	}

	if method == MethodPhone {
		return Result{
			Method: MethodPhone,
			Instructions: &PhoneInstructions{
				PaymentLine: phonePaymentLine,
				Message:     "To make a payment by phone, please call our automated payment line. Have your account number ready.",
			},
		}, nil
	}

	if req.Amount <= 0 {
		return Result{}, fmt.Errorf("%w: amount must be positive", ErrInvalidArgument)
	}

	if err := s.settleDelay(ctx); err != nil {
		return Result{}, err
	}

	now := s.clock().UTC()
	res := Result{
		Success:            true,
		Amount:             req.Amount,
		Method:             method,
		Timestamp:          now.Format(time.RFC3339),
		ConfirmationNumber: s.newCode(),
	}

	if s.journal != nil {
		if err := s.journal.PaymentConfirmed(ctx, res.ConfirmationNumber, res.Amount, fmt.Sprintf(`{"method":%q}`, method)); err != nil {
			slog.Warn("journal write failed", "confirmation", res.ConfirmationNumber, "err", err)
		}
	}
	return res, nil
}

func (s *Simulator) settleDelay(ctx context.Context) error {
	if s.delay <= 0 {
		return nil
	}
	t := time.NewTimer(s.delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// randomConfirmationCode yields "CONF-" plus nine uppercase hex characters.
// Uniqueness is best-effort only.
func randomConfirmationCode() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "CONF-" + raw[:9]
}

package services

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/damianGG/posadzki-zywiczne-sub001/external/przelewy24"
	"github.com/damianGG/posadzki-zywiczne-sub001/internal/model"

	"go.uber.org/zap"
)

var (
	// ErrInvalidSignature marks a forged or corrupted callback.
	ErrInvalidSignature = errors.New("invalid notification signature")
	// ErrOrderNotFound means the callback's session id matches no order.
	ErrOrderNotFound = errors.New("order not found")
	// ErrAmountMismatch means the callback's amount does not match the order.
	ErrAmountMismatch = errors.New("notification amount does not match order")
)

// Mailer sends the customer-facing confirmation after a payment lands.
type Mailer interface {
	SendOrderConfirmation(ctx context.Context, toEmail, orderNumber string, total float64, currency string) error
}

type PaymentService struct {
	Orders   OrderStore
	Payments PaymentStore
	Gateway  PaymentGateway
	Mail     Mailer // optional
	Log      *zap.Logger
}

func NewPaymentService(
	orders OrderStore,
	payments PaymentStore,
	gateway PaymentGateway,
	mail Mailer,
	log *zap.Logger,
) *PaymentService {
	return &PaymentService{
		Orders:   orders,
		Payments: payments,
		Gateway:  gateway,
		Mail:     mail,
		Log:      log,
	}
}

// HandleNotification processes the gateway's asynchronous status callback.
// It is idempotent against redelivery: an order whose payment status is
// already terminal is acknowledged without any state change or side effect.
func (s *PaymentService) HandleNotification(ctx context.Context, n przelewy24.Notification) error {
	if !s.Gateway.VerifyNotification(n) {
		s.Log.Warn("rejected payment notification: bad signature",
			zap.String("sessionId", n.SessionID),
			zap.Int64("gatewayOrderId", n.OrderID))
		return ErrInvalidSignature
	}

	order, err := s.Orders.GetByNumber(ctx, n.SessionID)
	if err != nil {
		return err
	}
	if order == nil {
		return ErrOrderNotFound
	}

	// compare against the amount we actually registered with the
	// gateway; the order total is the fallback when the correlation
	// record is missing
	payment, err := s.Payments.GetBySessionID(ctx, n.SessionID)
	if err != nil {
		return err
	}
	expected := ToMinorUnits(order.TotalAmount)
	if payment != nil {
		expected = payment.Amount
	}
	if n.Amount != expected {
		s.Log.Warn("rejected payment notification: amount mismatch",
			zap.String("orderNumber", order.OrderNumber),
			zap.Int64("got", n.Amount),
			zap.Int64("want", expected))
		return ErrAmountMismatch
	}

	// redelivered notification; already settled
	if order.PaymentStatus.IsTerminal() {
		return nil
	}
	if !order.PaymentStatus.CanTransition(model.PaymentStatusPaid) {
		return nil
	}

	payload, _ := json.Marshal(n)
	gatewayOrderID := strconv.FormatInt(n.OrderID, 10)
	if err := s.Payments.FinalizePaid(ctx, order.OrderID, gatewayOrderID, payload); err != nil {
		return err
	}

	s.Log.Info("payment confirmed",
		zap.String("orderNumber", order.OrderNumber),
		zap.String("gatewayOrderId", gatewayOrderID))

	if s.Mail != nil {
		if err := s.Mail.SendOrderConfirmation(ctx, order.CustomerEmail, order.OrderNumber, order.TotalAmount, order.Currency); err != nil {
			// the payment is settled; a lost email must not fail the webhook
			s.Log.Error("order confirmation email failed",
				zap.String("orderNumber", order.OrderNumber),
				zap.Error(err))
		}
	}
	return nil
}

// CancelPending marks an unpaid gateway order as cancelled, e.g. from the
// admin view when the customer abandoned the hosted page for good.
func (s *PaymentService) CancelPending(ctx context.Context, orderID int64) error {
	order, err := s.Orders.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return ErrOrderNotFound
	}
	if !order.PaymentStatus.CanTransition(model.PaymentStatusCancelled) {
		return errors.New("payment already resolved")
	}
	return s.Payments.FinalizeFailed(ctx, orderID, model.PaymentStatusCancelled, nil)
}

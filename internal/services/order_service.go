package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/damianGG/posadzki-zywiczne-sub001/external/przelewy24"
	"github.com/damianGG/posadzki-zywiczne-sub001/internal/model"
	"github.com/damianGG/posadzki-zywiczne-sub001/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const orderNumberRetries = 3

// ErrCheckoutInvalid marks a checkout rejected because of the client's
// input (missing fields, bad quantities, tampered prices). Storage and
// gateway faults are returned unwrapped.
var ErrCheckoutInvalid = errors.New("invalid checkout request")

// OrderStore is the persistence boundary for orders.
type OrderStore interface {
	CreateWithItems(ctx context.Context, o *model.Order, items []model.OrderItem) (int64, error)
	GetByID(ctx context.Context, orderID int64) (*model.Order, error)
	GetByNumber(ctx context.Context, orderNumber string) (*model.Order, error)
	GetItems(ctx context.Context, orderID int64) ([]model.OrderItem, error)
	List(ctx context.Context, paymentStatus string) ([]model.Order, error)
	SetP24Token(ctx context.Context, orderID int64, token string) error
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
}

// PaymentStore is the persistence boundary for payment attempts.
type PaymentStore interface {
	CreatePending(ctx context.Context, p *model.Payment) (int64, error)
	GetBySessionID(ctx context.Context, sessionID string) (*model.Payment, error)
	FinalizePaid(ctx context.Context, orderID int64, gatewayOrderID string, payload []byte) error
	FinalizeFailed(ctx context.Context, orderID int64, status model.PaymentStatus, payload []byte) error
}

// PaymentGateway is the hosted-payment-page boundary.
type PaymentGateway interface {
	RegisterTransaction(ctx context.Context, tx przelewy24.Transaction) (string, error)
	PaymentURL(token string) string
	VerifyNotification(n przelewy24.Notification) bool
}

// CheckoutRequest is the order-creation input contract.
type CheckoutRequest struct {
	CustomerName    string           `json:"customerName"`
	CustomerEmail   string           `json:"customerEmail"`
	CustomerPhone   string           `json:"customerPhone"`
	CustomerAddress string           `json:"customerAddress"`
	CustomerCity    string           `json:"customerCity"`
	CustomerZip     string           `json:"customerZip"`
	PaymentMethod   string           `json:"paymentMethod"`
	Notes           string           `json:"notes,omitempty"`
	Items           []model.CartItem `json:"items"`
	TotalAmount     float64          `json:"totalAmount"`
}

// CheckoutResult is what the storefront gets back.
type CheckoutResult struct {
	OrderID           int64  `json:"orderId"`
	OrderNumber       string `json:"orderNumber"`
	PaymentURL        string `json:"paymentUrl,omitempty"`
	PaymentInitFailed bool   `json:"paymentInitFailed,omitempty"`
}

// OrderDetails backs the read-only order status page.
type OrderDetails struct {
	Order model.Order       `json:"order"`
	Items []model.OrderItem `json:"items"`
}

// CheckoutOutcome names the policy applied after a gateway registration
// attempt: the order is kept regardless of the gateway result (losing the
// sale is worse than a temporarily payment-less order), and payment stays
// pending until the gateway confirms it.
type CheckoutOutcome struct {
	KeepOrder         bool
	PaymentStatus     model.PaymentStatus
	PaymentInitFailed bool
}

// DecideCheckoutOutcome is the fail-open-on-order, fail-closed-on-payment
// rule as a pure function.
func DecideCheckoutOutcome(registerErr error) CheckoutOutcome {
	return CheckoutOutcome{
		KeepOrder:         true,
		PaymentStatus:     model.PaymentStatusPending,
		PaymentInitFailed: registerErr != nil,
	}
}

type OrderService struct {
	Orders    OrderStore
	Payments  PaymentStore
	Validator *CartValidator
	Gateway   PaymentGateway
	Log       *zap.Logger

	Currency  string // e.g. PLN
	PublicURL string // base for return/status callback URLs
}

func NewOrderService(
	orders OrderStore,
	payments PaymentStore,
	validator *CartValidator,
	gateway PaymentGateway,
	log *zap.Logger,
	currency string,
	publicURL string,
) *OrderService {
	return &OrderService{
		Orders:    orders,
		Payments:  payments,
		Validator: validator,
		Gateway:   gateway,
		Log:       log,
		Currency:  currency,
		PublicURL: publicURL,
	}
}

// Checkout materializes a validated cart plus customer details into a
// persisted order, then branches on the payment method.
func (s *OrderService) Checkout(ctx context.Context, req CheckoutRequest) (*CheckoutResult, error) {
	if err := validateCheckoutRequest(req); err != nil {
		return nil, err
	}

	validation, err := s.Validator.ValidateCart(ctx, model.Cart{Items: req.Items, Total: req.TotalAmount})
	if err != nil {
		return nil, err
	}
	if !validation.Valid {
		return nil, fmt.Errorf("%w: %s", ErrCheckoutInvalid, strings.Join(validation.Errors, "; "))
	}
	cart := validation.Cart

	order := &model.Order{
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		CustomerAddress: req.CustomerAddress,
		CustomerCity:    req.CustomerCity,
		CustomerZip:     req.CustomerZip,
		PaymentMethod:   req.PaymentMethod,
		PaymentStatus:   model.PaymentStatusPending,
		Status:          model.OrderStatusNew,
		TotalAmount:     cart.Total,
		Currency:        s.Currency,
	}
	if req.Notes != "" {
		order.Notes = &req.Notes
	}

	items := make([]model.OrderItem, 0, len(cart.Items))
	for _, it := range cart.Items {
		items = append(items, model.OrderItem{
			ProductKitID:    it.ProductKitID,
			SKU:             it.SKU,
			Name:            it.Name,
			PriceAtPurchase: it.Price,
			Quantity:        it.Quantity,
		})
	}

	orderID, orderNumber, err := s.insertWithRetry(ctx, order, items)
	if err != nil {
		return nil, err
	}

	result := &CheckoutResult{OrderID: orderID, OrderNumber: orderNumber}

	if req.PaymentMethod == model.PaymentMethodCOD {
		// resolved manually; payment stays pending
		return result, nil
	}

	paymentURL, regErr := s.registerPayment(ctx, orderID, orderNumber, order.CustomerEmail, cart.Total)
	outcome := DecideCheckoutOutcome(regErr)
	result.PaymentInitFailed = outcome.PaymentInitFailed
	if regErr != nil {
		s.Log.Error("payment registration failed, order kept pending",
			zap.String("orderNumber", orderNumber),
			zap.Error(regErr))
		return result, nil
	}
	result.PaymentURL = paymentURL
	return result, nil
}

// RetryPayment re-registers the gateway transaction for an order stuck in
// pending, typically after a registration failure at checkout.
func (s *OrderService) RetryPayment(ctx context.Context, orderID int64) (string, error) {
	order, err := s.Orders.GetByID(ctx, orderID)
	if err != nil {
		return "", err
	}
	if order == nil {
		return "", errors.New("order not found")
	}
	if order.PaymentMethod != model.PaymentMethodPrzelewy24 {
		return "", errors.New("order is not paid via gateway")
	}
	if order.PaymentStatus != model.PaymentStatusPending {
		return "", errors.New("payment already resolved")
	}
	return s.registerPayment(ctx, order.OrderID, order.OrderNumber, order.CustomerEmail, order.TotalAmount)
}

// GetDetails returns the order and its items for the status page.
func (s *OrderService) GetDetails(ctx context.Context, orderNumber string) (*OrderDetails, error) {
	order, err := s.Orders.GetByNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, nil
	}
	items, err := s.Orders.GetItems(ctx, order.OrderID)
	if err != nil {
		return nil, err
	}
	return &OrderDetails{Order: *order, Items: items}, nil
}

// List returns orders for the admin view, optionally filtered by payment
// status.
func (s *OrderService) List(ctx context.Context, paymentStatus string) ([]model.Order, error) {
	return s.Orders.List(ctx, paymentStatus)
}

// UpdateStatus advances the fulfilment status; terminal states are sinks.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	if !status.Valid() {
		return fmt.Errorf("unknown order status %q", status)
	}
	order, err := s.Orders.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return errors.New("order not found")
	}
	if order.Status.IsTerminal() {
		return fmt.Errorf("order is already %s", order.Status)
	}
	return s.Orders.UpdateStatus(ctx, orderID, status)
}

func (s *OrderService) insertWithRetry(ctx context.Context, order *model.Order, items []model.OrderItem) (int64, string, error) {
	var lastErr error
	for attempt := 0; attempt < orderNumberRetries; attempt++ {
		order.OrderNumber = GenerateOrderNumber()
		orderID, err := s.Orders.CreateWithItems(ctx, order, items)
		if err == nil {
			return orderID, order.OrderNumber, nil
		}
		if !errors.Is(err, repository.ErrOrderNumberTaken) {
			return 0, "", err
		}
		lastErr = err
	}
	return 0, "", fmt.Errorf("could not allocate order number: %w", lastErr)
}

func (s *OrderService) registerPayment(ctx context.Context, orderID int64, orderNumber, email string, total float64) (string, error) {
	token, err := s.Gateway.RegisterTransaction(ctx, przelewy24.Transaction{
		SessionID:   orderNumber,
		Amount:      ToMinorUnits(total),
		Currency:    s.Currency,
		Description: "Zamówienie " + orderNumber,
		Email:       email,
		Country:     "PL",
		Language:    "pl",
		URLReturn:   s.PublicURL + "/zamowienie/" + orderNumber,
		URLStatus:   s.PublicURL + "/api/payments/przelewy24/status",
	})
	if err != nil {
		return "", err
	}

	if err := s.Orders.SetP24Token(ctx, orderID, token); err != nil {
		return "", err
	}
	if _, err := s.Payments.CreatePending(ctx, &model.Payment{
		OrderID:   orderID,
		Amount:    ToMinorUnits(total),
		Currency:  s.Currency,
		Provider:  model.PaymentMethodPrzelewy24,
		SessionID: orderNumber,
	}); err != nil {
		return "", err
	}
	return s.Gateway.PaymentURL(token), nil
}

func validateCheckoutRequest(req CheckoutRequest) error {
	required := map[string]string{
		"customerName":    req.CustomerName,
		"customerEmail":   req.CustomerEmail,
		"customerPhone":   req.CustomerPhone,
		"customerAddress": req.CustomerAddress,
		"customerCity":    req.CustomerCity,
		"customerZip":     req.CustomerZip,
	}
	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%w: %s is required", ErrCheckoutInvalid, field)
		}
	}
	if len(req.Items) == 0 {
		return fmt.Errorf("%w: cart is empty", ErrCheckoutInvalid)
	}
	for _, it := range req.Items {
		// a zero or negative quantity would shrink the total below what
		// the remaining items are worth
		if it.Quantity <= 0 {
			return fmt.Errorf("%w: invalid quantity %d for product %d", ErrCheckoutInvalid, it.Quantity, it.ProductKitID)
		}
	}
	if req.PaymentMethod != model.PaymentMethodCOD && req.PaymentMethod != model.PaymentMethodPrzelewy24 {
		return fmt.Errorf("%w: unknown payment method %q", ErrCheckoutInvalid, req.PaymentMethod)
	}
	return nil
}

// GenerateOrderNumber combines a base-36 timestamp with a short random
// suffix: ORD-<ts36>-<suffix>. Uniqueness is enforced by the orders table
// constraint; callers retry on collision.
func GenerateOrderNumber() string {
	ts := strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return "ORD-" + ts + "-" + suffix
}

// ToMinorUnits converts a major-unit amount to minor currency units
// (grosze) the gateway expects.
func ToMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/damianGG/posadzki-zywiczne-sub001/external/przelewy24"
	"github.com/damianGG/posadzki-zywiczne-sub001/internal/model"
	"github.com/damianGG/posadzki-zywiczne-sub001/internal/services"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memCartStore struct {
	cart    model.Cart
	cleared bool
}

func (m *memCartStore) Get(echo.Context) model.Cart { return m.cart }
func (m *memCartStore) Save(_ echo.Context, cart model.Cart) error {
	m.cart = cart
	return nil
}
func (m *memCartStore) Clear(echo.Context) { m.cleared = true }

type stubKits struct{}

func (stubKits) FindByID(_ context.Context, kitID int64) (*model.ProductKit, error) {
	if kitID == 1 {
		return &model.ProductKit{KitID: 1, SKU: "EPX-20", Name: "Epoxy kit 20m²", BasePrice: 100}, nil
	}
	return nil, nil
}

type stubOrders struct {
	fakeOrders
	createErr error
	created   int
}

func (s *stubOrders) CreateWithItems(context.Context, *model.Order, []model.OrderItem) (int64, error) {
	if s.createErr != nil {
		return 0, s.createErr
	}
	s.created++
	return 1, nil
}

type stubGateway struct {
	token       string
	registerErr error
}

func (s *stubGateway) RegisterTransaction(context.Context, przelewy24.Transaction) (string, error) {
	if s.registerErr != nil {
		return "", s.registerErr
	}
	return s.token, nil
}

func (s *stubGateway) PaymentURL(token string) string {
	return "https://sandbox.przelewy24.pl/trnRequest/" + token
}

func (s *stubGateway) VerifyNotification(przelewy24.Notification) bool { return true }

func newCheckoutServer(orders services.OrderStore, gateway services.PaymentGateway) (*echo.Echo, *memCartStore) {
	svc := services.NewOrderService(orders, &fakePayments{}, services.NewCartValidator(stubKits{}), gateway, zap.NewNop(), "PLN", "https://posadzki.example")
	store := &memCartStore{}
	e := echo.New()
	registerCheckoutRoutes(e.Group("/api"), store, svc)
	return e, store
}

func postCheckout(e *echo.Echo, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/checkout", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func checkoutBody(quantity int, method string) string {
	return `{
		"customerName": "Jan Kowalski",
		"customerEmail": "jan@example.com",
		"customerPhone": "+48 600 100 200",
		"customerAddress": "ul. Żywiczna 7",
		"customerCity": "Warszawa",
		"customerZip": "00-001",
		"paymentMethod": "` + method + `",
		"items": [{"productKitId": 1, "sku": "EPX-20", "name": "Epoxy kit 20m²", "price": 100, "quantity": ` + strconv.Itoa(quantity) + `}],
		"totalAmount": 200
	}`
}

func TestCheckoutEndpoint_NegativeQuantityGets400(t *testing.T) {
	orders := &stubOrders{}
	e, store := newCheckoutServer(orders, &stubGateway{token: "tok_1"})

	rec := postCheckout(e, checkoutBody(-2, model.PaymentMethodPrzelewy24))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid quantity")
	assert.Zero(t, orders.created, "no order may be persisted")
	assert.False(t, store.cleared, "cart survives a rejected checkout")
}

func TestCheckoutEndpoint_StorageFaultGets500(t *testing.T) {
	orders := &stubOrders{createErr: errors.New("connection refused")}
	e, _ := newCheckoutServer(orders, &stubGateway{token: "tok_1"})

	rec := postCheckout(e, checkoutBody(2, model.PaymentMethodCOD))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestCheckoutEndpoint_GatewayFailureStillCreatesOrder(t *testing.T) {
	orders := &stubOrders{}
	e, store := newCheckoutServer(orders, &stubGateway{registerErr: errors.New("gateway down")})

	rec := postCheckout(e, checkoutBody(2, model.PaymentMethodPrzelewy24))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"paymentInitFailed":true`)
	assert.Equal(t, 1, orders.created)
	assert.True(t, store.cleared, "order exists, cart is done")
}

package services

import (
	"context"

	"github.com/damianGG/posadzki-zywiczne-sub001/external/przelewy24"
	"github.com/damianGG/posadzki-zywiczne-sub001/internal/model"
)

type fakeKitFinder struct {
	kits map[int64]*model.ProductKit
}

func (f *fakeKitFinder) FindByID(_ context.Context, kitID int64) (*model.ProductKit, error) {
	return f.kits[kitID], nil
}

type mockOrderStore struct {
	orders    map[int64]*model.Order
	items     map[int64][]model.OrderItem
	tokens    map[int64]string
	statuses  map[int64]model.OrderStatus
	nextID    int64
	createErr []error // popped one per CreateWithItems call
	attempts  []string
}

func newMockOrderStore() *mockOrderStore {
	return &mockOrderStore{
		orders:   map[int64]*model.Order{},
		items:    map[int64][]model.OrderItem{},
		tokens:   map[int64]string{},
		statuses: map[int64]model.OrderStatus{},
	}
}

func (m *mockOrderStore) CreateWithItems(_ context.Context, o *model.Order, items []model.OrderItem) (int64, error) {
	m.attempts = append(m.attempts, o.OrderNumber)
	if len(m.createErr) > 0 {
		err := m.createErr[0]
		m.createErr = m.createErr[1:]
		if err != nil {
			return 0, err
		}
	}
	m.nextID++
	stored := *o
	stored.OrderID = m.nextID
	m.orders[m.nextID] = &stored
	m.items[m.nextID] = append([]model.OrderItem(nil), items...)
	return m.nextID, nil
}

func (m *mockOrderStore) GetByID(_ context.Context, orderID int64) (*model.Order, error) {
	return m.orders[orderID], nil
}

func (m *mockOrderStore) GetByNumber(_ context.Context, orderNumber string) (*model.Order, error) {
	for _, o := range m.orders {
		if o.OrderNumber == orderNumber {
			return o, nil
		}
	}
	return nil, nil
}

func (m *mockOrderStore) GetItems(_ context.Context, orderID int64) ([]model.OrderItem, error) {
	return m.items[orderID], nil
}

func (m *mockOrderStore) List(_ context.Context, paymentStatus string) ([]model.Order, error) {
	var out []model.Order
	for _, o := range m.orders {
		if paymentStatus == "" || string(o.PaymentStatus) == paymentStatus {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (m *mockOrderStore) SetP24Token(_ context.Context, orderID int64, token string) error {
	m.tokens[orderID] = token
	if o := m.orders[orderID]; o != nil {
		o.P24Token = &token
	}
	return nil
}

func (m *mockOrderStore) UpdateStatus(_ context.Context, orderID int64, status model.OrderStatus) error {
	m.statuses[orderID] = status
	if o := m.orders[orderID]; o != nil {
		o.Status = status
	}
	return nil
}

type finalizeCall struct {
	orderID        int64
	gatewayOrderID string
}

type mockPaymentStore struct {
	pending     []model.Payment
	paidCalls   []finalizeCall
	failedCalls []finalizeCall
	nextID      int64
}

func (m *mockPaymentStore) CreatePending(_ context.Context, p *model.Payment) (int64, error) {
	m.nextID++
	m.pending = append(m.pending, *p)
	return m.nextID, nil
}

func (m *mockPaymentStore) GetBySessionID(_ context.Context, sessionID string) (*model.Payment, error) {
	for i := range m.pending {
		if m.pending[i].SessionID == sessionID {
			return &m.pending[i], nil
		}
	}
	return nil, nil
}

func (m *mockPaymentStore) FinalizePaid(_ context.Context, orderID int64, gatewayOrderID string, _ []byte) error {
	m.paidCalls = append(m.paidCalls, finalizeCall{orderID: orderID, gatewayOrderID: gatewayOrderID})
	return nil
}

func (m *mockPaymentStore) FinalizeFailed(_ context.Context, orderID int64, _ model.PaymentStatus, _ []byte) error {
	m.failedCalls = append(m.failedCalls, finalizeCall{orderID: orderID})
	return nil
}

const testCRC = "test-crc"

type mockGateway struct {
	token       string
	registerErr error
	calls       []przelewy24.Transaction
}

func (m *mockGateway) RegisterTransaction(_ context.Context, tx przelewy24.Transaction) (string, error) {
	m.calls = append(m.calls, tx)
	if m.registerErr != nil {
		return "", m.registerErr
	}
	return m.token, nil
}

func (m *mockGateway) PaymentURL(token string) string {
	return "https://sandbox.przelewy24.pl/trnRequest/" + token
}

func (m *mockGateway) VerifyNotification(n przelewy24.Notification) bool {
	return przelewy24.NotificationSign(n.SessionID, n.OrderID, n.Amount, n.Currency, testCRC) == n.Sign
}

type mailCall struct {
	to          string
	orderNumber string
}

type mockMailer struct {
	calls []mailCall
	err   error
}

func (m *mockMailer) SendOrderConfirmation(_ context.Context, toEmail, orderNumber string, _ float64, _ string) error {
	m.calls = append(m.calls, mailCall{to: toEmail, orderNumber: orderNumber})
	return m.err
}

package przelewy24

import (
	"bytes"
	"context"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

const (
	sandboxBaseURL    = "https://sandbox.przelewy24.pl"
	productionBaseURL = "https://secure.przelewy24.pl"
)

type Config struct {
	MerchantID int
	PosID      int
	APIKey     string // secret for Basic auth
	CRC        string // shared secret bound into every signature
	Sandbox    bool
	BaseURL    string // optional override, used by tests
}

// Client talks to the Przelewy24 transaction API.
type Client struct {
	merchantID int
	posID      int
	apiKey     string
	crc        string
	baseURL    string
	client     *http.Client
}

func NewClient(cfg Config) *Client {
	base := cfg.BaseURL
	if base == "" {
		if cfg.Sandbox {
			base = sandboxBaseURL
		} else {
			base = productionBaseURL
		}
	}
	return &Client{
		merchantID: cfg.MerchantID,
		posID:      cfg.PosID,
		apiKey:     cfg.APIKey,
		crc:        cfg.CRC,
		baseURL:    base,
		client: &http.Client{
			// an unbounded hang here would block the customer's checkout
			Timeout: 10 * time.Second,
		},
	}
}

// Transaction is one outbound payment attempt. SessionID equals the order
// number; Amount is in minor currency units (grosze).
type Transaction struct {
	SessionID   string
	Amount      int64
	Currency    string
	Description string
	Email       string
	Country     string
	Language    string
	URLReturn   string
	URLStatus   string
}

// Notification is the gateway's asynchronous server-to-server callback.
type Notification struct {
	MerchantID   int    `json:"merchantId"`
	PosID        int    `json:"posId"`
	SessionID    string `json:"sessionId"`
	Amount       int64  `json:"amount"`
	OriginAmount int64  `json:"originAmount"`
	Currency     string `json:"currency"`
	OrderID      int64  `json:"orderId"`
	MethodID     int    `json:"methodId"`
	Statement    string `json:"statement"`
	Sign         string `json:"sign"`
}

type registerRequest struct {
	MerchantID  int    `json:"merchantId"`
	PosID       int    `json:"posId"`
	SessionID   string `json:"sessionId"`
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency"`
	Description string `json:"description"`
	Email       string `json:"email"`
	Country     string `json:"country"`
	Language    string `json:"language"`
	URLReturn   string `json:"urlReturn"`
	URLStatus   string `json:"urlStatus"`
	Sign        string `json:"sign"`
}

type registerResponse struct {
	Data struct {
		Token string `json:"token"`
	} `json:"data"`
}

// RegisterTransaction registers the transaction with the gateway and
// returns the opaque token for the hosted payment page. Any non-2xx
// status or transport failure is returned with the raw response body for
// diagnostics.
func (c *Client) RegisterTransaction(ctx context.Context, tx Transaction) (string, error) {
	body := registerRequest{
		MerchantID:  c.merchantID,
		PosID:       c.posID,
		SessionID:   tx.SessionID,
		Amount:      tx.Amount,
		Currency:    tx.Currency,
		Description: tx.Description,
		Email:       tx.Email,
		Country:     tx.Country,
		Language:    tx.Language,
		URLReturn:   tx.URLReturn,
		URLStatus:   tx.URLStatus,
		Sign:        RegisterSign(tx.SessionID, c.merchantID, tx.Amount, tx.Currency, c.crc),
	}

	b, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+"/api/v1/transaction/register",
		bytes.NewBuffer(b),
	)
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(strconv.Itoa(c.posID), c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("przelewy24 register: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("przelewy24 register failed: %s: %s", resp.Status, string(raw))
	}

	var out registerResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("przelewy24 register: decode response: %w", err)
	}
	if out.Data.Token == "" {
		return "", errors.New("przelewy24 register: empty token in response")
	}
	return out.Data.Token, nil
}

// PaymentURL builds the hosted-page URL the customer's browser is sent to.
func (c *Client) PaymentURL(token string) string {
	return c.baseURL + "/trnRequest/" + token
}

// VerifyNotification recomputes the expected signature for a status
// callback and compares it with the supplied one.
func (c *Client) VerifyNotification(n Notification) bool {
	expected := NotificationSign(n.SessionID, n.OrderID, n.Amount, n.Currency, c.crc)
	return expected == n.Sign
}

// registerSignPayload and notificationSignPayload pin the canonical field
// order the gateway hashes over; do not reorder.
type registerSignPayload struct {
	SessionID  string `json:"sessionId"`
	MerchantID int    `json:"merchantId"`
	Amount     int64  `json:"amount"`
	Currency   string `json:"currency"`
	CRC        string `json:"crc"`
}

type notificationSignPayload struct {
	SessionID string `json:"sessionId"`
	OrderID   int64  `json:"orderId"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	CRC       string `json:"crc"`
}

// RegisterSign hashes the canonical JSON of
// {sessionId, merchantId, amount, currency, crc} with SHA-384.
func RegisterSign(sessionID string, merchantID int, amount int64, currency, crc string) string {
	b, _ := json.Marshal(registerSignPayload{
		SessionID:  sessionID,
		MerchantID: merchantID,
		Amount:     amount,
		Currency:   currency,
		CRC:        crc,
	})
	return sha384hex(b)
}

// NotificationSign hashes the canonical JSON of
// {sessionId, orderId, amount, currency, crc} with SHA-384.
func NotificationSign(sessionID string, orderID, amount int64, currency, crc string) string {
	b, _ := json.Marshal(notificationSignPayload{
		SessionID: sessionID,
		OrderID:   orderID,
		Amount:    amount,
		Currency:  currency,
		CRC:       crc,
	})
	return sha384hex(b)
}

func sha384hex(b []byte) string {
	sum := sha512.Sum384(b)
	return hex.EncodeToString(sum[:])
}

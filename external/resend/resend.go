package resend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"
)

type ResendMailer struct {
	apiKey  string
	from    string
	client  *http.Client
	baseURL string
}

func NewResendMailer(from string) (*ResendMailer, error) {
	key := os.Getenv("RESEND_API_KEY")
	if key == "" {
		return nil, errors.New("RESEND_API_KEY not set")
	}

	return &ResendMailer{
		apiKey: key,
		from:   from,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
		baseURL: "https://api.resend.com",
	}, nil
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// SendOrderConfirmation tells the customer their payment went through.
func (m *ResendMailer) SendOrderConfirmation(
	ctx context.Context,
	toEmail string,
	orderNumber string,
	total float64,
	currency string,
) error {
	body := sendRequest{
		From:    m.from,
		To:      []string{toEmail},
		Subject: "Potwierdzenie zamówienia " + orderNumber,
		HTML: `
			<p>Dziękujemy za zamówienie!</p>
			<p>Numer zamówienia: <strong>` + orderNumber + `</strong></p>
			<p>Opłacona kwota: <strong>` + fmt.Sprintf("%.2f %s", total, currency) + `</strong></p>
			<p>Wkrótce skontaktujemy się w sprawie wysyłki.</p>
		`,
	}

	b, _ := json.Marshal(body)

	req, _ := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		m.baseURL+"/emails",
		bytes.NewBuffer(b),
	)

	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		buf := new(bytes.Buffer)
		buf.ReadFrom(resp.Body)
		return errors.New(
			"failed to send order confirmation: " + buf.String(),
		)
	}

	return nil
}

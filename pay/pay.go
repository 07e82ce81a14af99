package pay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"

	"successspace/errs"
	"successspace/models"
)

const defaultAPIURL = "https://connect.squareup.com"

// Charger performs a single card charge. Order handling depends on this
// interface so tests can swap in a fake provider.
type Charger interface {
	Configured() bool
	Charge(ctx context.Context, sourceID string, amountCents int64) (models.PaymentResult, error)
}

// Provider talks to the card processor's payments API.
type Provider struct {
	token   string
	baseURL string
	httpc   *http.Client
}

// NewProviderFromEnv reads CARD_ACCESS_TOKEN and CARD_API_URL. An empty token
// leaves the provider unconfigured; card sales then fail with a
// configuration error instead of reaching the network.
func NewProviderFromEnv() *Provider {
	base := os.Getenv("CARD_API_URL")
	if base == "" {
		base = defaultAPIURL
	}
	return &Provider{
		token:   os.Getenv("CARD_ACCESS_TOKEN"),
		baseURL: base,
		httpc:   &http.Client{Timeout: 15 * time.Second},
	}
}

func (p *Provider) Configured() bool { return p.token != "" }

type chargeRequest struct {
	SourceID       string `json:"source_id"`
	IdempotencyKey string `json:"idempotency_key"`
	AmountMoney    struct {
		Amount   int64  `json:"amount"`
		Currency string `json:"currency"`
	} `json:"amount_money"`
}

type chargeResponse struct {
	Payment *struct {
		ID string `json:"id"`
	} `json:"payment"`
	Errors []struct {
		Code   string `json:"code"`
		Detail string `json:"detail"`
	} `json:"errors"`
}

// Charge performs exactly one charge attempt. A failed or unreachable
// provider yields a failed result and a PaymentError; the caller must never
// persist a paid order in that case.
func (p *Provider) Charge(ctx context.Context, sourceID string, amountCents int64) (models.PaymentResult, error) {
	if !p.Configured() {
		return models.PaymentResult{}, errs.Configuration("Card payments not configured on server")
	}

	body := chargeRequest{SourceID: sourceID, IdempotencyKey: "pos_" + uuid.NewString()}
	body.AmountMoney.Amount = amountCents
	body.AmountMoney.Currency = "USD"
	payload, err := json.Marshal(body)
	if err != nil {
		return failed(err.Error()), errs.Payment("payment request invalid")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/v2/payments", bytes.NewReader(payload))
	if err != nil {
		return failed(err.Error()), errs.Payment("payment request invalid")
	}
	req.Header.Set("Authorization", "Bearer "+p.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpc.Do(req)
	if err != nil {
		return failed(err.Error()), errs.Payment("payment provider unreachable")
	}
	defer resp.Body.Close()

	var out chargeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return failed(err.Error()), errs.Payment("payment provider returned invalid response")
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 && out.Payment != nil {
		return models.PaymentResult{
			Status:            models.PaymentPaid,
			Provider:          "square",
			ProviderPaymentID: out.Payment.ID,
		}, nil
	}

	detail := fmt.Sprintf("status %d", resp.StatusCode)
	if len(out.Errors) > 0 {
		detail = out.Errors[0].Detail
	}
	return failed(detail), errs.Payment("payment declined: %s", detail)
}

func failed(detail string) models.PaymentResult {
	return models.PaymentResult{Status: models.PaymentFailed, Provider: "square", Error: detail}
}

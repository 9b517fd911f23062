package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/minhvn/solemart/internal/domain/model"
)

const orderInfoPrefix = "solemart order "

// PaymentRequest describes a payment URL request towards the gateway service.
// Amount is expressed in the gateway's minor units.
type PaymentRequest struct {
	AmountMinor int64  `json:"amount"`
	BankCode    string `json:"bankCode,omitempty"`
	Language    string `json:"language"`
	OrderInfo   string `json:"orderInfo"`
}

// Client exposes operations against the payment gateway service.
type Client interface {
	CreatePaymentURL(ctx context.Context, req PaymentRequest) (string, error)
}

// HTTPClient implements Client via the gateway's HTTP API.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

// response mirrors the JSON payload of create_payment_url.
type response struct {
	Data struct {
		VnpURL string `json:"vnpUrl"`
	} `json:"data"`
}

// NewHTTPClient creates an HTTP gateway client with default timeout.
func NewHTTPClient(baseURL string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse gateway url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("gateway url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// CreatePaymentURL requests a redirect URL for the payment described by req.
func (c *HTTPClient) CreatePaymentURL(ctx context.Context, req PaymentRequest) (string, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/order/create_payment_url")

	body, err := json.Marshal(req)
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(resp.Body)
		c.logger.Error("payment url request failed", slog.Int("status", resp.StatusCode), slog.String("body", string(payload)))
		return "", fmt.Errorf("gateway error: %s", resp.Status)
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	var data response
	if err := json.Unmarshal(payload, &data); err != nil {
		return "", err
	}
	if data.Data.VnpURL == "" {
		return "", fmt.Errorf("gateway returned empty payment url")
	}
	return data.Data.VnpURL, nil
}

// MinorUnits converts a major-unit amount into the gateway's minor units.
func MinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// OrderInfo builds the order info text carrying the local transaction ref
// across the redirect.
func OrderInfo(transactionRef string) string {
	return orderInfoPrefix + transactionRef
}

// ParseOrderRef extracts the local transaction ref from callback order info.
func ParseOrderRef(orderInfo string) (string, error) {
	if !strings.HasPrefix(orderInfo, orderInfoPrefix) {
		return "", fmt.Errorf("unrecognized order info %q", orderInfo)
	}
	ref := strings.TrimSpace(strings.TrimPrefix(orderInfo, orderInfoPrefix))
	if ref == "" {
		return "", fmt.Errorf("order info carries no transaction ref")
	}
	return ref, nil
}

// ParseCallback reads the gateway return redirect query parameters.
func ParseCallback(query url.Values) model.GatewayCallback {
	amount, _ := strconv.ParseInt(query.Get("vnp_Amount"), 10, 64)
	return model.GatewayCallback{
		TransactionRef: query.Get("vnp_TxnRef"),
		ResponseCode:   query.Get("vnp_ResponseCode"),
		TransactionNo:  query.Get("vnp_TransactionNo"),
		AmountMinor:    amount,
		BankCode:       query.Get("vnp_BankCode"),
		PayDateRaw:     query.Get("vnp_PayDate"),
		OrderInfo:      query.Get("vnp_OrderInfo"),
	}
}

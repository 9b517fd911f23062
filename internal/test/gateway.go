package test

import (
	"context"

	"github.com/minhvn/solemart/internal/adapter/gateway"
)

// GatewayClientStub simulates the payment gateway client.
type GatewayClientStub struct {
	CreateFn func(context.Context, gateway.PaymentRequest) (string, error)
	Requests []gateway.PaymentRequest
	URL      string
	Err      error
}

// CreatePaymentURL records the request and returns the configured URL.
func (s *GatewayClientStub) CreatePaymentURL(ctx context.Context, req gateway.PaymentRequest) (string, error) {
	s.Requests = append(s.Requests, req)
	if s.CreateFn != nil {
		return s.CreateFn(ctx, req)
	}
	if s.Err != nil {
		return "", s.Err
	}
	if s.URL != "" {
		return s.URL, nil
	}
	return "https://gateway.example/pay", nil
}

var _ gateway.Client = (*GatewayClientStub)(nil)

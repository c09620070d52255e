package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EV-Station-based-Rental-System/ev-rental-backend/internal/config"
	"github.com/EV-Station-based-Rental-System/ev-rental-backend/internal/domain"
)

func momoTestConfig(endpoint string) config.MomoConfig {
	return config.MomoConfig{
		PartnerCode: "PARTNER",
		AccessKey:   "ak",
		SecretKey:   "secret",
		Endpoint:    endpoint,
		RedirectURL: "https://api/return",
		IPNURL:      "https://api/ipn",
		RequestType: "captureWallet",
	}
}

func TestMomoProvider_Initiate(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		var got momoCreateRequest
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "application/json", r.Header.Get("Content-Type"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			_ = json.NewEncoder(w).Encode(momoCreateResponse{ResultCode: 0, PayURL: "https://wallet/pay/" + got.OrderID})
		}))
		defer srv.Close()

		p := NewMomoProvider(momoTestConfig(srv.URL))
		res, err := p.Initiate(ctx, InitiationRequest{Amount: 1_800_000, Currency: "VND", OrderInfo: "booking 42"})
		assert.NoError(t, err)
		assert.Equal(t, got.OrderID, res.ReferenceCode)
		assert.Equal(t, "https://wallet/pay/"+got.OrderID, res.PayURL)

		// The request must carry a signature over the canonical field order.
		raw := createRawSignature("ak", 1_800_000, "", "https://api/ipn", got.OrderID,
			"booking 42", "PARTNER", "https://api/return", got.RequestID, "captureWallet")
		assert.Equal(t, sign(raw, "secret"), got.Signature)
	})

	t.Run("Incomplete Config", func(t *testing.T) {
		cfg := momoTestConfig("https://unused")
		cfg.SecretKey = ""
		p := NewMomoProvider(cfg)

		res, err := p.Initiate(ctx, InitiationRequest{Amount: 100})
		assert.ErrorIs(t, err, domain.ErrProviderConfigMissing)
		assert.Nil(t, res)
	})

	t.Run("Gateway Error Result", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(momoCreateResponse{ResultCode: 41, Message: "duplicate orderId"})
		}))
		defer srv.Close()

		p := NewMomoProvider(momoTestConfig(srv.URL))
		res, err := p.Initiate(ctx, InitiationRequest{Amount: 100})
		assert.ErrorIs(t, err, domain.ErrProviderCallFailed)
		assert.Contains(t, err.Error(), "duplicate orderId")
		assert.Nil(t, res)
	})

	t.Run("Missing Pay URL", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(momoCreateResponse{ResultCode: 0})
		}))
		defer srv.Close()

		p := NewMomoProvider(momoTestConfig(srv.URL))
		res, err := p.Initiate(ctx, InitiationRequest{Amount: 100})
		assert.ErrorIs(t, err, domain.ErrProviderCallFailed)
		assert.Nil(t, res)
	})

	t.Run("Gateway Unreachable", func(t *testing.T) {
		p := NewMomoProvider(momoTestConfig("http://127.0.0.1:1"))
		res, err := p.Initiate(ctx, InitiationRequest{Amount: 100})
		assert.ErrorIs(t, err, domain.ErrProviderCallFailed)
		assert.Nil(t, res)
	})
}

func TestMomoProvider_VerifyIPN(t *testing.T) {
	p := NewMomoProvider(momoTestConfig("https://unused"))

	n := MomoIPN{
		PartnerCode:  "PARTNER",
		OrderID:      "order-1",
		RequestID:    "req-1",
		Amount:       1_800_000,
		OrderInfo:    "booking 42",
		OrderType:    "momo_wallet",
		TransID:      990011,
		ResultCode:   0,
		Message:      "Successful.",
		PayType:      "qr",
		ResponseTime: 1700000000000,
	}
	n.Signature = sign(ipnRawSignature("ak", n), "secret")

	t.Run("Valid", func(t *testing.T) {
		assert.NoError(t, p.VerifyIPN(n))
	})

	t.Run("Tampered Amount", func(t *testing.T) {
		tampered := n
		tampered.Amount = 1
		assert.ErrorIs(t, p.VerifyIPN(tampered), domain.ErrInvalidSignature)
	})

	t.Run("Tampered Result Code", func(t *testing.T) {
		tampered := n
		tampered.ResultCode = 9000
		assert.ErrorIs(t, p.VerifyIPN(tampered), domain.ErrInvalidSignature)
	})

	t.Run("Missing Signature", func(t *testing.T) {
		unsigned := n
		unsigned.Signature = ""
		assert.ErrorIs(t, p.VerifyIPN(unsigned), domain.ErrInvalidSignature)
	})

	t.Run("No Credentials Configured", func(t *testing.T) {
		bare := NewMomoProvider(config.MomoConfig{})
		assert.ErrorIs(t, bare.VerifyIPN(n), domain.ErrProviderConfigMissing)
	})
}

func TestCashProvider_Initiate(t *testing.T) {
	p := NewCashProvider()
	assert.Equal(t, domain.PaymentMethodCash, p.Method())

	res, err := p.Initiate(context.Background(), InitiationRequest{Amount: 1_800_000, Currency: "VND"})
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(res.ReferenceCode, "CASH-"))
	assert.Empty(t, res.PayURL)
	assert.Contains(t, res.Instructions, res.ReferenceCode)
	assert.Contains(t, res.Instructions, "1800000 VND")

	// References must be unique per initiation.
	res2, err := p.Initiate(context.Background(), InitiationRequest{Amount: 1})
	assert.NoError(t, err)
	assert.NotEqual(t, res.ReferenceCode, res2.ReferenceCode)
}

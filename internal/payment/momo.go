package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/EV-Station-based-Rental-System/ev-rental-backend/internal/config"
	"github.com/EV-Station-based-Rental-System/ev-rental-backend/internal/domain"
	"github.com/EV-Station-based-Rental-System/ev-rental-backend/internal/logger"
)

const momoRequestTimeout = 30 * time.Second

// MomoIPN is the flat field set the wallet posts back on its IPN/return
// channel. ResultCode 0 means the customer paid.
type MomoIPN struct {
	PartnerCode  string `json:"partnerCode"`
	OrderID      string `json:"orderId"`
	RequestID    string `json:"requestId"`
	Amount       int64  `json:"amount"`
	OrderInfo    string `json:"orderInfo"`
	OrderType    string `json:"orderType"`
	TransID      int64  `json:"transId"`
	ResultCode   int    `json:"resultCode"`
	Message      string `json:"message"`
	PayType      string `json:"payType"`
	ResponseTime int64  `json:"responseTime"`
	ExtraData    string `json:"extraData"`
	Signature    string `json:"signature"`
}

type momoCreateRequest struct {
	PartnerCode string `json:"partnerCode"`
	AccessKey   string `json:"accessKey"`
	RequestID   string `json:"requestId"`
	Amount      int64  `json:"amount"`
	OrderID     string `json:"orderId"`
	OrderInfo   string `json:"orderInfo"`
	RedirectURL string `json:"redirectUrl"`
	IPNURL      string `json:"ipnUrl"`
	ExtraData   string `json:"extraData"`
	RequestType string `json:"requestType"`
	Lang        string `json:"lang"`
	Signature   string `json:"signature"`
}

type momoCreateResponse struct {
	ResultCode int    `json:"resultCode"`
	Message    string `json:"message"`
	PayURL     string `json:"payUrl"`
	OrderID    string `json:"orderId"`
}

// MomoProvider opens payments against the MoMo wallet gateway and verifies
// its signed callbacks.
type MomoProvider struct {
	cfg    config.MomoConfig
	client *http.Client
}

func NewMomoProvider(cfg config.MomoConfig) *MomoProvider {
	return &MomoProvider{
		cfg: cfg,
		client: &http.Client{
			Timeout: momoRequestTimeout,
		},
	}
}

func (p *MomoProvider) Method() domain.PaymentMethod {
	return domain.PaymentMethodBankTransfer
}

func (p *MomoProvider) configComplete() bool {
	return p.cfg.PartnerCode != "" && p.cfg.AccessKey != "" && p.cfg.SecretKey != "" &&
		p.cfg.Endpoint != "" && p.cfg.RedirectURL != "" && p.cfg.IPNURL != ""
}

func (p *MomoProvider) Initiate(ctx context.Context, req InitiationRequest) (*InitiationResult, error) {
	if !p.configComplete() {
		return nil, domain.ErrProviderConfigMissing
	}

	orderID := uuid.NewString()
	requestID := uuid.NewString()

	raw := createRawSignature(p.cfg.AccessKey, req.Amount, req.ExtraData, p.cfg.IPNURL,
		orderID, req.OrderInfo, p.cfg.PartnerCode, p.cfg.RedirectURL, requestID, p.cfg.RequestType)

	body := momoCreateRequest{
		PartnerCode: p.cfg.PartnerCode,
		AccessKey:   p.cfg.AccessKey,
		RequestID:   requestID,
		Amount:      req.Amount,
		OrderID:     orderID,
		OrderInfo:   req.OrderInfo,
		RedirectURL: p.cfg.RedirectURL,
		IPNURL:      p.cfg.IPNURL,
		ExtraData:   req.ExtraData,
		RequestType: p.cfg.RequestType,
		Lang:        "en",
		Signature:   sign(raw, p.cfg.SecretKey),
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrProviderCallFailed, err)
	}

	logger.ExternalServiceCall("momo", "create_payment", "order_id", orderID, "amount", req.Amount)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrProviderCallFailed, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	logger.ExternalServiceResult("momo", "create_payment", err, "order_id", orderID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrProviderCallFailed, err)
	}
	defer resp.Body.Close()

	var out momoCreateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", domain.ErrProviderCallFailed, err)
	}
	if out.ResultCode != 0 {
		return nil, fmt.Errorf("%w: gateway result %d: %s", domain.ErrProviderCallFailed, out.ResultCode, out.Message)
	}
	if out.PayURL == "" {
		return nil, fmt.Errorf("%w: gateway returned no pay url", domain.ErrProviderCallFailed)
	}

	return &InitiationResult{
		ReferenceCode: orderID,
		PayURL:        out.PayURL,
	}, nil
}

// VerifyIPN recomputes the callback signature. It touches no stored state and
// must be called before any store access on the webhook path.
func (p *MomoProvider) VerifyIPN(n MomoIPN) error {
	if p.cfg.SecretKey == "" || p.cfg.AccessKey == "" {
		return domain.ErrProviderConfigMissing
	}
	raw := ipnRawSignature(p.cfg.AccessKey, n)
	if !verifySignature(raw, p.cfg.SecretKey, n.Signature) {
		return domain.ErrInvalidSignature
	}
	return nil
}

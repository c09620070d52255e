package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/EV-Station-based-Rental-System/ev-rental-backend/internal/domain"
	"github.com/EV-Station-based-Rental-System/ev-rental-backend/internal/logger"
	"github.com/EV-Station-based-Rental-System/ev-rental-backend/internal/payment"
	"github.com/EV-Station-based-Rental-System/ev-rental-backend/internal/service"
)

// WebhookHandler receives the wallet gateway's IPN and return callbacks.
// The gateway only inspects the response body, never this service's HTTP
// status, so every outcome is answered with 200 and a structured body.
type WebhookHandler struct {
	paymentSvc service.PaymentService
}

func NewWebhookHandler(paymentSvc service.PaymentService) *WebhookHandler {
	return &WebhookHandler{paymentSvc: paymentSvc}
}

type webhookResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data"`
}

// HandleIPN handles the server-to-server notification (JSON body).
func (h *WebhookHandler) HandleIPN(w http.ResponseWriter, r *http.Request) {
	var n payment.MomoIPN
	if err := json.NewDecoder(r.Body).Decode(&n); err != nil {
		writeWebhookResponse(w, false, "malformed notification", nil)
		return
	}
	h.process(w, r, n)
}

// HandleReturn handles the browser redirect back from the wallet; the same
// signed field set arrives as query parameters.
func (h *WebhookHandler) HandleReturn(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	n := payment.MomoIPN{
		PartnerCode: q.Get("partnerCode"),
		OrderID:     q.Get("orderId"),
		RequestID:   q.Get("requestId"),
		OrderInfo:   q.Get("orderInfo"),
		OrderType:   q.Get("orderType"),
		Message:     q.Get("message"),
		PayType:     q.Get("payType"),
		ExtraData:   q.Get("extraData"),
		Signature:   q.Get("signature"),
	}
	n.Amount, _ = strconv.ParseInt(q.Get("amount"), 10, 64)
	n.TransID, _ = strconv.ParseInt(q.Get("transId"), 10, 64)
	n.ResultCode, _ = strconv.Atoi(q.Get("resultCode"))
	n.ResponseTime, _ = strconv.ParseInt(q.Get("responseTime"), 10, 64)
	h.process(w, r, n)
}

func (h *WebhookHandler) process(w http.ResponseWriter, r *http.Request, n payment.MomoIPN) {
	err := h.paymentSvc.HandleMomoIPN(r.Context(), n)
	switch {
	case err == nil:
		writeWebhookResponse(w, true, "notification processed", map[string]any{"orderId": n.OrderID})
	case errors.Is(err, domain.ErrInvalidSignature):
		// Security rejection: generic message, no hint of which check failed.
		writeWebhookResponse(w, false, "request rejected", nil)
	case errors.Is(err, domain.ErrPaymentProcessed):
		writeWebhookResponse(w, false, "notification already processed", map[string]any{"orderId": n.OrderID})
	case errors.Is(err, domain.ErrPaymentNotFound):
		writeWebhookResponse(w, false, "unknown order", map[string]any{"orderId": n.OrderID})
	case errors.Is(err, domain.ErrBookingCancelled):
		// The capture is recorded as PAID; acknowledge so the wallet stops
		// retrying. The refund happens through reconciliation.
		logger.Error("Payment captured for a cancelled booking", "order_id", n.OrderID)
		writeWebhookResponse(w, true, "notification processed", map[string]any{"orderId": n.OrderID})
	case errors.Is(err, domain.ErrNotificationFailed):
		// Payment state is final; only the confirmation email failed.
		logger.Error("Notification delivery failed after payment completion", "order_id", n.OrderID, "error", err)
		writeWebhookResponse(w, true, "notification processed", map[string]any{"orderId": n.OrderID})
	default:
		logger.Error("Webhook processing failed", "order_id", n.OrderID, "error", err)
		writeWebhookResponse(w, false, "internal error", nil)
	}
}

func writeWebhookResponse(w http.ResponseWriter, success bool, message string, data map[string]any) {
	if data == nil {
		data = map[string]any{}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(webhookResponse{
		Success: success,
		Message: message,
		Data:    data,
	})
}

// NewRouter wires the public HTTP surface.
func NewRouter(
	bookingSvc service.BookingService,
	paymentSvc service.PaymentService,
	verificationSvc service.VerificationService,
	rentalSvc service.RentalService,
) *mux.Router {
	wh := NewWebhookHandler(paymentSvc)
	h := NewHandlers(bookingSvc, paymentSvc, verificationSvc, rentalSvc)

	r := mux.NewRouter()
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	r.HandleFunc("/payments/momo/ipn", wh.HandleIPN).Methods(http.MethodPost)
	r.HandleFunc("/payments/momo/return", wh.HandleReturn).Methods(http.MethodGet)

	r.HandleFunc("/bookings", h.CreateBooking).Methods(http.MethodPost)
	r.HandleFunc("/bookings/{id}/cancel", h.CancelBooking).Methods(http.MethodPost)
	r.HandleFunc("/bookings/{id}/confirm", h.ConfirmBooking).Methods(http.MethodPost)
	r.HandleFunc("/payments/{id}/confirm-cash", h.ConfirmCashPayment).Methods(http.MethodPost)
	r.HandleFunc("/rentals/{id}/inspections", h.CreateInspection).Methods(http.MethodPost)
	r.HandleFunc("/inspections/{id}/complete", h.CompleteInspection).Methods(http.MethodPost)
	return r
}

package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/EV-Station-based-Rental-System/ev-rental-backend/internal/domain"
	"github.com/EV-Station-based-Rental-System/ev-rental-backend/internal/service"
)

// Handlers fronts the lifecycle services. Authentication lives in the
// gateway in front of this service; the acting user arrives in the
// X-Actor-ID header.
type Handlers struct {
	bookingSvc      service.BookingService
	paymentSvc      service.PaymentService
	verificationSvc service.VerificationService
	rentalSvc       service.RentalService
}

func NewHandlers(
	bookingSvc service.BookingService,
	paymentSvc service.PaymentService,
	verificationSvc service.VerificationService,
	rentalSvc service.RentalService,
) *Handlers {
	return &Handlers{
		bookingSvc:      bookingSvc,
		paymentSvc:      paymentSvc,
		verificationSvc: verificationSvc,
		rentalSvc:       rentalSvc,
	}
}

type apiError struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps the error taxonomy onto HTTP statuses. Security errors get
// a generic body on purpose.
func writeError(w http.ResponseWriter, err error) {
	var de *domain.Error
	if !errors.As(err, &de) {
		writeJSON(w, http.StatusInternalServerError, apiError{Kind: "INTERNAL", Message: "internal error"})
		return
	}
	switch de.Kind {
	case domain.KindValidation:
		writeJSON(w, http.StatusBadRequest, apiError{Kind: string(de.Kind), Message: de.Message})
	case domain.KindStateConflict:
		writeJSON(w, http.StatusConflict, apiError{Kind: string(de.Kind), Message: de.Message})
	case domain.KindSecurity:
		writeJSON(w, http.StatusForbidden, apiError{Kind: string(de.Kind), Message: "request rejected"})
	case domain.KindIntegrity:
		writeJSON(w, http.StatusInternalServerError, apiError{Kind: string(de.Kind), Message: de.Message})
	default:
		writeJSON(w, http.StatusBadGateway, apiError{Kind: string(de.Kind), Message: de.Message})
	}
}

func actorID(r *http.Request) (int32, bool) {
	v, err := strconv.ParseInt(r.Header.Get("X-Actor-ID"), 10, 32)
	if err != nil {
		return 0, false
	}
	return int32(v), true
}

func pathID(r *http.Request, name string) (int32, bool) {
	v, err := strconv.ParseInt(mux.Vars(r)[name], 10, 32)
	if err != nil {
		return 0, false
	}
	return int32(v), true
}

type createBookingBody struct {
	VehicleAtStationID int32     `json:"vehicle_at_station_id"`
	StartAt            time.Time `json:"start_at"`
	ExpectedReturnAt   time.Time `json:"expected_return_at"`
	Method             string    `json:"method"`
	StatedTotal        int64     `json:"stated_total"`
}

func (h *Handlers) CreateBooking(w http.ResponseWriter, r *http.Request) {
	renterID, ok := actorID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, apiError{Kind: "VALIDATION", Message: "missing actor"})
		return
	}
	var body createBookingBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{Kind: "VALIDATION", Message: "malformed request body"})
		return
	}

	res, err := h.bookingSvc.CreateBooking(r.Context(), service.CreateBookingRequest{
		RenterID:           renterID,
		VehicleAtStationID: body.VehicleAtStationID,
		StartAt:            body.StartAt,
		ExpectedReturnAt:   body.ExpectedReturnAt,
		Method:             domain.PaymentMethod(body.Method),
		StatedTotal:        body.StatedTotal,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (h *Handlers) CancelBooking(w http.ResponseWriter, r *http.Request) {
	renterID, ok := actorID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, apiError{Kind: "VALIDATION", Message: "missing actor"})
		return
	}
	bookingID, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, apiError{Kind: "VALIDATION", Message: "invalid booking id"})
		return
	}
	var body struct {
		Reason string `json:"reason"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)

	b, err := h.bookingSvc.CancelBooking(r.Context(), bookingID, renterID, body.Reason)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *Handlers) ConfirmCashPayment(w http.ResponseWriter, r *http.Request) {
	staffID, ok := actorID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, apiError{Kind: "VALIDATION", Message: "missing actor"})
		return
	}
	paymentID, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, apiError{Kind: "VALIDATION", Message: "invalid payment id"})
		return
	}

	p, err := h.paymentSvc.ConfirmCashPayment(r.Context(), paymentID, staffID)
	if err != nil && !errors.Is(err, domain.ErrNotificationFailed) {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

type confirmBookingBody struct {
	Target       string `json:"target"`
	CancelReason string `json:"cancel_reason"`
}

func (h *Handlers) ConfirmBooking(w http.ResponseWriter, r *http.Request) {
	staffID, ok := actorID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, apiError{Kind: "VALIDATION", Message: "missing actor"})
		return
	}
	bookingID, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, apiError{Kind: "VALIDATION", Message: "invalid booking id"})
		return
	}
	var body confirmBookingBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{Kind: "VALIDATION", Message: "malformed request body"})
		return
	}

	booking, rental, err := h.verificationSvc.ConfirmBooking(r.Context(), bookingID, staffID, domain.VerificationStatus(body.Target), body.CancelReason)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"booking": booking, "rental": rental})
}

type createInspectionBody struct {
	Type           string `json:"type"`
	OdometerKm     int32  `json:"odometer_km"`
	BatteryPercent int32  `json:"battery_percent"`
	Notes          string `json:"notes"`
}

func (h *Handlers) CreateInspection(w http.ResponseWriter, r *http.Request) {
	inspectorID, ok := actorID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, apiError{Kind: "VALIDATION", Message: "missing actor"})
		return
	}
	rentalID, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, apiError{Kind: "VALIDATION", Message: "invalid rental id"})
		return
	}
	var body createInspectionBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{Kind: "VALIDATION", Message: "malformed request body"})
		return
	}

	insp, err := h.rentalSvc.CreateInspection(r.Context(), rentalID, inspectorID, domain.InspectionType(body.Type), body.OdometerKm, body.BatteryPercent, body.Notes)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, insp)
}

type completeInspectionBody struct {
	DamageFound bool   `json:"damage_found"`
	DamageNotes string `json:"damage_notes"`
	RepairCost  int64  `json:"repair_cost"`
}

func (h *Handlers) CompleteInspection(w http.ResponseWriter, r *http.Request) {
	inspectionID, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, apiError{Kind: "VALIDATION", Message: "invalid inspection id"})
		return
	}
	var body completeInspectionBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{Kind: "VALIDATION", Message: "malformed request body"})
		return
	}

	insp, report, err := h.rentalSvc.CompleteInspection(r.Context(), inspectionID, body.DamageFound, body.DamageNotes, body.RepairCost)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"inspection": insp, "report": report})
}

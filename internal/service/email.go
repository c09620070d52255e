package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/EV-Station-based-Rental-System/ev-rental-backend/internal/logger"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &emailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *emailService) SendBookingConfirmation(ctx context.Context, email, renterName string, bookingID int32, startAt, returnAt time.Time, totalFee int64, currency, transactionCode string) error {
	subject := fmt.Sprintf("Booking #%d confirmed", bookingID)
	body := fmt.Sprintf(
		"Hello %s,\n\nYour booking #%d is confirmed.\n\nPickup: %s\nExpected return: %s\nTotal paid: %d %s\nTransaction: %s\n\nPlease bring your identity document to the station counter at pickup.\n\nEV Station Rental",
		renterName, bookingID,
		startAt.Format(time.RFC1123),
		returnAt.Format(time.RFC1123),
		totalFee, currency, transactionCode,
	)

	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(renterName, email)
	message := mail.NewSingleEmail(from, subject, to, body, "")

	logger.ExternalServiceCall("sendgrid", "send_booking_confirmation", "booking_id", bookingID)
	client := sendgrid.NewSendClient(s.apiKey)
	resp, err := client.Send(message)
	logger.ExternalServiceResult("sendgrid", "send_booking_confirmation", err, "booking_id", bookingID)
	if err != nil {
		return fmt.Errorf("failed to send booking confirmation: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

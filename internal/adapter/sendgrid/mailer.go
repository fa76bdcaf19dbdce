// Package sendgrid sends shipment status notifications through the SendGrid
// v3 mail-send API.
package sendgrid

import (
	"context"
	"fmt"
	"log/slog"

	sendgridapi "github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/couchcryptid/shipment-tracking-etl/internal/domain"
	"github.com/couchcryptid/shipment-tracking-etl/internal/observability"
)

const defaultHost = "https://api.sendgrid.com"

// Mailer implements pipeline.Notifier.
type Mailer struct {
	apiKey    string
	host      string
	fromName  string
	fromEmail string
	metrics   *observability.Metrics
	logger    *slog.Logger
}

// NewMailer creates a SendGrid mailer.
func NewMailer(apiKey, fromName, fromEmail string, logger *slog.Logger, metrics *observability.Metrics) *Mailer {
	return &Mailer{
		apiKey:    apiKey,
		host:      defaultHost,
		fromName:  fromName,
		fromEmail: fromEmail,
		metrics:   metrics,
		logger:    logger,
	}
}

// NotifyStatusChange emails the shipment recipient about a notable status
// change. The caller decides which statuses warrant a notification.
func (m *Mailer) NotifyStatusChange(ctx context.Context, event domain.TrackingEvent) error {
	subject, body := composeStatusEmail(event)

	from := mail.NewEmail(m.fromName, m.fromEmail)
	to := mail.NewEmail(event.RecipientName, event.RecipientEmail)
	message := mail.NewSingleEmailPlainText(from, subject, to, body)

	req := sendgridapi.GetRequest(m.apiKey, "/v3/mail/send", m.host)
	req.Method = "POST"
	req.Body = mail.GetRequestBody(message)

	resp, err := sendgridapi.MakeRequestWithContext(ctx, req)
	if err != nil {
		m.metrics.NotificationsSent.WithLabelValues("error").Inc()
		return fmt.Errorf("send notification: %w", err)
	}
	if resp.StatusCode >= 400 {
		m.metrics.NotificationsSent.WithLabelValues("error").Inc()
		return fmt.Errorf("sendgrid API error: status %d: %s", resp.StatusCode, resp.Body)
	}

	m.metrics.NotificationsSent.WithLabelValues("success").Inc()
	m.logger.Debug("notification sent",
		"shipment_id", event.ShipmentID,
		"status", event.Status,
	)
	return nil
}

// composeStatusEmail builds the subject and plain-text body for a status
// change, referencing the resolved display text so the recipient sees the
// same location the map renders.
func composeStatusEmail(event domain.TrackingEvent) (subject, body string) {
	switch event.Status {
	case domain.StatusDelivered:
		subject = fmt.Sprintf("Shipment %s delivered", event.ShipmentID)
		body = fmt.Sprintf(
			"Good news! Your shipment %s was delivered at %s.",
			event.ShipmentID, event.Destination.DisplayText,
		)
	case domain.StatusException:
		subject = fmt.Sprintf("Delivery issue with shipment %s", event.ShipmentID)
		body = fmt.Sprintf(
			"There is a delivery issue with your shipment %s near %s. The carrier is working to resolve it.",
			event.ShipmentID, event.CurrentLocation.DisplayText,
		)
	default:
		subject = fmt.Sprintf("Shipment %s update", event.ShipmentID)
		body = fmt.Sprintf(
			"Your shipment %s is now %s near %s.",
			event.ShipmentID, event.Status, event.CurrentLocation.DisplayText,
		)
	}
	return subject, body
}

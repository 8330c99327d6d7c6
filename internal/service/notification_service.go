package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	appErrors "github.com/huskytracks/huskytracks-api/pkg/errors"
	"github.com/huskytracks/huskytracks-api/pkg/mail"
)

// MatchNotificationRequest carries a single match announcement. Supervisor
// contact details are optional and only rendered when present.
type MatchNotificationRequest struct {
	To              string `json:"to" validate:"required,email"`
	ItemTitle       string `json:"itemTitle" validate:"required"`
	LocationName    string `json:"locationName" validate:"required"`
	SupervisorName  string `json:"supervisorName"`
	SupervisorEmail string `json:"supervisorEmail" validate:"omitempty,email"`
}

// NotificationService sends match announcements to reporters. One awaited
// delivery attempt per request; there is no queue and no retry.
type NotificationService struct {
	mailer    mail.Mailer
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewNotificationService constructs a NotificationService. A nil mailer means
// delivery is disabled and every send fails with a mail error.
func NewNotificationService(mailer mail.Mailer, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &NotificationService{mailer: mailer, metrics: metrics, validator: validate, logger: logger}
}

// SendMatchNotification emails the reporter that their item was matched.
func (s *NotificationService) SendMatchNotification(ctx context.Context, req MatchNotificationRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "recipient, item title, and location are required")
	}

	if s.mailer == nil {
		s.metrics.RecordMailOutcome(false)
		return appErrors.Clone(appErrors.ErrMailDelivery, "email sending is not configured")
	}

	msg := mail.Message{
		To:       req.To,
		Subject:  fmt.Sprintf("Lost Item Match Found at %s", req.LocationName),
		HTMLBody: matchHTMLBody(req),
		TextBody: matchTextBody(req),
	}

	if err := s.mailer.Send(ctx, msg); err != nil {
		s.metrics.RecordMailOutcome(false)
		s.logger.Error("match notification delivery failed",
			zap.String("to", req.To),
			zap.String("item", req.ItemTitle),
			zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrMailDelivery.Code, appErrors.ErrMailDelivery.Status, "email sending failed")
	}

	s.metrics.RecordMailOutcome(true)
	return nil
}

func matchHTMLBody(req MatchNotificationRequest) string {
	contact := ""
	if req.SupervisorName != "" || req.SupervisorEmail != "" {
		contact = fmt.Sprintf(`<p>To arrange pickup, contact %s at <a href="mailto:%s">%s</a>.</p>`,
			htmlOrDefault(req.SupervisorName, "the location supervisor"), req.SupervisorEmail, req.SupervisorEmail)
	}
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; color: #333;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
    <h2>Good news &mdash; your item was matched!</h2>
    <p>An item matching your report <strong>%s</strong> has been found at <strong>%s</strong>.</p>
    %s
    <p>Please bring your Husky ID when you come to collect it.</p>
    <p style="color: #666; font-size: 12px; margin-top: 24px;">This is an automated message from HuskyTracks. Please do not reply.</p>
  </div>
</body>
</html>`, req.ItemTitle, req.LocationName, contact)
}

func matchTextBody(req MatchNotificationRequest) string {
	contact := ""
	if req.SupervisorName != "" || req.SupervisorEmail != "" {
		contact = fmt.Sprintf("\nTo arrange pickup, contact %s at %s.\n",
			htmlOrDefault(req.SupervisorName, "the location supervisor"), req.SupervisorEmail)
	}
	return fmt.Sprintf(`Good news - your item was matched!

An item matching your report %q has been found at %s.
%s
Please bring your Husky ID when you come to collect it.

This is an automated message from HuskyTracks. Please do not reply.
`, req.ItemTitle, req.LocationName, contact)
}

func htmlOrDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

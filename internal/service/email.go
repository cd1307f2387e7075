package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ngoforum-backend/internal/config"
	"ngoforum-backend/internal/domain"
	"ngoforum-backend/internal/logger"
	"ngoforum-backend/internal/telemetry"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// MailSender is the part of the SendGrid client the email service uses
type MailSender interface {
	Send(email *mail.SGMailV3) (*rest.Response, error)
}

type emailService struct {
	sender  MailSender // nil in log-only mode
	from    *mail.Email
	siteURL string
}

// NewEmailService builds a SendGrid backed mailer. Without an API key the
// mailer only logs what it would have sent.
func NewEmailService(cfg config.EmailConfig) EmailService {
	var sender MailSender
	if cfg.SendGridAPIKey != "" {
		sender = sendgrid.NewSendClient(cfg.SendGridAPIKey)
	} else {
		logger.Warn("SendGrid API key not set, emails will only be logged")
	}
	return NewEmailServiceWithSender(sender, cfg)
}

func NewEmailServiceWithSender(sender MailSender, cfg config.EmailConfig) EmailService {
	return &emailService{
		sender:  sender,
		from:    mail.NewEmail(cfg.FromName, cfg.FromAddress),
		siteURL: strings.TrimRight(cfg.SiteURL, "/"),
	}
}

func (s *emailService) send(ctx context.Context, template string, to []string, subject, body string) error {
	if len(to) == 0 {
		return nil
	}

	if s.sender == nil {
		logger.InfoContext(ctx, "Email (log only)", "template", template, "to", to, "subject", subject)
		telemetry.EmailsSentTotal.WithLabelValues(template, "logged").Inc()
		return nil
	}

	message := mail.NewV3Mail()
	message.SetFrom(s.from)
	message.Subject = subject
	p := mail.NewPersonalization()
	for _, addr := range to {
		p.AddTos(mail.NewEmail("", addr))
	}
	message.AddPersonalizations(p)
	message.AddContent(mail.NewContent("text/plain", body))

	logger.ExternalServiceCall("sendgrid", template, "recipients", len(to))
	resp, err := s.sender.Send(message)
	if err == nil && resp != nil && resp.StatusCode >= 400 {
		err = fmt.Errorf("sendgrid error: status %d, body: %s", resp.StatusCode, resp.Body)
	}
	logger.ExternalServiceResult("sendgrid", template, err)

	if err != nil {
		telemetry.EmailsSentTotal.WithLabelValues(template, "failed").Inc()
		return fmt.Errorf("failed to send %s email: %w", template, err)
	}
	telemetry.EmailsSentTotal.WithLabelValues(template, "sent").Inc()
	return nil
}

func (s *emailService) SendWelcome(ctx context.Context, email, orgName, tempPassword string) error {
	body := fmt.Sprintf("Hello %s,\n\nYour membership application to the NGO Forum has been approved.\n\n"+
		"You can log in at %s/login with:\n\nEmail: %s\nTemporary password: %s\n\n"+
		"Please change your password after your first login.\n\nBest regards,\nThe NGO Forum Team",
		orgName, s.siteURL, email, tempPassword)
	return s.send(ctx, "welcome", []string{email}, "Welcome to the NGO Forum", body)
}

func (s *emailService) SendApplicationRejected(ctx context.Context, email, orgName, notes string) error {
	body := fmt.Sprintf("Hello %s,\n\nYour membership application to the NGO Forum was not approved.", orgName)
	if notes != "" {
		body += fmt.Sprintf("\n\nReviewer notes: %s", notes)
	}
	body += "\n\nBest regards,\nThe NGO Forum Team"
	return s.send(ctx, "application_rejected", []string{email}, "Your NGO Forum membership application", body)
}

func (s *emailService) SendContentDecision(ctx context.Context, email, orgName string, kind domain.ContentKind, approved bool, notes string) error {
	if approved {
		body := fmt.Sprintf("Hello %s,\n\nYour %s has been approved and is now published on the NGO Forum website.\n\n"+
			"Best regards,\nThe NGO Forum Team", orgName, kind.Label())
		return s.send(ctx, "content_approved", []string{email}, fmt.Sprintf("Your %s has been approved", kind.Label()), body)
	}

	body := fmt.Sprintf("Hello %s,\n\nYour %s needs revision before it can be published.", orgName, kind.Label())
	if notes != "" {
		body += fmt.Sprintf("\n\nFeedback: %s", notes)
	}
	body += "\n\nBest regards,\nThe NGO Forum Team"
	return s.send(ctx, "content_rejected", []string{email}, fmt.Sprintf("Your %s needs revision", kind.Label()), body)
}

func (s *emailService) SendMembershipExpiring(ctx context.Context, email, orgName string, daysLeft int, expiry time.Time) error {
	body := fmt.Sprintf("Hello %s,\n\nYour NGO Forum membership expires in %d days, on %s.\n\n"+
		"Please renew at %s/payments to keep your membership active.\n\nBest regards,\nThe NGO Forum Team",
		orgName, daysLeft, expiry.Format("January 2, 2006"), s.siteURL)
	return s.send(ctx, "membership_expiring", []string{email}, fmt.Sprintf("Membership expires in %d days", daysLeft), body)
}

func (s *emailService) SendMembershipDeactivated(ctx context.Context, email, orgName string) error {
	body := fmt.Sprintf("Hello %s,\n\nYour NGO Forum membership has expired and your organization is now inactive.\n\n"+
		"Renew at %s/payments to restore access.\n\nBest regards,\nThe NGO Forum Team", orgName, s.siteURL)
	return s.send(ctx, "membership_deactivated", []string{email}, "Your NGO Forum membership has expired", body)
}

func (s *emailService) SendPaymentCompleted(ctx context.Context, email, orgName string, expiry time.Time) error {
	body := fmt.Sprintf("Hello %s,\n\nWe have received your membership payment. Your membership is now active until %s.\n\n"+
		"Best regards,\nThe NGO Forum Team", orgName, expiry.Format("January 2, 2006"))
	return s.send(ctx, "payment_completed", []string{email}, "Membership payment received", body)
}

func (s *emailService) SendEventReminder(ctx context.Context, email, attendeeName string, event *domain.Event) error {
	when := event.EventDate.Format("January 2, 2006")
	if event.EventTime != "" {
		when += " at " + event.EventTime
	}
	body := fmt.Sprintf("Hello %s,\n\nThis is a reminder that %s takes place on %s", attendeeName, event.EventTitle, when)
	if event.Venue != "" {
		body += fmt.Sprintf(" at %s", event.Venue)
	}
	body += fmt.Sprintf(", %s.\n\nDetails: %s/events/%s\n\nBest regards,\nThe NGO Forum Team", event.Location, s.siteURL, event.Slug)
	return s.send(ctx, "event_reminder", []string{email}, fmt.Sprintf("Reminder: %s", event.EventTitle), body)
}

func (s *emailService) SendSecurityAlert(ctx context.Context, recipients []string, incident *domain.SecurityIncident) error {
	subject := fmt.Sprintf("[%s] Security incident reported: %s", incident.Severity, incident.IncidentType)
	body := fmt.Sprintf("A security incident has been reported.\n\n"+
		"Who: %s\nWhere: %s\nWhen: %s %s\n\nWhat happened:\n%s\n\nWhat was done:\n%s\n\nWhat is needed:\n%s\n\n"+
		"Reporter: %s <%s>\n\nReview it at %s/staff/security/incidents/%d",
		incident.Who, incident.WhereLocation, incident.WhenDate.Format("2006-01-02"), incident.WhenTime,
		incident.WhatHappened, incident.WhatYouDid, incident.WhatYouNeed,
		incident.ReporterName, incident.ReporterEmail, s.siteURL, incident.ID)
	return s.send(ctx, "security_alert", recipients, subject, body)
}

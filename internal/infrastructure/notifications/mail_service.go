package notifications

import (
	"fmt"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gopkg.in/gomail.v2"

	"github.com/mdanyllo/UpaonServicesBackPrototipo/domain"
)

// SenderImpl implements domain.NotificationSender over SMTP for email and
// Twilio for SMS. Unconfigured transports fall back to a logged mock send so
// local runs work without credentials.
type SenderImpl struct {
	dialer     *gomail.Dialer
	from       string
	twilio     *twilio.RestClient
	fromNumber string
}

// SMTPConfig carries the outbound mail settings
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// TwilioConfig carries the outbound SMS settings
type TwilioConfig struct {
	AccountSID string
	AuthToken  string
	FromNumber string
}

// NewSender creates a new notification sender
func NewSender(smtp SMTPConfig, tw TwilioConfig) domain.NotificationSender {
	s := &SenderImpl{from: smtp.From, fromNumber: tw.FromNumber}
	if smtp.Host != "" {
		s.dialer = gomail.NewDialer(smtp.Host, smtp.Port, smtp.Username, smtp.Password)
	}
	if tw.AccountSID != "" {
		s.twilio = twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: tw.AccountSID,
			Password: tw.AuthToken,
		})
	}
	return s
}

// SendEmail implements domain.NotificationSender
func (s *SenderImpl) SendEmail(to, subject, body string) error {
	if s.dialer == nil {
		fmt.Printf("[MOCK EMAIL] To: %s, Subject: %s\n", to, subject)
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// SendSMS implements domain.NotificationSender
func (s *SenderImpl) SendSMS(to, message string) error {
	if s.twilio == nil || s.fromNumber == "" {
		fmt.Printf("[MOCK SMS] To: %s, Message: %s\n", to, message)
		return nil
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.fromNumber)
	params.SetBody(message)

	if _, err := s.twilio.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("failed to send SMS: %w", err)
	}
	return nil
}

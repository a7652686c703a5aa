package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Notifuse/sespass/pkg/logger"
	"github.com/wneessen/go-mail"
)

// SMTPEndpoint returns the regional SES SMTP endpoint hostname.
func SMTPEndpoint(region string) string {
	return fmt.Sprintf("email-smtp.%s.amazonaws.com", region)
}

// VerifyService checks a derived SMTP password against the SES SMTP
// interface by dialing the regional endpoint with STARTTLS and LOGIN
// auth. Nothing is sent.
type VerifyService struct {
	logger        logger.Logger
	clientFactory func(host, username, password string) (SMTPDialer, error)
}

// SMTPDialer is the part of the SMTP client used for verification.
type SMTPDialer interface {
	DialWithContext(ctx context.Context) error
	Close() error
}

// NewVerifyService creates a new instance of VerifyService
func NewVerifyService(logger logger.Logger) *VerifyService {
	return &VerifyService{
		logger: logger,
		clientFactory: func(host, username, password string) (SMTPDialer, error) {
			return mail.NewClient(
				host,
				mail.WithPort(587),
				mail.WithUsername(username),
				mail.WithPassword(password),
				mail.WithSMTPAuth(mail.SMTPAuthLogin),
				mail.WithTLSPolicy(mail.TLSMandatory),
				mail.WithTimeout(10*time.Second),
			)
		},
	}
}

// NewVerifyServiceWithClient creates a new instance of VerifyService with a custom client factory for testing
func NewVerifyServiceWithClient(logger logger.Logger, clientFactory func(host, username, password string) (SMTPDialer, error)) *VerifyService {
	return &VerifyService{
		logger:        logger,
		clientFactory: clientFactory,
	}
}

// VerifyCredentials dials the SES SMTP endpoint for the region and
// authenticates with the given username (an IAM access key ID) and derived
// password. A nil return means the server accepted the credentials.
func (s *VerifyService) VerifyCredentials(ctx context.Context, region, username, password string) error {
	if username == "" {
		return fmt.Errorf("SMTP username is required")
	}

	host := SMTPEndpoint(region)
	client, err := s.clientFactory(host, username, password)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}

	if err := client.DialWithContext(ctx); err != nil {
		s.logger.Error(fmt.Sprintf("SMTP authentication failed against %s: %v", host, err))
		return fmt.Errorf("failed to authenticate against %s: %w", host, err)
	}
	defer client.Close()

	s.logger.WithField("host", host).Info("SMTP credentials accepted")
	return nil
}

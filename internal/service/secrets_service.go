package service

import (
	"context"
	"fmt"

	"github.com/Notifuse/sespass/internal/domain"
	"github.com/Notifuse/sespass/pkg/logger"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/secretsmanager"
	"github.com/tidwall/gjson"
)

// Custom domain errors for better testability
var (
	ErrMissingSecretID   = fmt.Errorf("secret ID is required")
	ErrEmptySecretString = fmt.Errorf("secret has no string value")
	ErrSecretKeyNotFound = fmt.Errorf("secret key field not found in secret JSON")
)

// SecretsService implements domain.SecretsServiceInterface on top of AWS
// Secrets Manager.
type SecretsService struct {
	logger         logger.Logger
	sessionFactory func(settings domain.SecretsSettings) (*session.Session, error)
	clientFactory  func(sess *session.Session) domain.SecretsManagerClient
}

// NewSecretsService creates a new instance of SecretsService with default factories
func NewSecretsService(logger logger.Logger) *SecretsService {
	return &SecretsService{
		logger: logger,
		sessionFactory: func(settings domain.SecretsSettings) (*session.Session, error) {
			return createSession(settings)
		},
		clientFactory: func(sess *session.Session) domain.SecretsManagerClient {
			return secretsmanager.New(sess)
		},
	}
}

// NewSecretsServiceWithClients creates a new instance of SecretsService with custom factories for testing
func NewSecretsServiceWithClients(
	logger logger.Logger,
	sessionFactory func(settings domain.SecretsSettings) (*session.Session, error),
	clientFactory func(sess *session.Session) domain.SecretsManagerClient,
) *SecretsService {
	return &SecretsService{
		logger:         logger,
		sessionFactory: sessionFactory,
		clientFactory:  clientFactory,
	}
}

// createSession creates an AWS session with the given settings. Static
// credentials are used when present, otherwise the SDK default chain
// (environment, shared config, instance role) applies.
func createSession(settings domain.SecretsSettings) (*session.Session, error) {
	cfg := &aws.Config{
		Region: aws.String(settings.Region),
	}
	if settings.AccessKey != "" && settings.SecretKey != "" {
		cfg.Credentials = credentials.NewStaticCredentials(settings.AccessKey, settings.SecretKey, "")
	}
	return session.NewSession(cfg)
}

// GetSecretKey fetches the secret and returns the secret access key text.
// When the secret string is a JSON object, the configured field is
// extracted; otherwise the string is returned unchanged.
func (s *SecretsService) GetSecretKey(ctx context.Context, settings domain.SecretsSettings) (string, error) {
	if settings.SecretID == "" {
		return "", ErrMissingSecretID
	}

	sess, err := s.sessionFactory(settings)
	if err != nil {
		s.logger.Error(fmt.Sprintf("Failed to create AWS session: %v", err))
		return "", fmt.Errorf("failed to create AWS session: %w", err)
	}

	client := s.clientFactory(sess)

	input := &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(settings.SecretID),
	}
	result, err := client.GetSecretValueWithContext(ctx, input)
	if err != nil {
		s.logger.Error(fmt.Sprintf("Failed to get secret value: %v", err))
		return "", fmt.Errorf("failed to get secret %s: %w", settings.SecretID, err)
	}

	if result.SecretString == nil || *result.SecretString == "" {
		return "", ErrEmptySecretString
	}
	secretString := *result.SecretString

	return ExtractSecretKey(secretString, settings.JSONKey)
}

// ExtractSecretKey pulls the secret access key out of a secret string.
// JSON secrets hold it under jsonKey; anything else is treated as the raw
// key itself.
func ExtractSecretKey(secretString, jsonKey string) (string, error) {
	if jsonKey == "" || !gjson.Valid(secretString) {
		return secretString, nil
	}

	parsed := gjson.Parse(secretString)
	if !parsed.IsObject() {
		return secretString, nil
	}

	field := parsed.Get(jsonKey)
	if !field.Exists() {
		return "", fmt.Errorf("%w: %s", ErrSecretKeyNotFound, jsonKey)
	}

	return field.String(), nil
}

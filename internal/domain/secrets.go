package domain

import (
	"context"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/secretsmanager"
)

// SecretsSettings holds what the secrets service needs to fetch a secret
// access key from AWS Secrets Manager.
type SecretsSettings struct {
	// Region the Secrets Manager call is made against.
	Region string `json:"region"`

	// SecretID is the name or ARN of the secret.
	SecretID string `json:"secret_id"`

	// JSONKey is the field to extract when the secret string is a JSON
	// object. A non-JSON secret string is returned as-is.
	JSONKey string `json:"json_key,omitempty"`

	// Optional static credentials; the SDK default chain is used when
	// empty.
	AccessKey string `json:"access_key,omitempty"`
	SecretKey string `json:"secret_key,omitempty"`
}

// SecretsManagerClient is the subset of the Secrets Manager API used by
// the secrets service.
type SecretsManagerClient interface {
	GetSecretValueWithContext(ctx aws.Context, input *secretsmanager.GetSecretValueInput, opts ...request.Option) (*secretsmanager.GetSecretValueOutput, error)
}

// SecretsServiceInterface retrieves the raw secret access key text.
type SecretsServiceInterface interface {
	GetSecretKey(ctx context.Context, settings SecretsSettings) (string, error)
}

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/Notifuse/sespass/config"
	"github.com/Notifuse/sespass/internal/domain"
	"github.com/Notifuse/sespass/internal/service"
	"github.com/Notifuse/sespass/pkg/logger"
	"github.com/Notifuse/sespass/pkg/sespass"
)

const usage = `Convert an IAM Secret Access Key to an SES SMTP password.

Usage: sespass <secret-access-key> [region]

The region defaults to us-east-1 (or AWS_REGION if set).

Instead of passing the key on the command line, set SECRET_ID to fetch it
from AWS Secrets Manager. SECRET_JSON_KEY selects the field when the
secret string is a JSON object (default "secretAccessKey").`

// Swappable for tests
var newSecretsService = func(log logger.Logger) domain.SecretsServiceInterface {
	return service.NewSecretsService(log)
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		return 1
	}

	log := logger.NewLogger(cfg.LogLevel)

	region := cfg.Region
	if len(args) >= 2 {
		region = args[1]
	}

	var secretKey string
	switch {
	case len(args) >= 1:
		secretKey = args[0]
	case cfg.Secrets.SecretID != "":
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		secrets := newSecretsService(log)
		secretKey, err = secrets.GetSecretKey(ctx, domain.SecretsSettings{
			Region:    cfg.Region,
			SecretID:  cfg.Secrets.SecretID,
			JSONKey:   cfg.Secrets.JSONKey,
			AccessKey: cfg.Secrets.AccessKey,
			SecretKey: cfg.Secrets.SecretKey,
		})
		if err != nil {
			log.Error(fmt.Sprintf("Failed to retrieve secret key: %v", err))
			return 1
		}
		log.WithField("secret_id", cfg.Secrets.SecretID).Debug("retrieved secret key from Secrets Manager")
	default:
		fmt.Println(usage)
		return 1
	}

	password := sespass.Derive(secretKey, region)
	fmt.Printf("SMTP Password: %s\n", password)

	if cfg.SMTPVerifyUser != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		verifier := service.NewVerifyService(log)
		if err := verifier.VerifyCredentials(ctx, region, cfg.SMTPVerifyUser, password); err != nil {
			return 1
		}
	}

	return 0
}

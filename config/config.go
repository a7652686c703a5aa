package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const VERSION = "1.0"

// Config holds the runtime configuration for the sespass tool. Everything
// is optional: with no environment set, the tool derives passwords for
// us-east-1 from the key given on the command line.
type Config struct {
	// Region the SMTP password is derived for.
	Region string

	// Secrets Manager retrieval of the secret access key, used when no
	// key is passed on the command line.
	Secrets SecretsConfig

	// SMTPVerifyUser is an SMTP username (an IAM access key ID). When
	// set, the tool checks the derived password against the regional SES
	// SMTP endpoint after deriving it.
	SMTPVerifyUser string

	LogLevel string
	Version  string
}

// SecretsConfig configures retrieval of the secret key from AWS Secrets
// Manager.
type SecretsConfig struct {
	// SecretID is the name or ARN of the secret, e.g.
	// "EmailForwarding/smtp-credentials".
	SecretID string

	// JSONKey is the field holding the secret access key when the secret
	// string is a JSON object.
	JSONKey string

	// Static credentials for the Secrets Manager call. When empty the
	// SDK's default credential chain is used.
	AccessKey string
	SecretKey string
}

// LoadOptions contains options for loading configuration
type LoadOptions struct {
	EnvFile string // Optional environment file to load (e.g., ".env", ".env.test")
}

// Load loads the configuration with default options
func Load() (*Config, error) {
	// Try to load .env file but don't require it
	return LoadWithOptions(LoadOptions{EnvFile: ".env"})
}

// LoadWithOptions loads the configuration with the specified options
func LoadWithOptions(opts LoadOptions) (*Config, error) {
	v := viper.New()

	// Set default values
	v.SetDefault("AWS_REGION", "us-east-1")
	v.SetDefault("SECRET_JSON_KEY", "secretAccessKey")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("VERSION", VERSION)

	// Load environment file if specified
	if opts.EnvFile != "" {
		v.SetConfigName(opts.EnvFile)
		v.SetConfigType("env")

		currentPath, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("error getting current directory: %w", err)
		}

		v.AddConfigPath(currentPath)

		if err := v.ReadInConfig(); err != nil {
			// It's okay if config file doesn't exist
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	// Read environment variables
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	config := &Config{
		Region: v.GetString("AWS_REGION"),
		Secrets: SecretsConfig{
			SecretID:  v.GetString("SECRET_ID"),
			JSONKey:   v.GetString("SECRET_JSON_KEY"),
			AccessKey: v.GetString("AWS_ACCESS_KEY_ID"),
			SecretKey: v.GetString("AWS_SECRET_ACCESS_KEY"),
		},
		SMTPVerifyUser: v.GetString("SMTP_VERIFY_USER"),
		LogLevel:       v.GetString("LOG_LEVEL"),
		Version:        v.GetString("VERSION"),
	}

	return config, nil
}

// Package sespass converts an IAM secret access key into the password
// expected by the Amazon SES SMTP interface.
//
// SES SMTP authentication uses a derived password, not the raw secret key.
// The conversion is the documented AWS algorithm: a SigV4-style signing key
// is derived for a fixed date and the "ses" service, the signing version
// byte is signed with it, and the version byte plus signature are base64
// encoded.
package sespass

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
)

// SigningVersion is the SMTP password format version byte. It is signed
// and prepended as a raw byte, not as the ASCII character '4'.
const SigningVersion = byte(0x04)

// DefaultRegion is used when no region is given.
const DefaultRegion = "us-east-1"

const (
	// Static date required by the AWS algorithm so the password is stable
	// over time. Not a placeholder.
	signingDate = "11111111"

	signingService  = "ses"
	signingTerminal = "aws4_request"
)

func hmacSHA256(key, message []byte) []byte {
	h := hmac.New(sha256.New, key)
	h.Write(message)
	return h.Sum(nil)
}

// DeriveBytes returns the raw password material for the given secret access
// key and region: the signing version byte followed by the 32-byte
// signature, 33 bytes in total. The result is deterministic and defined for
// any input, including an empty secret key.
func DeriveBytes(secretKey, region string) []byte {
	kDate := hmacSHA256([]byte("AWS4"+secretKey), []byte(signingDate))
	kRegion := hmacSHA256(kDate, []byte(region))
	kService := hmacSHA256(kRegion, []byte(signingService))
	kTerminal := hmacSHA256(kService, []byte(signingTerminal))
	signature := hmacSHA256(kTerminal, []byte{SigningVersion})

	return append([]byte{SigningVersion}, signature...)
}

// Derive returns the SES SMTP password for the given secret access key and
// region: the standard base64 encoding of DeriveBytes, always 44 characters.
func Derive(secretKey, region string) string {
	return base64.StdEncoding.EncodeToString(DeriveBytes(secretKey, region))
}

// DeriveDefault derives the password for DefaultRegion.
func DeriveDefault(secretKey string) string {
	return Derive(secretKey, DefaultRegion)
}

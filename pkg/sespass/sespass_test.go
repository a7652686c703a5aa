package sespass

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Known-answer vectors produced with the documented AWS reference
// algorithm, using the example secret key from the AWS documentation.
func TestDeriveKnownVectors(t *testing.T) {
	const exampleKey = "wJalrXUtnFEMI/K7MDENG/bPxRfiCYEXAMPLEKEY"

	tests := []struct {
		name      string
		secretKey string
		region    string
		expected  string
	}{
		{
			name:      "example key us-east-1",
			secretKey: exampleKey,
			region:    "us-east-1",
			expected:  "BGDzOHkodhNwID9UZ887HBFM11uJOl2hsV4Vuaf2eNa6",
		},
		{
			name:      "example key eu-west-1",
			secretKey: exampleKey,
			region:    "eu-west-1",
			expected:  "BIOB00E5nSlyRfWhDhPZ8xHdU6zhRYJTfsy7koF63P7Q",
		},
		{
			name:      "example key us-west-2",
			secretKey: exampleKey,
			region:    "us-west-2",
			expected:  "BIuBEsjjFJrkWxU3H/mX2UasphaTTJ/nygmFOWTt0v52",
		},
		{
			name:      "short key us-east-1",
			secretKey: "an-example-secret-key",
			region:    "us-east-1",
			expected:  "BOVPFQo2FVZrQXTrplSiGgw7nvvjpiAd1WD0JZ/PjM+l",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Derive(tc.secretKey, tc.region))
		})
	}
}

func TestDeriveIsDeterministic(t *testing.T) {
	first := Derive("some-secret", "ap-southeast-2")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Derive("some-secret", "ap-southeast-2"))
	}
}

func TestDeriveOutputLength(t *testing.T) {
	// 1 version byte + 32-byte signature = 33 bytes = 44 base64 chars.
	for _, secretKey := range []string{"", "x", "wJalrXUtnFEMI/K7MDENG/bPxRfiCYEXAMPLEKEY"} {
		for _, region := range []string{"us-east-1", "eu-central-1", ""} {
			password := Derive(secretKey, region)
			assert.Len(t, password, 44)

			raw := DeriveBytes(secretKey, region)
			assert.Len(t, raw, 33)
			assert.Equal(t, SigningVersion, raw[0])
		}
	}
}

func TestDeriveRegionSensitivity(t *testing.T) {
	const secretKey = "wJalrXUtnFEMI/K7MDENG/bPxRfiCYEXAMPLEKEY"

	regions := []string{"us-east-1", "us-west-2", "eu-west-1", "eu-central-1", "ap-south-1"}
	seen := make(map[string]string)
	for _, region := range regions {
		password := Derive(secretKey, region)
		previous, duplicate := seen[password]
		require.False(t, duplicate, "regions %q and %q derived the same password", previous, region)
		seen[password] = region
	}
}

func TestDeriveDefaultMatchesExplicitRegion(t *testing.T) {
	assert.Equal(t, Derive("my-secret", "us-east-1"), DeriveDefault("my-secret"))
	assert.Equal(t, Derive("my-secret", DefaultRegion), DeriveDefault("my-secret"))
}

func TestDeriveEmptySecretKey(t *testing.T) {
	// The algorithm is total: an empty key still derives a password.
	assert.Equal(t, "BMGDwUHrXLhik6NfPj2YmLTQSxXcA+eUrWNO6vOloeIs", Derive("", "us-east-1"))
	assert.Equal(t, "BEW8fk6HD4Nywdr0c16qxWzBOzKA3/Qg/dZfLVutJlSJ", Derive("", "eu-central-1"))
}

// Signing the ASCII character '4' (0x34) instead of the raw byte 0x04 is
// the classic mistake when implementing this algorithm. Make sure we do
// not match what that buggy variant would produce.
func TestDeriveSignsRawVersionByte(t *testing.T) {
	const secretKey = "wJalrXUtnFEMI/K7MDENG/bPxRfiCYEXAMPLEKEY"

	buggy := func(secretKey, region string) string {
		version := []byte{'4'}
		mac := func(key, message []byte) []byte {
			h := hmac.New(sha256.New, key)
			h.Write(message)
			return h.Sum(nil)
		}
		kDate := mac([]byte("AWS4"+secretKey), []byte("11111111"))
		kRegion := mac(kDate, []byte(region))
		kService := mac(kRegion, []byte("ses"))
		kTerminal := mac(kService, []byte("aws4_request"))
		signature := mac(kTerminal, version)
		return base64.StdEncoding.EncodeToString(append(version, signature...))
	}

	wrong := buggy(secretKey, "us-east-1")
	assert.Equal(t, "NKM0tHY1Xulxoie7oLFz6x/VS1wr5HnoaZKGkw9ntivE", wrong)
	assert.NotEqual(t, wrong, Derive(secretKey, "us-east-1"))
}

func TestDeriveBytesMatchesDerive(t *testing.T) {
	raw := DeriveBytes("my-secret", "us-east-1")
	assert.Equal(t, Derive("my-secret", "us-east-1"), base64.StdEncoding.EncodeToString(raw))
}

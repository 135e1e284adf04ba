package utils

import (
	"strings"
	"time"

	"github.com/pquerna/otp/totp"
)

// GenerateOTP computes the current 6-digit TOTP for a base32 secret.
// Secrets are stored the way providers hand them out, so spaces and
// lowercase are tolerated.
func GenerateOTP(secret string) (string, error) {
	return GenerateOTPAt(secret, time.Now())
}

func GenerateOTPAt(secret string, t time.Time) (string, error) {
	normalized := strings.ToUpper(strings.ReplaceAll(secret, " ", ""))
	return totp.GenerateCode(normalized, t)
}

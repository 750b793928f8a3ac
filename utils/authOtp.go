package utils

import (
	"MediCore/cache"
	"context"
	"fmt"
	"math/rand"
	"time"
)

const OtpExpiry = 5 * time.Minute

// GenerateOTP generates a random 6-digit one-time code.
func GenerateOTP() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

// SetOTP stores the code for a given email in Redis with a short expiry.
func SetOTP(ctx context.Context, c *cache.Cache, email, code string) error {
	return c.Set(ctx, "otp_code:"+email, code, OtpExpiry)
}

// GetOTP retrieves the code for a given email from Redis. Returns "" when
// no code is stored or it has expired.
func GetOTP(ctx context.Context, c *cache.Cache, email string) (string, error) {
	return c.Get(ctx, "otp_code:"+email)
}

// DeleteOTP removes the code for a given email from Redis.
func DeleteOTP(ctx context.Context, c *cache.Cache, email string) error {
	return c.Delete(ctx, "otp_code:"+email)
}

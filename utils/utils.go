package utils

import (
	"fmt"
	"math/rand"
	"time"
)

// GenerateCertificateNumber generates a human-readable certificate number,
// e.g. CERT-2026-4F7K2M9Q. Uniqueness is enforced by the database; callers
// retry with a fresh number on collision.
func GenerateCertificateNumber() string {
	const charset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	code := make([]byte, 8)
	for i := range code {
		code[i] = charset[rng.Intn(len(charset))]
	}
	return fmt.Sprintf("CERT-%d-%s", time.Now().Year(), string(code))
}

package utils

import (
	"lms/config"
	"log"
	"time"

	"github.com/go-resty/resty/v2"
)

// CertificatePayload is posted to the configured webhook when a certificate
// is issued, so an external renderer/registry can pick it up.
type CertificatePayload struct {
	CertificateNumber string    `json:"certificate_number"`
	VerificationID    string    `json:"verification_id"`
	UserName          string    `json:"user_name"`
	UserEmail         string    `json:"user_email"`
	CourseTitle       string    `json:"course_title"`
	CertificateTitle  string    `json:"certificate_title"`
	IssuedAt          time.Time `json:"issued_at"`
}

// NotifyCertificateIssued posts the payload to CERTIFICATE_WEBHOOK_URL.
// Failures are logged, never surfaced; issuance already committed.
func NotifyCertificateIssued(payload CertificatePayload) {
	url := config.AppConfig.CertificateWebhookURL
	if url == "" {
		return
	}

	client := resty.New().SetTimeout(10 * time.Second)

	resp, err := client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post(url)
	if err != nil {
		log.Printf("Certificate webhook failed for %s: %v", payload.CertificateNumber, err)
		return
	}
	if resp.IsError() {
		log.Printf("Certificate webhook returned %d for %s", resp.StatusCode(), payload.CertificateNumber)
	}
}

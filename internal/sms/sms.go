// Package sms abstracts SMS delivery for phone-based OTP login. The
// gateway itself is an external collaborator.
package sms

import (
	"giglink_backend/internal/logger"
)

// Provider delivers short messages to a phone number.
type Provider interface {
	SendOTP(phoneNumber string, code string, ttlMinutes int) error
}

// LogProvider logs instead of sending; used until a real gateway is wired
// in deployment config.
type LogProvider struct{}

func (p *LogProvider) SendOTP(phoneNumber string, code string, ttlMinutes int) error {
	logger.Info("sms dispatch (log provider)", "phone_number", phoneNumber, "ttl_minutes", ttlMinutes)
	return nil
}

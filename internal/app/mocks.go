package app

import (
	"context"

	"giglink_backend/internal/email"
	"giglink_backend/internal/identity"
)

// MockEmailProvider is used for tests and local development.
type MockEmailProvider struct{}

func (m *MockEmailProvider) Send(msg *email.Email) error                    { return nil }
func (m *MockEmailProvider) SendOTP(to string, code string, ttl int) error  { return nil }
func (m *MockEmailProvider) Validate() error                                { return nil }
func (m *MockEmailProvider) SendTemplate(to []string, subject string, templateName string, data email.TemplateData) error {
	return nil
}

// DisabledVerifier rejects every assertion. Installed when no Google client
// id is configured.
type DisabledVerifier struct{}

func (v *DisabledVerifier) Verify(ctx context.Context, token string) (*identity.Claims, error) {
	return nil, identity.ErrAssertionInvalid
}

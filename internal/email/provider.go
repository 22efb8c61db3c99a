package email

// Provider sends email. Delivery is an external collaborator: the OTP flow
// treats its failures as dispatch errors that fail the request.
type Provider interface {
	// Send delivers a plain message.
	Send(email *Email) error

	// SendOTP delivers a login code to one recipient.
	SendOTP(to string, code string, ttlMinutes int) error

	// SendTemplate renders a named template and delivers it.
	SendTemplate(to []string, subject string, templateName string, data TemplateData) error

	// Validate checks the provider configuration.
	Validate() error
}

// TemplateRenderer renders named HTML templates.
type TemplateRenderer interface {
	Render(templateName string, data TemplateData) (string, error)
	AddTemplate(name string, template string) error
}

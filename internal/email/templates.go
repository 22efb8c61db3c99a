package email

import (
	"fmt"
	"html/template"
	"strings"
	"sync"
)

// TemplateManager keeps parsed templates behind a read-write lock.
type TemplateManager struct {
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

// Built-in templates; a templates directory is unnecessary for the handful
// of messages this service sends.
const otpTemplate = `<h1>Login code</h1>
<p>Your one-time login code is: <strong>{{.Code}}</strong></p>
<p>It will expire in {{.TTLMinutes}} minutes.</p>`

const applicationStatusTemplate = `<h1>Application update</h1>
<p>Your application for <strong>{{.PostTitle}}</strong> is now: {{.Status}}.</p>`

func NewTemplateManager() *TemplateManager {
	tm := &TemplateManager{
		templates: make(map[string]*template.Template),
	}
	// Registration of the built-ins cannot fail at runtime input, so errors
	// here mean a broken template literal and panic at startup.
	for name, body := range map[string]string{
		"otp":                otpTemplate,
		"application_status": applicationStatusTemplate,
	} {
		if err := tm.AddTemplate(name, body); err != nil {
			panic(fmt.Sprintf("email: bad built-in template %q: %v", name, err))
		}
	}
	return tm
}

// Render executes a named template with the given data.
func (tm *TemplateManager) Render(templateName string, data TemplateData) (string, error) {
	tm.mutex.RLock()
	tpl, exists := tm.templates[templateName]
	tm.mutex.RUnlock()

	if !exists {
		return "", fmt.Errorf("template not found: %s", templateName)
	}

	var buf strings.Builder
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

// AddTemplate parses and registers a template under the given name.
func (tm *TemplateManager) AddTemplate(name string, body string) error {
	tpl, err := template.New(name).Parse(body)
	if err != nil {
		return fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	tm.mutex.Lock()
	tm.templates[name] = tpl
	tm.mutex.Unlock()
	return nil
}

package email

import (
	"fmt"
	"html/template"
	"strings"
	"sync"
)

// TemplateManager реализует TemplateRenderer
type TemplateManager struct {
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

// NewTemplateManager создает менеджер с предзагруженными шаблонами платформы
func NewTemplateManager() *TemplateManager {
	tm := &TemplateManager{
		templates: make(map[string]*template.Template),
	}

	// Ошибки здесь невозможны: шаблоны статические
	_ = tm.AddTemplate("welcome", welcomeTemplate)
	_ = tm.AddTemplate("password_reset", passwordResetTemplate)

	return tm
}

// Render рендерит шаблон с данными
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

// AddTemplate добавляет шаблон в менеджер
func (tm *TemplateManager) AddTemplate(name string, templateStr string) error {
	tpl, err := template.New(name).Parse(templateStr)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	tm.mutex.Lock()
	tm.templates[name] = tpl
	tm.mutex.Unlock()

	return nil
}

const welcomeTemplate = `<html><body>
<h2>Welcome to Artbook, {{.UserName}}!</h2>
<p>Your account has been created. You can now sign in and start
{{if .IsArtist}}building your portfolio{{else}}booking artists{{end}}.</p>
</body></html>`

const passwordResetTemplate = `<html><body>
<h2>Password reset</h2>
<p>We received a request to reset your password. Use the token below within {{.ExpiresIn}}:</p>
<p><code>{{.Token}}</code></p>
<p>If you did not request this, you can ignore this email.</p>
</body></html>`

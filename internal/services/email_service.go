package services

import (
	"context"

	"artbook_backend/internal/email"
)

// EmailService предоставляет высокоуровневый интерфейс для работы с email
type EmailService struct {
	provider email.Provider
}

// NewEmailService создает новый экземпляр EmailService
func NewEmailService(provider email.Provider) *EmailService {
	return &EmailService{
		provider: provider,
	}
}

// SendSimpleEmail отправляет простое текстовое email сообщение
func (s *EmailService) SendSimpleEmail(ctx context.Context, to []string, subject, body string) error {
	return s.provider.Send(&email.Email{
		To:      to,
		Subject: subject,
		Body:    body,
	})
}

// SendTemplatedEmail отправляет email используя шаблон
func (s *EmailService) SendTemplatedEmail(ctx context.Context, to []string, subject, templateName string, data email.TemplateData) error {
	return s.provider.SendWithTemplate(templateName, data, &email.Email{
		To:      to,
		Subject: subject,
	})
}

// SendWelcomeEmail отправляет приветственное письмо
func (s *EmailService) SendWelcomeEmail(ctx context.Context, to, userName string, isArtist bool) error {
	data := email.TemplateData{
		"UserName": userName,
		"IsArtist": isArtist,
	}
	return s.SendTemplatedEmail(ctx, []string{to}, "Welcome to Artbook", "welcome", data)
}

// SendPasswordResetEmail отправляет письмо для сброса пароля
func (s *EmailService) SendPasswordResetEmail(ctx context.Context, to, resetToken string) error {
	data := email.TemplateData{
		"Token":     resetToken,
		"ExpiresIn": "1 hour",
	}
	return s.SendTemplatedEmail(ctx, []string{to}, "Password reset", "password_reset", data)
}

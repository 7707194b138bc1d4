package email

// SMTPConfig содержит конфигурацию SMTP сервера
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
}

// Enabled сообщает, настроена ли отправка почты
func (c *SMTPConfig) Enabled() bool {
	return c != nil && c.Host != ""
}

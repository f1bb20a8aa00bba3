package mail

import (
	"fmt"

	"github.com/sirupsen/logrus"
	gomail "gopkg.in/gomail.v2"

	"github.com/dnevnikapp/diary-backend/internal/logger"
)

// Sender отправляет письма с кодом подтверждения. За интерфейсом
// прячется SMTP; в тестах используется фейковая реализация.
type Sender interface {
	SendVerificationCode(to, code string) error
}

// SMTPSender отправляет письма через SMTP-сервер.
type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPSender создаёт отправителя с заданными реквизитами SMTP.
func NewSMTPSender(host string, port int, username, password, from string) *SMTPSender {
	return &SMTPSender{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

// SendVerificationCode отправляет пользователю письмо с кодом
// подтверждения регистрации.
func (s *SMTPSender) SendVerificationCode(to, code string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Код подтверждения")
	m.SetBody("text/plain", fmt.Sprintf(
		"Ваш код подтверждения: %s\n\nВведите его на странице подтверждения, чтобы активировать аккаунт.", code,
	))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("mail: не удалось отправить код на %s: %w", to, err)
	}
	return nil
}

// LogSender пишет код в лог вместо отправки письма. Используется в
// development, когда SMTP не настроен.
type LogSender struct{}

// SendVerificationCode логирует код подтверждения.
func (LogSender) SendVerificationCode(to, code string) error {
	if logger.Log != nil {
		logger.Log.WithFields(logrus.Fields{
			"to":   to,
			"code": code,
		}).Info("mail: код подтверждения (SMTP не настроен)")
	}
	return nil
}

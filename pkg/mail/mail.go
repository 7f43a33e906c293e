package mail

import (
	"sync"

	"github.com/ahaven/authors-haven-api/internal/config"
	"github.com/ahaven/authors-haven-api/internal/logger"
	"gopkg.in/gomail.v2"
)

// Sender 邮件发送接口
type Sender interface {
	// Send 发送一封邮件，收件人可以有多个
	Send(to []string, subject, body string) error
}

var (
	sender     Sender
	senderOnce sync.Once
)

// GetSender 获取邮件发送器实例
func GetSender() Sender {
	senderOnce.Do(func() {
		cfg := config.GlobalConfig.Mail
		if !cfg.Enabled {
			sender = &noopSender{}
			return
		}
		sender = &smtpSender{
			dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
			from:   cfg.From,
		}
	})
	return sender
}

// smtpSender 基于SMTP的邮件发送实现
type smtpSender struct {
	dialer *gomail.Dialer
	from   string
}

// Send 发送邮件
func (s *smtpSender) Send(to []string, subject, body string) error {
	if len(to) == 0 {
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	return s.dialer.DialAndSend(m)
}

// noopSender 邮件功能未启用时的空实现
type noopSender struct{}

// Send 仅记录日志，不实际发送
func (s *noopSender) Send(to []string, subject, body string) error {
	logger.Warnf("邮件功能未启用，跳过发送: 收件人=%v 主题=%s", to, subject)
	return nil
}

package mailer

import (
	"net/smtp"

	"github.com/Adhish-Krishna/CSEA-EMS-sub000/internal/conf"
)

type smtpSender struct {
	cfg conf.MailConfig
}

func newSMTPSender(cfg conf.MailConfig) *smtpSender {
	return &smtpSender{cfg: cfg}
}

func (s *smtpSender) Send(task Task) error {
	msg := []byte("From: " + s.cfg.From + "\r\n" +
		"To: " + task.To + "\r\n" +
		"Subject: " + task.Subject + "\r\n" +
		"\r\n" +
		task.Body + "\r\n")

	addr := s.cfg.SMTPHost + ":" + s.cfg.SMTPPort
	var auth smtp.Auth
	if s.cfg.Password != "" {
		auth = smtp.PlainAuth("", s.cfg.From, s.cfg.Password, s.cfg.SMTPHost)
	}
	return smtp.SendMail(addr, auth, s.cfg.From, []string{task.To}, msg)
}

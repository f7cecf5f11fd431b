package email

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"net/smtp"
	"time"
)

// sendWithSMTP delivers a multipart/alternative message over plain SMTP.
func (s *Service) sendWithSMTP(data EmailData, htmlContent, textContent string) error {
	cfg := s.config.SMTP
	if cfg.Host == "" {
		return fmt.Errorf("smtp host not configured")
	}
	if data.From == "" {
		data.From = cfg.From
	}
	if data.From == "" {
		return fmt.Errorf("missing sender email address")
	}

	boundary := fmt.Sprintf("beatbook-alt-%d", time.Now().UnixNano())

	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: %s <%s>\r\n", data.FromName, data.From)
	fmt.Fprintf(&msg, "To: %s\r\n", data.To)
	fmt.Fprintf(&msg, "Subject: %s\r\n", data.Subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&msg, "Content-Type: multipart/alternative; boundary=%s\r\n\r\n", boundary)

	writePart := func(contentType, body string) {
		fmt.Fprintf(&msg, "--%s\r\n", boundary)
		fmt.Fprintf(&msg, "Content-Type: %s; charset=utf-8\r\n", contentType)
		msg.WriteString("Content-Transfer-Encoding: base64\r\n\r\n")
		msg.WriteString(base64.StdEncoding.EncodeToString([]byte(body)))
		msg.WriteString("\r\n")
	}
	// Plaintext first so clients that stop at the first part still render.
	writePart("text/plain", textContent)
	writePart("text/html", htmlContent)
	fmt.Fprintf(&msg, "--%s--", boundary)

	auth := smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	if err := smtp.SendMail(addr, auth, data.From, []string{data.To}, msg.Bytes()); err != nil {
		return fmt.Errorf("sending email via SMTP: %w", err)
	}
	return nil
}

package report

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

// EmailSink delivers the summary over SMTP as a plain-text message.
type EmailSink struct {
	Host       string
	Port       int
	From       string
	Password   string
	Recipients []string
	Subject    string // may contain {date}
}

func (e *EmailSink) Name() string { return "email" }

// Send builds and sends the report mail. STARTTLS is negotiated by the smtp
// package when the server offers it.
func (e *EmailSink) Send(_ context.Context, s Summary) error {
	subject := strings.ReplaceAll(e.Subject, "{date}", s.Date)
	if subject == "" {
		subject = "Javadoc Generation Report - " + s.Date
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", e.From)
	fmt.Fprintf(&msg, "To: %s\r\n", strings.Join(e.Recipients, ", "))
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n")
	msg.WriteString(RenderText(s))

	addr := fmt.Sprintf("%s:%d", e.Host, e.Port)
	auth := smtp.PlainAuth("", e.From, e.Password, e.Host)
	if err := smtp.SendMail(addr, auth, e.From, e.Recipients, []byte(msg.String())); err != nil {
		return fmt.Errorf("send report mail: %w", err)
	}
	return nil
}

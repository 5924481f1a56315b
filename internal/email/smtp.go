package email

import (
	"context"
	"fmt"
	"net"
	"time"

	gomail "github.com/wneessen/go-mail"

	"seedstore_backend/platform/config"
)

const smtpTimeout = 15 * time.Second

// SMTPSender delivers order mail through one SMTP relay. A new connection is
// dialed per message.
type SMTPSender struct {
	host      string
	options   []gomail.Option
	fromName  string
	fromEmail string
}

// NewSMTPSender builds a sender for host:port. Authentication is skipped when
// username is empty, which is how local catch-all relays are usually run.
func NewSMTPSender(host string, port int, username, password, fromEmail, fromName string) *SMTPSender {
	options := []gomail.Option{
		gomail.WithPort(port),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(smtpTimeout),
		gomail.WithDialContextFunc(func(ctx context.Context, _ string, addr string) (net.Conn, error) {
			return (&net.Dialer{}).DialContext(ctx, "tcp4", addr)
		}),
	}
	if username != "" {
		options = append(options,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(username),
			gomail.WithPassword(password),
		)
	}
	return &SMTPSender{host: host, options: options, fromName: fromName, fromEmail: fromEmail}
}

func NewSMTPSenderFromConfig(cfg config.EmailConfig) *SMTPSender {
	return NewSMTPSender(cfg.GetSMTPHost(), cfg.GetSMTPPort(), cfg.GetSMTPUsername(), cfg.GetSMTPPassword(),
		cfg.GetEmailFromAddress(), cfg.GetEmailFromName())
}

func (s *SMTPSender) SendOrderPlacedEmail(ctx context.Context, toEmail string, msg OrderPlacedMessage) error {
	body, err := renderOrderPlaced(msg)
	if err != nil {
		return err
	}
	return s.deliver(ctx, toEmail, fmt.Sprintf(subjectOrderPlacedFmt, msg.OrderID), body)
}

func (s *SMTPSender) SendOrderStatusEmail(ctx context.Context, toEmail string, msg OrderStatusMessage) error {
	body, err := renderOrderStatus(msg)
	if err != nil {
		return err
	}
	return s.deliver(ctx, toEmail, fmt.Sprintf(subjectOrderStatusFmt, msg.OrderID, msg.StatusDisplay), body)
}

func (s *SMTPSender) deliver(ctx context.Context, toEmail, subject, htmlBody string) error {
	msg, err := s.compose(toEmail, subject, htmlBody)
	if err != nil {
		return err
	}

	client, err := gomail.NewClient(s.host, s.options...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send to %s: %w", toEmail, err)
	}
	return nil
}

// compose builds the message without touching the network.
func (s *SMTPSender) compose(toEmail, subject, htmlBody string) (*gomail.Msg, error) {
	msg := gomail.NewMsg()
	if err := msg.FromFormat(s.fromName, s.fromEmail); err != nil {
		return nil, fmt.Errorf("smtp from: %w", err)
	}
	if err := msg.To(toEmail); err != nil {
		return nil, fmt.Errorf("smtp to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlBody)
	return msg, nil
}

var _ Sender = (*SMTPSender)(nil)

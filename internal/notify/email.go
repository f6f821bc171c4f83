package notify

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/nicheclub/storefront/internal/config"
	"github.com/nicheclub/storefront/internal/models"
)

// Mailer sends the order-confirmation email. Delivery is best-effort:
// callers log failures and move on, they never roll back the order.
type Mailer interface {
	OrderConfirmation(order *models.Order) error
}

type smtpMailer struct {
	cfg config.SMTPConfig
}

func NewSMTPMailer(cfg config.SMTPConfig) Mailer {
	return &smtpMailer{cfg: cfg}
}

func (m *smtpMailer) OrderConfirmation(order *models.Order) error {
	if m.cfg.Host == "" {
		// Mail is optional; an unconfigured mailer silently does nothing.
		return nil
	}

	var body strings.Builder
	fmt.Fprintf(&body, "From: %s\r\n", m.cfg.From)
	fmt.Fprintf(&body, "To: %s\r\n", order.CustomerEmail)
	fmt.Fprintf(&body, "Subject: Order confirmation %s\r\n", order.OrderNumber)
	body.WriteString("\r\n")
	fmt.Fprintf(&body, "Hi %s,\r\n\r\nThanks for your order %s.\r\n\r\n", order.CustomerName, order.OrderNumber)
	for _, item := range order.Items {
		variant := ""
		if item.Size != "" || item.Color != "" {
			variant = fmt.Sprintf(" (%s %s)", item.Size, item.Color)
		}
		fmt.Fprintf(&body, "  %dx %s%s - $%s\r\n", item.Quantity, item.Name, variant, item.UnitPrice.StringFixed(2))
	}
	body.WriteString("\r\n")
	fmt.Fprintf(&body, "Subtotal: $%s\r\n", order.Subtotal.StringFixed(2))
	fmt.Fprintf(&body, "Shipping: $%s\r\n", order.Shipping.StringFixed(2))
	fmt.Fprintf(&body, "Tax: $%s\r\n", order.Tax.StringFixed(2))
	fmt.Fprintf(&body, "Total: $%s\r\n", order.Total.StringFixed(2))

	auth := smtp.PlainAuth("", m.cfg.From, m.cfg.Password, m.cfg.Host)
	addr := m.cfg.Host + ":" + m.cfg.Port

	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{order.CustomerEmail}, []byte(body.String())); err != nil {
		return fmt.Errorf("send confirmation email: %w", err)
	}

	return nil
}

type noopMailer struct{}

// NewNoopMailer is used in tests and environments without SMTP credentials.
func NewNoopMailer() Mailer { return noopMailer{} }

func (noopMailer) OrderConfirmation(*models.Order) error { return nil }

package mail

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"strings"

	"github.com/mroblesv/Viajes_Admin_BackEnd/internal/domain"
)

type SaleConfirmationMailer struct {
	host     string
	port     string
	username string
	password string
	from     string
}

func NewSaleConfirmationMailer(host, port, username, password, from string) *SaleConfirmationMailer {
	return &SaleConfirmationMailer{
		host:     strings.TrimSpace(host),
		port:     strings.TrimSpace(port),
		username: username,
		password: password,
		from:     strings.TrimSpace(from),
	}
}

// SendSaleConfirmation mails the booking summary to the customer once a sale
// is confirmed. Sales can confirm without an email on file; callers skip the
// send in that case.
func (m *SaleConfirmationMailer) SendSaleConfirmation(ctx context.Context, email string, sale *domain.Sale) error {
	if m == nil {
		return errors.New("mailer not configured")
	}
	if m.host == "" || m.port == "" || m.from == "" {
		return errors.New("mailer missing configuration")
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	subject := fmt.Sprintf("Reserva confirmada - %s", sale.BookingCode)

	body := strings.Builder{}
	body.WriteString(fmt.Sprintf("Hola %s,\n\n", sale.CustomerName))
	body.WriteString(fmt.Sprintf("Tu reserva %s ha sido confirmada.\n\n", sale.BookingCode))
	for _, item := range sale.Items {
		body.WriteString(fmt.Sprintf("- %s | salida %s | %d viajero(s)\n",
			item.PackageTitle, item.TravelDate, item.Travelers))
	}
	body.WriteString(fmt.Sprintf("\nTotal: %.2f %s\n", sale.Total, sale.CurrencyCode))

	message := strings.Builder{}
	message.WriteString(fmt.Sprintf("From: %s\r\n", m.from))
	message.WriteString(fmt.Sprintf("To: %s\r\n", email))
	message.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	message.WriteString("MIME-Version: 1.0\r\n")
	message.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	message.WriteString("Content-Transfer-Encoding: 8bit\r\n\r\n")
	message.WriteString(body.String())
	message.WriteString("\r\n")

	addr := net.JoinHostPort(m.host, m.port)
	var auth smtp.Auth
	if m.username != "" || m.password != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	return smtp.SendMail(addr, auth, m.from, []string{email}, []byte(message.String()))
}

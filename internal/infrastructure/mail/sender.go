// Package mail envía correos transaccionales (formulario de contacto y
// confirmación de pedido) vía SMTP.
package mail

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	apporder "github.com/tu-usuario/merkato-api/internal/application/order"
	"gopkg.in/gomail.v2"
)

var _ apporder.Notifier = (*Sender)(nil)

// Sender envía correos usando un servidor SMTP configurado.
type Sender struct {
	dialer *gomail.Dialer
	from   string
	admin  string
}

// NewSender construye el remitente. admin es el buzón que recibe los mensajes
// del formulario de contacto.
func NewSender(host string, port int, username, password, from, admin string) *Sender {
	return &Sender{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
		admin:  admin,
	}
}

// SendContact reenvía un mensaje del formulario de contacto al buzón admin.
func (s *Sender) SendContact(name, email, message string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", s.admin)
	m.SetHeader("Reply-To", email)
	m.SetHeader("Subject", fmt.Sprintf("Contacto: mensaje de %s", name))
	m.SetBody("text/plain", fmt.Sprintf("De: %s <%s>\n\n%s", name, email, message))
	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send contact mail: %w", err)
	}
	return nil
}

// OrderPlaced envía la confirmación del pedido al cliente.
func (s *Sender) OrderPlaced(ctx context.Context, orderID, email string, total decimal.Decimal, paymentMethod string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", fmt.Sprintf("Confirmación de pedido #%s", orderID))
	m.SetBody("text/plain", fmt.Sprintf(
		"Tu pedido #%s fue recibido.\n\nTotal: %s\nMétodo de pago: %s\n\nGracias por tu compra.",
		orderID, total.StringFixed(2), paymentMethod))
	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send order mail: %w", err)
	}
	return nil
}

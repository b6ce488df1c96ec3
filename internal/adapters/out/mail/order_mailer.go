// internal/adapters/out/mail/order_mailer.go
package mail

import (
	"context"
	"fmt"
	"strings"

	orderdom "github.com/ridoy-softworldit/bdm-bazar-backend/internal/domain/order"
)

// OrderMailer sends the order confirmation mail after checkout.
// It satisfies usecase.OrderMailer.
type OrderMailer struct {
	client      EmailClient
	fromAddress string
}

func NewOrderMailer(client EmailClient, fromAddress string) *OrderMailer {
	return &OrderMailer{
		client:      client,
		fromAddress: fromAddress,
	}
}

// SendOrderConfirmation mails the customer a plain-text receipt for the
// freshly created order.
func (m *OrderMailer) SendOrderConfirmation(ctx context.Context, o orderdom.Order) error {
	to := strings.TrimSpace(o.Customer.Email)
	if to == "" {
		return fmt.Errorf("order %s has no customer email", o.OrderID)
	}

	subject := fmt.Sprintf("Your order %s has been placed", o.OrderID)

	var lines []string
	for _, it := range o.Items {
		lines = append(lines, fmt.Sprintf(
			"  - product %s  x%d  %.2f  (tracking: %s)",
			it.ProductID, it.Quantity, it.Price, it.TrackingNumber,
		))
	}

	body := fmt.Sprintf(
		`Hi %s,

Thank you for shopping with BDM Bazar. Your order has been received.

  Order ID : %s
  Total    : %.2f

Items:
%s

You can track each item with its tracking number from your account page.

--
BDM Bazar`,
		strings.TrimSpace(o.Customer.Name),
		o.OrderID,
		o.TotalAmount,
		strings.Join(lines, "\n"),
	)

	return m.client.Send(ctx, m.fromAddress, to, subject, body)
}

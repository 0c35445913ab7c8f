package order

import (
	"strconv"
	"strings"

	"github.com/JordaoGustavo/Whatsfood/internal/cart"
	"github.com/JordaoGustavo/Whatsfood/internal/models"
)

// messagingHost is the WhatsApp click-to-chat endpoint.
const messagingHost = "https://wa.me/"

// lineBreak is the percent-escape for a newline. The message body is embedded
// directly in a URL query component, so line breaks must already be encoded.
const lineBreak = "%0A"

// Order is the ephemeral submission snapshot: customer details, cart lines
// and the computed total. It exists only long enough to be composed.
type Order struct {
	Customer models.CustomerInfo
	Lines    []cart.Line
	Total    models.Money
}

// NewOrder snapshots the cart and customer info at submission time.
func NewOrder(c *cart.Cart, info models.CustomerInfo) Order {
	lines := make([]cart.Line, len(c.Lines))
	copy(lines, c.Lines)
	return Order{
		Customer: info,
		Lines:    lines,
		Total:    c.Total(),
	}
}

// Composed is the serialized order: the message body, the digits-only
// recipient, and the full deep-link URL.
type Composed struct {
	Message   string `json:"message"`
	Recipient string `json:"recipient"`
	URL       string `json:"url"`
}

// Compose renders the order into the WhatsApp message format. The layout is a
// wire contract and must be reproduced byte for byte: same input, same output.
//
// The body is built pre-escaped (%0A line breaks, everything else raw) and is
// concatenated into the URL as-is; escaping it again would corrupt the
// already-encoded line breaks.
func Compose(o Order) Composed {
	var b strings.Builder

	b.WriteString("🍽️ *Food Order*" + lineBreak + lineBreak)

	b.WriteString("👤 *Customer:* " + o.Customer.Name + lineBreak)
	b.WriteString("📍 *Address:* " + o.Customer.Address + lineBreak)
	b.WriteString("💳 *Payment:* " + o.Customer.PaymentMethod + lineBreak)
	// The displayed phone is the raw value the customer typed; only the URL
	// path uses the stripped digits.
	b.WriteString("📱 *Phone:* " + o.Customer.PhoneNumber + lineBreak + lineBreak)

	b.WriteString("*Order Details:*" + lineBreak)
	for _, line := range o.Lines {
		b.WriteString("• " + strconv.Itoa(line.Quantity) + "x " + line.Item.Name +
			" - $" + line.Subtotal().String() + lineBreak)
	}

	b.WriteString(lineBreak + "*Total: $" + o.Total.String() + "*" + lineBreak + lineBreak)
	b.WriteString("Thank you for your order! 😊")

	message := b.String()
	recipient := stripNonDigits(o.Customer.PhoneNumber)

	return Composed{
		Message:   message,
		Recipient: recipient,
		URL:       messagingHost + recipient + "?text=" + message,
	}
}

// stripNonDigits drops every non-digit rune, e.g. "+55 11 99999-0000" becomes
// "5511999990000".
func stripNonDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

package order

import (
	"errors"
	"strings"

	"github.com/JordaoGustavo/Whatsfood/internal/cart"
	"github.com/JordaoGustavo/Whatsfood/internal/models"
)

// Validation failures. The texts are surfaced to the customer verbatim, which
// is why they read like alerts rather than Go error strings.
var (
	ErrCartEmpty       = errors.New("Your cart is empty!")
	ErrNameRequired    = errors.New("Please enter your name!")
	ErrAddressRequired = errors.New("Please enter your address!")
	ErrPaymentRequired = errors.New("Please select a payment method!")
	ErrPhoneRequired   = errors.New("Please enter a phone number!")
)

// Validate gates order submission. Rules run in a fixed order and the first
// violation is returned, matching the flow of fixing one issue at a time:
// cart non-empty, then name, address, payment method and phone number, each
// required non-empty after trimming. Phone numbers are deliberately not
// checked for format here; the composer strips non-digits for the deep link.
// Validation never mutates the cart or the customer info.
func Validate(c *cart.Cart, info models.CustomerInfo) error {
	if c.Empty() {
		return ErrCartEmpty
	}
	if strings.TrimSpace(info.Name) == "" {
		return ErrNameRequired
	}
	if strings.TrimSpace(info.Address) == "" {
		return ErrAddressRequired
	}
	if strings.TrimSpace(info.PaymentMethod) == "" {
		return ErrPaymentRequired
	}
	if strings.TrimSpace(info.PhoneNumber) == "" {
		return ErrPhoneRequired
	}
	return nil
}

// IsValidationError reports whether err is one of the validation failures.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrCartEmpty) ||
		errors.Is(err, ErrNameRequired) ||
		errors.Is(err, ErrAddressRequired) ||
		errors.Is(err, ErrPaymentRequired) ||
		errors.Is(err, ErrPhoneRequired)
}

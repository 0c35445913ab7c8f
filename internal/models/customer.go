package models

import (
	"fmt"
	"strings"
)

// PaymentMethod is one of the fixed set of payment options offered at checkout.
type PaymentMethod string

const (
	PaymentCashOnDelivery PaymentMethod = "Cash on Delivery"
	PaymentCreditCard     PaymentMethod = "Credit Card"
	PaymentDebitCard      PaymentMethod = "Debit Card"
	PaymentPix            PaymentMethod = "PIX"
	PaymentBankTransfer   PaymentMethod = "Bank Transfer"
)

// PaymentMethods returns the selectable payment options in display order.
func PaymentMethods() []PaymentMethod {
	return []PaymentMethod{
		PaymentCashOnDelivery,
		PaymentCreditCard,
		PaymentDebitCard,
		PaymentPix,
		PaymentBankTransfer,
	}
}

// ParsePaymentMethod resolves a label against the fixed payment method set.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	for _, pm := range PaymentMethods() {
		if PaymentMethod(s) == pm {
			return pm, nil
		}
	}
	return "", fmt.Errorf("unknown payment method: %q", s)
}

// CustomerInfo holds the delivery details the customer fills in before
// submitting an order. Fields are edited one at a time through Set.
type CustomerInfo struct {
	Name          string `json:"name"`
	Address       string `json:"address"`
	PaymentMethod string `json:"payment_method"`
	PhoneNumber   string `json:"phone_number"`
}

// CustomerField names a single CustomerInfo field. Updates are keyed by this
// closed enumeration rather than a free-form map so a typo in a field name is
// an error, not a silently dropped edit.
type CustomerField string

const (
	FieldName          CustomerField = "name"
	FieldAddress       CustomerField = "address"
	FieldPaymentMethod CustomerField = "payment_method"
	FieldPhoneNumber   CustomerField = "phone_number"
)

// ParseCustomerField resolves a wire-level field name.
func ParseCustomerField(s string) (CustomerField, error) {
	switch CustomerField(s) {
	case FieldName, FieldAddress, FieldPaymentMethod, FieldPhoneNumber:
		return CustomerField(s), nil
	default:
		return "", fmt.Errorf("unknown customer field: %q", s)
	}
}

// Set updates one field by name.
func (c *CustomerInfo) Set(field CustomerField, value string) error {
	switch field {
	case FieldName:
		c.Name = value
	case FieldAddress:
		c.Address = value
	case FieldPaymentMethod:
		// Empty clears the selection; anything else must be a known option.
		if value != "" {
			if _, err := ParsePaymentMethod(value); err != nil {
				return err
			}
		}
		c.PaymentMethod = value
	case FieldPhoneNumber:
		c.PhoneNumber = value
	default:
		return fmt.Errorf("unknown customer field: %q", field)
	}
	return nil
}

// Complete reports whether every field is non-empty after trimming whitespace.
func (c *CustomerInfo) Complete() bool {
	return strings.TrimSpace(c.Name) != "" &&
		strings.TrimSpace(c.Address) != "" &&
		strings.TrimSpace(c.PaymentMethod) != "" &&
		strings.TrimSpace(c.PhoneNumber) != ""
}

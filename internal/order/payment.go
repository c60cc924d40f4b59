package order

import (
	"fmt"
	"strings"

	"storefront/pkg/schema"
)

// PaymentMethods is the tagged union an order's payment_method must satisfy.
// Built once at package init; concurrent validation is lock-free.
var PaymentMethods = buildPaymentUnion()

func buildPaymentUnion() *schema.Union {
	creditCard := schema.NewObject("CreditCardPayment",
		schema.Field{Name: "card_number", Type: schema.String(), Required: true},
		schema.Field{Name: "expiry_month", Type: schema.Int(), Required: true},
		schema.Field{Name: "expiry_year", Type: schema.Int(), Required: true},
		schema.Field{Name: "cvv", Type: schema.String(), Required: true},
		schema.Field{Name: "cardholder_name", Type: schema.String(), Required: true},
	)
	bankTransfer := schema.NewObject("BankTransferPayment",
		schema.Field{Name: "account_number", Type: schema.String(), Required: true},
		schema.Field{Name: "routing_number", Type: schema.String(), Required: true},
		schema.Field{Name: "bank_name", Type: schema.String(), Required: true},
		schema.Field{Name: "account_holder_name", Type: schema.String(), Required: true},
	)
	digitalWallet := schema.NewObject("DigitalWalletPayment",
		schema.Field{Name: "wallet_type", Type: schema.Enum("paypal", "apple_pay", "google_pay"), Required: true},
		schema.Field{Name: "wallet_id", Type: schema.String(), Required: true},
	)
	crypto := schema.NewObject("CryptoPayment",
		schema.Field{Name: "currency", Type: schema.Enum("bitcoin", "ethereum", "litecoin"), Required: true},
		schema.Field{Name: "wallet_address", Type: schema.String(), Required: true},
		schema.Field{Name: "network", Type: schema.String(), Default: "mainnet"},
	)

	return schema.NewUnion("PaymentMethod", "type").
		MustRegister("credit_card", creditCard).
		MustRegister("bank_transfer", bankTransfer).
		MustRegister("digital_wallet", digitalWallet).
		MustRegister("crypto", crypto)
}

// paymentSummary renders a masked, human-readable description per variant.
// MustBuild fails at startup if a payment variant ever lacks a summary arm,
// so adding a variant without handling it here is impossible to ship.
var paymentSummary = schema.NewMatch[string](PaymentMethods).
	Case("credit_card", func(v *schema.Value) (string, error) {
		number, _ := v.GetString("card_number")
		return "credit card ending in " + lastDigits(number, 4), nil
	}).
	Case("bank_transfer", func(v *schema.Value) (string, error) {
		bank, _ := v.GetString("bank_name")
		account, _ := v.GetString("account_number")
		return fmt.Sprintf("bank transfer from %s account ending in %s", bank, lastDigits(account, 4)), nil
	}).
	Case("digital_wallet", func(v *schema.Value) (string, error) {
		walletType, _ := v.GetString("wallet_type")
		return strings.ReplaceAll(walletType, "_", " ") + " wallet", nil
	}).
	Case("crypto", func(v *schema.Value) (string, error) {
		currency, _ := v.GetString("currency")
		address, _ := v.GetString("wallet_address")
		network, _ := v.GetString("network")
		return fmt.Sprintf("%s (%s) to address ending in %s", currency, network, lastDigits(address, 6)), nil
	}).
	MustBuild()

// lastDigits keeps only the trailing n characters, masking the rest.
func lastDigits(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}

package schema

// Test fixtures: the notification and payment-method unions plus a product
// shape exercising every required/nullable combination.

func notificationUnion() *Union {
	base := []Field{
		{Name: "id", Type: UUID(), Required: true},
		{Name: "created_at", Type: Time(), Required: true},
		{Name: "message", Type: String(), Required: true},
	}

	email := NewObject("EmailNotification", append(base,
		Field{Name: "email_address", Type: String(), Required: true},
		Field{Name: "subject", Type: String(), Required: true},
		Field{Name: "html_content", Type: String(), Nullable: true},
	)...)
	sms := NewObject("SMSNotification", append(base,
		Field{Name: "phone_number", Type: String(), Required: true},
		Field{Name: "country_code", Type: String(), Default: "+1"},
	)...)
	push := NewObject("PushNotification", append(base,
		Field{Name: "device_id", Type: String(), Required: true},
		Field{Name: "badge_count", Type: Int(), Nullable: true},
		Field{Name: "sound", Type: String(), Nullable: true, Default: "default"},
	)...)
	webhook := NewObject("WebhookNotification", append(base,
		Field{Name: "webhook_url", Type: String(), Required: true},
		Field{Name: "headers", Type: MapOf(String()), Default: map[string]any{}},
		Field{Name: "retry_count", Type: Int(), Default: int64(3)},
	)...)

	return NewUnion("Notification", "type").
		MustRegister("email", email).
		MustRegister("sms", sms).
		MustRegister("push", push).
		MustRegister("webhook", webhook)
}

func paymentMethodUnion() *Union {
	creditCard := NewObject("CreditCardPayment",
		Field{Name: "card_number", Type: String(), Required: true},
		Field{Name: "expiry_month", Type: Int(), Required: true},
		Field{Name: "expiry_year", Type: Int(), Required: true},
		Field{Name: "cvv", Type: String(), Required: true},
		Field{Name: "cardholder_name", Type: String(), Required: true},
	)
	bankTransfer := NewObject("BankTransferPayment",
		Field{Name: "account_number", Type: String(), Required: true},
		Field{Name: "routing_number", Type: String(), Required: true},
		Field{Name: "bank_name", Type: String(), Required: true},
		Field{Name: "account_holder_name", Type: String(), Required: true},
	)
	digitalWallet := NewObject("DigitalWalletPayment",
		Field{Name: "wallet_type", Type: Enum("paypal", "apple_pay", "google_pay"), Required: true},
		Field{Name: "wallet_id", Type: String(), Required: true},
	)
	crypto := NewObject("CryptoPayment",
		Field{Name: "currency", Type: Enum("bitcoin", "ethereum", "litecoin"), Required: true},
		Field{Name: "wallet_address", Type: String(), Required: true},
		Field{Name: "network", Type: String(), Default: "mainnet"},
	)

	return NewUnion("PaymentMethod", "type").
		MustRegister("credit_card", creditCard).
		MustRegister("bank_transfer", bankTransfer).
		MustRegister("digital_wallet", digitalWallet).
		MustRegister("crypto", crypto)
}

// productObject mixes every required/nullable combination: price is required
// but nullable, sale_price is optional and nullable, description is optional
// and non-nullable.
func productObject() *Object {
	return NewObject("Product",
		Field{Name: "name", Type: String(), Required: true},
		Field{Name: "description", Type: String()},
		Field{Name: "price", Type: Float(), Required: true, Nullable: true},
		Field{Name: "sale_price", Type: Float(), Nullable: true},
		Field{Name: "status", Type: Enum("draft", "published", "archived", "out_of_stock"), Required: true},
		Field{Name: "tags", Type: ListOf(String()), Default: []any{}},
		Field{Name: "metadata", Type: MapOf(Float()), Default: map[string]any{}},
	)
}

func validSMSInput() map[string]any {
	return map[string]any{
		"type":         "sms",
		"id":           "8f2bca9e-4f3b-4ef6-9d51-1c1e4cf38c3e",
		"created_at":   "2026-08-30T10:00:00Z",
		"message":      "hi",
		"phone_number": "555-0123",
	}
}

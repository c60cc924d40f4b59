package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/pkg/schema"
)

func creditCardBody() map[string]any {
	return map[string]any{
		"type":            "credit_card",
		"card_number":     "4111111111111111",
		"expiry_month":    12,
		"expiry_year":     2030,
		"cvv":             "123",
		"cardholder_name": "Ada Lovelace",
	}
}

func TestPaymentSummaries(t *testing.T) {
	cases := []struct {
		name string
		body map[string]any
		want string
	}{
		{
			name: "credit card keeps only the last four digits",
			body: creditCardBody(),
			want: "credit card ending in 1111",
		},
		{
			name: "bank transfer masks the account number",
			body: map[string]any{
				"type":                "bank_transfer",
				"account_number":      "000123456789",
				"routing_number":      "110000000",
				"bank_name":           "First National",
				"account_holder_name": "Ada Lovelace",
			},
			want: "bank transfer from First National account ending in 6789",
		},
		{
			name: "digital wallet names the provider",
			body: map[string]any{
				"type":        "digital_wallet",
				"wallet_type": "apple_pay",
				"wallet_id":   "ada@example.com",
			},
			want: "apple pay wallet",
		},
		{
			name: "crypto applies the default network",
			body: map[string]any{
				"type":           "crypto",
				"currency":       "ethereum",
				"wallet_address": "0xabcdef0123456789",
			},
			want: "ethereum (mainnet) to address ending in 456789",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v, err := PaymentMethods.Validate(tc.body)
			require.NoError(t, err)

			got, err := paymentSummary.Apply(v)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.NotContains(t, got, "4111111111111111")
			assert.NotContains(t, got, "000123456789")
		})
	}
}

func TestPaymentValidationAccumulates(t *testing.T) {
	_, err := PaymentMethods.Validate(map[string]any{
		"type":         "credit_card",
		"card_number":  "4111111111111111",
		"expiry_month": "december",
	})
	list, ok := schema.AsErrorList(err)
	require.True(t, ok)

	for _, path := range []string{"expiry_month", "expiry_year", "cvv", "cardholder_name"} {
		_, found := list.ByPath(path)
		assert.True(t, found, path)
	}
}

func TestPaymentUnknownVariant(t *testing.T) {
	_, err := PaymentMethods.Validate(map[string]any{"type": "cheque"})
	list, ok := schema.AsErrorList(err)
	require.True(t, ok)
	require.Len(t, list, 1)
	assert.Equal(t, schema.CodeUnknownVariant, list[0].Code)
	assert.Equal(t, []string{"credit_card", "bank_transfer", "digital_wallet", "crypto"}, list[0].Expected)
}

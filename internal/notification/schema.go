package notification

import (
	"storefront/pkg/schema"
)

// Notifications is the tagged union a notification body must satisfy. The
// variant shapes and defaults mirror the delivery providers: US country code
// for SMS, the platform default sound for push, three webhook retries.
var Notifications = buildNotificationUnion()

func buildNotificationUnion() *schema.Union {
	base := []schema.Field{
		{Name: "id", Type: schema.UUID(), Required: true},
		{Name: "created_at", Type: schema.Time(), Required: true},
		{Name: "message", Type: schema.String(), Required: true},
	}

	email := schema.NewObject("EmailNotification", append(base,
		schema.Field{Name: "email_address", Type: schema.String(), Required: true},
		schema.Field{Name: "subject", Type: schema.String(), Required: true},
		schema.Field{Name: "html_content", Type: schema.String(), Nullable: true},
	)...)
	sms := schema.NewObject("SMSNotification", append(base,
		schema.Field{Name: "phone_number", Type: schema.String(), Required: true},
		schema.Field{Name: "country_code", Type: schema.String(), Default: "+1"},
	)...)
	push := schema.NewObject("PushNotification", append(base,
		schema.Field{Name: "device_id", Type: schema.String(), Required: true},
		schema.Field{Name: "badge_count", Type: schema.Int(), Nullable: true},
		schema.Field{Name: "sound", Type: schema.String(), Nullable: true, Default: "default"},
	)...)
	webhook := schema.NewObject("WebhookNotification", append(base,
		schema.Field{Name: "webhook_url", Type: schema.String(), Required: true},
		schema.Field{Name: "headers", Type: schema.MapOf(schema.String()), Default: map[string]any{}},
		schema.Field{Name: "retry_count", Type: schema.Int(), Default: int64(3)},
	)...)

	return schema.NewUnion("Notification", "type").
		MustRegister("email", email).
		MustRegister("sms", sms).
		MustRegister("push", push).
		MustRegister("webhook", webhook)
}

// destination reduces a validated notification to the address it will be
// delivered to. Exhaustive over the union: registering a new variant without
// a destination arm fails at startup.
var destination = schema.NewMatch[string](Notifications).
	Case("email", func(v *schema.Value) (string, error) {
		addr, _ := v.GetString("email_address")
		return addr, nil
	}).
	Case("sms", func(v *schema.Value) (string, error) {
		code, _ := v.GetString("country_code")
		phone, _ := v.GetString("phone_number")
		return code + phone, nil
	}).
	Case("push", func(v *schema.Value) (string, error) {
		device, _ := v.GetString("device_id")
		return "device:" + device, nil
	}).
	Case("webhook", func(v *schema.Value) (string, error) {
		url, _ := v.GetString("webhook_url")
		return url, nil
	}).
	MustBuild()

package product

import (
	"storefront/internal/product/models"
	"storefront/pkg/schema"
)

// createObject describes the POST /products body. The price key must always
// be present but may carry null (a draft with no pricing yet); sale_price and
// description may be omitted; tags and metadata fall back to empty
// collections.
var createObject = schema.NewObject("product",
	schema.Field{Name: "name", Type: schema.String(), Required: true},
	schema.Field{Name: "description", Type: schema.String()},
	schema.Field{Name: "price", Type: schema.Float(), Required: true, Nullable: true},
	schema.Field{Name: "sale_price", Type: schema.Float(), Nullable: true},
	schema.Field{Name: "status", Type: schema.Enum(models.Statuses()...), Default: string(models.StatusDraft)},
	schema.Field{Name: "tags", Type: schema.ListOf(schema.String()), Default: []any{}},
	schema.Field{Name: "metadata", Type: schema.MapOf(schema.String()), Default: map[string]any{}},
)

// productPatch is the decoded form of a validated create or update body.
type productPatch struct {
	name        string
	description *string
	price       *float64
	priceSet    bool
	salePrice   *float64
	salePriceSet bool
	status      models.Status
	tags        []string
	metadata    map[string]any
}

// decodePatch lifts a validated body into typed fields, preserving the
// distinction between "key absent" and "key null".
func decodePatch(v *schema.Value) productPatch {
	var p productPatch
	p.name, _ = v.GetString("name")
	if desc, ok := v.GetString("description"); ok {
		p.description = &desc
	}
	if _, ok := v.Get("price"); ok {
		p.priceSet = true
		if f, ok := v.GetFloat("price"); ok {
			p.price = &f
		}
	}
	if _, ok := v.Get("sale_price"); ok {
		p.salePriceSet = true
		if f, ok := v.GetFloat("sale_price"); ok {
			p.salePrice = &f
		}
	}
	if status, ok := v.GetString("status"); ok {
		p.status = models.Status(status)
	}
	if raw, ok := v.GetList("tags"); ok {
		tags := make([]string, 0, len(raw))
		for _, t := range raw {
			if s, ok := t.(string); ok {
				tags = append(tags, s)
			}
		}
		p.tags = tags
	}
	if m, ok := v.GetMap("metadata"); ok {
		p.metadata = m
	}
	return p
}

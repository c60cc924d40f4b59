package schema

import (
	"time"

	"github.com/google/uuid"
)

// Serialize emits the tagged wire form of a validated value. The
// discriminator field is always re-emitted with the matched variant's
// literal, whether or not the caller read it back. Nullable fields set to
// null are emitted as null; omitted optional fields stay absent unless a
// default was materialized at validation time, in which case the
// materialized value is emitted.
func (v *Value) Serialize() map[string]any {
	out := make(map[string]any, len(v.fields)+1)
	if v.union != nil {
		out[v.union.discriminator] = v.variant.Tag
	}
	for name, val := range v.fields {
		out[name] = serializeValue(val)
	}
	return out
}

func serializeValue(val any) any {
	switch v := val.(type) {
	case *Value:
		return v.Serialize()
	case time.Time:
		return v.UTC().Format(time.RFC3339Nano)
	case uuid.UUID:
		return v.String()
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = serializeValue(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, item := range v {
			out[k] = serializeValue(item)
		}
		return out
	default:
		return v
	}
}

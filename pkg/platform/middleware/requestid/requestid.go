// Package requestid assigns every request an id for log correlation.
package requestid

import (
	"net/http"

	"github.com/google/uuid"

	"storefront/pkg/requestcontext"
)

// Header is the request id header honored on ingress and set on egress.
const Header = "X-Request-ID"

// Middleware takes the caller-provided request id or mints one, stores it in
// the context and echoes it on the response.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(Header)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(Header, id)
		next.ServeHTTP(w, r.WithContext(requestcontext.WithRequestID(r.Context(), id)))
	})
}

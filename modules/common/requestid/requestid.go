package requestid

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// HeaderKey - request id header, honored when the caller sends one
const HeaderKey = "X-Request-ID"

type contextKey struct{}

// Middleware - attach a request id to the context and the response headers
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(HeaderKey)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(HeaderKey, id)
		next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), id)))
	})
}

// NewContext - ctx carrying id
func NewContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext - request id or "-" when none was set
func FromContext(ctx context.Context) string {
	if id, ok := ctx.Value(contextKey{}).(string); ok && id != "" {
		return id
	}
	return "-"
}

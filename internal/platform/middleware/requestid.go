package middleware

import (
	"net/http"

	"github.com/Bahjat/seo-audit/internal/platform/requestid"
	"github.com/google/uuid"
)

// maxIncomingIDLen bounds client-supplied request IDs before they reach logs.
const maxIncomingIDLen = 128

// RequestID is middleware that assigns a unique request ID to each request
// and echoes it in the response. An incoming X-Request-ID header is reused
// when present and reasonably short; otherwise a new UUID v4 is generated.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestid.Header)
		if id == "" || len(id) > maxIncomingIDLen {
			id = uuid.New().String()
		}

		w.Header().Set(requestid.Header, id)
		ctx := requestid.NewContext(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

package httpx

import (
	"context"
	"net/http"

	"github.com/hollyburn/noteboard/pkg/slogx"
)

// SessionResolver turns a raw session cookie value into a user id.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (userID string, err error)
}

// SessionMiddleware resolves the session cookie and injects the user id into
// the request context. Requests without a valid session pass through with no
// user id; handlers decide whether that is acceptable.
func SessionMiddleware(resolver SessionResolver, cookieName string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			userID, err := resolver.Resolve(ctx, cookie.Value)
			if err != nil {
				slogx.FromContext(ctx).Debug("session resolve failed", "err", err)
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(ctx, userID)))
		})
	}
}

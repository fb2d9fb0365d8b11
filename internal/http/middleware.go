package http

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fjod/go_storefront/internal/client"
)

const cartCookieName = "cart_id"

// SessionMiddleware resolves the stable cart identifier for the
// request, minting one and setting the cookie on first visit so the
// cart survives page reloads.
func SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var cartID string
		if cookie, err := r.Cookie(cartCookieName); err == nil && cookie.Value != "" {
			cartID = cookie.Value
		} else {
			cartID = uuid.New().String()
			http.SetCookie(w, &http.Cookie{
				Name:     cartCookieName,
				Value:    cartID,
				Path:     "/",
				MaxAge:   int((30 * 24 * time.Hour).Seconds()),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := context.WithValue(r.Context(), "cart_id", cartID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CredentialsMiddleware lifts the bearer token, if any, into a
// per-request capability. Nothing here mutates shared client state;
// each outgoing call attaches the credentials explicitly.
func CredentialsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var token string
		if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
			token = strings.TrimPrefix(auth, "Bearer ")
		}

		ctx := context.WithValue(r.Context(), "credentials", client.Credentials{Token: token})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestIDMiddleware adds a unique request ID to each request
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = fmt.Sprintf("req-%d", time.Now().UnixNano())
		}

		ctx := context.WithValue(r.Context(), "request_id", requestID)
		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func getCartIDFromContext(ctx context.Context) string {
	if cartID, ok := ctx.Value("cart_id").(string); ok {
		return cartID
	}
	return ""
}

func getCredentialsFromContext(ctx context.Context) client.Credentials {
	if creds, ok := ctx.Value("credentials").(client.Credentials); ok {
		return creds
	}
	return client.Credentials{}
}

func getRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value("request_id").(string); ok {
		return requestID
	}
	return ""
}

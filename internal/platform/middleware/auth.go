// Copyright (c) 2026 Libris. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/taibuivan/libris/internal/platform/apperr"
	"github.com/taibuivan/libris/internal/platform/constants"
	"github.com/taibuivan/libris/internal/platform/ctxutil"
	"github.com/taibuivan/libris/internal/platform/respond"
	"github.com/taibuivan/libris/internal/platform/sec"
)

// TokenVerifier defines the interface needed to verify tokens in middleware.
//
// # Why an interface?
//
// Defining TokenVerifier here decouples the middleware from the `sec`
// implementation, allowing us to easily inject mocks during unit testing.
type TokenVerifier interface {
	VerifyToken(tokenString string) (*sec.Claims, error)
}

// RequireBearer rejects any request that does not carry a decodable bearer
// token with the expected audience.
//
// # Flow
//  1. Check for 'Authorization: Bearer <token>' header; absence or any other
//     scheme is a 401.
//  2. Decode the token and check its aud claim via [TokenVerifier].
//  3. Inject the decoded [*sec.Claims] into the request context.
//
// Every catalog route sits behind this gate; only the health probes are open.
func RequireBearer(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authHeader := request.Header.Get(constants.HeaderAuthorization)

			// ── 1. Header shape ───────────────────────────────────────────────
			if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
				respond.Error(writer, request, apperr.Unauthorized("Missing or invalid Authorization header"))
				return
			}

			// ── 2. Token decode + audience check ──────────────────────────────
			tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
			claims, err := verifier.VerifyToken(tokenString)
			if err != nil {
				message := "Invalid token"
				if errors.Is(err, sec.ErrAudienceMismatch) {
					message = "Invalid audience"
				}
				respond.Error(writer, request, apperr.Unauthorized(message))
				return
			}

			// ── 3. Context injection ──────────────────────────────────────────
			ctx := ctxutil.WithClaims(request.Context(), claims)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

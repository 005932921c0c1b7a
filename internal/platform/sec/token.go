// Copyright (c) 2026 Libris. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides the bearer token gate for the Libris API.
//
// # Architecture
//
// This package isolates security-sensitive code from the domain logic. It is
// injected into the HTTP middleware via the [middleware.TokenVerifier]
// interface.
//
// # Trust model
//
// Tokens are issued and signed by an external identity provider that also
// fronts this API. The gate decodes the token without verifying the signature
// and only checks that the audience claim matches the configured value; the
// upstream gateway is responsible for cryptographic verification.
package sec

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// Verification failure reasons. The middleware maps these onto the 401
// response messages.
var (
	// ErrMalformedToken is returned when the bearer token cannot be decoded.
	ErrMalformedToken = errors.New("sec: malformed token")

	// ErrAudienceMismatch is returned when the token's aud claim does not
	// match the configured audience.
	ErrAudienceMismatch = errors.New("sec: audience mismatch")
)

// Claims is the subset of token claims the API cares about.
type Claims struct {
	// Subject identifies the calling principal, when present.
	Subject string
	// Audience is the matched aud claim value.
	Audience string
}

// AudienceVerifier decodes bearer tokens and enforces the expected audience.
type AudienceVerifier struct {
	audience string
	parser   *jwt.Parser
}

// NewAudienceVerifier constructs a verifier for the given expected audience
// (for example "api://<client-id>").
func NewAudienceVerifier(audience string) *AudienceVerifier {
	return &AudienceVerifier{
		audience: audience,
		parser:   jwt.NewParser(),
	}
}

// VerifyToken decodes tokenString and checks its audience claim.
//
// Any decoding failure returns [ErrMalformedToken]; a decoded token whose aud
// claim does not contain the configured audience returns [ErrAudienceMismatch].
func (verifier *AudienceVerifier) VerifyToken(tokenString string) (*Claims, error) {
	claims := jwt.MapClaims{}

	// ParseUnverified decodes header and claims without checking the
	// signature. See the package trust model.
	if _, _, err := verifier.parser.ParseUnverified(tokenString, claims); err != nil {
		return nil, ErrMalformedToken
	}

	audiences, err := claims.GetAudience()
	if err != nil {
		return nil, ErrMalformedToken
	}

	for _, audience := range audiences {
		if audience == verifier.audience {
			subject, _ := claims.GetSubject()
			return &Claims{Subject: subject, Audience: audience}, nil
		}
	}

	return nil, ErrAudienceMismatch
}

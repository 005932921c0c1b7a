// Copyright (c) 2026 Libris. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/libris/internal/platform/sec"
)

const expectedAudience = "api://client-123"

// signToken builds a compact JWT with the given claims. The signing key is
// irrelevant: the verifier decodes without checking signatures.
func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

/*
TestVerifyToken_MatchingAudience accepts a token whose aud claim equals the
configured value and surfaces the subject.
*/
func TestVerifyToken_MatchingAudience(t *testing.T) {
	verifier := sec.NewAudienceVerifier(expectedAudience)
	tokenString := signToken(t, jwt.MapClaims{
		"aud": expectedAudience,
		"sub": "client-123",
	})

	claims, err := verifier.VerifyToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, expectedAudience, claims.Audience)
	assert.Equal(t, "client-123", claims.Subject)
}

/*
TestVerifyToken_AudienceList accepts a token whose aud list contains the
configured value among others.
*/
func TestVerifyToken_AudienceList(t *testing.T) {
	verifier := sec.NewAudienceVerifier(expectedAudience)
	tokenString := signToken(t, jwt.MapClaims{
		"aud": []string{"api://other", expectedAudience},
	})

	claims, err := verifier.VerifyToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, expectedAudience, claims.Audience)
}

/*
TestVerifyToken_WrongAudience rejects a decodable token with a different aud.
*/
func TestVerifyToken_WrongAudience(t *testing.T) {
	verifier := sec.NewAudienceVerifier(expectedAudience)
	tokenString := signToken(t, jwt.MapClaims{"aud": "api://somebody-else"})

	_, err := verifier.VerifyToken(tokenString)
	assert.ErrorIs(t, err, sec.ErrAudienceMismatch)
}

/*
TestVerifyToken_Malformed rejects garbage that is not a JWT at all.
*/
func TestVerifyToken_Malformed(t *testing.T) {
	verifier := sec.NewAudienceVerifier(expectedAudience)

	for _, tokenString := range []string{"", "not-a-token", "a.b", "a.b.c"} {
		_, err := verifier.VerifyToken(tokenString)
		assert.ErrorIs(t, err, sec.ErrMalformedToken, "token %q", tokenString)
	}
}

/*
TestVerifyToken_MissingAudience rejects a decodable token with no aud claim.
*/
func TestVerifyToken_MissingAudience(t *testing.T) {
	verifier := sec.NewAudienceVerifier(expectedAudience)
	tokenString := signToken(t, jwt.MapClaims{"sub": "client-123"})

	_, err := verifier.VerifyToken(tokenString)
	assert.ErrorIs(t, err, sec.ErrAudienceMismatch)
}

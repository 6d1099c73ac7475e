// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides token verification for the auth gate.
//
// # Architecture
//
// This package isolates security-sensitive code (JWT parsing, signature keys)
// from the domain logic. The HTTP layer depends only on the narrow
// [middleware.TokenVerifier] interface that [TokenService] satisfies.
//
// Token issuance belongs to the external login flow. [TokenService.Issue]
// exists for local tooling (cmd/tokengen) and tests.
package sec

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoSigningKey is returned by [TokenService.Issue] for verify-only services.
var ErrNoSigningKey = errors.New("sec: token service has no signing key")

// AuthClaims represents the payload embedded inside an access token.
//
// The login flow stores the account id in "userId". The registered "sub"
// claim is honoured when "userId" is absent.
type AuthClaims struct {
	jwt.RegisteredClaims

	UserID string `json:"userId,omitempty"`
}

// Identity returns the stable user identifier carried by the claims.
func (claims *AuthClaims) Identity() string {
	if claims.UserID != "" {
		return claims.UserID
	}
	return claims.Subject
}

// TokenService verifies (and optionally signs) JWT access tokens.
//
// It is configured either with a shared HS256 secret or with an RS256
// public key. Tokens signed with any other algorithm are rejected.
type TokenService struct {
	method    jwt.SigningMethod
	verifyKey interface{}
	signKey   interface{}
	issuer    string
}

// NewHMACTokenService creates a [TokenService] for HS256 tokens signed with secret.
//
// An empty issuer disables the "iss" check.
func NewHMACTokenService(secret, issuer string) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("sec: empty HMAC secret")
	}
	key := []byte(secret)
	return &TokenService{
		method:    jwt.SigningMethodHS256,
		verifyKey: key,
		signKey:   key,
		issuer:    issuer,
	}, nil
}

// NewRSATokenService creates a verify-only [TokenService] for RS256 tokens.
// It reads the PEM-encoded public key from publicKeyPath.
func NewRSATokenService(publicKeyPath, issuer string) (*TokenService, error) {
	publicKeyData, err := os.ReadFile(publicKeyPath)
	if err != nil {
		return nil, fmt.Errorf("sec: failed to read public key from %s: %w", publicKeyPath, err)
	}

	publicKey, err := jwt.ParseRSAPublicKeyFromPEM(publicKeyData)
	if err != nil {
		return nil, fmt.Errorf("sec: failed to parse public key: %w", err)
	}

	return newRSATokenService(publicKey, nil, issuer), nil
}

// newRSATokenService builds an RS256 service from parsed keys. privateKey may be nil.
func newRSATokenService(publicKey *rsa.PublicKey, privateKey *rsa.PrivateKey, issuer string) *TokenService {
	service := &TokenService{
		method:    jwt.SigningMethodRS256,
		verifyKey: publicKey,
		issuer:    issuer,
	}
	if privateKey != nil {
		service.signKey = privateKey
	}
	return service
}

// Issue signs a token for userID that expires after timeToLive.
func (service *TokenService) Issue(userID string, timeToLive time.Duration) (string, error) {
	if service.signKey == nil {
		return "", ErrNoSigningKey
	}

	currentTime := time.Now()
	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
		},
		UserID: userID,
	}

	signedToken, err := jwt.NewWithClaims(service.method, claims).SignedString(service.signKey)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// VerifyToken checks the signature and validity of a JWT string and returns
// the subject user id.
func (service *TokenService) VerifyToken(tokenString string) (string, error) {
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{service.method.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if service.issuer != "" {
		options = append(options, jwt.WithIssuer(service.issuer))
	}

	claims := &AuthClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return service.verifyKey, nil
	}, options...)
	if err != nil {
		return "", fmt.Errorf("sec: invalid token: %w", err)
	}

	if !token.Valid {
		return "", errors.New("sec: invalid token claims")
	}

	identity := claims.Identity()
	if identity == "" {
		return "", errors.New("sec: token carries no user identity")
	}

	return identity, nil
}

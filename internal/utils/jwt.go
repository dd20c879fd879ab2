package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/refugiapp/refugiapp/models"
)

// ErrInvalidAssertion is returned when a federated assertion fails
// verification or lacks the claims an account needs.
var ErrInvalidAssertion = errors.New("invalid federated assertion")

// GenerateJWTToken creates a session token signed with HMAC-SHA256.
//
// The token carries iss, sub (the account id), iat and exp. All parameters
// are required.
//
//	token, err := utils.GenerateJWTToken("refugiapp", 42, time.Hour, "secret")
func GenerateJWTToken(issuer string, userID int64, tokenDuration time.Duration, signKey string) (models.Token, error) {
	if issuer == "" || tokenDuration == 0 || signKey == "" {
		return models.Token{}, errors.New("invalid params for generating JWT Token")
	}

	now := time.Now()
	claims := &jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   strconv.FormatInt(userID, 10),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during singing JWT token: %w", err)
	}

	return models.Token{Token: token, SignedString: tokenString, UserID: userID}, nil
}

// ValidateAndParseJWTToken verifies the signature, issuer and expiry of a
// session token and extracts the account id from "sub".
func ValidateAndParseJWTToken(tokenString, tokenSignKey, tokenIssuer string) (models.Token, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.Token{}, hmacKey(tokenSignKey),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	userIDStr, err := token.Claims.GetSubject()
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during getting subject from token: %w", err)
	}
	if userIDStr == "" {
		return models.Token{}, errors.New("empty subject error")
	}

	userID, err := strconv.ParseInt(userIDStr, 10, 64)
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during converting subject to UserIDCtxKey: %w", err)
	}

	return models.Token{Token: token, SignedString: tokenString, UserID: userID}, nil
}

// SignFederatedAssertion issues an HS256 assertion in the shape a federated
// identity provider hands to the client after its browser flow.
func SignFederatedAssertion(claims models.FederatedClaims, signKey string) (string, error) {
	if signKey == "" {
		return "", errors.New("empty federated sign key")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(signKey))
	if err != nil {
		return "", fmt.Errorf("error signing federated assertion: %w", err)
	}
	return signed, nil
}

// ParseFederatedAssertion verifies a federated assertion and returns its
// claims. The subject and email claims are mandatory.
func ParseFederatedAssertion(assertion, signKey, issuer string) (models.FederatedClaims, error) {
	var claims models.FederatedClaims

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}

	if _, err := jwt.ParseWithClaims(assertion, &claims, hmacKey(signKey), opts...); err != nil {
		return models.FederatedClaims{}, fmt.Errorf("%w: %w", ErrInvalidAssertion, err)
	}

	if claims.Subject == "" || claims.Email == "" {
		return models.FederatedClaims{}, fmt.Errorf("%w: missing sub or email", ErrInvalidAssertion)
	}

	return claims, nil
}

// ParseBearerToken returns the credential part of an
// "Authorization: Bearer <token>" header value.
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Fields(authorizationHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("invalid authorization header")
	}
	return parts[1], nil
}

func hmacKey(key string) jwt.Keyfunc {
	return func(token *jwt.Token) (any, error) {
		return []byte(key), nil
	}
}

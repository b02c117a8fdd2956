package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionTTL bounds both the token expiry and the revocation record
// retention: a token older than this is rejected by expiry alone, so its
// revocation entry no longer needs to exist.
const SessionTTL = 24 * time.Hour

// GenerateJWT signs a session token for the given user. The password login
// path uses the userId claim; federated logins historically signed "id"
// instead, which the guard also accepts.
func GenerateJWT(secret []byte, userID uint) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": userID,
		"exp":    time.Now().Add(SessionTTL).Unix(),
	})
	return token.SignedString(secret)
}

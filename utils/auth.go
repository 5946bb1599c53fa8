package utils

import (
	"fmt"
	"time"

	"github.com/PayAidPayments/payaid-crm-sub001/models"

	"github.com/dgrijalva/jwt-go"
)

// TokenTTL is the lifetime of tokens issued by GenerateToken.
const TokenTTL = 24 * time.Hour

// GenerateToken signs a session token for auth with secret.
func GenerateToken(auth models.AuthContext, secret []byte) (string, error) {
	modules := make([]interface{}, 0, len(auth.Modules))
	for _, m := range auth.Modules {
		modules = append(modules, m)
	}

	claims := jwt.MapClaims{
		"id":       auth.UserID,
		"tenantId": auth.TenantID,
		"username": auth.Username,
		"modules":  modules,
		"exp":      time.Now().Add(TokenTTL).Unix(),
		"iat":      time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(secret)
	if err != nil {
		Logger.Error().Err(err).Msg("sign token failed")
		return "", err
	}
	return tokenString, nil
}

// ParseToken verifies tokenString against secret and returns its claims.
func ParseToken(tokenString string, secret []byte) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token")
}

// AuthContextFromClaims extracts the caller identity from verified claims.
func AuthContextFromClaims(claims jwt.MapClaims) (models.AuthContext, error) {
	userID, ok := claims["id"].(string)
	if !ok || userID == "" {
		return models.AuthContext{}, fmt.Errorf("token missing user id")
	}
	tenantID, ok := claims["tenantId"].(string)
	if !ok || tenantID == "" {
		return models.AuthContext{}, fmt.Errorf("token missing tenant id")
	}

	auth := models.AuthContext{TenantID: tenantID, UserID: userID}
	auth.Username, _ = claims["username"].(string)

	switch v := claims["modules"].(type) {
	case []interface{}:
		for _, m := range v {
			if s, ok := m.(string); ok {
				auth.Modules = append(auth.Modules, s)
			}
		}
	case []string:
		auth.Modules = append(auth.Modules, v...)
	}
	return auth, nil
}

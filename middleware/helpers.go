package middleware

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v4"

	"github.com/Dosada05/hackathon-system/models"
)

// GetPrincipalFromContext собирает models.Principal из claims,
// положенных Authenticate в контекст запроса.
func GetPrincipalFromContext(ctx context.Context) (models.Principal, error) {
	claims, ok := ctx.Value(userContextKey).(jwt.MapClaims)
	if !ok {
		return models.Principal{}, errors.New("user claims not found in context or invalid type")
	}

	userID, err := userIDFromClaims(claims)
	if err != nil {
		return models.Principal{}, err
	}

	role, err := roleFromClaims(claims)
	if err != nil {
		return models.Principal{}, err
	}

	name, _ := claims[jwtClaimName].(string)

	return models.Principal{
		UserID: userID,
		Name:   name,
		Role:   role,
	}, nil
}

func userIDFromClaims(claims jwt.MapClaims) (int, error) {
	userIDClaim, ok := claims[jwtClaimUserID]
	if !ok {
		return 0, fmt.Errorf("missing '%s' claim in token", jwtClaimUserID)
	}

	// Числовые claims после разбора JSON приходят как float64.
	userIDFloat, ok := userIDClaim.(float64)
	if !ok {
		userIDStr, okStr := userIDClaim.(string)
		if okStr {
			userIDInt, err := strconv.Atoi(userIDStr)
			if err == nil && userIDInt > 0 {
				return userIDInt, nil
			}
		}
		return 0, fmt.Errorf("invalid type for '%s' claim: expected float64 or string, got %T", jwtClaimUserID, userIDClaim)
	}

	userID := int(userIDFloat)
	if userID <= 0 {
		return 0, fmt.Errorf("invalid user ID value in '%s' claim: %d", jwtClaimUserID, userID)
	}

	return userID, nil
}

func roleFromClaims(claims jwt.MapClaims) (models.Role, error) {
	roleClaim, ok := claims[jwtClaimRole]
	if !ok {
		return "", fmt.Errorf("missing '%s' claim in token", jwtClaimRole)
	}

	roleStr, ok := roleClaim.(string)
	if !ok {
		return "", fmt.Errorf("invalid type for '%s' claim: expected string, got %T", jwtClaimRole, roleClaim)
	}

	role := models.Role(roleStr)
	if !role.Valid() {
		return "", fmt.Errorf("invalid role value in claim: %q", roleStr)
	}

	return role, nil
}

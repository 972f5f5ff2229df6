package middleware

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v4"

	"github.com/devakhil7/plyr-sub003/models"
)

const (
	jwtClaimUserID = "user_id"
	jwtClaimRole   = "role"
)

// GetUserIDFromContext extracts the authenticated user's id from the request
// context. JSON numbers decode as float64, so the claim is normalised back to
// an int.
func GetUserIDFromContext(ctx context.Context) (int, error) {
	claims, ok := ctx.Value(userContextKey).(jwt.MapClaims)
	if !ok {
		return 0, errors.New("user claims not found in context")
	}

	claim, ok := claims[jwtClaimUserID]
	if !ok {
		return 0, fmt.Errorf("missing %q claim in token", jwtClaimUserID)
	}

	idFloat, ok := claim.(float64)
	if !ok || idFloat != float64(int(idFloat)) {
		return 0, fmt.Errorf("invalid %q claim: %v", jwtClaimUserID, claim)
	}

	id := int(idFloat)
	if id <= 0 {
		return 0, fmt.Errorf("invalid user id in %q claim: %d", jwtClaimUserID, id)
	}
	return id, nil
}

func GetUserRoleFromContext(ctx context.Context) (models.UserRole, error) {
	claims, ok := ctx.Value(userContextKey).(jwt.MapClaims)
	if !ok {
		return "", errors.New("user claims not found in context")
	}

	claim, ok := claims[jwtClaimRole]
	if !ok {
		return "", fmt.Errorf("missing %q claim in token", jwtClaimRole)
	}

	roleStr, ok := claim.(string)
	if !ok {
		return "", fmt.Errorf("invalid type for %q claim: %T", jwtClaimRole, claim)
	}

	role := models.UserRole(roleStr)
	switch role {
	case models.RolePlayer, models.RoleVenueOwner, models.RoleAdmin:
		return role, nil
	default:
		return "", fmt.Errorf("unknown role in claim: %q", roleStr)
	}
}

package utils

import (
	"context"

	"backoffice-system/pkg/contextkeys"
	apperrors "backoffice-system/pkg/errors"
)

func GetUserIDFromCtx(ctx context.Context) (uint64, error) {
	userID, ok := ctx.Value(contextkeys.UserIDKey).(uint64)
	if !ok {
		return 0, apperrors.ErrUserIDNotFoundInContext
	}
	return userID, nil
}

func GetUserRoleIDFromCtx(ctx context.Context) (uint64, error) {
	roleID, ok := ctx.Value(contextkeys.RoleIDKey).(uint64)
	if !ok {
		return 0, apperrors.ErrRoleIDNotFoundInContext
	}
	return roleID, nil
}

func GetUserNameFromCtx(ctx context.Context) string {
	name, _ := ctx.Value(contextkeys.UserNameKey).(string)
	return name
}

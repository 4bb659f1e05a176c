package api_context

import (
	"context"
)

type ctxKey string

const (
	VideoIDKey       ctxKey = "videoID"
	AuthAccountIDKey ctxKey = "authAccountID"
	AuthRolesKey     ctxKey = "authRoles"
)

func VideoIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(VideoIDKey).(int64)
	return id, ok
}

func AuthAccountIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(AuthAccountIDKey).(int64)
	return id, ok
}

func AuthRolesFromContext(ctx context.Context) ([]string, bool) {
	roles, ok := ctx.Value(AuthRolesKey).([]string)
	return roles, ok
}

package api

import (
	"context"
)

type keyType string

const adminUserKey keyType = "adminUser"

// ctxWithAdminUser adds the logged-in admin username to the context.
func ctxWithAdminUser(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, adminUserKey, username)
}

// ctxAdminUser retrieves the admin username from the context, or "" when the
// request is outside the guarded admin surface.
func ctxAdminUser(ctx context.Context) string {
	if value, ok := ctx.Value(adminUserKey).(string); ok {
		return value
	}
	return ""
}

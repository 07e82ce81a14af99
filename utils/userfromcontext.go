package utils

import (
	"context"

	"successspace/globals"
	"successspace/models"
)

// UserFromContext returns the authenticated user stashed by the session
// middleware, or nil for anonymous requests.
func UserFromContext(ctx context.Context) *models.User {
	u, _ := ctx.Value(globals.UserKey).(*models.User)
	return u
}

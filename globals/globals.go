package globals

import (
	"context"
)

// Context keys
type ContextKey string

const UserKey ContextKey = "user"

// SessionCookie is the name of the session id cookie.
const SessionCookie = "sid"

var Ctx = context.Background()

package constants

// ContextKey is the typed key used for request-scoped context values.
type ContextKey string

const (
	CtxKeyRequestID ContextKey = "request_id"
	CtxKeyUserID    ContextKey = "user_id"
	CtxKeyClientIP  ContextKey = "client_ip"
	CtxKeyUserAgent ContextKey = "user_agent"
	CtxKeyStartTime ContextKey = "start_time"
	CtxKeyModule    ContextKey = "module"
	CtxKeyFunction  ContextKey = "function"
	CtxKeyPrincipal ContextKey = "principal"
)

// Gin context keys set by the session middleware
const (
	GinKeySession = "session"
	GinKeyUserID  = "session_user_id"
)

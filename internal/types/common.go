package types

// HTTP Header Constants
const (
	HeaderUID           = "uid"
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"
)

// Authentication Constants
const (
	BearerPrefix = "Bearer "
)

// UserCtxName is the fiber locals key holding the authenticated UserContext
const UserCtxName = "user"

// AnonymousViewer marks a request without an authenticated actor
const AnonymousViewer int64 = 0

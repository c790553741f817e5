package types

import "github.com/gofiber/fiber/v2"

// UserContext is the authenticated actor extracted from an access token
type UserContext struct {
	UserID      int64  `json:"uid"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
}

// UserFromLocals returns the authenticated user stored by the auth middleware
func UserFromLocals(c *fiber.Ctx) (UserContext, bool) {
	user, ok := c.Locals(UserCtxName).(UserContext)
	if !ok || user.UserID <= 0 {
		return UserContext{}, false
	}
	return user, true
}

// ViewerFromLocals returns a pointer to the authenticated user id, or nil for
// anonymous requests
func ViewerFromLocals(c *fiber.Ctx) *int64 {
	user, ok := UserFromLocals(c)
	if !ok {
		return nil
	}
	id := user.UserID
	return &id
}

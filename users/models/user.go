package models

// User is the public identity attached to feed items
type User struct {
	ID    int64  `json:"id" db:"id"`
	Name  string `json:"name" db:"name"`
	Email string `json:"-" db:"email"`
}

// Image is a picture uploaded by a user. The feed only reads the avatar.
type Image struct {
	ID     int64  `json:"id" db:"id"`
	UserID int64  `json:"userId" db:"user_id"`
	Path   string `json:"path" db:"path"`
}

// NoAvatar is the avatar image id reported for users without an image
const NoAvatar int64 = -1

package models

// Favorite marks an update as saved by a user. A user holds at most one
// favorite per update.
type Favorite struct {
	ID          int64 `json:"id" db:"id"`
	UpdateID    int64 `json:"updateId" db:"update_id"`
	UserID      int64 `json:"userId" db:"user_id"`
	FavoritedAt int64 `json:"favoritedAt" db:"favorited_at"`
}

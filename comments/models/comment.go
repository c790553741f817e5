package models

// Comment is a text reply attached to an update
type Comment struct {
	ID        int64  `json:"id" db:"id"`
	Content   string `json:"content" db:"content"`
	UpdateID  int64  `json:"updateId" db:"update_id"`
	UserID    int64  `json:"userId" db:"user_id"`
	CreatedAt int64  `json:"createdAt" db:"created_at"`
}

// CreateCommentRequest represents the request payload for creating a comment
type CreateCommentRequest struct {
	Content  string `json:"content"`
	UpdateID int64  `json:"updateId"`
}

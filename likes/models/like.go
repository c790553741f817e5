package models

// SubjectKind names what a like is attached to
type SubjectKind string

const (
	SubjectUpdate  SubjectKind = "UPDATE"
	SubjectComment SubjectKind = "COMMENT"
)

// Like records that a user likes an update or a comment. A user holds at
// most one like per subject.
type Like struct {
	ID        int64       `json:"id"`
	Subject   SubjectKind `json:"subject"`
	SubjectID int64       `json:"subjectId"`
	UserID    int64       `json:"userId"`
	LikedAt   int64       `json:"likedAt"`
}

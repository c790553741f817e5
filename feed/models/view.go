package models

import (
	"strings"

	userModels "github.com/qolzam/telar/apps/feed/users/models"
)

// PageSize is the number of items in every feed page
const PageSize = 10

// FilterKind selects which updates a feed page draws from
type FilterKind int

const (
	FilterNone FilterKind = iota
	FilterByUser
	FilterByTag
)

// Filter restricts a feed to one author or one tag
type Filter struct {
	Kind   FilterKind
	UserID int64
	Tag    string
}

// None matches every update
func None() Filter {
	return Filter{Kind: FilterNone}
}

// ByUser matches updates authored by userID
func ByUser(userID int64) Filter {
	return Filter{Kind: FilterByUser, UserID: userID}
}

// ByTag matches updates carrying the tag, compared after trimming
func ByTag(name string) Filter {
	return Filter{Kind: FilterByTag, Tag: strings.TrimSpace(name)}
}

// UpdateView is an update enriched for display to one viewer
type UpdateView struct {
	ID            int64            `json:"id"`
	UserID        int64            `json:"userId"`
	Content       string           `json:"content"`
	CreatedAt     int64            `json:"createdAt"`
	Likes         int              `json:"likes"`
	Comments      int              `json:"comments"`
	Favorites     int              `json:"favorites"`
	Tags          []string         `json:"tags"`
	Liked         bool             `json:"liked"`
	Favorited     bool             `json:"favorited"`
	Author        *userModels.User `json:"author,omitempty"`
	AvatarImageID int64            `json:"avatarImageId"`
}

// CommentView is a comment enriched for display to one viewer
type CommentView struct {
	ID            int64            `json:"id"`
	UpdateID      int64            `json:"updateId"`
	UserID        int64            `json:"userId"`
	Content       string           `json:"content"`
	CreatedAt     int64            `json:"createdAt"`
	Liked         bool             `json:"liked"`
	Author        *userModels.User `json:"author,omitempty"`
	AvatarImageID int64            `json:"avatarImageId"`
}

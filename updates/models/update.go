// Copyright (c) 2024 Telar Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package models

import "strings"

// Update is a user-authored feed post. Likes, Comments and Favorites are
// denormalized counters over the child tables.
type Update struct {
	ID        int64    `json:"id" db:"id"`
	UserID    int64    `json:"userId" db:"user_id"`
	Content   string   `json:"content" db:"content"`
	CreatedAt int64    `json:"createdAt" db:"created_at"`
	Likes     int      `json:"likes" db:"likes"`
	Comments  int      `json:"comments" db:"comments"`
	Favorites int      `json:"favorites" db:"favorites"`
	Tags      []string `json:"tags,omitempty" db:"-"`
}

// Tag is a unique label attached to updates
type Tag struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// CreateUpdateRequest is the body accepted when posting a new update
type CreateUpdateRequest struct {
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

// NormalizeTag trims a tag name. Matching is exact on the trimmed string.
func NormalizeTag(name string) string {
	return strings.TrimSpace(name)
}

// NormalizeTags trims, drops blanks and removes duplicates preserving order
func NormalizeTags(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		n := NormalizeTag(name)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

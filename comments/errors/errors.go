// Copyright (c) 2024 Telar Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package errors

import "errors"

// Comment storage errors
var (
	ErrCommentNotFound = errors.New("comment not found")
)

// Error codes
const (
	CodeCommentNotFound = "COMMENT_NOT_FOUND"
)

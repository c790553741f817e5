// Copyright (c) 2024 Telar Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTag(t *testing.T) {
	assert.Equal(t, "golang", NormalizeTag("  golang\t"))
	assert.Equal(t, "Go", NormalizeTag("Go"), "case is preserved")
	assert.Equal(t, "", NormalizeTag("   "))
}

func TestNormalizeTags(t *testing.T) {
	assert.Equal(t, []string{"go", "Go", "feeds"}, NormalizeTags([]string{" go", "Go", "", "go ", "  ", "feeds"}))
	assert.Empty(t, NormalizeTags(nil))
}

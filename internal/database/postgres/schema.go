// Copyright (c) 2024 Telar Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package postgres

import (
	"context"
	"fmt"
)

// schemaSQL creates every table used by the feed. Counters carry CHECK
// constraints so a bug can never persist a negative value, and each
// like/favorite table has the uniqueness constraint that settles
// concurrent duplicate inserts.
const schemaSQL = `
	CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL DEFAULT '',
		email VARCHAR(255) NOT NULL DEFAULT '',
		created_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT
	);

	CREATE TABLE IF NOT EXISTS user_images (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL,
		path VARCHAR(512) NOT NULL DEFAULT '',
		is_primary BOOLEAN NOT NULL DEFAULT FALSE,
		created_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT
	);
	CREATE INDEX IF NOT EXISTS idx_user_images_user ON user_images(user_id);

	CREATE TABLE IF NOT EXISTS updates (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL,
		content TEXT NOT NULL,
		created_at BIGINT NOT NULL,
		likes INT NOT NULL DEFAULT 0 CHECK (likes >= 0),
		comments INT NOT NULL DEFAULT 0 CHECK (comments >= 0),
		favorites INT NOT NULL DEFAULT 0 CHECK (favorites >= 0)
	);
	CREATE INDEX IF NOT EXISTS idx_updates_recent ON updates(created_at DESC, id DESC);
	CREATE INDEX IF NOT EXISTS idx_updates_user_recent ON updates(user_id, created_at DESC, id DESC);

	CREATE TABLE IF NOT EXISTS comments (
		id BIGSERIAL PRIMARY KEY,
		content TEXT NOT NULL,
		update_id BIGINT NOT NULL REFERENCES updates(id) ON DELETE CASCADE,
		user_id BIGINT NOT NULL,
		created_at BIGINT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_comments_update_recent ON comments(update_id, created_at DESC, id DESC);

	CREATE TABLE IF NOT EXISTS update_likes (
		id BIGSERIAL PRIMARY KEY,
		update_id BIGINT NOT NULL REFERENCES updates(id) ON DELETE CASCADE,
		user_id BIGINT NOT NULL,
		liked_at BIGINT NOT NULL,
		CONSTRAINT uq_update_likes_update_user UNIQUE (update_id, user_id)
	);
	CREATE INDEX IF NOT EXISTS idx_update_likes_user ON update_likes(user_id);

	CREATE TABLE IF NOT EXISTS comment_likes (
		id BIGSERIAL PRIMARY KEY,
		comment_id BIGINT NOT NULL REFERENCES comments(id) ON DELETE CASCADE,
		user_id BIGINT NOT NULL,
		liked_at BIGINT NOT NULL,
		CONSTRAINT uq_comment_likes_comment_user UNIQUE (comment_id, user_id)
	);
	CREATE INDEX IF NOT EXISTS idx_comment_likes_user ON comment_likes(user_id);

	CREATE TABLE IF NOT EXISTS favorites (
		id BIGSERIAL PRIMARY KEY,
		update_id BIGINT NOT NULL REFERENCES updates(id) ON DELETE CASCADE,
		user_id BIGINT NOT NULL,
		favorited_at BIGINT NOT NULL,
		CONSTRAINT uq_favorites_update_user UNIQUE (update_id, user_id)
	);
	CREATE INDEX IF NOT EXISTS idx_favorites_user ON favorites(user_id);

	CREATE TABLE IF NOT EXISTS tags (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		CONSTRAINT uq_tags_name UNIQUE (name)
	);

	CREATE TABLE IF NOT EXISTS update_tags (
		update_id BIGINT NOT NULL REFERENCES updates(id) ON DELETE CASCADE,
		tag_id BIGINT NOT NULL REFERENCES tags(id) ON DELETE CASCADE,
		PRIMARY KEY (update_id, tag_id)
	);
	CREATE INDEX IF NOT EXISTS idx_update_tags_tag ON update_tags(tag_id);
`

// ApplySchema creates the feed tables if they do not exist
func (c *Client) ApplySchema(ctx context.Context) error {
	if _, err := c.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to apply feed schema: %w", err)
	}
	return nil
}

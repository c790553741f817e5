package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/qolzam/telar/apps/feed/internal/cache"
	"github.com/qolzam/telar/apps/feed/internal/pkg/log"
	"github.com/qolzam/telar/apps/feed/users/models"
)

// cachedUser is the cache encoding of a user. It keeps fields the API
// representation omits.
type cachedUser struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type cachedUserDirectory struct {
	next   UserDirectory
	cache  cache.Cache
	prefix string
	ttl    time.Duration
}

// NewCachedUserDirectory serves users from cache and loads the misses from
// next in a single batch. Cache failures fall through to next.
func NewCachedUserDirectory(next UserDirectory, c cache.Cache, prefix string, ttl time.Duration) UserDirectory {
	return &cachedUserDirectory{next: next, cache: c, prefix: prefix, ttl: ttl}
}

func (d *cachedUserDirectory) key(id int64) string {
	return fmt.Sprintf("%suser:%d", d.prefix, id)
}

// FindByIDs costs one cache read, at most one store call and at most one
// cache write, whatever the number of ids.
func (d *cachedUserDirectory) FindByIDs(ctx context.Context, ids []int64) ([]*models.User, error) {
	if len(ids) == 0 {
		return []*models.User{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = d.key(id)
	}

	hits, err := d.cache.GetMany(ctx, keys)
	if err != nil {
		log.WarnWithContext(ctx, "user cache read failed for %d ids: %v", len(ids), err)
		hits = nil
	}

	users := make([]*models.User, 0, len(ids))
	var misses []int64
	for i, id := range ids {
		raw, ok := hits[keys[i]]
		if !ok {
			misses = append(misses, id)
			continue
		}

		var entry cachedUser
		if err := json.Unmarshal(raw, &entry); err != nil {
			misses = append(misses, id)
			continue
		}
		users = append(users, &models.User{ID: entry.ID, Name: entry.Name, Email: entry.Email})
	}

	if len(misses) == 0 {
		return users, nil
	}

	loaded, err := d.next.FindByIDs(ctx, misses)
	if err != nil {
		return nil, err
	}

	entries := make(map[string][]byte, len(loaded))
	for _, user := range loaded {
		if raw, err := json.Marshal(cachedUser{ID: user.ID, Name: user.Name, Email: user.Email}); err == nil {
			entries[d.key(user.ID)] = raw
		}
		users = append(users, user)
	}
	if len(entries) > 0 {
		if err := d.cache.SetMany(ctx, entries, d.ttl); err != nil {
			log.WarnWithContext(ctx, "user cache write failed for %d users: %v", len(entries), err)
		}
	}
	return users, nil
}

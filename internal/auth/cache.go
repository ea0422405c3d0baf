package auth

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/Alston23/farm-assist-app-werzad-sub002/internal/domain"
)

// userCache is a small time-bounded cache of remote user lookups, so repeated
// CurrentUser calls during one screen's lifetime don't refetch the record.
type userCache struct {
	lru *expirable.LRU[string, *domain.User]
}

func newUserCache(size int, ttl time.Duration) *userCache {
	return &userCache{
		lru: expirable.NewLRU[string, *domain.User](size, nil, ttl),
	}
}

func (c *userCache) Get(userID string) (*domain.User, bool) {
	return c.lru.Get(userID)
}

func (c *userCache) Set(user *domain.User) {
	if user == nil {
		return
	}
	c.lru.Add(user.ID, user)
}

func (c *userCache) Remove(userID string) {
	c.lru.Remove(userID)
}

func (c *userCache) Purge() {
	c.lru.Purge()
}

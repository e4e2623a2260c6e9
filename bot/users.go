package bot

import (
	"time"

	"github.com/ReneKroon/ttlcache/v2"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
)

// NewUserCache returns a cache for CachedUser, holding up to 10000 users for 30 minutes.
func NewUserCache() *ttlcache.Cache {
	c := ttlcache.NewCache()
	_ = c.SetTTL(30 * time.Minute)
	c.SetCacheSizeLimit(10000)
	return c
}

// CachedUser returns a user from the cache, or from Discord's API if the user is not cached.
func (bot *Bot) CachedUser(id discord.UserID) (*discord.User, error) {
	v, err := bot.Users.Get(id.String())
	if err == nil {
		if u, ok := v.(discord.User); ok {
			return &u, nil
		}
	}

	u, err := bot.User(id)
	if err != nil {
		return nil, err
	}

	bot.SetUser(*u)
	return u, nil
}

// SetUser adds a user to the cache.
func (bot *Bot) SetUser(u discord.User) {
	_ = bot.Users.Set(u.ID.String(), u)
}

// cacheUsers caches users seen in events, so quote lookups rarely have to hit the API.
func (bot *Bot) cacheUsers(ev *gateway.MessageCreateEvent) {
	bot.SetUser(ev.Author)
}

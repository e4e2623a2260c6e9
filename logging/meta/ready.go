package meta

import (
	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/starshine-sys/quotebot/common/log"
)

func (bot *Bot) ready(ev *gateway.ReadyEvent) {
	log.Infof("Logged in as %v (%v) in %d guilds", ev.User.Tag(), ev.User.ID, len(ev.Guilds))
	if ev.Shard != nil {
		log.Debugf("Shard %d/%d is ready!", ev.Shard.ShardID(), ev.Shard.NumShards())
	}
}

package meta

import (
	"fmt"
	"time"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/starshine-sys/quotebot/common"
	"github.com/starshine-sys/quotebot/common/log"
)

func (bot *Bot) guildCreate(ev *gateway.GuildCreateEvent) {
	// guild create is also sent for every guild on startup,
	// so if we joined more than a minute ago it's safe to assume we were already in the guild
	if !isNewJoin(ev.Joined.Time(), time.Now()) {
		return
	}

	log.Infof("Joined new guild %v (%v)", ev.ID, ev.Name)

	bot.sendLog(joinEmbed(ev.ID, ev.Name, ev.Joined))
}

func isNewJoin(joined, now time.Time) bool {
	return !joined.Before(now.Add(-time.Minute))
}

func joinEmbed(id discord.GuildID, name string, joined discord.Timestamp) discord.Embed {
	return discord.Embed{
		Title:       "Joined guild",
		Description: fmt.Sprintf("Joined guild **%v**", name),
		Color:       common.ColourGreen,
		Timestamp:   joined,
		Footer: &discord.EmbedFooter{
			Text: "ID: " + id.String(),
		},
	}
}

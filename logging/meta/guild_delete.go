package meta

import (
	"fmt"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/dustin/go-humanize/english"
	"github.com/starshine-sys/quotebot/common"
	"github.com/starshine-sys/quotebot/common/log"
)

func (bot *Bot) guildDelete(ev *gateway.GuildDeleteEvent) {
	// an outage, not a leave
	if ev.Unavailable {
		log.Debugf("Guild %v became unavailable", ev.ID)
		return
	}

	// quotes are kept in case the bot is added back
	count := len(bot.Quotes.Guild(ev.ID.String()))

	log.Infof("Left guild %v, which had %d quotes", ev.ID, count)

	bot.sendLog(leaveEmbed(ev.ID, count))
}

func leaveEmbed(id discord.GuildID, quotes int) discord.Embed {
	return discord.Embed{
		Title:       "Left guild",
		Description: fmt.Sprintf("Left guild %v, which had %s", id, english.Plural(quotes, "quote", "")),
		Color:       common.ColourRed,
		Timestamp:   discord.NowTimestamp(),
		Footer: &discord.EmbedFooter{
			Text: "ID: " + id.String(),
		},
	}
}

// Package meta logs the bot's own lifecycle: shard ready, and joining or leaving guilds.
package meta

import (
	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/starshine-sys/quotebot/bot"
	"github.com/starshine-sys/quotebot/common/log"
)

type Bot struct {
	*bot.Bot
}

func Setup(root *bot.Bot) {
	log.Debug("Adding meta handlers")

	bot := &Bot{Bot: root}

	bot.AddHandler(
		// ready logging
		bot.ready,
		// logging guild join
		bot.guildCreate,
		// logging guild leave
		bot.guildDelete,
	)
}

// sendLog posts an embed to the join/leave log channel, if one is set.
func (bot *Bot) sendLog(e discord.Embed) {
	if !bot.Config.ShouldLog() || !bot.Config.Bot.JoinLeaveLog.IsValid() {
		return
	}

	_, err := bot.SendMessageComplex(bot.Config.Bot.JoinLeaveLog, api.SendMessageData{
		Embeds: []discord.Embed{e},
	})
	if err != nil {
		log.Errorf("sending join/leave log to %v: %v", bot.Config.Bot.JoinLeaveLog, err)
	}
}

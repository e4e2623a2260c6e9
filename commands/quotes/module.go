// Package quotes contains the /quote commands and the "Quote This Message" context menu command.
package quotes

import (
	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/api/cmdroute"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/starshine-sys/quotebot/bot"
	"github.com/starshine-sys/quotebot/common"
	"github.com/starshine-sys/quotebot/common/log"
)

type Bot struct {
	*bot.Bot

	// isAdmin reports whether a member may delete other people's quotes.
	isAdmin func(discord.GuildID, *discord.Member) (bool, error)
}

func Setup(root *bot.Bot) {
	log.Debug("Adding quote commands")

	bot := &Bot{Bot: root, isAdmin: root.IsAdmin}

	bot.Router.Sub("quote", func(r *cmdroute.Router) {
		r.AddFunc("add", bot.add)
		r.AddFunc("get", bot.get)
		r.AddFunc("list", bot.list)
		r.AddFunc("delete", bot.delete)
		r.AddFunc("help", bot.help)
	})

	bot.Router.AddFunc(common.QuoteMessageCommand, bot.quoteMessage)
}

// notInGuild returns a response if the interaction wasn't sent in a guild.
func notInGuild(ev *discord.InteractionEvent) *api.InteractionResponseData {
	if ev.GuildID.IsValid() {
		return nil
	}
	return ephemeral("Quote commands only work in servers.")
}

func ephemeral(content string) *api.InteractionResponseData {
	return bot.Ephemeral(content)
}

// displayName returns the member's nickname if they have one, otherwise their username.
func displayName(u discord.User, m *discord.Member) string {
	if m != nil && m.Nick != "" {
		return m.Nick
	}
	return u.Username
}

// avatar returns the user's avatar URL, or an empty string if they don't have a custom avatar.
func avatar(u discord.User) string {
	if u.Avatar == "" {
		return ""
	}
	return u.AvatarURL()
}

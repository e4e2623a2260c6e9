package quotes

import (
	"context"
	"fmt"
	"time"

	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/api/cmdroute"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/starshine-sys/quotebot/store"
)

func (bot *Bot) list(ctx context.Context, data cmdroute.CommandData) *api.InteractionResponseData {
	if resp := notInGuild(data.Event); resp != nil {
		return resp
	}

	quotes := bot.Quotes.Guild(data.Event.GuildID.String())

	title := "All Server Quotes"
	empty := "No quotes found on this server."

	if sf, err := data.Options.Find("user").SnowflakeValue(); err == nil && sf.IsValid() {
		userID := discord.UserID(sf)

		name := userID.Mention()
		if u, ok := data.Data.Resolved.Users[userID]; ok {
			name = u.Username
		}

		quotes = byQuoterID(quotes, userID.String())
		title = "Quotes from " + name
		empty = fmt.Sprintf("No quotes found from %s on this server.", name)
	}

	if len(quotes) == 0 {
		return ephemeral(empty)
	}

	return &api.InteractionResponseData{
		Embeds: &[]discord.Embed{listEmbed(title, quotes, time.Now())},
	}
}

// byQuoterID returns the quotes of exactly the given user.
func byQuoterID(quotes []store.Quote, id string) []store.Quote {
	out := []store.Quote{}
	for _, q := range quotes {
		if q.QuoterID == id {
			out = append(out, q)
		}
	}
	return out
}

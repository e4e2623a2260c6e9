package quotes

import (
	"context"
	"fmt"
	"strings"

	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/api/cmdroute"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/starshine-sys/quotebot/common/log"
	"github.com/starshine-sys/quotebot/quotes"
	"github.com/starshine-sys/quotebot/store"
)

func (bot *Bot) get(ctx context.Context, data cmdroute.CommandData) *api.InteractionResponseData {
	if resp := notInGuild(data.Event); resp != nil {
		return resp
	}

	guildID := data.Event.GuildID.String()
	if len(bot.Quotes.Guild(guildID)) == 0 {
		return ephemeral("No quotes found on this server yet. Add some with `/quote add` or by right-clicking a message!")
	}

	query := strings.TrimSpace(data.Options.Find("query").String())

	q, ok := quotes.Random(bot.Rand, bot.Quotes.Search(guildID, query))
	if !ok {
		if query == "" {
			query = "random"
		}
		return ephemeral(fmt.Sprintf("No quotes found matching your query: \"%s\".", query))
	}

	return &api.InteractionResponseData{
		Embeds: &[]discord.Embed{quoteEmbed(q, bot.quoterAvatar(q))},
	}
}

// quoterAvatar returns the quoted user's current avatar, or an empty string if they can't be fetched.
func (bot *Bot) quoterAvatar(q store.Quote) string {
	sf, err := discord.ParseSnowflake(q.QuoterID)
	if err != nil || !sf.IsValid() {
		return ""
	}

	u, err := bot.CachedUser(discord.UserID(sf))
	if err != nil {
		log.Debugf("fetching quoter %v for quote %d: %v", sf, q.ID, err)
		return ""
	}
	return u.AvatarURL()
}

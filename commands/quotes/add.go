package quotes

import (
	"context"
	"strings"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/api/cmdroute"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/starshine-sys/quotebot/quotes"
)

func (bot *Bot) add(ctx context.Context, data cmdroute.CommandData) *api.InteractionResponseData {
	if resp := notInGuild(data.Event); resp != nil {
		return resp
	}

	sf, err := data.Options.Find("user").SnowflakeValue()
	if err != nil {
		return bot.ReportError(data.Event, errors.Wrap(err, "parsing user option"))
	}
	userID := discord.UserID(sf)

	text := strings.TrimSpace(data.Options.Find("text").String())
	if text == "" {
		return ephemeral("You can't add an empty quote.")
	}

	quoter, ok := data.Data.Resolved.Users[userID]
	if !ok {
		u, err := bot.CachedUser(userID)
		if err != nil {
			return bot.ReportError(data.Event, errors.Wrap(err, "fetching quoted user"))
		}
		quoter = *u
	}

	var member *discord.Member
	if m, ok := data.Data.Resolved.Members[userID]; ok {
		member = &m
	}

	adder := data.Event.Sender()

	q := bot.Quotes.Add(ctx, quotes.NewQuote{
		Text:       text,
		QuoterName: displayName(quoter, member),
		QuoterID:   quoter.ID.String(),
		AdderTag:   adder.Tag(),
		AdderID:    adder.ID.String(),
		GuildID:    data.Event.GuildID.String(),
	})

	return &api.InteractionResponseData{
		Embeds: &[]discord.Embed{addedEmbed("Quote Added Manually!", q, *adder, avatar(quoter))},
	}
}

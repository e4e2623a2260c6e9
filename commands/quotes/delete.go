package quotes

import (
	"context"

	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/api/cmdroute"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/utils/json/option"
	"github.com/starshine-sys/quotebot/common/log"
)

func (bot *Bot) delete(ctx context.Context, data cmdroute.CommandData) *api.InteractionResponseData {
	if resp := notInGuild(data.Event); resp != nil {
		return resp
	}

	// integer options are sent as raw JSON numbers, so String returns the number as-is
	id := data.Options.Find("id").String()

	isAdmin, err := bot.isAdmin(data.Event.GuildID, data.Event.Member)
	if err != nil {
		// this only means admins can't delete other people's quotes for now, so don't fail the command
		log.Errorf("checking admin permissions for %v in %v: %v", data.Event.SenderID(), data.Event.GuildID, err)
		isAdmin = false
	}

	res := bot.Quotes.Delete(ctx, id, data.Event.GuildID.String(), data.Event.SenderID().String(), isAdmin)

	resp := &api.InteractionResponseData{
		Content: option.NewNullableString(res.Message),
	}
	if !res.Success() {
		resp.Flags = discord.EphemeralMessage
	}
	return resp
}

package quotes

import (
	"context"
	"fmt"
	"time"

	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/api/cmdroute"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/starshine-sys/pkgo/v2"
	"github.com/starshine-sys/quotebot/common/log"
	"github.com/starshine-sys/quotebot/quotes"
)

// pkTimeout is how long to wait for the PluralKit API.
// Interactions have to be responded to within three seconds.
const pkTimeout = 1500 * time.Millisecond

func (bot *Bot) quoteMessage(ctx context.Context, data cmdroute.CommandData) *api.InteractionResponseData {
	if resp := notInGuild(data.Event); resp != nil {
		return resp
	}

	msg, ok := data.Data.Resolved.Messages[discord.MessageID(data.Data.TargetID)]
	if !ok || isEmpty(msg) {
		return ephemeral("Cannot quote an empty message (no text, embeds, or attachments).")
	}

	quoterName, quoterID := msg.Author.Username, msg.Author.ID
	if m, ok := data.Data.Resolved.Members[msg.Author.ID]; ok && m.Nick != "" {
		quoterName = m.Nick
	}

	// proxied messages are sent by a webhook, so we ask PluralKit who actually sent it
	if msg.WebhookID.IsValid() {
		if name, sender, ok := bot.pluralKitSender(ctx, msg.ID); ok {
			quoterName = name
			if sender.IsValid() {
				quoterID = sender
			}
		}
	}

	adder := data.Event.Sender()

	q := bot.Quotes.Add(ctx, quotes.NewQuote{
		Text:              quoteText(msg),
		QuoterName:        quoterName,
		QuoterID:          quoterID.String(),
		AdderTag:          adder.Tag(),
		AdderID:           adder.ID.String(),
		GuildID:           data.Event.GuildID.String(),
		OriginalMessageID: msg.ID.String(),
		ChannelID:         msg.ChannelID.String(),
	})

	return &api.InteractionResponseData{
		Embeds: &[]discord.Embed{addedEmbed("Quote Added!", q, *adder, avatar(msg.Author))},
	}
}

// isEmpty returns true if the message has no content, embeds, or attachments.
func isEmpty(msg discord.Message) bool {
	return msg.Content == "" && len(msg.Embeds) == 0 && len(msg.Attachments) == 0
}

// quoteText returns the text to store for a message, with a placeholder for messages without content.
func quoteText(msg discord.Message) string {
	if msg.Content != "" {
		return msg.Content
	}
	return fmt.Sprintf("[Message from %s with embeds/attachments but no text content]", msg.Author.Username)
}

// pluralKitSender looks up a proxied message's member name and sending account.
func (bot *Bot) pluralKitSender(ctx context.Context, id discord.MessageID) (name string, sender discord.UserID, ok bool) {
	ctx, cancel := context.WithTimeout(ctx, pkTimeout)
	defer cancel()

	type result struct {
		name   string
		sender discord.UserID
		err    error
	}

	ch := make(chan result, 1)
	go func() {
		pkm, err := bot.PK.Message(pkgo.Snowflake(id))
		if err != nil {
			ch <- result{err: err}
			return
		}
		if pkm.Member == nil {
			ch <- result{err: fmt.Errorf("message %v has no member", id)}
			return
		}
		ch <- result{name: pkm.Member.Name, sender: discord.UserID(pkm.Sender)}
	}()

	select {
	case <-ctx.Done():
		log.Debugf("timed out getting PluralKit info for message %v", id)
		return "", 0, false
	case res := <-ch:
		if res.err != nil {
			if pkerr, ok := res.err.(*pkgo.PKAPIError); ok && pkerr.Code == pkgo.MessageNotFound {
				log.Debugf("message %v is not a proxied message", id)
			} else {
				log.Errorf("getting PluralKit info for message %v: %v", id, res.err)
			}
			return "", 0, false
		}
		return res.name, res.sender, true
	}
}

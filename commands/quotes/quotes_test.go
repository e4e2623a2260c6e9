package quotes

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/api/cmdroute"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/utils/json"
	"github.com/starshine-sys/quotebot/bot"
	quotestore "github.com/starshine-sys/quotebot/quotes"
	"github.com/starshine-sys/quotebot/store"
	"github.com/starshine-sys/quotebot/store/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	guildID   discord.GuildID   = 300
	channelID discord.ChannelID = 500
)

var (
	alice = discord.User{ID: 100, Username: "alice"}
	adder = discord.User{ID: 200, Username: "bob"}
	carol = discord.User{ID: 101, Username: "carol"}
)

// lastSource always picks the last candidate.
type lastSource struct{}

func (lastSource) IntN(n int) int { return n - 1 }

func notAdmin(discord.GuildID, *discord.Member) (bool, error) { return false, nil }

func newBot(t *testing.T, seed ...store.Quote) *Bot {
	t.Helper()

	storage := memory.New(seed...)
	b := &Bot{
		Bot: &bot.Bot{
			Quotes: quotestore.New(context.Background(), storage),
			Users:  bot.NewUserCache(),
			Rand:   lastSource{},
		},
		isAdmin: notAdmin,
	}
	t.Cleanup(func() { _ = b.Users.Close() })

	// quoter avatars are looked up through the cache, so the API is never hit
	b.SetUser(alice)
	b.SetUser(carol)
	return b
}

func event(guild discord.GuildID) *discord.InteractionEvent {
	return &discord.InteractionEvent{
		ID:      1,
		GuildID: guild,
		Member:  &discord.Member{User: adder},
	}
}

func commandData(guild discord.GuildID, opts ...discord.CommandInteractionOption) cmdroute.CommandData {
	data := &discord.CommandInteraction{
		Name: "quote",
		Resolved: discord.ResolvedData{
			Users: map[discord.UserID]discord.User{alice.ID: alice},
		},
	}
	return cmdroute.CommandData{
		CommandInteractionOption: discord.CommandInteractionOption{Options: opts},
		Event:                    event(guild),
		Data:                     data,
	}
}

func opt(name, raw string) discord.CommandInteractionOption {
	return discord.CommandInteractionOption{Name: name, Value: json.Raw(raw)}
}

func embeds(t *testing.T, resp *api.InteractionResponseData) []discord.Embed {
	t.Helper()
	require.NotNil(t, resp)
	require.NotNil(t, resp.Embeds)
	return *resp.Embeds
}

func TestCommandsOutsideGuild(t *testing.T) {
	b := newBot(t)
	ctx := context.Background()
	data := commandData(0)

	for name, fn := range map[string]cmdroute.CommandHandlerFunc{
		"add":          b.add,
		"get":          b.get,
		"list":         b.list,
		"delete":       b.delete,
		"quoteMessage": b.quoteMessage,
	} {
		t.Run(name, func(t *testing.T) {
			resp := fn(ctx, data)
			require.NotNil(t, resp)
			assert.Equal(t, discord.EphemeralMessage, resp.Flags)
			assert.Equal(t, 0, b.Quotes.Count())
		})
	}
}

func TestAdd(t *testing.T) {
	b := newBot(t)

	resp := b.add(context.Background(), commandData(guildID,
		opt("user", `"100"`),
		opt("text", `"Hello world"`),
	))

	e := embeds(t, resp)
	require.Len(t, e, 1)
	assert.Equal(t, "Quote Added Manually!", e[0].Title)
	assert.Equal(t, `"Hello world"`, e[0].Description)
	assert.Equal(t, "Quote ID: 1", e[0].Footer.Text)
	assert.Zero(t, resp.Flags)

	quotes := b.Quotes.Guild(guildID.String())
	require.Len(t, quotes, 1)
	assert.Equal(t, "alice", quotes[0].QuoterName)
	assert.Equal(t, "100", quotes[0].QuoterID)
	assert.Equal(t, "200", quotes[0].AdderID)
	assert.Equal(t, adder.Tag(), quotes[0].AdderTag)
	assert.Nil(t, quotes[0].OriginalMessageID)
}

func TestAddEmptyText(t *testing.T) {
	b := newBot(t)

	resp := b.add(context.Background(), commandData(guildID,
		opt("user", `"100"`),
		opt("text", `"   "`),
	))
	require.NotNil(t, resp)
	assert.Equal(t, discord.EphemeralMessage, resp.Flags)
	assert.Equal(t, 0, b.Quotes.Count())
}

func TestQuoteMessage(t *testing.T) {
	b := newBot(t)

	msg := discord.Message{
		ID:        400,
		ChannelID: channelID,
		Author:    alice,
		Content:   "I said a thing",
	}

	data := commandData(guildID)
	data.Data.Name = "Quote This Message"
	data.Data.TargetID = discord.Snowflake(msg.ID)
	data.Data.Resolved.Messages = map[discord.MessageID]discord.Message{msg.ID: msg}

	e := embeds(t, b.quoteMessage(context.Background(), data))
	require.Len(t, e, 1)
	assert.Equal(t, "Quote Added!", e[0].Title)

	quotes := b.Quotes.Guild(guildID.String())
	require.Len(t, quotes, 1)
	assert.Equal(t, "I said a thing", quotes[0].Text)
	require.True(t, quotes[0].HasMessageLink())
	assert.Equal(t, "400", *quotes[0].OriginalMessageID)
	assert.Equal(t, "500", *quotes[0].ChannelID)
}

func TestQuoteEmptyMessage(t *testing.T) {
	b := newBot(t)

	msg := discord.Message{ID: 400, ChannelID: channelID, Author: alice}

	data := commandData(guildID)
	data.Data.TargetID = discord.Snowflake(msg.ID)
	data.Data.Resolved.Messages = map[discord.MessageID]discord.Message{msg.ID: msg}

	resp := b.quoteMessage(context.Background(), data)
	require.NotNil(t, resp)
	assert.Equal(t, discord.EphemeralMessage, resp.Flags)
	assert.Equal(t, 0, b.Quotes.Count())
}

func TestQuoteText(t *testing.T) {
	withContent := discord.Message{Content: "hi", Author: alice}
	assert.False(t, isEmpty(withContent))
	assert.Equal(t, "hi", quoteText(withContent))

	attachmentOnly := discord.Message{Author: alice, Attachments: []discord.Attachment{{Filename: "cat.png"}}}
	assert.False(t, isEmpty(attachmentOnly))
	assert.Equal(t, "[Message from alice with embeds/attachments but no text content]", quoteText(attachmentOnly))

	assert.True(t, isEmpty(discord.Message{Author: alice}))
}

func content(t *testing.T, resp *api.InteractionResponseData) string {
	t.Helper()
	require.NotNil(t, resp)
	require.NotNil(t, resp.Content)
	return resp.Content.Val
}

func seededQuotes() []store.Quote {
	ts := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)
	return []store.Quote{
		{ID: 1, Text: "one", QuoterName: "alice", QuoterID: "100", AdderID: "200", AdderTag: "bob", GuildID: guildID.String(), Timestamp: ts},
		{ID: 2, Text: "two", QuoterName: "carol1", QuoterID: "101", AdderID: "201", AdderTag: "dave", GuildID: guildID.String(), Timestamp: ts},
		{ID: 3, Text: "elsewhere", QuoterName: "alice", QuoterID: "100", AdderID: "200", AdderTag: "bob", GuildID: "999", Timestamp: ts},
	}
}

func TestGet(t *testing.T) {
	ctx := context.Background()
	b := newBot(t, seededQuotes()...)

	e := embeds(t, b.get(ctx, commandData(guildID)))
	assert.Equal(t, "> two", e[0].Description, "an empty query picks from every quote in the guild")
	assert.Equal(t, "Quote ID: 2 | Added by: dave", e[0].Footer.Text)

	// "1" is quote 1's ID and also part of carol1's name: the ID wins
	e = embeds(t, b.get(ctx, commandData(guildID, opt("query", `"1"`))))
	assert.Equal(t, "> one", e[0].Description)

	e = embeds(t, b.get(ctx, commandData(guildID, opt("query", `"ALI"`))))
	assert.Equal(t, "alice", e[0].Author.Name)

	// quote 3 is in another guild
	resp := b.get(ctx, commandData(guildID, opt("query", `"3"`)))
	assert.Equal(t, discord.EphemeralMessage, resp.Flags)
	assert.Equal(t, `No quotes found matching your query: "3".`, content(t, resp))
}

func TestGetEmptyGuild(t *testing.T) {
	ctx := context.Background()
	b := newBot(t)

	resp := b.get(ctx, commandData(guildID))
	assert.Equal(t, discord.EphemeralMessage, resp.Flags)
	assert.Contains(t, content(t, resp), "No quotes found on this server yet.")

	b = newBot(t, seededQuotes()[2])
	resp = b.get(ctx, commandData(999, opt("query", `"carol"`)))
	assert.Equal(t, discord.EphemeralMessage, resp.Flags)
	assert.Equal(t, `No quotes found matching your query: "carol".`, content(t, resp))
}

func TestDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("own quote", func(t *testing.T) {
		b := newBot(t, seededQuotes()...)

		resp := b.delete(ctx, commandData(guildID, opt("id", `1`)))
		assert.Equal(t, "Quote ID 1 has been deleted.", content(t, resp))
		assert.Zero(t, resp.Flags, "successful deletes are public")
		assert.Len(t, b.Quotes.Guild(guildID.String()), 1)
	})

	t.Run("someone else's quote", func(t *testing.T) {
		b := newBot(t, seededQuotes()...)

		resp := b.delete(ctx, commandData(guildID, opt("id", `2`)))
		assert.Equal(t, discord.EphemeralMessage, resp.Flags)
		assert.Contains(t, content(t, resp), "You can only delete quotes you added")
		assert.Len(t, b.Quotes.Guild(guildID.String()), 2)
	})

	t.Run("admin", func(t *testing.T) {
		b := newBot(t, seededQuotes()...)
		b.isAdmin = func(id discord.GuildID, m *discord.Member) (bool, error) {
			assert.Equal(t, guildID, id)
			assert.Equal(t, adder.ID, m.User.ID)
			return true, nil
		}

		resp := b.delete(ctx, commandData(guildID, opt("id", `2`)))
		assert.Equal(t, "Quote ID 2 has been deleted.", content(t, resp))
		assert.Zero(t, resp.Flags)
	})

	t.Run("admin check fails", func(t *testing.T) {
		b := newBot(t, seededQuotes()...)
		b.isAdmin = func(discord.GuildID, *discord.Member) (bool, error) {
			return true, errors.New("guild not cached")
		}

		resp := b.delete(ctx, commandData(guildID, opt("id", `2`)))
		assert.Equal(t, discord.EphemeralMessage, resp.Flags)
		assert.Len(t, b.Quotes.Guild(guildID.String()), 2)
	})

	t.Run("not found", func(t *testing.T) {
		b := newBot(t, seededQuotes()...)

		resp := b.delete(ctx, commandData(guildID, opt("id", `3`)))
		assert.Equal(t, discord.EphemeralMessage, resp.Flags)
		assert.Equal(t, "No quote found with ID 3 on this server.", content(t, resp))

		resp = b.delete(ctx, commandData(guildID, opt("id", `"abc"`)))
		assert.Equal(t, discord.EphemeralMessage, resp.Flags)
		assert.Equal(t, "Invalid quote ID.", content(t, resp))
	})
}

func TestList(t *testing.T) {
	ts := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)
	b := newBot(t,
		store.Quote{ID: 1, Text: "one", QuoterName: "alice", QuoterID: "100", GuildID: guildID.String(), Timestamp: ts},
		store.Quote{ID: 2, Text: "two", QuoterName: "carol", QuoterID: "101", GuildID: guildID.String(), Timestamp: ts},
		store.Quote{ID: 3, Text: "elsewhere", QuoterName: "alice", QuoterID: "100", GuildID: "999", Timestamp: ts},
	)
	ctx := context.Background()

	e := embeds(t, b.list(ctx, commandData(guildID)))
	assert.Equal(t, "All Server Quotes", e[0].Title)
	assert.Len(t, e[0].Fields, 2)

	e = embeds(t, b.list(ctx, commandData(guildID, opt("user", `"100"`))))
	assert.Equal(t, "Quotes from alice", e[0].Title)
	require.Len(t, e[0].Fields, 1)
	assert.Equal(t, "ID: 1 - By: alice", e[0].Fields[0].Name)

	resp := b.list(ctx, commandData(guildID, opt("user", `"102"`)))
	require.NotNil(t, resp)
	assert.Equal(t, discord.EphemeralMessage, resp.Flags)
}

func TestListEmbed(t *testing.T) {
	now := time.Date(2024, 5, 4, 12, 30, 0, 0, time.UTC)

	var quotes []store.Quote
	for i := 1; i <= 30; i++ {
		quotes = append(quotes, store.Quote{
			ID:         int64(i),
			Text:       strings.Repeat("x", 150),
			QuoterName: "alice",
			Timestamp:  now.Add(-72 * time.Hour),
		})
	}

	e := listEmbed("All Server Quotes", quotes, now)
	assert.Len(t, e.Fields, maxListFields)
	require.NotNil(t, e.Footer)
	assert.Equal(t, "Showing 25 of 30 quotes.", e.Footer.Text)
	assert.True(t, strings.HasPrefix(e.Fields[0].Value, "\""+strings.Repeat("x", 100)+"...\""))
	assert.Contains(t, e.Fields[0].Value, "3 days ago")

	e = listEmbed("All Server Quotes", quotes[:2], now)
	assert.Len(t, e.Fields, 2)
	assert.Nil(t, e.Footer)
}

func TestQuoteEmbed(t *testing.T) {
	q := store.Quote{
		ID:         7,
		Text:       "Hello world",
		QuoterName: "alice",
		AdderTag:   "bob#0",
		GuildID:    "300",
	}

	e := quoteEmbed(q, "https://cdn.example/avatar.png")
	assert.Equal(t, "> Hello world", e.Description)
	assert.Equal(t, "alice", e.Author.Name)
	assert.Equal(t, "https://cdn.example/avatar.png", e.Author.Icon)
	assert.Equal(t, "Quote ID: 7 | Added by: bob#0", e.Footer.Text)
	assert.Empty(t, e.Fields)

	q.OriginalMessageID = store.String("400")
	e = quoteEmbed(q, "")
	require.Len(t, e.Fields, 1)
	assert.Equal(t, "Original Message Context", e.Fields[0].Name)

	q.ChannelID = store.String("500")
	e = quoteEmbed(q, "")
	require.Len(t, e.Fields, 1)
	assert.Equal(t, "Original Message", e.Fields[0].Name)
	assert.Contains(t, e.Fields[0].Value, "https://discord.com/channels/300/500/400")
}

func TestHelp(t *testing.T) {
	b := newBot(t)

	resp := b.help(context.Background(), commandData(guildID))
	e := embeds(t, resp)
	assert.Equal(t, "Quote Bot Help", e[0].Title)
	assert.Len(t, e[0].Fields, 5)
	assert.Equal(t, discord.EphemeralMessage, resp.Flags)

	b.Config.Info.SupportServer = "https://discord.gg/quotes"
	e = embeds(t, b.help(context.Background(), commandData(guildID)))
	require.Len(t, e[0].Fields, 6)
	assert.Equal(t, "Support server", e[0].Fields[5].Name)
	assert.Contains(t, e[0].Fields[5].Value, "https://discord.gg/quotes")
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "alice", displayName(alice, nil))
	assert.Equal(t, "alice", displayName(alice, &discord.Member{}))
	assert.Equal(t, "Alice!", displayName(alice, &discord.Member{Nick: "Alice!"}))
}

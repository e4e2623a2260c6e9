package bot

import (
	"context"
	"io"
	"math/rand/v2"
	"sync"
	"time"

	"emperror.dev/errors"
	"github.com/ReneKroon/ttlcache/v2"
	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/api/cmdroute"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/diamondburned/arikawa/v3/state"
	"github.com/diamondburned/arikawa/v3/utils/json/option"
	"github.com/diamondburned/arikawa/v3/utils/ws"
	"github.com/starshine-sys/pkgo/v2"
	"github.com/starshine-sys/quotebot/common"
	"github.com/starshine-sys/quotebot/common/log"
	"github.com/starshine-sys/quotebot/quotes"
)

const Intents = gateway.IntentGuilds |
	gateway.IntentGuildMessages |
	gateway.IntentGuildMembers |
	gateway.IntentDirectMessages |
	gateway.IntentMessageContent

type Bot struct {
	*state.State
	Router *cmdroute.Router
	Config Config

	Quotes *quotes.Store
	PK     *pkgo.Session

	// closer is the storage backend's connection, if it has one
	closer io.Closer

	// Users caches users by ID, see CachedUser.
	Users *ttlcache.Cache

	// Rand picks random quotes.
	Rand quotes.RandomSource
}

// New creates a new Bot, opening its storage and loading all quotes.
func New(ctx context.Context, c Config) (*Bot, error) {
	// set up debug logging
	log.SetDebug(c.Bot.Debug)
	ws.WSDebug = log.Named("ws").Debug
	ws.WSError = func(err error) {
		log.SugaredLogger.Error("ws error: ", err)
	}

	storage, closer, err := OpenStorage(ctx, c)
	if err != nil {
		return nil, errors.Wrap(err, "opening storage")
	}

	s := state.New("Bot " + c.Auth.Discord)
	s.AddIntents(Intents)

	bot := &Bot{
		State:  s,
		Router: cmdroute.NewRouter(),
		Config: c,
		Quotes: quotes.New(ctx, storage, quotes.WithTimeout(c.Storage.Timeout())),
		PK:     pkgo.New(""),
		closer: closer,
		Users:  NewUserCache(),
		Rand:   newLockedSource(),
	}

	s.AddInteractionHandler(bot.Router)
	s.AddHandler(bot.cacheUsers)

	return bot, nil
}

func (bot *Bot) Open(ctx context.Context) error {
	log.Debug("opening gateway connection")

	err := bot.State.Open(ctx)
	if err != nil {
		return err
	}

	go bot.statusLoop(ctx)
	return nil
}

// Close closes the gateway connection and the storage backend.
func (bot *Bot) Close() error {
	err := bot.State.Close()

	bot.Users.Close()

	if bot.closer != nil {
		if cerr := bot.closer.Close(); cerr != nil {
			err = errors.Append(err, errors.Wrap(cerr, "closing storage"))
		}
	}
	return err
}

// AddHandler adds the given event handlers.
func (bot *Bot) AddHandler(i ...any) {
	for _, hn := range i {
		bot.State.AddHandler(hn)
	}
}

// lockedSource is a random source that is safe for concurrent use.
type lockedSource struct {
	mu sync.Mutex
	r  *rand.Rand
}

var _ quotes.RandomSource = (*lockedSource)(nil)

func newLockedSource() *lockedSource {
	return &lockedSource{r: rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), rand.Uint64()))}
}

func (s *lockedSource) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.IntN(n)
}

// SyncCommands overwrites the bot's commands, either in the configured commands guild or globally.
func (bot *Bot) SyncCommands() error {
	if bot.Config.Bot.NoSyncCommands {
		log.Info("Note: not syncing slash commands. Set no_sync_commands to false to sync commands")
		return nil
	}

	app, err := bot.CurrentApplication()
	if err != nil {
		return errors.Wrap(err, "getting current application")
	}

	if guildID := bot.Config.Bot.CommandsGuildID; guildID.IsValid() {
		_, err = bot.BulkOverwriteGuildCommands(app.ID, guildID, common.Commands)
		if err != nil {
			return errors.Wrapf(err, "overwriting commands in %v", guildID)
		}
		log.Infof("Synced %d commands in %v", len(common.Commands), guildID)
		return nil
	}

	log.Warn("No commands guild set, syncing commands globally. This can take up to an hour to show.")
	_, err = bot.BulkOverwriteCommands(app.ID, common.Commands)
	if err != nil {
		return errors.Wrap(err, "overwriting global commands")
	}
	log.Infof("Synced %d commands globally", len(common.Commands))
	return nil
}

// Ephemeral returns an ephemeral response with the given content.
func Ephemeral(content string) *api.InteractionResponseData {
	return &api.InteractionResponseData{
		Content: option.NewNullableString(content),
		Flags:   discord.EphemeralMessage,
	}
}

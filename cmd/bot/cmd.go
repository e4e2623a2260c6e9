package bot

import (
	"os"
	"os/signal"
	"syscall"

	"emperror.dev/errors"
	"github.com/getsentry/sentry-go"
	"github.com/starshine-sys/quotebot/bot"
	"github.com/starshine-sys/quotebot/commands/demo"
	"github.com/starshine-sys/quotebot/commands/quotes"
	"github.com/starshine-sys/quotebot/common"
	"github.com/starshine-sys/quotebot/common/log"
	"github.com/starshine-sys/quotebot/logging/meta"
	"github.com/starshine-sys/quotebot/web/server"
	"github.com/urfave/cli/v2"
)

var Command = &cli.Command{
	Name:   "bot",
	Usage:  "Run the bot",
	Action: run,
}

func run(c *cli.Context) error {
	defer log.Sync()

	conf, err := bot.ReadConfig(c.String("config"))
	if err != nil {
		return errors.Wrap(err, "reading config")
	}

	// set up sentry
	if conf.Auth.Sentry != "" {
		log.Debug("setting up sentry")
		err := sentry.Init(sentry.ClientOptions{
			Dsn:     conf.Auth.Sentry,
			Release: common.Version(),
		})
		if err != nil {
			log.Fatalf("setting up sentry: %v", err)
		}

		log.Debug("set up sentry")
	} else {
		log.Debugf("sentry DSN was not provided, not setting it up")
	}

	ctx, cancel := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	b, err := bot.New(ctx, conf)
	if err != nil {
		return errors.Wrap(err, "creating bot")
	}
	log.Infof("Loaded %d quotes", b.Quotes.Count())

	// set up modules (commands, logging)
	quotes.Setup(b) // quote commands
	demo.Setup(b)   // DM button demo, if enabled
	meta.Setup(b)   // meta logging (guilds, ready)

	if conf.Web.Port != "" {
		srv := server.New(b.Quotes, b.Rand)
		go func() {
			if err := srv.Run(ctx, conf.Web.Port); err != nil {
				log.Errorf("running HTTP API: %v", err)
			}
		}()
	}

	// actually run bot!
	err = b.Open(ctx)
	if err != nil {
		return errors.Wrap(err, "opening gateway connection")
	}

	defer func() {
		err := b.Close()
		if err != nil {
			log.Errorf("closing bot: %v", err)
		}
		log.Info("Disconnected from Discord.")
	}()

	if err := b.SyncCommands(); err != nil {
		log.Errorf("syncing slash commands: %v", err)
	}

	log.Info("Connected to Discord. Press Ctrl-C or send an interrupt signal to stop.")

	<-ctx.Done()
	log.Info("Interrupt signal received. Shutting down...")
	return nil
}

// Package importquotes copies a JSON quote file into the configured storage backend.
package importquotes

import (
	"context"

	"emperror.dev/errors"
	"github.com/dustin/go-humanize/english"
	"github.com/starshine-sys/quotebot/bot"
	"github.com/starshine-sys/quotebot/common/log"
	"github.com/starshine-sys/quotebot/store"
	"github.com/starshine-sys/quotebot/store/jsonfile"
	"github.com/urfave/cli/v2"
)

var Command = &cli.Command{
	Name:   "import",
	Usage:  "Import a JSON quote file into the configured storage backend",
	Action: run,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "from",
			Usage: "The JSON quote file to import",
			Value: jsonfile.DefaultPath,
		},
		&cli.BoolFlag{
			Name:    "force",
			Aliases: []string{"f"},
			Usage:   "Overwrite quotes already stored in the backend",
		},
	},
}

func run(c *cli.Context) error {
	conf, err := bot.ReadConfig(c.String("config"))
	if err != nil {
		return errors.Wrap(err, "reading config")
	}

	ctx, cancel := context.WithTimeout(c.Context, conf.Storage.Timeout())
	defer cancel()

	target, closer, err := bot.OpenStorage(ctx, conf)
	if err != nil {
		return errors.Wrap(err, "opening storage")
	}
	if closer != nil {
		defer closer.Close()
	}

	n, err := Import(ctx, jsonfile.New(c.String("from")), target, c.Bool("force"))
	if err != nil {
		if errors.Is(err, ErrNotEmpty) {
			return cli.Exit("The storage backend already has quotes, use --force to overwrite them.", 1)
		}
		return err
	}

	log.Infof("Imported %s into the %v backend!", english.Plural(n, "quote", ""), conf.Storage.Backend)
	return nil
}

// ErrNotEmpty is returned by Import if the target already has quotes and force is false.
const ErrNotEmpty = errors.Sentinel("target storage is not empty")

// Import copies every quote from src to dst, returning the number of quotes copied.
func Import(ctx context.Context, src, dst store.Storage, force bool) (int, error) {
	quotes, err := src.Load(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "loading quotes to import")
	}

	if !force {
		existing, err := dst.Load(ctx)
		if err != nil && !errors.Is(err, store.ErrNoData) {
			return 0, errors.Wrap(err, "loading existing quotes")
		}
		if len(existing) > 0 {
			return 0, ErrNotEmpty
		}
	}

	err = dst.SaveAll(ctx, quotes)
	if err != nil {
		return 0, errors.Wrap(err, "saving quotes")
	}
	return len(quotes), nil
}

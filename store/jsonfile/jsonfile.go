// Package jsonfile stores quotes as a single JSON array in a file on disk.
package jsonfile

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"emperror.dev/errors"
	"github.com/starshine-sys/quotebot/store"
)

var _ store.Storage = (*Store)(nil)

// DefaultPath is the file used if no path is configured.
const DefaultPath = "quotes.json"

type Store struct {
	path string
}

func New(path string) *Store {
	if path == "" {
		path = DefaultPath
	}
	return &Store{path: path}
}

// Path returns the file this store reads from and writes to.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) Load(ctx context.Context) ([]store.Quote, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, store.ErrNoData
		}
		return nil, errors.Wrap(err, "reading quote file")
	}

	var quotes []store.Quote
	err = json.Unmarshal(b, &quotes)
	if err != nil {
		return nil, errors.Wrap(err, "unmarshaling quotes")
	}
	return quotes, nil
}

// SaveAll writes the quotes to a temporary file next to the target, then renames it over the target.
// A crash halfway through a write leaves the previous file intact.
func (s *Store) SaveAll(ctx context.Context, quotes []store.Quote) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if quotes == nil {
		quotes = []store.Quote{}
	}

	b, err := json.MarshalIndent(quotes, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshaling quotes")
	}

	dir := filepath.Dir(s.path)
	err = os.MkdirAll(dir, 0o755)
	if err != nil {
		return errors.Wrap(err, "creating quote directory")
	}

	f, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "creating temporary file")
	}
	tmp := f.Name()

	_, err = f.Write(b)
	if err == nil {
		err = f.Sync()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(tmp)
		return errors.Wrap(err, "writing temporary file")
	}

	err = os.Rename(tmp, s.path)
	if err != nil {
		_ = os.Remove(tmp)
		return errors.Wrap(err, "replacing quote file")
	}
	return nil
}

// Package redis stores quotes as a JSON array under a single Redis key.
package redis

import (
	"context"
	"encoding/json"

	"emperror.dev/errors"
	"github.com/mediocregopher/radix/v4"
	"github.com/starshine-sys/quotebot/store"
)

var _ store.Storage = (*Store)(nil)

// DefaultKey is the key used if no key is configured.
const DefaultKey = "quotebot:quotes"

type Store struct {
	client radix.Client
	key    string
}

func New(url, key string) (*Store, error) {
	client, err := (&radix.PoolConfig{}).New(context.Background(), "tcp", url)
	if err != nil {
		return nil, errors.Wrap(err, "creating radix client")
	}

	return NewWithClient(client, key), nil
}

// NewWithClient creates a Store using an existing client.
func NewWithClient(client radix.Client, key string) *Store {
	if key == "" {
		key = DefaultKey
	}
	return &Store{client: client, key: key}
}

func (s *Store) Load(ctx context.Context) ([]store.Quote, error) {
	var b []byte
	mb := radix.Maybe{Rcv: &b}

	err := s.client.Do(ctx, radix.Cmd(&mb, "GET", s.key))
	if err != nil {
		return nil, errors.Wrap(err, "getting quotes")
	}

	// a missing key is a null bulk string
	if mb.Null {
		return nil, store.ErrNoData
	}

	var quotes []store.Quote
	err = json.Unmarshal(b, &quotes)
	if err != nil {
		return nil, errors.Wrap(err, "unmarshaling quotes")
	}
	return quotes, nil
}

func (s *Store) SaveAll(ctx context.Context, quotes []store.Quote) error {
	if quotes == nil {
		quotes = []store.Quote{}
	}

	b, err := json.Marshal(quotes)
	if err != nil {
		return errors.Wrap(err, "marshaling quotes")
	}

	err = s.client.Do(ctx, radix.Cmd(nil, "SET", s.key, string(b)))
	if err != nil {
		return errors.Wrap(err, "setting quotes")
	}
	return nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

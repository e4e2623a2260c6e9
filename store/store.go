// Package store defines the quote record and the interface for the durable medium quotes are mirrored to.
// The quote list is always loaded and written as a whole: implementations don't need to support partial reads or writes.
package store

import (
	"context"
	"encoding/json"
	"time"

	"emperror.dev/errors"
)

// ErrNoData is returned by Storage.Load if nothing has been stored yet.
const ErrNoData = errors.Sentinel("no stored quotes")

// Storage is a durable medium for the full quote list.
type Storage interface {
	// Load returns every stored quote, in insertion order.
	Load(ctx context.Context) ([]Quote, error)
	// SaveAll replaces the stored quote list with the given one.
	SaveAll(ctx context.Context, quotes []Quote) error
}

// Quote is a single attributed quote.
type Quote struct {
	ID   int64  `json:"id" db:"id"`
	Text string `json:"text" db:"text"`

	// QuoterName and QuoterID are the person being quoted.
	QuoterName string `json:"quoterName" db:"quoter_name"`
	QuoterID   string `json:"quoterId" db:"quoter_id"`

	// AdderTag and AdderID are the user who added the quote.
	AdderTag string `json:"adderTag" db:"adder_tag"`
	AdderID  string `json:"adderId" db:"adder_id"`

	Timestamp time.Time `json:"timestamp" db:"timestamp"`
	GuildID   string    `json:"guildId" db:"guild_id"`

	// Only set if the quote was added from an existing message.
	OriginalMessageID *string `json:"originalMessageId" db:"original_message_id"`
	ChannelID         *string `json:"channelId" db:"channel_id"`

	Context *string `json:"context" db:"context"`
}

// TimestampLayout is how quote timestamps are written: UTC with millisecond precision, like JavaScript's toISOString.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// MarshalJSON writes the timestamp in TimestampLayout. Decoding uses the default RFC 3339 parsing.
func (q Quote) MarshalJSON() ([]byte, error) {
	type quote Quote
	return json.Marshal(struct {
		quote
		Timestamp string `json:"timestamp"`
	}{quote(q), q.Timestamp.UTC().Format(TimestampLayout)})
}

// HasMessageLink returns true if the quote can be linked back to its source message.
func (q Quote) HasMessageLink() bool {
	return q.OriginalMessageID != nil && *q.OriginalMessageID != "" &&
		q.ChannelID != nil && *q.ChannelID != ""
}

// Copy returns a copy of the given quotes, so callers can't modify a store's backing slice.
func Copy(quotes []Quote) []Quote {
	if quotes == nil {
		return nil
	}
	out := make([]Quote, len(quotes))
	copy(out, quotes)
	return out
}

// String returns a pointer to s, or nil if s is empty.
func String(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

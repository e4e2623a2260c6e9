// Package quotes holds every quote in memory and mirrors it to a store.Storage.
//
// Quotes are partitioned by guild: every read and delete takes a guild ID, and quotes from other guilds are never returned or touched.
// IDs are global, however, and are never reused after a delete.
package quotes

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"emperror.dev/errors"
	"github.com/starshine-sys/quotebot/common/log"
	"github.com/starshine-sys/quotebot/store"
)

// DefaultTimeout is the default timeout for writes to the backing storage.
const DefaultTimeout = 10 * time.Second

// Store holds every quote in memory and mirrors each change to its storage.
type Store struct {
	mu     sync.RWMutex
	quotes []store.Quote

	storage store.Storage
	timeout time.Duration
	now     func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithTimeout sets the timeout for every storage call.
func WithTimeout(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithClock overrides the function used to timestamp new quotes.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// New creates a Store and loads all quotes from storage.
// Load errors are logged and never returned: if the stored data can't be read, the store starts out empty.
func New(ctx context.Context, storage store.Storage, opts ...Option) *Store {
	s := &Store{
		storage: storage,
		timeout: DefaultTimeout,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.load(ctx)
	return s
}

func (s *Store) load(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	quotes, err := s.storage.Load(ctx)
	switch {
	case err == nil:
		s.quotes = quotes
		log.Infof("Loaded %d quotes", len(quotes))
	case errors.Is(err, store.ErrNoData):
		s.quotes = nil
		if err := s.storage.SaveAll(ctx, []store.Quote{}); err != nil {
			log.Errorf("creating empty quote storage: %v", err)
			return
		}
		log.Info("No stored quotes found, created empty quote storage")
	default:
		// the stored data is left as-is, but will be overwritten by the next add or delete
		s.quotes = nil
		log.Errorf("loading quotes, starting with an empty quote list: %v", err)
	}
}

// save writes all quotes to storage. The caller must hold the write lock.
// Errors are logged but not returned, and the in-memory list is not rolled back.
func (s *Store) save(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	err := s.storage.SaveAll(ctx, store.Copy(s.quotes))
	if err != nil {
		log.Errorf("saving %d quotes: %v", len(s.quotes), err)
	}
}

// NewQuote is the data needed to add a quote.
type NewQuote struct {
	Text       string
	QuoterName string
	QuoterID   string
	AdderTag   string
	AdderID    string
	GuildID    string

	// Only set when quoting an existing message.
	OriginalMessageID string
	ChannelID         string
}

// Add adds a quote and writes the quote list to storage.
func (s *Store) Add(ctx context.Context, data NewQuote) store.Quote {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := store.Quote{
		ID:                s.nextID(),
		Text:              data.Text,
		QuoterName:        data.QuoterName,
		QuoterID:          data.QuoterID,
		AdderTag:          data.AdderTag,
		AdderID:           data.AdderID,
		Timestamp:         s.now().UTC().Truncate(time.Millisecond),
		GuildID:           data.GuildID,
		OriginalMessageID: store.String(data.OriginalMessageID),
		ChannelID:         store.String(data.ChannelID),
	}

	s.quotes = append(s.quotes, q)
	s.save(ctx)

	log.Debugf("Added quote %d in guild %v", q.ID, q.GuildID)
	return q
}

// nextID returns one more than the highest ID in use, or 1 if there are no quotes.
func (s *Store) nextID() int64 {
	var max int64
	for _, q := range s.quotes {
		if q.ID > max {
			max = q.ID
		}
	}
	return max + 1
}

// Guild returns all quotes in the given guild, oldest first.
func (s *Store) Guild(guildID string) []store.Quote {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.filter(func(q store.Quote) bool { return q.GuildID == guildID })
}

func (s *Store) filter(fn func(store.Quote) bool) []store.Quote {
	out := []store.Quote{}
	for _, q := range s.quotes {
		if fn(q) {
			out = append(out, q)
		}
	}
	return out
}

// Count returns the total number of quotes across all guilds.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.quotes)
}

// parseID parses a quote ID. IDs must be positive integers.
func parseID(id string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(id), 10, 64)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// ByID returns the quote with the given ID, if it exists in the given guild.
func (s *Store) ByID(id, guildID string) (store.Quote, bool) {
	n, ok := parseID(id)
	if !ok {
		return store.Quote{}, false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.index(n, guildID)
	if i == -1 {
		return store.Quote{}, false
	}
	return s.quotes[i], true
}

// index returns the index of the quote with the given ID and guild, or -1.
func (s *Store) index(id int64, guildID string) int {
	for i, q := range s.quotes {
		if q.ID == id && q.GuildID == guildID {
			return i
		}
	}
	return -1
}

// ByQuoter returns all quotes in the guild whose quoter name contains query (case-insensitively),
// or whose quoter ID is exactly query.
func (s *Store) ByQuoter(query, guildID string) []store.Quote {
	if strings.TrimSpace(query) == "" {
		return []store.Quote{}
	}
	lower := strings.ToLower(query)

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.filter(func(q store.Quote) bool {
		if q.GuildID != guildID {
			return false
		}
		return strings.Contains(strings.ToLower(q.QuoterName), lower) ||
			(q.QuoterID != "" && q.QuoterID == query)
	})
}

// Search returns the candidates for a quote lookup.
// An empty query returns every quote in the guild; otherwise a matching ID wins over quoter matches.
func (s *Store) Search(guildID, query string) []store.Quote {
	if strings.TrimSpace(query) == "" {
		return s.Guild(guildID)
	}

	if q, ok := s.ByID(query, guildID); ok {
		return []store.Quote{q}
	}
	return s.ByQuoter(query, guildID)
}

// DeleteStatus is the outcome of a delete.
type DeleteStatus int

const (
	Deleted DeleteStatus = iota
	InvalidID
	NotFound
	Forbidden
)

func (s DeleteStatus) String() string {
	switch s {
	case Deleted:
		return "deleted"
	case InvalidID:
		return "invalid id"
	case NotFound:
		return "not found"
	case Forbidden:
		return "forbidden"
	}
	return "unknown"
}

// DeleteResult is returned by Delete. Quote is only set if the quote was deleted.
type DeleteResult struct {
	Status  DeleteStatus
	Message string
	Quote   *store.Quote
}

// Success returns true if the quote was deleted.
func (r DeleteResult) Success() bool {
	return r.Status == Deleted
}

// NotFound returns true if no quote was found, including if the ID was invalid.
func (r DeleteResult) NotFound() bool {
	return r.Status == NotFound || r.Status == InvalidID
}

// Delete deletes a quote, if the requester added it or is privileged.
// A quote in another guild is reported as not found, not as forbidden.
func (s *Store) Delete(ctx context.Context, id, guildID, requesterID string, privileged bool) DeleteResult {
	n, ok := parseID(id)
	if !ok {
		return DeleteResult{Status: InvalidID, Message: "Invalid quote ID."}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(n, guildID)
	if i == -1 {
		return DeleteResult{
			Status:  NotFound,
			Message: fmt.Sprintf("No quote found with ID %d on this server.", n),
		}
	}

	q := s.quotes[i]
	if q.AdderID != requesterID && !privileged {
		return DeleteResult{
			Status:  Forbidden,
			Message: "You can only delete quotes you added, or you need Administrator permissions.",
		}
	}

	s.quotes = append(s.quotes[:i:i], s.quotes[i+1:]...)
	s.save(ctx)

	log.Debugf("Deleted quote %d in guild %v", q.ID, q.GuildID)
	return DeleteResult{
		Status:  Deleted,
		Message: fmt.Sprintf("Quote ID %d has been deleted.", q.ID),
		Quote:   &q,
	}
}

// RandomSource is a source of random integers in [0, n). *rand.Rand from math/rand/v2 satisfies it.
type RandomSource interface {
	IntN(n int) int
}

// Random picks a quote uniformly at random.
func Random(src RandomSource, quotes []store.Quote) (store.Quote, bool) {
	if len(quotes) == 0 {
		return store.Quote{}, false
	}
	return quotes[src.IntN(len(quotes))], true
}

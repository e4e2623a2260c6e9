package db

import (
	"context"

	"emperror.dev/errors"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/starshine-sys/quotebot/store"
)

var _ store.Storage = (*DB)(nil)

// insertBatchSize keeps a single insert well under postgres's limit of 65535 parameters.
const insertBatchSize = 1000

var quoteColumns = []string{
	"id", "text", "quoter_name", "quoter_id", "adder_tag", "adder_id",
	"timestamp", "guild_id", "original_message_id", "channel_id", "context",
}

// Load returns every quote, ordered by ID.
// An empty table is not an error: the table is created by migrations, so there is always "stored data".
func (db *DB) Load(ctx context.Context) (quotes []store.Quote, err error) {
	sql, args, err := sq.Select(quoteColumns...).From("quotes").OrderBy("id").ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "building sql")
	}

	err = pgxscan.Select(ctx, db.Pool, &quotes, sql, args...)
	if err != nil {
		return nil, errors.Wrap(err, "executing query")
	}
	return quotes, nil
}

// SaveAll makes the quotes table match the given quotes, in a single transaction.
// Quotes are never edited, so only rows that were deleted or added are touched.
func (db *DB) SaveAll(ctx context.Context, quotes []store.Quote) error {
	ids := make([]int64, 0, len(quotes))
	for _, q := range quotes {
		ids = append(ids, q.ID)
	}

	del, delArgs, err := sq.Delete("quotes").Where("NOT (id = ANY(?))", ids).ToSql()
	if err != nil {
		return errors.Wrap(err, "building sql")
	}

	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return errors.Wrap(err, "beginning transaction")
	}

	_, err = tx.Exec(ctx, del, delArgs...)
	if err != nil {
		_ = tx.Rollback(ctx)
		return errors.Wrap(err, "deleting quotes")
	}

	for start := 0; start < len(quotes); start += insertBatchSize {
		end := min(start+insertBatchSize, len(quotes))

		insert := sq.Insert("quotes").Columns(quoteColumns...)
		for _, q := range quotes[start:end] {
			insert = insert.Values(
				q.ID, q.Text, q.QuoterName, q.QuoterID, q.AdderTag, q.AdderID,
				q.Timestamp, q.GuildID, q.OriginalMessageID, q.ChannelID, q.Context,
			)
		}

		sql, args, err := insert.Suffix("ON CONFLICT (id) DO NOTHING").ToSql()
		if err != nil {
			_ = tx.Rollback(ctx)
			return errors.Wrap(err, "building sql")
		}

		_, err = tx.Exec(ctx, sql, args...)
		if err != nil {
			_ = tx.Rollback(ctx)
			return errors.Wrap(err, "inserting quotes")
		}
	}

	err = tx.Commit(ctx)
	if err != nil {
		return errors.Wrap(err, "committing transaction")
	}
	return nil
}

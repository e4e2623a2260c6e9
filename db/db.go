package db

import (
	"context"
	"database/sql"
	"embed"

	"emperror.dev/errors"
	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/starshine-sys/quotebot/common/log"

	migrate "github.com/rubenv/sql-migrate"

	// pgx driver for migrations
	_ "github.com/jackc/pgx/v5/stdlib"
)

// sq is a squirrel builder for postgres
var sq = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Pool is the subset of *pgxpool.Pool used by DB.
type Pool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Close()
}

var _ Pool = (*pgxpool.Pool)(nil)

type DB struct {
	Pool Pool
}

// New connects to the database. If migrate is true, migrations are run first.
func New(ctx context.Context, url string, migrate bool) (*DB, error) {
	if migrate {
		err := RunMigrations(url)
		if err != nil {
			return nil, errors.Wrap(err, "running migrations")
		}
	}

	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, errors.Wrap(err, "connecting to postgres")
	}

	err = pool.Ping(ctx)
	if err != nil {
		pool.Close()
		return nil, errors.Wrap(err, "pinging postgres")
	}

	return &DB{Pool: pool}, nil
}

// NewWithPool wraps an existing connection pool.
func NewWithPool(pool Pool) *DB {
	return &DB{Pool: pool}
}

func (db *DB) Close() error {
	db.Pool.Close()
	return nil
}

//go:embed migrations
var fs embed.FS

// RunMigrations runs all of the migrations in migrations/.
func RunMigrations(url string) (err error) {
	db, err := sql.Open("pgx", url)
	if err != nil {
		return errors.Wrap(err, "opening database")
	}

	// we close this because we end up using pgx's native driver for all other queries.
	defer db.Close()

	err = db.Ping()
	if err != nil {
		return errors.Wrap(err, "pinging database")
	}

	// set up migrations from the embedded filesystem
	migrations := &migrate.EmbedFileSystemMigrationSource{
		FileSystem: fs,
		Root:       "migrations",
	}

	migrate.SetTable("migration_history")

	n, err := migrate.Exec(db, "postgres", migrations, migrate.Up)
	if err != nil {
		return errors.Wrap(err, "running migrations")
	}

	if n != 0 {
		log.Debugf("Performed %v migrations!", n)
	}
	return nil
}

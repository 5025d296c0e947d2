package pg

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// Migrations locates goose SQL files inside a filesystem, typically an
// embed.FS owned by the package that defines the schema.
type Migrations struct {
	FS    fs.FS
	Dir   string
	Table string // goose version table, goose default when empty
}

// goose keeps its configuration in package globals.
var gooseMu sync.Mutex

// Migrate applies every pending migration in m.
func Migrate(ctx context.Context, pool *pgxpool.Pool, m Migrations, log *slog.Logger) error {
	if m.FS == nil || m.Dir == "" {
		return errors.Join(ErrFailedToApplyMigrations, ErrMigrationPathNotProvided)
	}
	if _, err := fs.Stat(m.FS, m.Dir); err != nil {
		return errors.Join(ErrMigrationsDirNotFound, err)
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	db := stdlib.OpenDBFromPool(pool)
	defer func() {
		if err := db.Close(); err != nil {
			log.ErrorContext(ctx, "failed to close migration connection", "error", err)
		}
	}()

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(m.FS)
	defer goose.SetBaseFS(nil)
	goose.SetLogger(slogAdapter{log: log, ctx: ctx})
	if m.Table != "" {
		goose.SetTableName(m.Table)
	}

	if err := goose.SetDialect("postgres"); err != nil {
		return errors.Join(ErrFailedToApplyMigrations, err)
	}
	if err := goose.UpContext(ctx, db, m.Dir); err != nil {
		return errors.Join(ErrFailedToApplyMigrations, err)
	}
	return nil
}

// slogAdapter routes goose's printf logging through slog.
type slogAdapter struct {
	log *slog.Logger
	ctx context.Context
}

func (a slogAdapter) Fatalf(format string, v ...any) {
	a.log.ErrorContext(a.ctx, fmt.Sprintf(format, v...))
}

func (a slogAdapter) Printf(format string, v ...any) {
	a.log.InfoContext(a.ctx, fmt.Sprintf(format, v...))
}

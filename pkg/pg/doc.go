// Package pg bootstraps PostgreSQL access on top of pgx/v5.
//
// Connect opens a *pgxpool.Pool from Config with retries. Migrate runs goose
// migrations read from an fs.FS, so schema files can be embedded next to the
// code that owns them. Healthcheck returns a ping closure for readiness
// probes, and IsDuplicateKeyError classifies unique violations.
//
//	var cfg pg.Config
//	config.MustLoad(&cfg)
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer pool.Close()
//
//	if err := ledger.Migrate(ctx, pool, cfg.MigrationsTable, log); err != nil {
//	    return err
//	}
package pg

// Package pg wires the platform's core PostgreSQL store: a pgx/v5 connection
// pool with retrying startup, goose/v3 schema migrations, a health-check
// closure and error classification helpers shared by the store packages.
//
// Only the core store (tenant directory, licenses, permissions) goes through
// this package. Per-tenant databases are opened lazily by pkg/connpool from
// the descriptor stored on each tenant record.
//
// Typical startup:
//
//	cfg := config.MustLoad[pg.Config]()
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//	    ...
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, slog.Default()); err != nil {
//	    ...
//	}
package pg

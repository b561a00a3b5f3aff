package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/aussiebroadwan/storefront/internal/auth/store"
	"github.com/aussiebroadwan/storefront/internal/auth/store/drivers/postgres"
	"github.com/aussiebroadwan/storefront/internal/auth/store/drivers/sqlite"
)

// OpenStore connects to the configured driver. It does not migrate.
func OpenStore(ctx context.Context, cfg Config) (store.Store, error) {
	switch cfg.DatabaseDriver {
	case DriverPostgres:
		return postgres.NewStore(ctx, cfg.DatabaseURL)
	case DriverSQLite, "":
		return sqlite.NewStore(sqliteDSN(cfg.DatabaseFile))
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.DatabaseDriver)
	}
}

// sqliteDSN turns a plain path into a file DSN with a busy timeout and WAL.
// Anything that already looks like a DSN is passed through.
func sqliteDSN(path string) string {
	if strings.HasPrefix(path, "file:") || strings.Contains(path, "?") || path == ":memory:" {
		return path
	}
	return fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)
}

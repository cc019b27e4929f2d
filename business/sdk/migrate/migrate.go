// Package migrate contains the database schema, migrations and seeding data.
package migrate

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jcpaschoal/partner-portal/business/sdk/sqldb"
	"github.com/jcpaschoal/partner-portal/foundation/logger"
	"github.com/jmoiron/sqlx"
)

var (
	//go:embed sql/migrate.sql
	migrateDoc string
)

// Migrate attempts to bring the database up to date with the schema. Every
// statement in the script is idempotent.
func Migrate(ctx context.Context, log *logger.Logger, db *sqlx.DB) error {
	if err := sqldb.StatusCheck(ctx, db); err != nil {
		return fmt.Errorf("status check database: %w", err)
	}

	if err := sqldb.ExecContext(ctx, log, db, migrateDoc); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	return nil
}

//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"redemption-service/internal/domain/redeemable"
	"redemption-service/internal/infra/repository"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

func CreateCode(t *testing.T, db DBLike, code *redeemable.Code) *redeemable.Code {
	t.Helper()

	require.NoError(t, repository.NewCodeRepository(db).Create(context.Background(), code))
	return code
}

func CurrentUses(t *testing.T, db DBLike, code string) int64 {
	t.Helper()

	var uses int64
	err := db.QueryRow(context.Background(), "SELECT current_uses FROM redeemable_codes WHERE code = $1", code).Scan(&uses)
	require.NoError(t, err)
	return uses
}

func CountEntries(t *testing.T, db DBLike, code, status string) int64 {
	t.Helper()

	var n int64
	err := db.QueryRow(context.Background(), `
		SELECT count(*) FROM redemption_ledger l
		JOIN redeemable_codes c ON c.id = l.code_id
		WHERE c.code = $1 AND l.status = $2`, code, status).Scan(&n)
	require.NoError(t, err)
	return n
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	_, err := pool.Exec(ctx, sqlAny.(string))
	return err
}

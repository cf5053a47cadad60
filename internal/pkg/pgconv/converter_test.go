//go:build unit

package pgconv_test

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"redemption-service/internal/pkg/pgconv"
	"redemption-service/internal/pkg/ptr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
)

func TestNullableColumns(t *testing.T) {
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	id := uuid.New()

	t.Run("absent values map to NULL", func(t *testing.T) {
		assert.False(t, pgconv.TimePtrToPgtype(nil).Valid)
		assert.False(t, pgconv.Int64PtrToPgtype(nil).Valid)
		assert.Nil(t, pgconv.UUIDPtrFromPgtype(pgtype.UUID{}))
		assert.Nil(t, ptr.Int64FromPgtype(pgtype.Int8{}))
		assert.Nil(t, ptr.TimeFromPgtype(pgtype.Timestamptz{}))
	})

	t.Run("present values survive the column", func(t *testing.T) {
		assert.Equal(t, &id, pgconv.UUIDPtrFromPgtype(pgconv.UUIDToPgtype(id)))
		assert.Equal(t, ptr.Of(int64(5000)), ptr.Int64FromPgtype(pgconv.Int64PtrToPgtype(ptr.Of(int64(5000)))))
		assert.Equal(t, &at, ptr.TimeFromPgtype(pgconv.TimePtrToPgtype(&at)))
		assert.Equal(t, at, pgconv.TimeFromPgtype(pgconv.TimeToPgtype(at)))
		assert.Equal(t, pgtype.Text{String: "SAVE10", Valid: true}, pgconv.StringToPgtype("SAVE10"))
	})
}

func TestIsNoRows(t *testing.T) {
	assert.True(t, pgconv.IsNoRows(pgx.ErrNoRows))
	assert.True(t, pgconv.IsNoRows(fmt.Errorf("find code: %w", sql.ErrNoRows)))
	assert.False(t, pgconv.IsNoRows(errors.New("boom")))
}

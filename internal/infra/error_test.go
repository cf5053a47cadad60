//go:build unit

package infra_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"redemption-service/internal/infra"
	"redemption-service/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestWrapRepoErr(t *testing.T) {
	testCases := []struct {
		name            string
		err             error
		kind            []infra.RepositoryErrorKind
		expectKind      infra.RepositoryErrorKind
		expectRetryable bool
	}{
		{
			name:       "unique violation",
			err:        &pgconn.PgError{Code: "23505", ConstraintName: "redeemable_codes_code_key"},
			expectKind: infra.KindDuplicateKey,
		},
		{
			name:       "check violation",
			err:        &pgconn.PgError{Code: "23514"},
			expectKind: infra.KindConstraintViolated,
		},
		{
			name:       "serialization failure",
			err:        fmt.Errorf("commit: %w", &pgconn.PgError{Code: "40001"}),
			expectKind: infra.KindConflict,
		},
		{
			name:            "too many connections",
			err:             &pgconn.PgError{Code: "53300"},
			expectKind:      infra.KindUnavailable,
			expectRetryable: true,
		},
		{
			name:            "deadline exceeded",
			err:             context.DeadlineExceeded,
			expectKind:      infra.KindUnavailable,
			expectRetryable: true,
		},
		{
			name:       "unknown error",
			err:        errors.New("boom"),
			expectKind: infra.KindDBFailure,
		},
		{
			name:       "explicit kind wins",
			err:        errors.New("no rows"),
			kind:       []infra.RepositoryErrorKind{infra.KindNotFound},
			expectKind: infra.KindNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			wrapped := infra.WrapRepoErr("op", tc.err, tc.kind...)

			assert.True(t, infra.IsKind(wrapped, tc.expectKind), "got %v", wrapped)
			assert.Equal(t, tc.expectRetryable, errs.Is(wrapped, errs.ErrStorageUnavailable))
			assert.ErrorIs(t, wrapped, tc.err)
		})
	}
}

func TestPgErrorHelpers(t *testing.T) {
	err := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "redemption_ledger_one_referral_per_identity"})

	assert.Equal(t, "23505", infra.PgErrorCode(err))
	assert.Equal(t, "redemption_ledger_one_referral_per_identity", infra.PgConstraint(err))
	assert.Empty(t, infra.PgErrorCode(errors.New("plain")))
}

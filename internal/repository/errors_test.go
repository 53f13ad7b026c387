package repository_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"service-lastmile/internal/repository"
)

func TestIsDuplicate(t *testing.T) {
	t.Parallel()

	dup := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})
	require.True(t, repository.IsDuplicate(dup))
	require.False(t, repository.IsDuplicate(&pgconn.PgError{Code: "23503"}))
	require.False(t, repository.IsDuplicate(errors.New("boom")))
}

func TestIsNotFound(t *testing.T) {
	t.Parallel()

	require.True(t, repository.IsNotFound(fmt.Errorf("scan: %w", pgx.ErrNoRows)))
	require.False(t, repository.IsNotFound(errors.New("boom")))
}

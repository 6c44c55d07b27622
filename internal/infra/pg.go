package infra

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres error codes the engine cares about.
const (
	pgExclusionViolation = "23P01"
	pgUniqueViolation    = "23505"
)

// ClassifyPgErr maps a driver error to a repository error kind. The
// range-exclusion constraint on active bookings surfaces as CONFLICT;
// connection-class failures surface as UNAVAILABLE, the one kind callers may
// retry.
func ClassifyPgErr(err error) RepositoryErrorKind {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == pgExclusionViolation:
			return KindConflict
		case pgErr.Code == pgUniqueViolation:
			return KindDuplicateKey
		case strings.HasPrefix(pgErr.Code, "08"): // connection exception
			return KindUnavailable
		case pgErr.Code == "57P01" || pgErr.Code == "57P02" || pgErr.Code == "57P03":
			return KindUnavailable
		default:
			return KindDBFailure
		}
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return KindUnavailable
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return KindUnavailable
	}
	return KindDBFailure
}

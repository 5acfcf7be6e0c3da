package errors

import (
	stderrs "errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes a read-only reporting workload can hit
const (
	pgErrInvalidTextRepresentation = "22P02"
	pgErrDatetimeOverflow          = "22008"
	pgErrQueryCanceled             = "57014"
	pgErrAdminShutdown             = "57P01"
	pgErrCannotConnectNow          = "57P03"
	pgErrTooManyConnections        = "53300"
	pgErrSerializationFailure      = "40001"
)

// ExtractPgError returns the postgres error in err's chain
func ExtractPgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if stderrs.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

// IsSQLState reports whether err carries the given SQLSTATE
func IsSQLState(err error, code string) bool {
	pgErr, ok := ExtractPgError(err)
	return ok && pgErr.Code == code
}

// DBErrorCode classifies a postgres error; ok is false for anything else
func DBErrorCode(err error) (ErrorCode, bool) {
	pgErr, ok := ExtractPgError(err)
	if !ok {
		return ErrorCodeUnknown, false
	}
	switch pgErr.Code {
	case pgErrInvalidTextRepresentation, pgErrDatetimeOverflow:
		return ErrorCodeInvalidArgument, true
	case pgErrQueryCanceled:
		return ErrorCodeTimeout, true
	case pgErrAdminShutdown, pgErrCannotConnectNow, pgErrTooManyConnections, pgErrSerializationFailure:
		return ErrorCodeUnavailable, true
	}
	return ErrorCodeDB, true
}

// Retryable reports whether a database error is transient
func Retryable(err error) bool {
	c, ok := DBErrorCode(err)
	return ok && c == ErrorCodeUnavailable
}

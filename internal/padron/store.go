package padron

import (
	"context"
	"errors"
)

// Sentinel errors returned by Store implementations. Business outcomes are
// distinguished from infrastructure faults so callers can branch on them
// with errors.Is.
var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateEmail indicates an account with the same normalized
	// email already exists.
	ErrDuplicateEmail = errors.New("email already registered")
)

// Store is the persistence boundary for accounts, registry records and the
// member directory. The PostgreSQL implementation lives in the store
// subpackage; an in-memory implementation backs the tests.
type Store interface {
	// InsertAccount persists a new account and returns its assigned id.
	// Returns ErrDuplicateEmail when the email is already taken.
	InsertAccount(ctx context.Context, a Account) (int64, error)

	// FindAccountByEmail returns the account with the given (normalized)
	// email, or ErrNotFound.
	FindAccountByEmail(ctx context.Context, email string) (Account, error)

	// FindAccountByID returns the account with the given id, or ErrNotFound.
	FindAccountByID(ctx context.Context, id int64) (Account, error)

	// InsertRecords persists the batch in a single transaction and returns
	// the number of rows inserted. A transaction failure inserts nothing.
	InsertRecords(ctx context.Context, recs []Record) (int, error)

	// SearchRecords returns records where dni, nombre or apellido contains
	// q as a case-sensitive substring. Results follow ingest order up to
	// limit; no explicit ordering is applied.
	SearchRecords(ctx context.Context, q string, limit int) ([]Record, error)

	// InsertAfiliados persists the batch in a single transaction and
	// returns the number of rows inserted.
	InsertAfiliados(ctx context.Context, afs []Afiliado) (int, error)

	// SearchAfiliados returns directory entries where any of the five text
	// columns contains q as a case-sensitive substring, newest first
	// (descending id), truncated to limit.
	SearchAfiliados(ctx context.Context, q string, limit int) ([]Afiliado, error)
}

// Package store provides the PostgreSQL persistence layer for the registry,
// plus an in-memory implementation used by tests.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"padron/internal/padron"
)

// Postgres implements padron.Store on a pgx connection pool. Every method
// acquires a pooled connection for the duration of the call and releases it
// on all exit paths.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres creates a Postgres store.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

func (s *Postgres) InsertAccount(ctx context.Context, a padron.Account) (int64, error) {
	var id int64
	err := s.pool.QueryRow(ctx,
		`INSERT INTO accounts (email, password_hash, role)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		a.Email, a.PasswordHash, a.Role,
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return 0, padron.ErrDuplicateEmail
		}
		return 0, fmt.Errorf("insert account: %w", err)
	}
	return id, nil
}

func (s *Postgres) FindAccountByEmail(ctx context.Context, email string) (padron.Account, error) {
	return s.findAccount(ctx,
		`SELECT id, email, password_hash, role, created_at
		 FROM accounts WHERE email = $1`, email)
}

func (s *Postgres) FindAccountByID(ctx context.Context, id int64) (padron.Account, error) {
	return s.findAccount(ctx,
		`SELECT id, email, password_hash, role, created_at
		 FROM accounts WHERE id = $1`, id)
}

func (s *Postgres) findAccount(ctx context.Context, query string, arg any) (padron.Account, error) {
	var a padron.Account
	err := s.pool.QueryRow(ctx, query, arg).Scan(
		&a.ID, &a.Email, &a.PasswordHash, &a.Role, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return padron.Account{}, padron.ErrNotFound
		}
		return padron.Account{}, fmt.Errorf("find account: %w", err)
	}
	return a, nil
}

// InsertRecords copies the batch inside a single transaction. COPY is used
// instead of row-by-row INSERTs; either the whole batch commits or nothing
// does.
func (s *Postgres) InsertRecords(ctx context.Context, recs []padron.Record) (int, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) // No-op if already committed

	n, err := tx.CopyFrom(ctx,
		pgx.Identifier{"padron_records"},
		[]string{"dni", "nombre", "apellido", "domicilio", "localidad", "provincia", "extras"},
		pgx.CopyFromSlice(len(recs), func(i int) ([]any, error) {
			r := recs[i]
			return []any{
				r.DNI,
				toPgText(r.Nombre),
				toPgText(r.Apellido),
				toPgText(r.Domicilio),
				toPgText(r.Localidad),
				toPgText(r.Provincia),
				toPgText(r.Extras),
			}, nil
		}),
	)
	if err != nil {
		return 0, fmt.Errorf("copy padron_records: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return int(n), nil
}

// SearchRecords matches q as a case-sensitive substring across dni, nombre
// and apellido. No ORDER BY is applied: results arrive in ingest order up to
// the limit.
func (s *Postgres) SearchRecords(ctx context.Context, q string, limit int) ([]padron.Record, error) {
	pattern := "%" + q + "%"
	rows, err := s.pool.Query(ctx,
		`SELECT id, dni, nombre, apellido, domicilio, localidad, provincia, extras
		 FROM padron_records
		 WHERE dni LIKE $1 OR nombre LIKE $1 OR apellido LIKE $1
		 LIMIT $2`,
		pattern, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("search padron_records: %w", err)
	}
	defer rows.Close()

	var recs []padron.Record
	for rows.Next() {
		var r padron.Record
		var nombre, apellido, domicilio, localidad, provincia, extras pgtype.Text
		if err := rows.Scan(&r.ID, &r.DNI, &nombre, &apellido, &domicilio, &localidad, &provincia, &extras); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		r.Nombre = fromPgText(nombre)
		r.Apellido = fromPgText(apellido)
		r.Domicilio = fromPgText(domicilio)
		r.Localidad = fromPgText(localidad)
		r.Provincia = fromPgText(provincia)
		r.Extras = fromPgText(extras)
		recs = append(recs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("search padron_records: %w", err)
	}
	return recs, nil
}

func (s *Postgres) InsertAfiliados(ctx context.Context, afs []padron.Afiliado) (int, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	n, err := tx.CopyFrom(ctx,
		pgx.Identifier{"afiliados"},
		[]string{"legajo", "nombres", "apellidos", "delegacion", "seccional"},
		pgx.CopyFromSlice(len(afs), func(i int) ([]any, error) {
			a := afs[i]
			return []any{a.Legajo, a.Nombres, a.Apellidos, a.Delegacion, a.Seccional}, nil
		}),
	)
	if err != nil {
		return 0, fmt.Errorf("copy afiliados: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return int(n), nil
}

func (s *Postgres) SearchAfiliados(ctx context.Context, q string, limit int) ([]padron.Afiliado, error) {
	pattern := "%" + q + "%"
	rows, err := s.pool.Query(ctx,
		`SELECT id, legajo, nombres, apellidos, delegacion, seccional
		 FROM afiliados
		 WHERE legajo LIKE $1 OR nombres LIKE $1 OR apellidos LIKE $1
		    OR delegacion LIKE $1 OR seccional LIKE $1
		 ORDER BY id DESC
		 LIMIT $2`,
		pattern, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("search afiliados: %w", err)
	}
	defer rows.Close()

	var afs []padron.Afiliado
	for rows.Next() {
		var a padron.Afiliado
		if err := rows.Scan(&a.ID, &a.Legajo, &a.Nombres, &a.Apellidos, &a.Delegacion, &a.Seccional); err != nil {
			return nil, fmt.Errorf("scan afiliado: %w", err)
		}
		afs = append(afs, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("search afiliados: %w", err)
	}
	return afs, nil
}

func toPgText(p *string) pgtype.Text {
	if p == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *p, Valid: true}
}

func fromPgText(t pgtype.Text) *string {
	if !t.Valid {
		return nil
	}
	s := t.String
	return &s
}

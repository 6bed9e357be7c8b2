// Package padron provides the business logic for the membership registry:
// CSV normalization, batch ingest, and substring search.
// This package has no HTTP dependencies and can be used by any frontend.
package padron

import "time"

// Account roles.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Account is an application login. Emails are stored lowercase and trimmed,
// so the store's uniqueness constraint is effectively case-insensitive.
type Account struct {
	ID           int64
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}

// IsAdmin reports whether the account may use administrative surfaces.
func (a Account) IsAdmin() bool { return a.Role == RoleAdmin }

// Row is one normalized CSV data row as produced by Normalize. Field values
// are carried verbatim; trimming and empty-to-NULL conversion happen at
// ingest time.
type Row struct {
	DNI       string
	Nombre    string
	Apellido  string
	Domicilio string
	Localidad string
	Provincia string

	// Extras holds every CSV column that did not map to a recognized
	// field, keyed by its original header name.
	Extras map[string]string
}

// Record is a persisted registry entry. Optional fields are nil when the
// uploaded value was empty after trimming. The dni column carries no
// uniqueness constraint: repeated uploads append duplicate rows.
type Record struct {
	ID        int64
	DNI       string
	Nombre    *string
	Apellido  *string
	Domicilio *string
	Localidad *string
	Provincia *string

	// Extras is a JSON object of unrecognized upload columns, nil when
	// the row had none.
	Extras *string
}

// Afiliado is one member-directory entry. Text columns are stored uppercase,
// so the case-sensitive substring search behaves case-insensitively for this
// surface.
type Afiliado struct {
	ID         int64
	Legajo     string
	Nombres    string
	Apellidos  string
	Delegacion string
	Seccional  string
}

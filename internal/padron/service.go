package padron

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"padron/internal/metrics"
)

// Search limits.
const (
	// DefaultSearchLimit caps result sets when the caller does not choose.
	DefaultSearchLimit = 50

	// MaxSearchLimit is the inclusive upper bound for directory searches.
	MaxSearchLimit = 200
)

// ErrInvalidLimit is returned for a non-positive search limit.
var ErrInvalidLimit = errors.New("search limit must be positive")

// Service implements ingest and search over a Store.
type Service struct {
	store   Store
	metrics *metrics.Metrics
}

// NewService creates a Service. metrics may be nil.
func NewService(store Store, m *metrics.Metrics) *Service {
	return &Service{store: store, metrics: m}
}

// IngestPadron stages every row with a non-empty trimmed identifier and
// commits the batch in one transaction. Rows with an empty identifier are
// silently skipped: the returned count equals exactly the number of staged
// rows. Ingest is append-only; no deduplication against existing records
// occurs.
func (s *Service) IngestPadron(ctx context.Context, rows []Row) (int, error) {
	batch := make([]Record, 0, len(rows))
	for _, r := range rows {
		dni := strings.TrimSpace(r.DNI)
		if dni == "" {
			continue
		}
		batch = append(batch, Record{
			DNI:       dni,
			Nombre:    optional(r.Nombre),
			Apellido:  optional(r.Apellido),
			Domicilio: optional(r.Domicilio),
			Localidad: optional(r.Localidad),
			Provincia: optional(r.Provincia),
			Extras:    encodeExtras(r.Extras),
		})
	}
	if len(batch) == 0 {
		return 0, nil
	}

	n, err := s.store.InsertRecords(ctx, batch)
	if err != nil {
		return 0, fmt.Errorf("insert padron batch: %w", err)
	}
	s.metrics.AddIngestedRows("padron_records", n)
	return n, nil
}

// IngestAfiliados uppercases and trims directory entries, skips rows with an
// empty legajo, and commits the batch in one transaction.
func (s *Service) IngestAfiliados(ctx context.Context, afs []Afiliado) (int, error) {
	batch := make([]Afiliado, 0, len(afs))
	for _, a := range afs {
		legajo := upper(a.Legajo)
		if legajo == "" {
			continue
		}
		batch = append(batch, Afiliado{
			Legajo:     legajo,
			Nombres:    upper(a.Nombres),
			Apellidos:  upper(a.Apellidos),
			Delegacion: upper(a.Delegacion),
			Seccional:  upper(a.Seccional),
		})
	}
	if len(batch) == 0 {
		return 0, nil
	}

	n, err := s.store.InsertAfiliados(ctx, batch)
	if err != nil {
		return 0, fmt.Errorf("insert afiliados batch: %w", err)
	}
	s.metrics.AddIngestedRows("afiliados", n)
	return n, nil
}

// SearchPadron matches q against dni, nombre and apellido (any-field OR).
// An empty or whitespace-only query returns an empty result without touching
// the store. Results follow ingest order, truncated to the default limit.
func (s *Service) SearchPadron(ctx context.Context, q string) ([]Record, error) {
	q = upper(q)
	if q == "" {
		return nil, nil
	}
	recs, err := s.store.SearchRecords(ctx, q, DefaultSearchLimit)
	if err != nil {
		return nil, fmt.Errorf("search padron: %w", err)
	}
	s.metrics.IncSearch("padron")
	return recs, nil
}

// SearchAfiliados matches q against the five directory columns, newest
// first. The limit must be positive; values above MaxSearchLimit are clamped.
// An empty or whitespace-only query returns an empty result without touching
// the store.
func (s *Service) SearchAfiliados(ctx context.Context, q string, limit int) ([]Afiliado, error) {
	if limit < 1 {
		return nil, ErrInvalidLimit
	}
	if limit > MaxSearchLimit {
		limit = MaxSearchLimit
	}

	q = upper(q)
	if q == "" {
		return nil, nil
	}
	afs, err := s.store.SearchAfiliados(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("search afiliados: %w", err)
	}
	s.metrics.IncSearch("afiliados")
	return afs, nil
}

func upper(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// optional trims s and converts empty-after-trim to NULL rather than storing
// an empty string.
func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// encodeExtras serializes a non-empty extras bag to JSON; an empty bag is
// stored as NULL.
func encodeExtras(extras map[string]string) *string {
	if len(extras) == 0 {
		return nil
	}
	b, err := json.Marshal(extras)
	if err != nil {
		return nil
	}
	s := string(b)
	return &s
}

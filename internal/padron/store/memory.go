package store

import (
	"context"
	"strings"
	"sync"
	"time"

	"padron/internal/padron"
)

// Memory is an in-memory padron.Store. It keeps the handler and service
// tests free of a database while mirroring the PostgreSQL semantics:
// case-sensitive substring matching, ingest-order record search, and
// descending-id directory search.
type Memory struct {
	mu        sync.RWMutex
	accounts  []padron.Account
	records   []padron.Record
	afiliados []padron.Afiliado
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

func (s *Memory) InsertAccount(_ context.Context, a padron.Account) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.accounts {
		if existing.Email == a.Email {
			return 0, padron.ErrDuplicateEmail
		}
	}
	a.ID = int64(len(s.accounts) + 1)
	a.CreatedAt = time.Now()
	s.accounts = append(s.accounts, a)
	return a.ID, nil
}

func (s *Memory) FindAccountByEmail(_ context.Context, email string) (padron.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, a := range s.accounts {
		if a.Email == email {
			return a, nil
		}
	}
	return padron.Account{}, padron.ErrNotFound
}

func (s *Memory) FindAccountByID(_ context.Context, id int64) (padron.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, a := range s.accounts {
		if a.ID == id {
			return a, nil
		}
	}
	return padron.Account{}, padron.ErrNotFound
}

func (s *Memory) InsertRecords(_ context.Context, recs []padron.Record) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range recs {
		r.ID = int64(len(s.records) + 1)
		s.records = append(s.records, r)
	}
	return len(recs), nil
}

func (s *Memory) SearchRecords(_ context.Context, q string, limit int) ([]padron.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []padron.Record
	for _, r := range s.records {
		if len(out) >= limit {
			break
		}
		if strings.Contains(r.DNI, q) || containsPtr(r.Nombre, q) || containsPtr(r.Apellido, q) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *Memory) InsertAfiliados(_ context.Context, afs []padron.Afiliado) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range afs {
		a.ID = int64(len(s.afiliados) + 1)
		s.afiliados = append(s.afiliados, a)
	}
	return len(afs), nil
}

func (s *Memory) SearchAfiliados(_ context.Context, q string, limit int) ([]padron.Afiliado, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []padron.Afiliado
	for i := len(s.afiliados) - 1; i >= 0 && len(out) < limit; i-- {
		a := s.afiliados[i]
		if strings.Contains(a.Legajo, q) || strings.Contains(a.Nombres, q) ||
			strings.Contains(a.Apellidos, q) || strings.Contains(a.Delegacion, q) ||
			strings.Contains(a.Seccional, q) {
			out = append(out, a)
		}
	}
	return out, nil
}

func containsPtr(p *string, q string) bool {
	return p != nil && strings.Contains(*p, q)
}

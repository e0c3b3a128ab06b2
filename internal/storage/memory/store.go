// Package memory is a process-local adapter with the same ordering and
// filtering contract as the SQL adapters. It backs tests and DB_DRIVER=memory.
package memory

import (
	"errors"
	"sync"

	"polimanage/internal/domain"
	"polimanage/internal/storage"
)

var errNoID = errors.New("memory: record has no integer id")

// Store keeps raw records; rows are mapped on every read like the SQL adapters do.
type Store struct {
	mu     sync.RWMutex
	pistas map[int64]storage.Record
	clubs  map[int64]storage.Record
}

func NewStore() *Store {
	return &Store{
		pistas: make(map[int64]storage.Record),
		clubs:  make(map[int64]storage.Record),
	}
}

func (s *Store) PutPistaRecord(rec storage.Record) error {
	return s.put(s.pistas, rec)
}

func (s *Store) PutClubRecord(rec storage.Record) error {
	return s.put(s.clubs, rec)
}

func (s *Store) SeedPistas(ps ...domain.Pista) {
	for _, p := range ps {
		_ = s.put(s.pistas, storage.PistaRecord(p))
	}
}

func (s *Store) SeedClubs(cs ...domain.Club) {
	for _, c := range cs {
		_ = s.put(s.clubs, storage.ClubRecord(c))
	}
}

func (s *Store) put(table map[int64]storage.Record, rec storage.Record) error {
	id, ok := rec.ID()
	if !ok {
		return errNoID
	}
	s.mu.Lock()
	table[id] = rec.Clone()
	s.mu.Unlock()
	return nil
}

func (s *Store) snapshot(table map[int64]storage.Record) []storage.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]storage.Record, 0, len(table))
	for _, rec := range table {
		out = append(out, rec.Clone())
	}
	return out
}

func (s *Store) row(table map[int64]storage.Record, id int64) (storage.Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := table[id]
	if !ok {
		return nil, false
	}
	return rec.Clone(), true
}

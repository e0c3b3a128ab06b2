package memory

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"polimanage/internal/storage"
)

// seedFile is the fixture layout: rows keyed by column name, as a SQL
// adapter would return them.
type seedFile struct {
	Pistas []storage.Record `json:"pistas"`
	Clubs  []storage.Record `json:"clubs"`
}

// LoadSeed reads a JSON fixture into the store. Numbers stay json.Number so
// prices keep their exact decimal text.
func (s *Store) LoadSeed(r io.Reader) error {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var f seedFile
	if err := dec.Decode(&f); err != nil {
		return fmt.Errorf("memory: decode seed: %w", err)
	}
	for i, rec := range f.Pistas {
		if err := s.PutPistaRecord(rec); err != nil {
			return fmt.Errorf("memory: pistas[%d]: %w", i, err)
		}
	}
	for i, rec := range f.Clubs {
		if err := s.PutClubRecord(rec); err != nil {
			return fmt.Errorf("memory: clubs[%d]: %w", i, err)
		}
	}
	return nil
}

// LoadSeedFile opens path and loads it with LoadSeed.
func (s *Store) LoadSeedFile(path string) error {
	fh, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("memory: open seed: %w", err)
	}
	defer fh.Close()
	return s.LoadSeed(fh)
}

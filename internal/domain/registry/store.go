package registry

import (
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/ezkzr/kzr-mock-server/internal/platform/storage"
	"github.com/ezkzr/kzr-mock-server/pkg/dateonly"
)

const (
	providersFile = "providers.json"
	workersFile   = "workers.json"
)

// Store holds the provider and worker directories. Both collections are
// read-heavy; reklamace submissions are acknowledged without mutating them.
type Store struct {
	mu        sync.RWMutex
	providers []Provider
	workers   []Worker

	logger zerolog.Logger
	dir    string
}

func NewStore(logger zerolog.Logger, dir string) *Store {
	s := &Store{logger: logger, dir: dir}
	s.providers = storage.LoadList(logger, dir, providersFile, seedProviders)
	s.workers = storage.LoadList(logger, dir, workersFile, seedWorkers)
	return s
}

func seedProviders() []Provider {
	return []Provider{
		{Ico: "12345678", Nazev: "Nemocnice Alfa a.s."},
		{Ico: "87654321", Nazev: "Poliklinika Beta s.r.o."},
	}
}

func seedWorkers() []Worker {
	return []Worker{
		{KrzpId: 1001, Jmeno: "Jan", Prijmeni: "Novák", DatumNarozeni: dateonly.New(1980, time.May, 1), ZamestnavatelIco: "12345678"},
		{KrzpId: 1002, Jmeno: "Eva", Prijmeni: "Svobodová", DatumNarozeni: dateonly.New(1985, time.July, 10), ZamestnavatelIco: "87654321"},
	}
}

func (s *Store) ProviderByICO(ico string) (Provider, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.providers {
		if p.Ico == ico {
			return p, true
		}
	}
	return Provider{}, false
}

func (s *Store) WorkerByID(id int64) (Worker, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, w := range s.workers {
		if w.KrzpId == id {
			return w, true
		}
	}
	return Worker{}, false
}

// WorkersByPerson matches name parts case-insensitively and the birth date
// exactly.
func (s *Store) WorkersByPerson(jmeno, prijmeni string, narozeni dateonly.Date) []Worker {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Worker
	for _, w := range s.workers {
		if strings.EqualFold(w.Jmeno, jmeno) && strings.EqualFold(w.Prijmeni, prijmeni) && w.DatumNarozeni.Equal(narozeni) {
			out = append(out, w)
		}
	}
	return out
}

func (s *Store) WorkersByEmployer(ico string) []Worker {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Worker
	for _, w := range s.workers {
		if w.ZamestnavatelIco == ico {
			out = append(out, w)
		}
	}
	return out
}

// Providers returns a copy of the provider directory.
func (s *Store) Providers() []Provider {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Provider, len(s.providers))
	copy(out, s.providers)
	return out
}

// Workers returns a copy of the worker directory.
func (s *Store) Workers() []Worker {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Worker, len(s.workers))
	copy(out, s.workers)
	return out
}

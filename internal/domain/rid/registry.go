package rid

import (
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/ezkzr/kzr-mock-server/internal/platform/storage"
	"github.com/ezkzr/kzr-mock-server/pkg/dateonly"
)

const ridsFile = "rids.json"

// SeedRid is the permanent identifier of the default seed patient.
const SeedRid = "1000000014"

var (
	// ErrRidTaken is returned when an explicitly supplied RID collides with
	// an existing record.
	ErrRidTaken = errors.New("rid already exists")
	// ErrDridInvalid is returned when a promotion names an unknown DRID or
	// one that is no longer temporary.
	ErrDridInvalid = errors.New("drid missing or not temporary")
)

// Record is one entry in the identifier registry. Temporary DRID entries
// carry the DRID in Rid and flip IsTemporary off on promotion.
type Record struct {
	Rid           string        `json:"rid"`
	GivenName     string        `json:"givenName"`
	FamilyName    string        `json:"familyName"`
	DateOfBirth   dateonly.Date `json:"dateOfBirth"`
	Created       time.Time     `json:"created"`
	IsTemporary   bool          `json:"isTemporary"`
	PromotedToRid string        `json:"promotedToRid,omitempty"`
}

// Registry owns the identifier records. Generation and insertion run as one
// critical section so concurrent requests cannot commit the same value.
type Registry struct {
	mu      sync.RWMutex
	records []Record
	used    map[string]bool

	gen    *Generator
	logger zerolog.Logger
	dir    string
}

func NewRegistry(logger zerolog.Logger, dir string, gen *Generator) *Registry {
	r := &Registry{gen: gen, logger: logger, dir: dir}
	r.records = storage.LoadList(logger, dir, ridsFile, seedRecords)
	r.used = make(map[string]bool, len(r.records))
	for _, rec := range r.records {
		r.used[rec.Rid] = true
	}
	return r
}

func seedRecords() []Record {
	return []Record{{
		Rid:         SeedRid,
		GivenName:   "Karel",
		FamilyName:  "Test",
		DateOfBirth: dateonly.New(1975, 3, 14),
		Created:     time.Now().UTC(),
	}}
}

// GeneratePermanent issues a fresh RID and commits the record.
func (r *Registry) GeneratePermanent(givenName, familyName string, dob dateonly.Date) (Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rid, err := r.gen.Rid(r.isUsed)
	if err != nil {
		return Record{}, err
	}
	rec := Record{
		Rid:         rid,
		GivenName:   givenName,
		FamilyName:  familyName,
		DateOfBirth: dob,
		Created:     time.Now().UTC(),
	}
	r.commit(rec)
	return rec, nil
}

// GenerateTemporary issues a fresh DRID and commits an empty temporary record.
func (r *Registry) GenerateTemporary() (Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	drid, err := r.gen.Drid(r.isUsed)
	if err != nil {
		return Record{}, err
	}
	rec := Record{
		Rid:         drid,
		Created:     time.Now().UTC(),
		IsTemporary: true,
	}
	r.commit(rec)
	return rec, nil
}

// Register commits a patient record under either the supplied RID (which
// must be unused) or a freshly generated one, optionally promoting a DRID
// to the new permanent identifier. The whole sequence is atomic.
func (r *Registry) Register(explicitRid, drid, givenName, familyName string, dob dateonly.Date) (Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rid := explicitRid
	if rid == "" {
		var err error
		rid, err = r.gen.Rid(r.isUsed)
		if err != nil {
			return Record{}, err
		}
	} else if r.used[rid] {
		return Record{}, ErrRidTaken
	}

	if drid != "" {
		idx := -1
		for i := range r.records {
			if r.records[i].Rid == drid {
				idx = i
				break
			}
		}
		if idx < 0 || !r.records[idx].IsTemporary {
			return Record{}, ErrDridInvalid
		}
		r.records[idx].IsTemporary = false
		r.records[idx].PromotedToRid = rid
	}

	rec := Record{
		Rid:         rid,
		GivenName:   givenName,
		FamilyName:  familyName,
		DateOfBirth: dob,
		Created:     time.Now().UTC(),
	}
	r.commit(rec)
	return rec, nil
}

// Find returns the record stored under an identifier, RID or DRID alike.
func (r *Registry) Find(id string) (Record, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, rec := range r.records {
		if rec.Rid == id {
			return rec, true
		}
	}
	return Record{}, false
}

// commit appends and persists. Callers hold the write lock.
func (r *Registry) commit(rec Record) {
	r.records = append(r.records, rec)
	r.used[rec.Rid] = true
	storage.SaveList(r.logger, r.dir, ridsFile, r.records)
}

func (r *Registry) isUsed(id string) bool { return r.used[id] }

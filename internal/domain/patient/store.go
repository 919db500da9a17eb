package patient

import (
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/ezkzr/kzr-mock-server/internal/domain/rid"
	"github.com/ezkzr/kzr-mock-server/internal/platform/storage"
	"github.com/ezkzr/kzr-mock-server/pkg/dateonly"
)

const summariesFile = "ps.json"

// Store owns the patient summaries. Mutation and persist run under one lock.
type Store struct {
	mu        sync.RWMutex
	summaries []Summary

	logger zerolog.Logger
	dir    string
}

func NewStore(logger zerolog.Logger, dir string) *Store {
	s := &Store{logger: logger, dir: dir}
	s.summaries = storage.LoadList(logger, dir, summariesFile, seedSummaries)
	return s
}

func seedSummaries() []Summary {
	vaccinated := dateonly.New(2023, 10, 1)
	return []Summary{{
		Header: Header{
			Rid:         rid.SeedRid,
			GivenName:   "Karel",
			FamilyName:  "Test",
			DateOfBirth: dateonly.New(1975, 3, 14),
			Gender:      "M",
		},
		Body: Body{
			Allergies:    []Allergy{{Text: "Penicilin", CodeSystem: "SNOMED", Code: "294513009", Criticality: "low"}},
			Problems:     []Problem{{Text: "Hypertenze", CodeSystem: "ICD-10", Code: "I10"}},
			Medications:  []Medication{{Text: "Atorvastatin 20 mg", Dosage: "1-0-0", Route: "per os"}},
			Vaccinations: []Vaccination{{Text: "COVID-19", Date: &vaccinated}},
			Implants:     []Implant{{Text: "Stent koronární"}},
		},
	}}
}

// FindByRid returns the summary stored under a RID.
func (s *Store) FindByRid(patientRid string) (Summary, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sum := range s.summaries {
		if sum.Header.Rid == patientRid {
			return sum, true
		}
	}
	return Summary{}, false
}

// FindByPerson matches on case-insensitive names plus exact birth date.
func (s *Store) FindByPerson(jmeno, prijmeni string, datumNarozeni dateonly.Date) (Summary, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sum := range s.summaries {
		if strings.EqualFold(sum.Header.GivenName, jmeno) &&
			strings.EqualFold(sum.Header.FamilyName, prijmeni) &&
			sum.Header.DateOfBirth.Equal(datumNarozeni) {
			return sum, true
		}
	}
	return Summary{}, false
}

// Exists reports whether a patient record exists for a RID. The FHIR layer
// keys its not-found policy on this.
func (s *Store) Exists(patientRid string) bool {
	_, ok := s.FindByRid(patientRid)
	return ok
}

// Add appends a summary and rewrites the backing file.
func (s *Store) Add(sum Summary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.summaries = append(s.summaries, sum)
	storage.SaveList(s.logger, s.dir, summariesFile, s.summaries)
}

// All returns a copy of the summaries for read-only browsing.
func (s *Store) All() []Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Summary, len(s.summaries))
	copy(out, s.summaries)
	return out
}

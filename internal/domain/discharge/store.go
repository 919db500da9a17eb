package discharge

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/ezkzr/kzr-mock-server/internal/domain/rid"
	"github.com/ezkzr/kzr-mock-server/internal/platform/storage"
)

const reportsFile = "hdr.json"

type Store struct {
	mu      sync.RWMutex
	reports []Report

	logger zerolog.Logger
	dir    string
}

func NewStore(logger zerolog.Logger, dir string) *Store {
	s := &Store{logger: logger, dir: dir}
	s.reports = storage.LoadList(logger, dir, reportsFile, seedReports)
	return s
}

func seedReports() []Report {
	return []Report{{
		Header: Header{
			Rid:             rid.SeedRid,
			Discharge:       time.Now().UTC().AddDate(0, 0, -7),
			AttendingDoctor: "MUDr. Alfa",
			FacilityName:    "Nemocnice Alfa a.s.",
		},
		ReasonForAdmission:   "Bolesti na hrudi",
		Diagnoses:            []string{"I21.9 Akutní infarkt myokardu", "I10 Hypertenze"},
		Procedures:           []string{"Koronarografie", "PCI"},
		Course:               "Nezkomplikovaný průběh",
		DischargeMedications: []MedEntry{{Name: "ASA", Dosage: "100 mg 1-0-0"}},
		Recommendations:      "Kontrola Kardiologie 6 týdnů",
		FollowUp:             "PL do 3 dnů",
	}}
}

// FindByRid returns the first report matching a RID.
func (s *Store) FindByRid(patientRid string) (Report, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.reports {
		if r.Header.Rid == patientRid {
			return r, true
		}
	}
	return Report{}, false
}

// All returns a copy of the reports for read-only browsing.
func (s *Store) All() []Report {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Report, len(s.reports))
	copy(out, s.reports)
	return out
}

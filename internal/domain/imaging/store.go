package imaging

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ezkzr/kzr-mock-server/internal/domain/rid"
	"github.com/ezkzr/kzr-mock-server/internal/platform/metrics"
	"github.com/ezkzr/kzr-mock-server/internal/platform/storage"
)

const (
	reportsFile = "mi_reports.json"
	ordersFile  = "mi_orders.json"
)

type Store struct {
	mu      sync.RWMutex
	reports []Report
	orders  []Order

	logger zerolog.Logger
	dir    string
}

func NewStore(logger zerolog.Logger, dir string) *Store {
	s := &Store{logger: logger, dir: dir}
	s.reports = storage.LoadList(logger, dir, reportsFile, seedReports)
	s.orders = storage.LoadList(logger, dir, ordersFile, seedOrders)
	return s
}

func seedReports() []Report {
	return []Report{{
		Header: Header{
			Rid:          rid.SeedRid,
			Performed:    time.Now().UTC().AddDate(0, 0, -10),
			Modality:     "US",
			Performer:    "MUDr. Beta",
			FacilityName: "Poliklinika Beta s.r.o.",
		},
		Indication: "Kontrolní vyšetření",
		Findings:   "Bez patrné patologie.",
		Conclusion: "Nález v normě.",
	}}
}

func seedOrders() []Order {
	return []Order{{
		ID:                 uuid.New(),
		Rid:                rid.SeedRid,
		Created:            time.Now().UTC().AddDate(0, 0, -4),
		RequestedModality:  "CT",
		RequestedProcedure: "CT hrudníku",
		ClinicalInfo:       "Kontrola",
		RequesterIco:       "12345678",
		RequesterName:      "Nemocnice Alfa a.s.",
		Status:             "received",
	}}
}

func (s *Store) ReportsByRid(patientRid string) []Report {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Report
	for _, r := range s.reports {
		if r.Header.Rid == patientRid {
			out = append(out, r)
		}
	}
	return out
}

func (s *Store) AddReport(r Report) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports = append(s.reports, r)
	storage.SaveList(s.logger, s.dir, reportsFile, s.reports)
}

func (s *Store) AddOrder(o Order) Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	o.Status = "received"
	s.orders = append(s.orders, o)
	storage.SaveList(s.logger, s.dir, ordersFile, s.orders)
	metrics.RecordOrderCreated("imaging")
	return o
}

func (s *Store) OrderByID(id uuid.UUID) (Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.orders {
		if o.ID == id {
			return o, true
		}
	}
	return Order{}, false
}

// AllReports returns a copy of the reports for read-only browsing.
func (s *Store) AllReports() []Report {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Report, len(s.reports))
	copy(out, s.reports)
	return out
}

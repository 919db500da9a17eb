package lab

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ezkzr/kzr-mock-server/internal/domain/rid"
	"github.com/ezkzr/kzr-mock-server/internal/platform/metrics"
	"github.com/ezkzr/kzr-mock-server/internal/platform/storage"
)

const (
	reportsFile = "lab_reports.json"
	ordersFile  = "lab_orders.json"
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
			Rid:        rid.SeedRid,
			Issued:     time.Now().UTC().AddDate(0, 0, -2),
			Laboratory: "Lab Alfa",
			OrderID:    uuid.NewString(),
		},
		Results: []Result{{
			Code: "718-7", Text: "Hemoglobin", Value: "140", Unit: "g/L",
			ReferenceRange: "135-175", AbnormalFlag: "N",
		}},
	}}
}

func seedOrders() []Order {
	return []Order{{
		ID:            uuid.New(),
		Rid:           rid.SeedRid,
		Created:       time.Now().UTC().AddDate(0, 0, -3),
		Tests:         []string{"Glukóza", "Hb"},
		RequesterIco:  "12345678",
		RequesterName: "Nemocnice Alfa a.s.",
		Status:        "received",
	}}
}

// ReportsByRid returns every report stored under a RID.
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

// ReportsByOrder matches report header order ids case-insensitively.
func (s *Store) ReportsByOrder(orderID uuid.UUID) []Report {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Report
	for _, r := range s.reports {
		if strings.EqualFold(r.Header.OrderID, orderID.String()) {
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

// AddOrder assigns a fresh id when none is supplied, forces the received
// status and persists.
func (s *Store) AddOrder(o Order) Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	o.Status = "received"
	s.orders = append(s.orders, o)
	storage.SaveList(s.logger, s.dir, ordersFile, s.orders)
	metrics.RecordOrderCreated("lab")
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

// Orders returns a copy of the orders for read-only browsing.
func (s *Store) Orders() []Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Order, len(s.orders))
	copy(out, s.orders)
	return out
}

// AllReports returns a copy of the reports for read-only browsing.
func (s *Store) AllReports() []Report {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Report, len(s.reports))
	copy(out, s.reports)
	return out
}

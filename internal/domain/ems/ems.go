// Package ems owns the emergency-service run records and the /ems
// registry endpoints.
package ems

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ezkzr/kzr-mock-server/internal/domain/rid"
	"github.com/ezkzr/kzr-mock-server/internal/platform/storage"
	"github.com/ezkzr/kzr-mock-server/pkg/envelope"
)

const runsFile = "ems_runs.json"

type Vitals struct {
	Systolic    int     `json:"systolic,omitempty"`
	Diastolic   int     `json:"diastolic,omitempty"`
	HeartRate   int     `json:"heartRate,omitempty"`
	Spo2        int     `json:"spo2,omitempty"`
	Temperature float64 `json:"temperature,omitempty"`
}

type Run struct {
	ID            uuid.UUID `json:"id"`
	Rid           string    `json:"rid"`
	Started       time.Time `json:"started"`
	Reason        string    `json:"reason"`
	Vitals        *Vitals   `json:"vitals,omitempty"`
	Interventions []string  `json:"interventions,omitempty"`
	Outcome       string    `json:"outcome,omitempty"`
	Destination   string    `json:"destination,omitempty"`
}

type Store struct {
	mu   sync.RWMutex
	runs []Run

	logger zerolog.Logger
	dir    string
}

func NewStore(logger zerolog.Logger, dir string) *Store {
	s := &Store{logger: logger, dir: dir}
	s.runs = storage.LoadList(logger, dir, runsFile, seedRuns)
	return s
}

func seedRuns() []Run {
	return []Run{{
		ID:            uuid.New(),
		Rid:           rid.SeedRid,
		Started:       time.Now().UTC().AddDate(0, 0, -15),
		Reason:        "Bolest na hrudi",
		Vitals:        &Vitals{Systolic: 150, Diastolic: 90, HeartRate: 100, Spo2: 95, Temperature: 36.8},
		Interventions: []string{"ASA 500 mg", "Monitoring"},
		Outcome:       "Převoz",
		Destination:   "Nemocnice Alfa a.s.",
	}}
}

func (s *Store) RunsByRid(patientRid string) []Run {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Run
	for _, r := range s.runs {
		if r.Rid == patientRid {
			out = append(out, r)
		}
	}
	return out
}

// AddRun assigns a fresh id when none is supplied and persists.
func (s *Store) AddRun(r Run) Run {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	s.runs = append(s.runs, r)
	storage.SaveList(s.logger, s.dir, runsFile, s.runs)
	return r
}

// All returns a copy of the runs for read-only browsing.
func (s *Store) All() []Run {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Run, len(s.runs))
	copy(out, s.runs)
	return out
}

type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) RegisterRoutes(ems *echo.Group) {
	ems.GET("/rid/:zadostId", h.GetByRid)
	ems.POST("/record/:zadostId", h.CreateRecord)
}

func (h *Handler) GetByRid(c echo.Context) error {
	zadostID := envelope.ZadostID(c)
	errs := envelope.ValidateCommon(zadostID, c.QueryParam("ucel"), c.QueryParam("datum"))
	patientRid := c.QueryParam("rid")
	if patientRid == "" {
		errs = append(errs, "rid je povinné.")
	}
	if len(errs) > 0 {
		return envelope.Bad(c, zadostID, envelope.SubStavValidace, errs)
	}

	runs := h.store.RunsByRid(patientRid)
	if len(runs) == 0 {
		return envelope.NotFound(c, zadostID, fmt.Sprintf("Záznam o výjezdu pro RID %s nenalezen.", patientRid))
	}
	return envelope.OK(c, zadostID, "EMS", runs)
}

type createRecordRequest struct {
	ZadostInfo *envelope.Dotaz `json:"zadostInfo"`
	ZadostData *Run            `json:"zadostData"`
}

func (h *Handler) CreateRecord(c echo.Context) error {
	zadostID := envelope.ZadostID(c)
	var body createRecordRequest
	if err := c.Bind(&body); err != nil {
		return envelope.Bad(c, zadostID, envelope.SubStavValidace, []string{"tělo požadavku je neplatné."})
	}

	errs := envelope.ValidateInfo(zadostID, body.ZadostInfo)
	if body.ZadostData == nil {
		errs = append(errs, "ZadostData je povinné.")
	} else {
		if strings.TrimSpace(body.ZadostData.Rid) == "" {
			errs = append(errs, "Rid je povinné.")
		}
		if body.ZadostData.Started.IsZero() {
			errs = append(errs, "Started je povinné.")
		}
	}
	if len(errs) > 0 {
		return envelope.Bad(c, zadostID, envelope.SubStavValidace, errs)
	}

	run := h.store.AddRun(*body.ZadostData)
	return envelope.Created(c, zadostID, "EMS Record přijat", run)
}

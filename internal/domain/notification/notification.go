// Package notification implements the subscription endpoints shared by the
// KRPZS and KRZP registries.
package notification

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ezkzr/kzr-mock-server/internal/platform/metrics"
	"github.com/ezkzr/kzr-mock-server/internal/platform/storage"
	"github.com/ezkzr/kzr-mock-server/pkg/envelope"
)

const (
	notificationsFile = "notifications.json"

	StavAktivni = "aktivni"
	StavZruseno = "zruseno"
)

// Notification is a registered change subscription.
type Notification struct {
	ID        uuid.UUID `json:"id"`
	System    string    `json:"system"`
	Typ       string    `json:"typ"`
	Kriteria  string    `json:"kriteria,omitempty"`
	Kanal     string    `json:"kanal"`
	Vytvoreno time.Time `json:"vytvoreno"`
	Stav      string    `json:"stav"`
}

// Request is the subscription payload inside zadostData.
type Request struct {
	System   string `json:"system"`
	Typ      string `json:"typ"`
	Kriteria string `json:"kriteria,omitempty"`
	Kanal    string `json:"kanal,omitempty"`
}

type createRequest struct {
	ZadostInfo *envelope.Dotaz `json:"zadostInfo"`
	ZadostData *Request        `json:"zadostData"`
}

// Store keeps subscriptions keyed by id and persists them as a JSON array.
type Store struct {
	mu            sync.RWMutex
	notifications map[uuid.UUID]Notification

	logger zerolog.Logger
	dir    string
}

func NewStore(logger zerolog.Logger, dir string) *Store {
	s := &Store{
		notifications: make(map[uuid.UUID]Notification),
		logger:        logger,
		dir:           dir,
	}
	for _, n := range storage.LoadList(logger, dir, notificationsFile, func() []Notification { return []Notification{} }) {
		s.notifications[n.ID] = n
	}
	return s
}

func (s *Store) Create(req Request) Notification {
	kanal := req.Kanal
	if kanal == "" {
		kanal = "internal"
	}
	n := Notification{
		ID:        uuid.New(),
		System:    req.System,
		Typ:       req.Typ,
		Kriteria:  req.Kriteria,
		Kanal:     kanal,
		Vytvoreno: time.Now().UTC(),
		Stav:      StavAktivni,
	}

	s.mu.Lock()
	s.notifications[n.ID] = n
	s.persist()
	s.mu.Unlock()

	metrics.RecordNotificationCreated()
	return n
}

// Cancel marks a subscription zruseno. The record stays listed so callers can
// audit past registrations.
func (s *Store) Cancel(id uuid.UUID) (Notification, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.notifications[id]
	if !ok {
		return Notification{}, false
	}
	n.Stav = StavZruseno
	s.notifications[id] = n
	s.persist()
	return n, true
}

func (s *Store) Find(id uuid.UUID) (Notification, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, ok := s.notifications[id]
	return n, ok
}

// BySystem filters case-insensitively; an empty system returns everything.
func (s *Store) BySystem(system string) []Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		if system == "" || strings.EqualFold(n.System, system) {
			out = append(out, n)
		}
	}
	return out
}

// persist must run under the write lock.
func (s *Store) persist() {
	list := make([]Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		list = append(list, n)
	}
	storage.SaveList(s.logger, s.dir, notificationsFile, list)
}

type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

// RegisterRoutes mounts the subscription routes on a registry group. Both
// /krpzs and /krzp carry the same routes over the same store.
func (h *Handler) RegisterRoutes(group *echo.Group) {
	group.POST("/notifikace/:zadostId", h.Create)
	group.PUT("/notifikace/:zadostId/:id", h.Cancel)
	group.GET("/notifikace/:zadostId", h.Search)
}

func (h *Handler) Create(c echo.Context) error {
	zadostID := envelope.ZadostID(c)
	var body createRequest
	if err := c.Bind(&body); err != nil {
		return envelope.Bad(c, zadostID, envelope.SubStavValidace, []string{"tělo požadavku je neplatné."})
	}

	errs := envelope.ValidateInfo(zadostID, body.ZadostInfo)
	if body.ZadostData == nil {
		errs = append(errs, "ZadostData je povinné.")
	} else if body.ZadostData.System == "" || body.ZadostData.Typ == "" {
		errs = append(errs, "ZadostData.System a ZadostData.Typ jsou povinné.")
	}
	if len(errs) > 0 {
		return envelope.Bad(c, zadostID, envelope.SubStavValidace, errs)
	}

	n := h.store.Create(*body.ZadostData)
	return envelope.Created(c, zadostID, "ZalozOdberNotifikaci", n)
}

func (h *Handler) Cancel(c echo.Context) error {
	zadostID := envelope.ZadostID(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return envelope.NotFound(c, zadostID, "Registrace nenalezena.")
	}

	n, ok := h.store.Cancel(id)
	if !ok {
		return envelope.NotFound(c, zadostID, "Registrace nenalezena.")
	}
	return envelope.OK(c, zadostID, "ZrusOdberNotifikaci", n)
}

func (h *Handler) Search(c echo.Context) error {
	zadostID := envelope.ZadostID(c)
	if raw := c.QueryParam("id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return envelope.NotFound(c, zadostID, "Registrace nenalezena.")
		}
		n, ok := h.store.Find(id)
		if !ok {
			return envelope.NotFound(c, zadostID, "Registrace nenalezena.")
		}
		return envelope.OK(c, zadostID, "VyhledejOdberNotifikaciPZS", []Notification{n})
	}

	return envelope.OK(c, zadostID, "VyhledejOdberNotifikaciPZS", h.store.BySystem(c.QueryParam("system")))
}

package ems

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ezkzr/kzr-mock-server/internal/domain/rid"
)

func newServer(t *testing.T) (*echo.Echo, *Store) {
	t.Helper()
	store := NewStore(zerolog.New(os.Stderr), t.TempDir())
	e := echo.New()
	NewHandler(store).RegisterRoutes(e.Group("/api/v1/ems"))
	return e, store
}

func do(t *testing.T, e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	return body
}

func TestGetRunsByRid(t *testing.T) {
	e, _ := newServer(t)
	url := fmt.Sprintf("/api/v1/ems/rid/%s?ucel=Test&datum=2026-01-15&rid=%s", uuid.New(), rid.SeedRid)
	rec := do(t, e, http.MethodGet, url, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	body := decode(t, rec)
	if body["popis"] != "EMS" {
		t.Errorf("popis = %v", body["popis"])
	}
	runs, _ := body["data"].([]interface{})
	if len(runs) != 1 {
		t.Fatalf("got %d runs, want 1", len(runs))
	}
	run := runs[0].(map[string]interface{})
	if run["reason"] != "Bolest na hrudi" {
		t.Errorf("reason = %v", run["reason"])
	}
	vitals := run["vitals"].(map[string]interface{})
	if vitals["systolic"] != float64(150) {
		t.Errorf("systolic = %v", vitals["systolic"])
	}
}

func TestGetRunsUnknownRid(t *testing.T) {
	e, _ := newServer(t)
	url := fmt.Sprintf("/api/v1/ems/rid/%s?ucel=Test&datum=2026-01-15&rid=9999999999", uuid.New())
	rec := do(t, e, http.MethodGet, url, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
	body := decode(t, rec)
	if body["zprava"] != "Záznam o výjezdu pro RID 9999999999 nenalezen." {
		t.Errorf("zprava = %v", body["zprava"])
	}
}

func TestCreateRecord(t *testing.T) {
	e, store := newServer(t)
	payload := `{
		"zadostInfo": {"ucel": "Test", "datum": "2026-01-15T10:00:00Z"},
		"zadostData": {
			"rid": "1000000014",
			"started": "2026-01-14T22:30:00Z",
			"reason": "Dušnost",
			"vitals": {"systolic": 130, "heartRate": 110, "spo2": 91},
			"interventions": ["Kyslík"],
			"outcome": "Převoz",
			"destination": "Nemocnice Alfa a.s."
		}
	}`
	rec := do(t, e, http.MethodPost, "/api/v1/ems/record/"+uuid.NewString(), payload)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	body := decode(t, rec)
	if body["popis"] != "EMS Record přijat" {
		t.Errorf("popis = %v", body["popis"])
	}
	data := body["data"].(map[string]interface{})
	if _, err := uuid.Parse(data["id"].(string)); err != nil {
		t.Errorf("id %v is not a uuid", data["id"])
	}
	if got := store.RunsByRid("1000000014"); len(got) != 2 {
		t.Errorf("store has %d runs for seed rid, want 2", len(got))
	}
}

func TestCreateRecordValidation(t *testing.T) {
	e, _ := newServer(t)
	payload := `{"zadostInfo": {"ucel": "Test", "datum": "2026-01-15T10:00:00Z"}, "zadostData": {"reason": "x"}}`
	rec := do(t, e, http.MethodPost, "/api/v1/ems/record/"+uuid.NewString(), payload)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	body := decode(t, rec)
	chyby, _ := body["chyby"].([]interface{})
	if len(chyby) != 2 {
		t.Fatalf("chyby = %v, want Rid and Started errors", chyby)
	}
}

func TestRunsPersistAcrossStores(t *testing.T) {
	dir := t.TempDir()
	logger := zerolog.New(os.Stderr)
	first := NewStore(logger, dir)
	first.AddRun(Run{Rid: "1000000027", Started: time.Now().UTC(), Reason: "Pád"})

	second := NewStore(logger, dir)
	if got := second.RunsByRid("1000000027"); len(got) != 1 {
		t.Fatalf("reloaded store has %d runs, want 1", len(got))
	}
}

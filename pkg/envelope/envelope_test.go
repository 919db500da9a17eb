package envelope

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func record(t *testing.T, fn func(c echo.Context) error) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := fn(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	return rec, body
}

func TestOKEnvelope(t *testing.T) {
	id := uuid.New()
	rec, body := record(t, func(c echo.Context) error {
		return OK(c, id, "Test", map[string]string{"rid": "1000000014"})
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if body["stav"] != StavOK {
		t.Errorf("stav = %v, want OK", body["stav"])
	}
	if body["zadostId"] != id.String() {
		t.Errorf("zadostId = %v, want %s", body["zadostId"], id)
	}
	if _, present := body["chyby"]; present {
		t.Error("chyby should be omitted on success")
	}
}

func TestBadEnvelope(t *testing.T) {
	id := uuid.New()
	rec, body := record(t, func(c echo.Context) error {
		return Bad(c, id, SubStavValidace, []string{"rid je povinné."})
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if body["stav"] != StavChyba {
		t.Errorf("stav = %v, want CHYBA", body["stav"])
	}
	if body["subStav"] != SubStavValidace {
		t.Errorf("subStav = %v, want Validace", body["subStav"])
	}
	chyby, _ := body["chyby"].([]interface{})
	if len(chyby) != 1 {
		t.Fatalf("chyby = %v, want one message", body["chyby"])
	}
}

func TestNotFoundEnvelope(t *testing.T) {
	rec, body := record(t, func(c echo.Context) error {
		return NotFound(c, uuid.New(), "Pacient nenalezen.")
	})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if body["stav"] != StavNotFound {
		t.Errorf("stav = %v, want NOT_FOUND", body["stav"])
	}
	if body["zprava"] != "Pacient nenalezen." {
		t.Errorf("zprava = %v", body["zprava"])
	}
}

func TestValidateCommon(t *testing.T) {
	tests := []struct {
		name    string
		zadost  uuid.UUID
		ucel    string
		datum   string
		wantErr int
	}{
		{"all present", uuid.New(), "Test", "2026-01-15", 0},
		{"rfc3339 datum", uuid.New(), "Test", "2026-01-15T10:00:00Z", 0},
		{"missing all", uuid.Nil, "", "", 3},
		{"blank ucel", uuid.New(), "   ", "2026-01-15", 1},
		{"bad datum", uuid.New(), "Test", "not-a-date", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateCommon(tt.zadost, tt.ucel, tt.datum)
			if len(errs) != tt.wantErr {
				t.Errorf("got %d errors %v, want %d", len(errs), errs, tt.wantErr)
			}
		})
	}
}

func TestValidateICO(t *testing.T) {
	if errs := ValidateICO("12345678"); len(errs) != 0 {
		t.Errorf("valid ico rejected: %v", errs)
	}
	for _, bad := range []string{"", "1234567", "123456789", "1234567a"} {
		errs := ValidateICO(bad)
		if len(errs) != 1 {
			t.Errorf("ico %q: got %v, want one error", bad, errs)
		}
		if !strings.Contains(errs[0], "ico") {
			t.Errorf("ico %q: unexpected message %q", bad, errs[0])
		}
	}
}

func TestZadostIDFallsBackToNil(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetParamNames("zadostId")
	c.SetParamValues("not-a-uuid")
	if got := ZadostID(c); got != uuid.Nil {
		t.Errorf("ZadostID = %v, want uuid.Nil", got)
	}
}

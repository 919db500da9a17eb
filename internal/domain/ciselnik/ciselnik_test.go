package ciselnik

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func get(t *testing.T, list string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	e := echo.New()
	RegisterRoutes(e.Group("/api/v1"))
	url := fmt.Sprintf("/api/v1/ciselnik/%s/%s?ucel=Test&datum=2026-01-15", uuid.New(), list)
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	return rec, body
}

func TestKnownLists(t *testing.T) {
	tests := []struct {
		list  string
		popis string
		count int
	}{
		{"stat", "CiselnikStat", 3},
		{"pohlavi", "CiselnikPohlavi", 3},
		{"zdravotni_pojistovna", "CiselnikZdravotniPojistovna", 6},
		{"druh_dokladu", "CiselnikDruhDokladu", 3},
		{"modality", "CiselnikModality", 8},
		{"laboratorni_test", "CiselnikLaboratorniTest", 5},
		{"order_status", "CiselnikOrderStatus", 5},
		{"ems_outcome", "CiselnikEmsOutcome", 4},
		{"odbornost", "CiselnikOdbornost", 5},
	}
	for _, tt := range tests {
		t.Run(tt.list, func(t *testing.T) {
			rec, body := get(t, tt.list)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d", rec.Code)
			}
			if body["popis"] != tt.popis {
				t.Errorf("popis = %v, want %s", body["popis"], tt.popis)
			}
			items, _ := body["data"].([]interface{})
			if len(items) != tt.count {
				t.Errorf("got %d items, want %d", len(items), tt.count)
			}
		})
	}
}

func TestPohlaviContent(t *testing.T) {
	_, body := get(t, "pohlavi")
	items := body["data"].([]interface{})
	first := items[0].(map[string]interface{})
	if first["kod"] != "M" || first["popis"] != "Muž" {
		t.Errorf("first item = %v", first)
	}
}

func TestMissingCommonParams(t *testing.T) {
	e := echo.New()
	RegisterRoutes(e.Group("/api/v1"))
	url := fmt.Sprintf("/api/v1/ciselnik/%s/stat", uuid.New())
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestUnknownList(t *testing.T) {
	rec, body := get(t, "neexistuje")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
	if body["zprava"] != "Číselník nenalezen." {
		t.Errorf("zprava = %v", body["zprava"])
	}
}

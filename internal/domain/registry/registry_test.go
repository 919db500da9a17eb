package registry

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func newServer(t *testing.T) (*echo.Echo, *Store) {
	t.Helper()
	store := NewStore(zerolog.New(os.Stderr), t.TempDir())
	e := echo.New()
	NewHandler(store).RegisterRoutes(e.Group("/api/v1/krpzs"), e.Group("/api/v1/krzp"))
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

func TestFindProviderByICO(t *testing.T) {
	e, _ := newServer(t)
	url := fmt.Sprintf("/api/v1/krpzs/hledat/%s/ico?ico=12345678&ucel=Test&datum=2026-01-15", uuid.New())
	rec := do(t, e, http.MethodGet, url, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	body := decode(t, rec)
	if body["popis"] != "KRPZS GET ICO" {
		t.Errorf("popis = %v", body["popis"])
	}
	data := body["data"].(map[string]interface{})
	if data["nazev"] != "Nemocnice Alfa a.s." {
		t.Errorf("nazev = %v", data["nazev"])
	}
}

func TestFindProviderBadICO(t *testing.T) {
	e, _ := newServer(t)
	url := fmt.Sprintf("/api/v1/krpzs/hledat/%s/ico?ico=123&ucel=Test&datum=2026-01-15", uuid.New())
	rec := do(t, e, http.MethodGet, url, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	body := decode(t, rec)
	chyby, _ := body["chyby"].([]interface{})
	if len(chyby) != 1 || chyby[0] != "ico musí mít přesně 8 číslic." {
		t.Errorf("chyby = %v", chyby)
	}
}

func TestFindProviderUnknownICO(t *testing.T) {
	e, _ := newServer(t)
	url := fmt.Sprintf("/api/v1/krpzs/hledat/%s/ico?ico=99999999&ucel=Test&datum=2026-01-15", uuid.New())
	rec := do(t, e, http.MethodGet, url, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
	if body := decode(t, rec); body["zprava"] != "Poskytovatel s IČO 99999999 nenalezen." {
		t.Errorf("zprava = %v", body["zprava"])
	}
}

func TestFindWorkerByID(t *testing.T) {
	e, _ := newServer(t)

	url := fmt.Sprintf("/api/v1/krzp/hledat/%s/krzpid?id=1001&ucel=Test&datum=2026-01-15", uuid.New())
	rec := do(t, e, http.MethodGet, url, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	data := decode(t, rec)["data"].(map[string]interface{})
	if data["prijmeni"] != "Novák" {
		t.Errorf("prijmeni = %v", data["prijmeni"])
	}

	url = fmt.Sprintf("/api/v1/krzp/hledat/%s/krzpid?id=-5&ucel=Test&datum=2026-01-15", uuid.New())
	rec = do(t, e, http.MethodGet, url, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("negative id: status = %d", rec.Code)
	}
	chyby, _ := decode(t, rec)["chyby"].([]interface{})
	if len(chyby) != 1 || chyby[0] != "Parametr id musí být kladné číslo." {
		t.Errorf("chyby = %v", chyby)
	}
}

func TestFindWorkerByPerson(t *testing.T) {
	e, _ := newServer(t)
	url := fmt.Sprintf("/api/v1/krzp/hledat/%s/jmeno_prijmeni_datum_narozeni?jmeno=jan&prijmeni=NOVÁK&datumNarozeni=1980-05-01&ucel=Test&datum=2026-01-15", uuid.New())
	rec := do(t, e, http.MethodGet, url, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	body := decode(t, rec)
	if body["popis"] != "KRZP VyhledejPodleJmenoPrijmeniDatumNarozeni" {
		t.Errorf("popis = %v", body["popis"])
	}
	workers, _ := body["data"].([]interface{})
	if len(workers) != 1 {
		t.Fatalf("got %d workers, want 1", len(workers))
	}

	url = fmt.Sprintf("/api/v1/krzp/hledat/%s/jmeno_prijmeni_datum_narozeni?jmeno=Jan&prijmeni=Novák&datumNarozeni=1999-01-01&ucel=Test&datum=2026-01-15", uuid.New())
	rec = do(t, e, http.MethodGet, url, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("wrong birth date: status = %d", rec.Code)
	}
	if body := decode(t, rec); body["zprava"] != "Pracovník nenalezen." {
		t.Errorf("zprava = %v", body["zprava"])
	}
}

func TestFindWorkersByEmployer(t *testing.T) {
	e, _ := newServer(t)
	url := fmt.Sprintf("/api/v1/krzp/hledat/%s/zamestnavatel?ico=87654321&ucel=Test&datum=2026-01-15", uuid.New())
	rec := do(t, e, http.MethodGet, url, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	workers, _ := decode(t, rec)["data"].([]interface{})
	if len(workers) != 1 {
		t.Fatalf("got %d workers, want 1", len(workers))
	}

	url = fmt.Sprintf("/api/v1/krzp/hledat/%s/zamestnavatel?ico=11112222&ucel=Test&datum=2026-01-15", uuid.New())
	rec = do(t, e, http.MethodGet, url, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown employer: status = %d", rec.Code)
	}
}

func TestProviderReklamaceRequiresItems(t *testing.T) {
	e, _ := newServer(t)
	payload := `{
		"zadostInfo": {"ucel": "Test", "datum": "2026-01-15T10:00:00Z"},
		"zadostData": {"krpzsid": 123456789, "datumReklamace": "2026-01-15T00:00:00Z", "polozkyReklamace": []}
	}`
	rec := do(t, e, http.MethodPost, "/api/v1/krpzs/reklamace/"+uuid.NewString(), payload)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	chyby, _ := decode(t, rec)["chyby"].([]interface{})
	if len(chyby) != 1 || chyby[0] != "PolozkyReklamace musí obsahovat alespoň jednu položku." {
		t.Errorf("chyby = %v", chyby)
	}
}

func TestReklamaceAccepted(t *testing.T) {
	e, _ := newServer(t)
	payload := `{
		"zadostInfo": {"ucel": "Test", "datum": "2026-01-15T10:00:00Z"},
		"zadostData": {
			"krpzsid": 123456789,
			"datumReklamace": "2026-01-15T00:00:00Z",
			"reklamujici": {"ico": "12345678", "nazev": "Nemocnice Alfa a.s."},
			"polozkyReklamace": [{"klic": "Nazev", "puvodniHodnota": "Nemocnice Alfa, a.s.", "pozadovanaHodnota": "Nemocnice ALFA a.s."}]
		}
	}`
	for _, tt := range []struct{ path, registr string }{
		{"/api/v1/krpzs/reklamace/", "KRPZS"},
		{"/api/v1/krzp/reklamace/", "KRZP"},
	} {
		rec := do(t, e, http.MethodPost, tt.path+uuid.NewString(), payload)
		if rec.Code != http.StatusCreated {
			t.Fatalf("%s: status = %d, body %s", tt.registr, rec.Code, rec.Body)
		}
		body := decode(t, rec)
		if body["popis"] != "Reklamace přijata" {
			t.Errorf("%s: popis = %v", tt.registr, body["popis"])
		}
		data := body["data"].(map[string]interface{})
		if data["prijato"] != true || data["registr"] != tt.registr {
			t.Errorf("%s: data = %v", tt.registr, data)
		}
	}
}

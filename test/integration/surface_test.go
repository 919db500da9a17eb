package integration

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestHealthAndMetrics(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, body := get(t, ts, "/health")
	if resp.StatusCode != http.StatusOK || body["status"] != "ok" {
		t.Fatalf("health: status = %d, body %v", resp.StatusCode, body)
	}

	raw, err := http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	defer raw.Body.Close()
	text, _ := io.ReadAll(raw.Body)
	if raw.StatusCode != http.StatusOK || !strings.Contains(string(text), "http_requests_total") {
		t.Errorf("metrics endpoint missing counters, status %d", raw.StatusCode)
	}
}

func TestCapabilityStatement(t *testing.T) {
	ts, _ := newTestServer(t)
	resp, body := get(t, ts, "/fhir/metadata")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if resp.Header.Get("Content-Type") != "application/fhir+json" {
		t.Errorf("content type = %q", resp.Header.Get("Content-Type"))
	}
	if body["resourceType"] != "CapabilityStatement" {
		t.Errorf("resourceType = %v", body["resourceType"])
	}
}

func TestCiselnikThroughServer(t *testing.T) {
	ts, _ := newTestServer(t)
	resp, body := get(t, ts, fmt.Sprintf("/api/v1/ciselnik/%s/modality?%s", uuid.New(), commonQuery))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	items, _ := body["data"].([]interface{})
	if len(items) != 8 {
		t.Errorf("got %d modalities, want 8", len(items))
	}
}

func TestSamplesIndexThroughServer(t *testing.T) {
	ts, _ := newTestServer(t)
	resp, body := get(t, ts, "/api/v1/samples/")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if _, ok := body["examples"].(map[string]interface{}); !ok {
		t.Errorf("missing examples block: %v", body)
	}
}

func TestNotificationSharedAcrossRegistryGroups(t *testing.T) {
	ts, _ := newTestServer(t)

	payload := `{
		"zadostInfo": {"ucel": "Test", "datum": "2026-01-15T10:00:00Z"},
		"zadostData": {"system": "KRPZS", "typ": "zmena-pzs"}
	}`
	resp, body := post(t, ts, "/api/v1/krpzs/notifikace/"+uuid.NewString(), payload)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: status = %d, body %v", resp.StatusCode, body)
	}
	id := body["data"].(map[string]interface{})["id"].(string)

	// The same subscription is visible and cancellable through /krzp.
	resp, body = get(t, ts, fmt.Sprintf("/api/v1/krzp/notifikace/%s?id=%s", uuid.New(), id))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("lookup: status = %d, body %v", resp.StatusCode, body)
	}

	req, _ := http.NewRequest(http.MethodPut, fmt.Sprintf("%s/api/v1/krzp/notifikace/%s/%s", ts.URL, uuid.New(), id), nil)
	raw, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	body = decodeBody(t, raw)
	if raw.StatusCode != http.StatusOK {
		t.Fatalf("cancel: status = %d, body %v", raw.StatusCode, body)
	}
	if stav := body["data"].(map[string]interface{})["stav"]; stav != "zruseno" {
		t.Errorf("stav = %v", stav)
	}
}

func TestDischargeDocumentBundle(t *testing.T) {
	ts, _ := newTestServer(t)
	resp, body := get(t, ts, "/fhir/Bundle/1000000014/$discharge")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body %v", resp.StatusCode, body)
	}
	if body["type"] != "document" {
		t.Errorf("type = %v", body["type"])
	}
	if _, present := body["total"]; present {
		t.Error("document bundle must not carry total")
	}
	entries := body["entry"].([]interface{})
	first := entries[0].(map[string]interface{})["resource"].(map[string]interface{})
	if first["resourceType"] != "Composition" {
		t.Errorf("first entry = %v, want Composition", first["resourceType"])
	}
}

func TestRecoveryFromUnknownRoute(t *testing.T) {
	ts, _ := newTestServer(t)
	resp, err := http.Get(ts.URL + "/api/v1/neexistuje")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

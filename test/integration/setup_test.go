package integration

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ezkzr/kzr-mock-server/internal/config"
	"github.com/ezkzr/kzr-mock-server/internal/server"
)

// newTestServer boots the fully wired application against a throwaway
// data directory and returns its base URL.
func newTestServer(t *testing.T) (*httptest.Server, *server.Stores) {
	t.Helper()
	logger := zerolog.New(io.Discard)
	cfg := &config.Config{
		Port:           "0",
		Env:            "test",
		DataDir:        t.TempDir(),
		CORSOrigins:    []string{"http://localhost:3000"},
		RIDMaxAttempts: 10000,
	}
	st := server.NewStores(logger, cfg)
	ts := httptest.NewServer(server.New(logger, cfg, st))
	t.Cleanup(ts.Close)
	return ts, st
}

func get(t *testing.T, ts *httptest.Server, path string) (*http.Response, map[string]interface{}) {
	t.Helper()
	resp, err := http.Get(ts.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	return resp, decodeBody(t, resp)
}

func post(t *testing.T, ts *httptest.Server, path, body string) (*http.Response, map[string]interface{}) {
	t.Helper()
	resp, err := http.Post(ts.URL+path, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	return resp, decodeBody(t, resp)
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("invalid JSON %q: %v", raw, err)
	}
	return body
}

func TestMain(m *testing.M) {
	os.Exit(m.Run())
}

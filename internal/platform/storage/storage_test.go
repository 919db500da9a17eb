package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

type item struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func seedItems() []item {
	return []item{{Name: "alpha", Count: 1}, {Name: "beta", Count: 2}}
}

func TestLoadListSeedsMissingFile(t *testing.T) {
	dir := t.TempDir()
	got := LoadList(zerolog.Nop(), dir, "items.json", seedItems)
	if len(got) != 2 {
		t.Fatalf("got %d items, want seed of 2", len(got))
	}
	raw, err := os.ReadFile(filepath.Join(dir, "items.json"))
	if err != nil {
		t.Fatalf("seed file not written: %v", err)
	}
	if !strings.Contains(string(raw), "\n  ") {
		t.Error("seed file is not indented")
	}
}

func TestLoadListReadsExistingFile(t *testing.T) {
	dir := t.TempDir()
	if err := SaveList(zerolog.Nop(), dir, "items.json", []item{{Name: "gamma", Count: 7}}); err != nil {
		t.Fatal(err)
	}
	got := LoadList(zerolog.Nop(), dir, "items.json", seedItems)
	if len(got) != 1 || got[0].Name != "gamma" {
		t.Fatalf("got %+v, want persisted gamma item", got)
	}
}

func TestLoadListReseedsCorruptFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "items.json"), []byte("{broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	got := LoadList(zerolog.Nop(), dir, "items.json", seedItems)
	if len(got) != 2 {
		t.Fatalf("corrupt file should fall back to seed, got %+v", got)
	}
}

func TestSaveListRoundTrip(t *testing.T) {
	dir := t.TempDir()
	items := []item{{Name: "delta", Count: 3}}
	if err := SaveList(zerolog.Nop(), dir, "rt.json", items); err != nil {
		t.Fatal(err)
	}
	got := LoadList(zerolog.Nop(), dir, "rt.json", func() []item { return nil })
	if len(got) != 1 || got[0] != items[0] {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

package rid

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ezkzr/kzr-mock-server/pkg/dateonly"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	return NewRegistry(zerolog.Nop(), t.TempDir(), NewGenerator(0))
}

func TestRegistrySeeds(t *testing.T) {
	r := newTestRegistry(t)
	rec, ok := r.Find(SeedRid)
	if !ok {
		t.Fatal("seed record missing")
	}
	if rec.GivenName != "Karel" || rec.FamilyName != "Test" {
		t.Errorf("seed record = %+v", rec)
	}
	if !rec.DateOfBirth.Equal(dateonly.New(1975, 3, 14)) {
		t.Errorf("seed dob = %v", rec.DateOfBirth)
	}
}

func TestGeneratePermanentCommits(t *testing.T) {
	r := newTestRegistry(t)
	rec, err := r.GeneratePermanent("Jana", "Nová", dateonly.New(1990, 1, 2))
	if err != nil {
		t.Fatal(err)
	}
	got, ok := r.Find(rec.Rid)
	if !ok || got.GivenName != "Jana" {
		t.Fatalf("committed record not found: %+v ok=%v", got, ok)
	}
	if got.IsTemporary {
		t.Error("permanent record marked temporary")
	}
}

func TestGenerateTemporary(t *testing.T) {
	r := newTestRegistry(t)
	rec, err := r.GenerateTemporary()
	if err != nil {
		t.Fatal(err)
	}
	if rec.Rid[0] != 'D' || !rec.IsTemporary {
		t.Errorf("temporary record = %+v", rec)
	}
}

func TestRegisterRejectsTakenRid(t *testing.T) {
	r := newTestRegistry(t)
	_, err := r.Register(SeedRid, "", "Petr", "Dvořák", dateonly.New(1980, 6, 1))
	if !errors.Is(err, ErrRidTaken) {
		t.Errorf("err = %v, want ErrRidTaken", err)
	}
}

func TestPromotion(t *testing.T) {
	r := newTestRegistry(t)
	tmp, err := r.GenerateTemporary()
	if err != nil {
		t.Fatal(err)
	}

	rec, err := r.Register("", tmp.Rid, "Petr", "Dvořák", dateonly.New(1980, 6, 1))
	if err != nil {
		t.Fatalf("promote: %v", err)
	}

	dr, _ := r.Find(tmp.Rid)
	if dr.IsTemporary {
		t.Error("promoted drid still temporary")
	}
	if dr.PromotedToRid != rec.Rid {
		t.Errorf("promotedToRid = %q, want %q", dr.PromotedToRid, rec.Rid)
	}

	// Second promotion of the same DRID must fail without mutating.
	if _, err := r.Register("", tmp.Rid, "Petr", "Dvořák", dateonly.New(1980, 6, 1)); !errors.Is(err, ErrDridInvalid) {
		t.Errorf("second promotion err = %v, want ErrDridInvalid", err)
	}
}

func TestPromotionUnknownDrid(t *testing.T) {
	r := newTestRegistry(t)
	before, _ := r.Find(SeedRid)
	if _, err := r.Register("", "D123456789", "A", "B", dateonly.New(2000, 1, 1)); !errors.Is(err, ErrDridInvalid) {
		t.Fatalf("err = %v, want ErrDridInvalid", err)
	}
	after, _ := r.Find(SeedRid)
	if before != after {
		t.Error("failed promotion mutated state")
	}
}

func TestUniquenessUnderLoad(t *testing.T) {
	r := newTestRegistry(t)
	seen := map[string]bool{SeedRid: true}
	for i := 0; i < 500; i++ {
		rec, err := r.GeneratePermanent("G", "F", dateonly.New(1970, 1, 1))
		if err != nil {
			t.Fatalf("draw %d: %v", i, err)
		}
		if seen[rec.Rid] {
			t.Fatalf("duplicate rid %q", rec.Rid)
		}
		seen[rec.Rid] = true
	}
}

package resolve

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-wpimport/internal/store"
	"github.com/goliatone/go-wpimport/pkg/testsupport"
	"github.com/uptrace/bun"
)

func newTestStore(t *testing.T) (*bun.DB, *store.Store) {
	t.Helper()
	sqldb, err := testsupport.NewIsolatedMemoryDB()
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	db := store.OpenDB(sqldb)
	t.Cleanup(func() { db.Close() })
	if err := store.CreateSchema(context.Background(), db); err != nil {
		t.Fatalf("create schema: %v", err)
	}
	return db, store.New(db)
}

func seed(t *testing.T, db *bun.DB, model any) {
	t.Helper()
	if _, err := db.NewInsert().Model(model).Exec(context.Background()); err != nil {
		t.Fatalf("seed %T: %v", model, err)
	}
}

func TestGroupCreatesWhenMissing(t *testing.T) {
	ctx := context.Background()
	_, st := newTestStore(t)
	resolver := New(st)

	id, err := resolver.Group(ctx, "Bloggers")
	if err != nil {
		t.Fatalf("Group returned error: %v", err)
	}
	if id == 0 {
		t.Fatal("expected created group ID")
	}

	again, err := resolver.Group(ctx, "Bloggers")
	if err != nil {
		t.Fatalf("Group second call returned error: %v", err)
	}
	if again != id {
		t.Fatalf("expected memoized ID %d, got %d", id, again)
	}
}

func TestDefaultGroupNeverCreates(t *testing.T) {
	ctx := context.Background()
	db, st := newTestStore(t)
	resolver := New(st)

	if _, err := resolver.DefaultGroup(ctx); !errors.Is(err, ErrDefaultGroupMissing) {
		t.Fatalf("expected ErrDefaultGroupMissing, got %v", err)
	}

	grp := &store.Group{Name: DefaultGroupName}
	seed(t, db, grp)

	id, err := resolver.DefaultGroup(ctx)
	if err != nil {
		t.Fatalf("DefaultGroup returned error: %v", err)
	}
	if id != grp.ID {
		t.Fatalf("expected group #%d, got #%d", grp.ID, id)
	}
}

func TestRegionalChainRequiresMatchingParents(t *testing.T) {
	ctx := context.Background()
	db, st := newTestStore(t)
	resolver := New(st)

	fr := &store.Country{Code: "FR", Name: "France"}
	seed(t, db, fr)
	de := &store.Country{Code: "DE", Name: "Germany"}
	seed(t, db, de)

	idf := &store.Region{CountryID: fr.ID, Name: "Ile-de-France"}
	seed(t, db, idf)
	paris := &store.City{RegionID: idf.ID, Name: "Paris"}
	seed(t, db, paris)

	got, err := resolver.RegionalChain(ctx, "FR", "Ile-de-France", "", "Paris")
	if err != nil {
		t.Fatalf("RegionalChain returned error: %v", err)
	}
	if got.CountryID != fr.ID || got.RegionID != idf.ID || got.CityID != paris.ID {
		t.Fatalf("unexpected chain %+v", got)
	}

	// The region belongs to FR, so resolving it under DE must stop at country.
	got, err = resolver.RegionalChain(ctx, "DE", "Ile-de-France", "", "Paris")
	if err != nil {
		t.Fatalf("RegionalChain returned error: %v", err)
	}
	if got.CountryID != de.ID {
		t.Fatalf("expected country resolved, got %+v", got)
	}
	if got.RegionID != 0 || got.CityID != 0 {
		t.Fatalf("expected chain to stop at mismatched region, got %+v", got)
	}

	// Unknown country stops the whole chain.
	got, err = resolver.RegionalChain(ctx, "XX", "Ile-de-France", "", "Paris")
	if err != nil {
		t.Fatalf("RegionalChain returned error: %v", err)
	}
	if got != (Regional{}) {
		t.Fatalf("expected empty chain, got %+v", got)
	}
}

func TestSanitizeLogin(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Mary", "mary"},
		{"mary ann", "mary_ann"},
		{"jos??!", "jos___"},
		{"first.last-name_9", "first.last-name_9"},
		{strings.Repeat("a", 30), strings.Repeat("a", 20)},
	}
	for _, tc := range cases {
		if got := SanitizeLogin(tc.in); got != tc.want {
			t.Fatalf("SanitizeLogin(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeTagName(t *testing.T) {
	if got := NormalizeTagName("Caf&eacute;"); got != "Café" {
		t.Fatalf("expected entity decoding, got %q", got)
	}
	long := strings.Repeat("x", 60)
	if got := NormalizeTagName(long); got != strings.Repeat("x", 50) {
		t.Fatalf("expected 50 byte cap, got %d bytes", len(got))
	}
}

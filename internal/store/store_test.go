package store

import (
	"path/filepath"
	"testing"

	"github.com/point-o/sham/internal/value"
)

func snapshot() map[string]value.Value {
	return map[string]value.Value{
		"count":  value.OfInt(42),
		"big":    value.OfLong(9000000000),
		"pi":     value.OfDouble(3.14),
		"ratio":  value.OfFloat(0.5),
		"flag":   value.OfBool(true),
		"off":    value.OfBool(false),
		"zero":   value.OfInt(0),
		"empty":  value.OfString(""),
		"name":   value.OfString("sham"),
		"none":   value.OfNull(),
		"scores": value.OfList([]value.Value{value.OfInt(1), value.OfDouble(2.5)}),
		"row": value.OfMap(map[string]value.Value{
			"a": value.OfString("x"),
			"b": value.OfLong(7),
		}),
	}
}

func checkRoundTrip(t *testing.T, got map[string]value.Value) {
	t.Helper()
	want := snapshot()
	if len(got) != len(want) {
		t.Fatalf("round trip returned %d variables, want %d", len(got), len(want))
	}
	for name, w := range want {
		g, ok := got[name]
		if !ok {
			t.Errorf("variable %q missing after round trip", name)
			continue
		}
		if g.Kind() != w.Kind() {
			t.Errorf("%q: kind %v, want %v", name, g.Kind(), w.Kind())
		}
		if !g.Equal(w) {
			t.Errorf("%q: %s, want %s", name, g.AsString(), w.AsString())
		}
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.yaml")

	skipped, err := SaveYAML(path, snapshot())
	if err != nil {
		t.Fatalf("SaveYAML: %v", err)
	}
	if skipped != 0 {
		t.Errorf("skipped = %d, want 0", skipped)
	}

	got, err := LoadYAML(path)
	if err != nil {
		t.Fatalf("LoadYAML: %v", err)
	}
	checkRoundTrip(t, got)
}

func TestDBRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")

	skipped, err := SaveDB(path, snapshot())
	if err != nil {
		t.Fatalf("SaveDB: %v", err)
	}
	if skipped != 0 {
		t.Errorf("skipped = %d, want 0", skipped)
	}

	got, err := LoadDB(path)
	if err != nil {
		t.Fatalf("LoadDB: %v", err)
	}
	checkRoundTrip(t, got)
}

func TestDBSaveReplaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")

	if _, err := SaveDB(path, map[string]value.Value{"stale": value.OfInt(1)}); err != nil {
		t.Fatalf("first SaveDB: %v", err)
	}
	if _, err := SaveDB(path, map[string]value.Value{"fresh": value.OfInt(2)}); err != nil {
		t.Fatalf("second SaveDB: %v", err)
	}

	got, err := LoadDB(path)
	if err != nil {
		t.Fatalf("LoadDB: %v", err)
	}
	if _, ok := got["stale"]; ok {
		t.Error("save did not replace the previous snapshot")
	}
	if len(got) != 1 {
		t.Errorf("got %d variables, want 1", len(got))
	}
}

func TestOpaqueKindsSkipped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.yaml")
	vars := map[string]value.Value{
		"keep":   value.OfInt(1),
		"opaque": value.Of(struct{ X int }{1}),
		"nested": value.OfList([]value.Value{value.Of(struct{ Y int }{2})}),
	}

	skipped, err := SaveYAML(path, vars)
	if err != nil {
		t.Fatalf("SaveYAML: %v", err)
	}
	if skipped != 2 {
		t.Errorf("skipped = %d, want 2 (opaque and the list containing one)", skipped)
	}

	got, err := LoadYAML(path)
	if err != nil {
		t.Fatalf("LoadYAML: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("persisted %d variables, want 1", len(got))
	}
	if _, ok := got["keep"]; !ok {
		t.Error("serializable variable lost")
	}
}

func TestLoadYAMLMissingFile(t *testing.T) {
	if _, err := LoadYAML(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing snapshot file")
	}
}

func TestDecodeRejectsUnknownKind(t *testing.T) {
	if _, err := decode(record{Kind: "frob"}); err == nil {
		t.Error("expected error for unknown record kind")
	}
}

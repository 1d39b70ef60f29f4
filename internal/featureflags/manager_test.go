package featureflags

import "testing"

func TestEnabled_BooleanValues(t *testing.T) {
	m := NewManager("a=on,b=off,c=true,d=false,e=1,f=0")

	if !m.Enabled("a", "alice") || !m.Enabled("c", "alice") || !m.Enabled("e", "alice") {
		t.Fatal("expected enabled boolean values to evaluate true")
	}
	if m.Enabled("b", "alice") || m.Enabled("d", "alice") || m.Enabled("f", "alice") {
		t.Fatal("expected disabled boolean values to evaluate false")
	}
	if m.Enabled("missing", "alice") {
		t.Fatal("unknown flags are off")
	}
}

func TestEnabled_PercentageValues(t *testing.T) {
	m := NewManager("always=100%,never=0%,canary=25%,junk=abc%")

	if !m.Enabled("always", "alice") {
		t.Fatal("100% rollout should always be enabled")
	}
	if m.Enabled("never", "alice") {
		t.Fatal("0% rollout should always be disabled")
	}
	if m.Enabled("junk", "alice") {
		t.Fatal("malformed percentage should be disabled")
	}

	first := m.Enabled("canary", "bob")
	for i := 0; i < 5; i++ {
		if got := m.Enabled("canary", "bob"); got != first {
			t.Fatal("rollout evaluation must be deterministic per user")
		}
	}

	if m.Enabled("canary", "") {
		t.Fatal("percentage rollout requires a username")
	}
}

func TestEnabled_CaseInsensitiveNames(t *testing.T) {
	m := NewManager("Uploads=ON")
	if !m.Enabled(Uploads, "alice") || !m.Enabled("UPLOADS", "alice") {
		t.Fatal("flag names and values are case-insensitive")
	}
}

func TestParseAndSnapshot(t *testing.T) {
	m := NewManager(" bad ,x=on, y = 20% ,z=off ")

	raw := m.Raw()
	if len(raw) != 3 {
		t.Fatalf("expected 3 parsed flags, got %d", len(raw))
	}
	if raw["x"] != "on" || raw["y"] != "20%" || raw["z"] != "off" {
		t.Fatalf("unexpected raw flags: %#v", raw)
	}

	snap := m.Snapshot("carol")
	if len(snap) != 3 {
		t.Fatalf("expected snapshot size 3, got %d", len(snap))
	}
	if !snap["x"] || snap["z"] {
		t.Fatalf("unexpected snapshot: %#v", snap)
	}
}

func TestNilManager(t *testing.T) {
	var m *Manager
	if m.Enabled("x", "alice") {
		t.Fatal("nil manager has no flags")
	}
	if len(m.Raw()) != 0 || len(m.Snapshot("alice")) != 0 {
		t.Fatal("nil manager snapshots are empty")
	}
}

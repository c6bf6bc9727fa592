package reference

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ironsheep/vegan-check-mcp/internal/enumber"
)

func TestDefault(t *testing.T) {
	table, err := Default()
	if err != nil {
		t.Fatalf("Default failed: %v", err)
	}
	if table.Len() == 0 {
		t.Fatal("bundled table is empty")
	}

	again, _ := Default()
	if again != table {
		t.Error("Default should return the same table on every call")
	}

	for _, e := range table.Entries() {
		if !e.Code.Valid() {
			t.Errorf("bundled code %q is not canonical", e.Code)
		}
	}
}

func TestDefault_KnownEntries(t *testing.T) {
	table, err := Default()
	if err != nil {
		t.Fatalf("Default failed: %v", err)
	}

	tests := []struct {
		code  string
		vegan bool
	}{
		{"E100", true},
		{"E120", false},
		{"E441", false},
		{"E330", true},
		{"E904", false},
	}
	for _, tt := range tests {
		e, ok := table.Lookup(enumber.Code(tt.code))
		if !ok {
			t.Errorf("%s missing from bundled table", tt.code)
			continue
		}
		if e.Vegan != tt.vegan {
			t.Errorf("%s vegan: got %v, want %v", tt.code, e.Vegan, tt.vegan)
		}
	}
}

func TestLoad(t *testing.T) {
	data := `[
		{"code": "e-100", "name": "Curcumin", "vegan": true},
		{"code": "E120", "name": "Carmine", "vegan": false}
	]`
	table, err := Load(strings.NewReader(data))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if table.Len() != 2 {
		t.Fatalf("Len: got %d, want 2", table.Len())
	}

	entries := table.Entries()
	if entries[0].Code != "E100" || entries[1].Code != "E120" {
		t.Errorf("entries not canonical or out of order: %+v", entries)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `{{`},
		{"not an array", `{"code": "E100"}`},
		{"bad code", `[{"code": "X1", "name": "x", "vegan": true}]`},
		{"scattered separators", `[{"code": "E 1 0 0", "name": "x", "vegan": true}]`},
		{"empty name", `[{"code": "E100", "name": "", "vegan": true}]`},
		{"duplicate", `[{"code": "E100", "name": "a", "vegan": true}, {"code": "e100", "name": "b", "vegan": false}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.data))
			if !errors.Is(err, ErrInvalidTable) {
				t.Errorf("got err %v, want ErrInvalidTable", err)
			}
		})
	}
}

func TestLookup_CaseInsensitive(t *testing.T) {
	table, err := Load(strings.NewReader(`[{"code": "E160A", "name": "Carotenes", "vegan": true}]`))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	for _, in := range []string{"E160A", "e160a", "E-160a"} {
		if _, ok := table.Lookup(enumber.Code(in)); !ok {
			t.Errorf("Lookup(%q) should find E160A", in)
		}
	}
	if _, ok := table.Lookup("E999"); ok {
		t.Error("Lookup(E999) should miss")
	}
	if _, ok := table.Lookup("garbage"); ok {
		t.Error("Lookup(garbage) should miss")
	}
}

func TestEntries_ReturnsCopy(t *testing.T) {
	table, _ := Load(strings.NewReader(`[{"code": "E100", "name": "Curcumin", "vegan": true}]`))
	entries := table.Entries()
	entries[0].Vegan = false

	e, _ := table.Lookup("E100")
	if !e.Vegan || !table.Entries()[0].Vegan {
		t.Error("mutating Entries result changed the table")
	}
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "table.json")
	if err := os.WriteFile(path, []byte(`[{"code": "E100", "name": "Curcumin", "vegan": true}]`), 0644); err != nil {
		t.Fatalf("failed to write table: %v", err)
	}

	table, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if table.Len() != 1 {
		t.Errorf("Len: got %d, want 1", table.Len())
	}

	if _, err := Open(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("Open should fail for a missing file")
	}
}

package enumber

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want Code
	}{
		{"E100", "E100"},
		{"e100", "E100"},
		{"E-200", "E200"},
		{"e 160a", "E160A"},
		{"330", "E330"},
		{"1105", "E1105"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q): got %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	valid := map[string]Code{
		"E100":     "E100",
		" e-160a ": "E160A",
		"471":      "E471",
		"E 330":    "E330",
		"Ｅ１２０":     "E120",
	}
	for in, want := range valid {
		got, err := Parse(in)
		if err != nil {
			t.Errorf("Parse(%q) failed: %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("Parse(%q): got %s, want %s", in, got, want)
		}
	}

	invalid := []string{"", "E", "E12", "E12345", "E100AB", "salt",
		"E 1 0 0", "1-0-0", "E1-00", "E--100", "-100"}
	for _, in := range invalid {
		if _, err := Parse(in); !errors.Is(err, ErrInvalidCode) {
			t.Errorf("Parse(%q): got err %v, want ErrInvalidCode", in, err)
		}
	}
}

func TestCode_Valid(t *testing.T) {
	if !Code("E160A").Valid() {
		t.Error("E160A should be valid")
	}
	if Code("e160a").Valid() {
		t.Error("lowercase code should not be valid")
	}
	if Code("E-100").Valid() {
		t.Error("separator should not be valid")
	}
}

func TestSet(t *testing.T) {
	var s Set
	if s.Len() != 0 || s.Contains("E100") {
		t.Fatal("zero Set should be empty")
	}

	if !s.Add("E200") || !s.Add("E100") {
		t.Fatal("Add of new codes should report true")
	}
	if s.Add("E200") {
		t.Error("Add of duplicate should report false")
	}
	if s.Len() != 2 {
		t.Errorf("Len: got %d, want 2", s.Len())
	}

	codes := s.Codes()
	if codes[0] != "E200" || codes[1] != "E100" {
		t.Errorf("order: got %v, want [E200 E100]", codes)
	}
	codes[0] = "E999"
	if !s.Contains("E200") || s.Contains("E999") {
		t.Error("Codes must return a copy")
	}

	if !s.Equal(NewSet("E100", "E200")) {
		t.Error("sets with same members should be equal")
	}
	if s.Equal(NewSet("E100")) || s.Equal(NewSet("E100", "E300")) {
		t.Error("sets with different members should not be equal")
	}
}

func TestSet_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(NewSet("E100", "E160A"))
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `["E100","E160A"]` {
		t.Errorf("got %s", data)
	}

	empty, _ := json.Marshal(Set{})
	if string(empty) != `[]` {
		t.Errorf("empty set: got %s, want []", empty)
	}
}

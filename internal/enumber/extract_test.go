package enumber

import (
	"reflect"
	"strings"
	"testing"
)

func TestExtract_Strict(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"plain codes", "Contains E100, E200 and salt", []string{"E100", "E200"}},
		{"lowercase prefix and suffix", "colour (e160a), e 330", []string{"E160A", "E330"}},
		{"hyphen separator", "E-471 emulsifier", []string{"E471"}},
		{"four digit code", "lysozyme (E1105)", []string{"E1105"}},
		{"duplicates collapse", "E100 e100 E-100 E 100", []string{"E100"}},
		{"first seen order", "E300, E100, E300, E200", []string{"E300", "E100", "E200"}},
		{"bare numbers ignored", "Contains 100, 200", nil},
		{"embedded in word", "SE100 E10000 E12", nil},
		{"no codes", "fresh apples and water", nil},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.text, Strict).Strings()
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Extract(%q): got %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestExtract_Lenient(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"bare and separated unify", "Contains 100, E-200", []string{"E100", "E200"}},
		{"bare with suffix", "colour 160a", []string{"E160A"}},
		{"strict token counted once", "E-200 and 200", []string{"E200"}},
		{"spaced prefix counted once", "E 330", []string{"E330"}},
		{"mixed order", "412, E415, 1422", []string{"E412", "E415", "E1422"}},
		{"short and long groups ignored", "12 and 12345", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.text, Lenient).Strings()
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Extract(%q): got %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestExtract_FoldsUnicode(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"fullwidth", "Ｅ１００", "E100"},
		{"en dash", "E–200", "E200"},
		{"no-break space", "E\u00a0300", "E300"},
		{"minus sign", "E−330", "E330"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.text, Strict).Strings()
			if len(got) != 1 || got[0] != tt.want {
				t.Errorf("Extract(%q): got %v, want [%s]", tt.text, got, tt.want)
			}
		})
	}
}

func TestExtract_StrictIdempotent(t *testing.T) {
	inputs := []string{
		"Contains E100, E200 and salt",
		"Ingredients: sugar, e-471, E 322, colour (E160a), E1105, e471",
		"nothing to see here",
		"Ｅ１２０ and E–904",
	}

	for _, in := range inputs {
		first := Extract(in, Strict)
		second := Extract(strings.Join(first.Strings(), " "), Strict)
		if !reflect.DeepEqual(first.Strings(), second.Strings()) {
			t.Errorf("not idempotent for %q: first %v, second %v", in, first.Strings(), second.Strings())
		}
	}
}

func TestExtract_OrderIndependent(t *testing.T) {
	a := Extract("sugar E100, water E200, acid E330", Strict)
	b := Extract("acid E330, sugar E100, water E200", Strict)
	if !a.Equal(b) {
		t.Errorf("sets differ: %v vs %v", a.Strings(), b.Strings())
	}

	c := Extract("330 then E-100 then 200", Lenient)
	d := Extract("200 then 330 then E-100", Lenient)
	if !c.Equal(d) {
		t.Errorf("lenient sets differ: %v vs %v", c.Strings(), d.Strings())
	}
}

func TestExtractor_Mode(t *testing.T) {
	tests := []struct {
		name string
		ex   Extractor
		ch   Channel
		want Mode
	}{
		{"default text", DefaultExtractor(), ChannelText, Lenient},
		{"default image", DefaultExtractor(), ChannelImage, Strict},
		{"lenient image", Extractor{LenientImage: true}, ChannelImage, Lenient},
		{"strict text", Extractor{}, ChannelText, Strict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ex.Mode(tt.ch); got != tt.want {
				t.Errorf("Mode(%s): got %s, want %s", tt.ch, got, tt.want)
			}
		})
	}
}

func TestExtractor_Extract(t *testing.T) {
	ex := DefaultExtractor()
	text := "Contains 100, E-200"

	if got := ex.Extract(text, ChannelText).Len(); got != 2 {
		t.Errorf("text channel: got %d codes, want 2", got)
	}
	if got := ex.Extract(text, ChannelImage).Strings(); !reflect.DeepEqual(got, []string{"E200"}) {
		t.Errorf("image channel: got %v, want [E200]", got)
	}
}

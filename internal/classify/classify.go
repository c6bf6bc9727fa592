// Package classify decides whether a set of E-numbers is vegan.
//
// Classification is closed-world: a code the reference table does not know is
// treated as not vegan, but it is still reported (named "Unknown") so the
// user can see why the verdict came out negative.
package classify

import (
	"encoding/json"
	"fmt"

	"github.com/ironsheep/vegan-check-mcp/internal/enumber"
	"github.com/ironsheep/vegan-check-mcp/internal/reference"
)

// UnknownName is the display name given to codes absent from the table.
const UnknownName = "Unknown"

// Verdict is the outcome of a submission.
type Verdict int

const (
	// Unresolved means nothing has been classified yet, or there was nothing
	// to classify.
	Unresolved Verdict = iota
	// AllVegan means every extracted code is known and vegan.
	AllVegan
	// NotAllVegan means at least one code is non-vegan or unknown.
	NotAllVegan
)

// String returns "unresolved", "vegan" or "not_vegan".
func (v Verdict) String() string {
	switch v {
	case Unresolved:
		return "unresolved"
	case AllVegan:
		return "vegan"
	case NotAllVegan:
		return "not_vegan"
	default:
		return fmt.Sprintf("Verdict(%d)", int(v))
	}
}

// MarshalJSON encodes the verdict as its String form.
func (v Verdict) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.String())
}

// Annotation describes one extracted code for display.
type Annotation struct {
	Code  enumber.Code `json:"code"`
	Name  string       `json:"name"`
	Vegan bool         `json:"vegan"`
	Known bool         `json:"known"`
}

// Result is the classification of one extracted set.
type Result struct {
	Verdict Verdict      `json:"verdict"`
	Codes   []Annotation `json:"codes"`
}

// Classify looks up every code of set in table.
//
// An empty set yields Unresolved with no annotations. Otherwise the verdict
// is AllVegan only when every code resolves to a vegan entry. Annotations
// follow the set's first-seen order; the verdict does not depend on it.
//
// Classify never fails and does not modify its inputs.
func Classify(set enumber.Set, table *reference.Table) Result {
	if set.Len() == 0 {
		return Result{Verdict: Unresolved, Codes: []Annotation{}}
	}

	codes := make([]Annotation, 0, set.Len())
	allVegan := true
	for _, c := range set.Codes() {
		a := Annotation{Code: c, Name: UnknownName}
		if e, ok := table.Lookup(c); ok {
			a.Name = e.Name
			a.Vegan = e.Vegan
			a.Known = true
		}
		if !a.Vegan {
			allVegan = false
		}
		codes = append(codes, a)
	}

	verdict := NotAllVegan
	if allVegan {
		verdict = AllVegan
	}
	return Result{Verdict: verdict, Codes: codes}
}

// NonVegan returns the annotations that prevented an AllVegan verdict.
func (r Result) NonVegan() []Annotation {
	var out []Annotation
	for _, a := range r.Codes {
		if !a.Vegan {
			out = append(out, a)
		}
	}
	return out
}

// Unknown returns the annotations whose codes are missing from the table.
func (r Result) Unknown() []Annotation {
	var out []Annotation
	for _, a := range r.Codes {
		if !a.Known {
			out = append(out, a)
		}
	}
	return out
}

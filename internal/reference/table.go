// Package reference holds the table of known E-numbers and their vegan
// classification.
//
// The table is bundled with the binary (data/enumbers.json) and parsed once.
// A replacement file can be supplied at start-up; it is never refetched or
// reloaded while the process runs.
package reference

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/ironsheep/vegan-check-mcp/internal/enumber"
)

// ErrInvalidTable is returned when table data cannot be used.
var ErrInvalidTable = errors.New("invalid reference table")

//go:embed data/enumbers.json
var bundled []byte

// Entry is one known additive.
type Entry struct {
	Code  enumber.Code `json:"code"`
	Name  string       `json:"name"`
	Vegan bool         `json:"vegan"`
}

// Table maps canonical codes to entries. A Table is immutable after loading
// and safe for concurrent use.
type Table struct {
	entries []Entry
	byCode  map[enumber.Code]Entry
}

// Load parses a JSON array of {"code","name","vegan"} records.
//
// Codes may be written in any spelling enumber.Parse accepts and are stored
// in canonical form. Entry order is preserved for listing.
//
// Returns an error wrapping ErrInvalidTable for malformed JSON, unparseable
// codes, empty names, or duplicate codes.
func Load(r io.Reader) (*Table, error) {
	var raw []struct {
		Code  string `json:"code"`
		Name  string `json:"name"`
		Vegan bool   `json:"vegan"`
	}
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTable, err)
	}

	t := &Table{
		entries: make([]Entry, 0, len(raw)),
		byCode:  make(map[enumber.Code]Entry, len(raw)),
	}
	for i, rec := range raw {
		code, err := enumber.Parse(rec.Code)
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", ErrInvalidTable, i, err)
		}
		if rec.Name == "" {
			return nil, fmt.Errorf("%w: record %d (%s): empty name", ErrInvalidTable, i, code)
		}
		if _, dup := t.byCode[code]; dup {
			return nil, fmt.Errorf("%w: duplicate code %s", ErrInvalidTable, code)
		}
		e := Entry{Code: code, Name: rec.Name, Vegan: rec.Vegan}
		t.entries = append(t.entries, e)
		t.byCode[code] = e
	}
	return t, nil
}

// Open loads a table from a JSON file.
func Open(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open reference table: %w", err)
	}
	defer f.Close()
	return Load(f)
}

var (
	defaultOnce  sync.Once
	defaultTable *Table
	defaultErr   error
)

// Default returns the bundled table. It is parsed on first use.
func Default() (*Table, error) {
	defaultOnce.Do(func() {
		defaultTable, defaultErr = Load(bytes.NewReader(bundled))
	})
	return defaultTable, defaultErr
}

// Lookup returns the entry for code. The code is parsed first, so "e-120"
// and "E120" find the same entry.
func (t *Table) Lookup(code enumber.Code) (Entry, bool) {
	e, ok := t.byCode[code]
	if ok {
		return e, true
	}
	canonical, err := enumber.Parse(string(code))
	if err != nil {
		return Entry{}, false
	}
	e, ok = t.byCode[canonical]
	return e, ok
}

// Entries returns all entries in file order. The slice is a copy.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.entries)
}

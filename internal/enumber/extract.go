package enumber

import (
	"encoding/json"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Mode selects which token dialects Extract recognizes.
type Mode int

const (
	// Strict matches only tokens with an E prefix.
	Strict Mode = iota
	// Lenient additionally matches bare digit groups.
	Lenient
)

// String returns "strict" or "lenient".
func (m Mode) String() string {
	switch m {
	case Strict:
		return "strict"
	case Lenient:
		return "lenient"
	default:
		return "unknown"
	}
}

var (
	strictPattern = regexp.MustCompile(`(?i)\bE[- ]?\d{3,4}[A-Z]?\b`)
	barePattern   = regexp.MustCompile(`\b\d{3,4}[A-Za-z]?\b`)
)

// dashFolder maps typographic dashes and the minus sign to ASCII hyphen.
var dashFolder = strings.NewReplacer(
	"\u2010", "-",
	"\u2011", "-",
	"\u2012", "-",
	"\u2013", "-",
	"\u2014", "-",
	"\u2015", "-",
	"\u2212", "-",
)

// Fold rewrites text into the character repertoire the token patterns expect.
//
// NFKC normalization turns fullwidth letters and digits into ASCII and
// no-break spaces into plain spaces; typographic dashes become "-". Labels
// photographed from packaging and text pasted from web pages routinely carry
// these characters.
func Fold(text string) string {
	return dashFolder.Replace(norm.NFKC.String(text))
}

type match struct {
	start int
	code  Code
}

// Extract returns the distinct canonical codes found in text.
//
// Matches from all active dialects are ordered by their position in the
// (folded) text and deduplicated by canonical value, so a token recognized by
// both dialects ("E-200" contains the bare group "200") is counted once.
// Empty text yields an empty set.
func Extract(text string, mode Mode) Set {
	var set Set
	if text == "" {
		return set
	}
	folded := Fold(text)

	var matches []match
	for _, loc := range strictPattern.FindAllStringIndex(folded, -1) {
		matches = append(matches, match{start: loc[0], code: Normalize(folded[loc[0]:loc[1]])})
	}
	if mode == Lenient {
		for _, loc := range barePattern.FindAllStringIndex(folded, -1) {
			matches = append(matches, match{start: loc[0], code: Normalize(folded[loc[0]:loc[1]])})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].start < matches[j].start
	})
	for _, m := range matches {
		set.Add(m.code)
	}
	return set
}

// Channel identifies where a piece of ingredient text came from.
type Channel int

const (
	// ChannelText is text typed or pasted by the user.
	ChannelText Channel = iota
	// ChannelImage is text recognized from a photographed label.
	ChannelImage
)

// String returns "text" or "image".
func (c Channel) String() string {
	if c == ChannelImage {
		return "image"
	}
	return "text"
}

// MarshalJSON encodes the channel as its String form.
func (c Channel) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// Extractor chooses the extraction mode per input channel.
type Extractor struct {
	// LenientText enables bare-number matching for typed text.
	LenientText bool
	// LenientImage enables bare-number matching for OCR output.
	LenientImage bool
}

// DefaultExtractor matches bare numbers in typed text only. OCR output is
// kept strict because labels are full of weights and batch numbers.
func DefaultExtractor() Extractor {
	return Extractor{LenientText: true}
}

// Mode returns the mode used for text from ch.
func (e Extractor) Mode(ch Channel) Mode {
	lenient := e.LenientText
	if ch == ChannelImage {
		lenient = e.LenientImage
	}
	if lenient {
		return Lenient
	}
	return Strict
}

// Extract runs Extract with the mode configured for ch.
func (e Extractor) Extract(text string, ch Channel) Set {
	return Extract(text, e.Mode(ch))
}

// Package enumber extracts food-additive codes ("E-numbers") from free-form
// ingredient text and normalizes them to a canonical form.
//
// # Canonical Form
//
// A canonical code is an upper-case "E" followed by three or four digits and
// an optional single letter suffix:
//
//	E100  E160A  E1105
//
// Separators between the "E" and the digits ("E-200", "e 200") are stripped
// and letters are upper-cased, so every spelling of the same additive maps to
// one Code value. Codes compare with ==.
//
// # Dialects
//
// Two recognition modes exist:
//   - Strict: only tokens that carry the E prefix, matched case-insensitively
//     as whole words (`\b[Ee][- ]?\d{3,4}[A-Za-z]?\b`).
//   - Lenient: strict tokens plus bare three and four digit groups
//     (`\b\d{3,4}[A-Za-z]?\b`), which receive a synthesized "E" prefix.
//     People typing ingredient lists often leave the prefix out.
//
// Which mode applies to which input channel is decided by an Extractor, so
// OCR output and typed text can be configured independently.
//
// # Ordering
//
// A Set keeps the first-seen order of its codes for display. The order has no
// meaning for classification; Set.Equal compares membership only.
package enumber

// Package ocr turns a preprocessed label image into raw text using Tesseract.
//
// An Engine is a short-lived handle on a recognizer. Callers never hold one
// across requests: Recognize acquires an engine from a Factory right before
// use and releases it on every exit path, so a failed recognition cannot leak
// the worker.
//
// # Backends
//
// Two backends are available:
//   - "cli" (default): runs the tesseract binary, feeding the image on stdin
//   - "gosseract": links libtesseract through gosseract; only present in
//     binaries built with -tags gosseract
//
// NewFactory selects one by name and Probe reports whether it can run.
//
// # Prerequisites
//
// Tesseract must be installed on the system:
//   - Ubuntu/Debian: apt-get install tesseract-ocr
//   - macOS: brew install tesseract
//
// Language data files are required for each language, for example
// tesseract-ocr-eng for English.
//
// # Error Handling
//
// Every failure to initialize, recognize or terminate wraps ErrEngine.
// A backend that cannot run on this host additionally wraps ErrNotAvailable.
// No timeout is imposed on recognition; cancel the context to abandon it.
package ocr

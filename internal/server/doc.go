// Package server implements the MCP (Model Context Protocol) server for
// vegan E-number checks.
//
// The server communicates over stdio using JSON-RPC 2.0, one request per
// line. It supports initialize, tools/list, tools/call and ping.
//
// # Tools
//
// E-number operations:
//   - enumber_extract: Find E-numbers in text
//   - enumber_lookup: Look up one code in the reference table
//   - enumber_list: List the reference table
//
// Checks:
//   - vegan_check_text: Classify typed ingredient text
//   - vegan_check_image: OCR a label photo and classify its text
//
// Image operations:
//   - image_preprocess: Show the binarized image sent to OCR
//   - image_inspect: Report dimensions and format
//   - image_region_guide: Overlay a coordinate grid for picking a crop
//
// Session operations drive a single check through editing, processing and
// a final verdict: session_set_text, session_upload_image, session_submit,
// session_reset and session_state.
//
// ocr_info reports whether the configured OCR backend can run.
//
// # Error Handling
//
// Tool failures are JSON-RPC errors with code -32000. The error data is a
// ToolError carrying the end-user message from checker.UserMessage and the
// underlying error text.
//
// Images are never cached; each call decodes its input and drops it before
// returning.
package server

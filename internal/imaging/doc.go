// Package imaging prepares photographed ingredient labels for OCR.
//
// The central operation is Preprocess, a deterministic transformation that
// turns an arbitrary decoded photo into a high-contrast black and white image:
//
//  1. Scale down so the longer side is at most MaxDimension (1600) pixels,
//     preserving aspect ratio. Smaller images keep their size.
//  2. Composite the result onto an opaque white canvas, so transparent
//     regions read as paper rather than ink.
//  3. Binarize: a pixel whose mean of R, G and B exceeds Threshold (128)
//     becomes pure white, every other pixel pure black. Alpha is kept.
//
// EncodeJPEG then produces the blob handed to the OCR engine (quality 90).
//
// # Coordinate System
//
// Crop regions use 0-based pixel coordinates with (0,0) at the top-left:
// (X1,Y1) is inclusive, (X2,Y2) is exclusive. Coordinates refer to the image
// after EXIF orientation has been applied.
//
// # Errors
//
// Callers test failures with errors.Is:
//   - ErrImageDecode: the source bytes or file could not be read or decoded
//   - ErrSurfaceUnavailable: no drawing surface could be produced (empty
//     image, failed encoding)
//   - ErrInvalidRegion: a crop region is empty, out of bounds or unknown
//
// # Diagnostics
//
// ComputeStats (histogram based) and AnalyzeContrast (perceptual lightness)
// report on the processed and source images. They never influence the
// binarization itself.
//
// # Thread Safety
//
// All functions are stateless and may be called concurrently. Source images
// are never modified.
package imaging

package checker

import (
	"errors"
	"fmt"

	"github.com/ironsheep/vegan-check-mcp/internal/enumber"
	"github.com/ironsheep/vegan-check-mcp/internal/imaging"
	"github.com/ironsheep/vegan-check-mcp/internal/ocr"
)

var (
	// ErrNoCodesFound is matched by every *NoCodesFoundError.
	ErrNoCodesFound = errors.New("no E-numbers found")

	// ErrSubmissionPending is returned while an image upload is being read.
	ErrSubmissionPending = errors.New("an image is already being processed")

	// ErrAlreadyResolved is returned when input is changed after a verdict
	// without a reset.
	ErrAlreadyResolved = errors.New("submission already resolved; reset first")

	// ErrSubmissionAbandoned is returned to an upload whose session was reset
	// while it was being read. Its result has been discarded.
	ErrSubmissionAbandoned = errors.New("submission abandoned by reset")
)

// NoCodesFoundError reports a submission whose text held no E-numbers.
type NoCodesFoundError struct {
	// Source is the channel the empty text came from.
	Source enumber.Channel
}

func (e *NoCodesFoundError) Error() string {
	return fmt.Sprintf("no E-numbers found in the %s", e.Source)
}

// Is makes errors.Is(err, ErrNoCodesFound) hold.
func (e *NoCodesFoundError) Is(target error) bool {
	return target == ErrNoCodesFound
}

// Messages shown to users.
const (
	MessageImageFailed  = "Failed to process image. Please try again."
	MessagePending      = "Please wait until the current image has been processed."
	MessageResolved     = "Check another product to start over."
	MessageAbandoned    = "The image was discarded because the check was reset."
	MessageUnknownError = "Something went wrong. Please try again."
)

// UserMessage converts an error from this package's pipeline into the
// sentence shown to the user. It returns "" for a nil error.
func UserMessage(err error) string {
	var noCodes *NoCodesFoundError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &noCodes):
		return fmt.Sprintf("No E-numbers found in the %s.", noCodes.Source)
	case errors.Is(err, imaging.ErrImageDecode),
		errors.Is(err, imaging.ErrSurfaceUnavailable),
		errors.Is(err, imaging.ErrInvalidRegion),
		errors.Is(err, ocr.ErrEngine),
		errors.Is(err, ocr.ErrNotAvailable):
		return MessageImageFailed
	case errors.Is(err, ErrSubmissionPending):
		return MessagePending
	case errors.Is(err, ErrAlreadyResolved):
		return MessageResolved
	case errors.Is(err, ErrSubmissionAbandoned):
		return MessageAbandoned
	default:
		return MessageUnknownError
	}
}

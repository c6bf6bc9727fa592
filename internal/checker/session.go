package checker

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/ironsheep/vegan-check-mcp/internal/classify"
	"github.com/ironsheep/vegan-check-mcp/internal/enumber"
	"github.com/ironsheep/vegan-check-mcp/internal/imaging"
)

// Status is the lifecycle stage of a Session.
type Status int

const (
	// Editing accepts text and uploads; no verdict has been reached.
	Editing Status = iota
	// Processing means an uploaded image is being read.
	Processing
	// Vegan means the last submission resolved to AllVegan.
	Vegan
	// NotVegan means the last submission resolved to NotAllVegan.
	NotVegan
)

func (s Status) String() string {
	switch s {
	case Editing:
		return "editing"
	case Processing:
		return "processing"
	case Vegan:
		return "vegan"
	case NotVegan:
		return "not_vegan"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// MarshalJSON encodes the status as its String form.
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// Resolved reports whether s carries a verdict.
func (s Status) Resolved() bool {
	return s == Vegan || s == NotVegan
}

// Verdict returns the classification verdict for s.
func (s Status) Verdict() classify.Verdict {
	switch s {
	case Vegan:
		return classify.AllVegan
	case NotVegan:
		return classify.NotAllVegan
	default:
		return classify.Unresolved
	}
}

// State is a point-in-time copy of a Session.
type State struct {
	Status  Status           `json:"status"`
	Verdict classify.Verdict `json:"verdict"`
	Text    string           `json:"text"`
	Source  enumber.Channel  `json:"source"`
	Codes   enumber.Set      `json:"codes"`
	Result  *classify.Result `json:"result,omitempty"`
	Reading *Reading         `json:"reading,omitempty"`
	Message string           `json:"message,omitempty"`
}

// Session tracks one user's check from input to verdict.
//
// Text may be edited and an image uploaded while Editing. Submit resolves
// the current text into Vegan or NotVegan, after which only Reset is
// accepted. Only one upload may be in flight; the session lock is not held
// while OCR runs, so Snapshot and Reset stay responsive.
type Session struct {
	pipeline *Pipeline

	mu      sync.Mutex
	status  Status
	text    string
	source  enumber.Channel
	codes   enumber.Set
	result  *classify.Result
	reading *Reading
	message string

	// generation changes on every upload and reset so a late upload can
	// tell that its session moved on.
	generation uint64
}

// NewSession returns an empty session in the Editing state.
func NewSession(p *Pipeline) *Session {
	return &Session{pipeline: p}
}

// SetText replaces the input text and re-extracts its codes.
func (s *Session) SetText(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.editableLocked(); err != nil {
		return err
	}
	s.text = text
	s.source = enumber.ChannelText
	s.codes = s.pipeline.Extract(text, enumber.ChannelText)
	s.reading = nil
	s.message = ""
	return nil
}

// UploadImage reads an ingredient label and replaces the input text with
// the recognized text.
//
// On failure the session returns to Editing, keeps its previous text and
// records the user message. If the session is reset while the image is
// being read, the reading is discarded and ErrSubmissionAbandoned returned.
func (s *Session) UploadImage(ctx context.Context, data []byte, sel imaging.Selection) error {
	s.mu.Lock()
	if err := s.editableLocked(); err != nil {
		s.mu.Unlock()
		return err
	}
	s.status = Processing
	s.message = ""
	s.generation++
	gen := s.generation
	s.mu.Unlock()

	reading, err := s.pipeline.ReadImage(ctx, data, sel)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != gen {
		return ErrSubmissionAbandoned
	}
	s.status = Editing
	if err != nil {
		s.message = UserMessage(err)
		return err
	}
	s.text = reading.Text
	s.source = enumber.ChannelImage
	s.codes = s.pipeline.Extract(reading.Text, enumber.ChannelImage)
	s.reading = reading
	return nil
}

// Submit classifies the current text.
//
// If no codes are found the session stays Editing and a *NoCodesFoundError
// is returned. Otherwise the session moves to Vegan or NotVegan.
func (s *Session) Submit() (*classify.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.editableLocked(); err != nil {
		return nil, err
	}

	report, err := s.pipeline.Classify(s.text, s.source)
	if err != nil {
		s.codes = enumber.Set{}
		s.message = UserMessage(err)
		return nil, err
	}

	s.codes = report.Codes
	s.result = &report.Result
	s.message = ""
	if report.Result.Verdict == classify.AllVegan {
		s.status = Vegan
	} else {
		s.status = NotVegan
	}
	r := report.Result
	return &r, nil
}

// Reset returns the session to an empty Editing state from any state.
// An upload in flight is abandoned.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.status = Editing
	s.text = ""
	s.source = enumber.ChannelText
	s.codes = enumber.Set{}
	s.result = nil
	s.reading = nil
	s.message = ""
	s.generation++
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := State{
		Status:  s.status,
		Verdict: s.status.Verdict(),
		Text:    s.text,
		Source:  s.source,
		Codes:   enumber.NewSet(s.codes.Codes()...),
		Reading: s.reading,
		Message: s.message,
	}
	if s.result != nil {
		r := *s.result
		r.Codes = append([]classify.Annotation(nil), s.result.Codes...)
		st.Result = &r
	}
	return st
}

func (s *Session) editableLocked() error {
	switch {
	case s.status == Processing:
		return ErrSubmissionPending
	case s.status.Resolved():
		return ErrAlreadyResolved
	}
	return nil
}
